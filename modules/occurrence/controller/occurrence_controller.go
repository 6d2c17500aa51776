package controller

import (
	"time"

	"appointments-api/core/constants"
	"appointments-api/core/controller"
	"appointments-api/core/errors"
	"appointments-api/core/utils"
	"appointments-api/modules/occurrence/dto"
	"appointments-api/modules/occurrence/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OccurrenceController handles occurrence HTTP requests
type OccurrenceController struct {
	controller.BaseController
	OccurrenceService service.OccurrenceServiceInterface
}

// NewOccurrenceController creates a new controller
func NewOccurrenceController(svc service.OccurrenceServiceInterface) *OccurrenceController {
	return &OccurrenceController{
		BaseController:    controller.NewBaseController(),
		OccurrenceService: svc,
	}
}

// GetOccurrenceByID handles GET /occurrences/:id
// @Summary Get a persisted occurrence by ID
// @Tags Occurrence
// @Produce json
// @Param id path string true "Occurrence ID"
// @Success 200 {object} dto.OccurrenceResponse
// @Failure 404 {object} errors.AppError
// @Router /occurrences/{id} [get]
func (c *OccurrenceController) GetOccurrenceByID(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid occurrence ID")
	}

	result, appErr := c.OccurrenceService.GetOccurrenceByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetOccurrence handles GET /events/:id/occurrence
// @Summary Resolve one occurrence by its original start
// @Tags Occurrence
// @Produce json
// @Param id path string true "Event ID"
// @Param date query string false "Original start, RFC 3339"
// @Param year query int false "Original start, by components"
// @Success 200 {object} dto.OccurrenceResponse
// @Failure 404 {object} errors.AppError
// @Router /events/{id}/occurrence [get]
func (c *OccurrenceController) GetOccurrence(ctx echo.Context) error {
	eventID, originalStart, httpErr := c.occurrenceAnchor(ctx)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := c.OccurrenceService.GetOccurrence(ctx.Request().Context(), eventID, originalStart)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// CancelOccurrence handles POST /events/:id/occurrence/cancel
// @Summary Cancel one occurrence
// @Tags Occurrence
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Param date query string false "Original start, RFC 3339"
// @Success 200 {object} dto.CancelOccurrenceResponse
// @Failure 403 {object} errors.AppError
// @Router /private/events/{id}/occurrence/cancel [post]
func (c *OccurrenceController) CancelOccurrence(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Authentication required")
	}

	eventID, originalStart, httpErr := c.occurrenceAnchor(ctx)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := c.OccurrenceService.CancelOccurrence(ctx.Request().Context(), eventID, originalStart, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Occurrence cancelled successfully")
}

// MoveOccurrence handles PUT /events/:id/occurrence
// @Summary Reschedule one occurrence
// @Tags Occurrence
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param date query string false "Original start, RFC 3339"
// @Param request body dto.MoveOccurrenceRequest true "New schedule"
// @Success 200 {object} dto.OccurrenceResponse
// @Failure 403 {object} errors.AppError
// @Router /private/events/{id}/occurrence [put]
func (c *OccurrenceController) MoveOccurrence(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Authentication required")
	}

	eventID, originalStart, httpErr := c.occurrenceAnchor(ctx)
	if httpErr != nil {
		return httpErr
	}

	var req dto.MoveOccurrenceRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.OccurrenceService.MoveOccurrence(ctx.Request().Context(), eventID, originalStart, userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Occurrence moved successfully")
}

// occurrenceAnchor reads the event ID path param plus the original start,
// given either as an RFC 3339 "date" query param or as
// year/month/day/hour/minute/second components.
func (c *OccurrenceController) occurrenceAnchor(ctx echo.Context) (uuid.UUID, time.Time, *echo.HTTPError) {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, time.Time{}, c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return uuid.Nil, time.Time{}, c.BadRequest(errors.ErrInvalidInput, "date must be RFC 3339")
		}
		return eventID, parsed, nil
	}

	coerced, set, cerr := utils.CoerceDateDict(ctx.QueryParams(), time.UTC)
	if cerr != nil {
		return uuid.Nil, time.Time{}, c.BadRequest(errors.ErrInvalidInput, cerr.Error())
	}
	if !set {
		return uuid.Nil, time.Time{}, c.BadRequest(errors.ErrInvalidInput, "An occurrence start is required, as date or as date components")
	}
	return eventID, coerced, nil
}

func currentUserID(ctx echo.Context) (uuid.UUID, bool) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}
