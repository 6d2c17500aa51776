package controller

import (
	"strconv"
	"time"

	"appointments-api/core/constants"
	"appointments-api/core/controller"
	"appointments-api/core/errors"
	"appointments-api/core/params"
	"appointments-api/core/utils"
	"appointments-api/modules/event/dto"
	"appointments-api/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EventController handles event HTTP requests
type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

// NewEventController creates a new controller
func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
	}
}

// CreateEvent handles POST /calendars/:slug/events
// @Summary Create an event on a calendar
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param slug path string true "Calendar slug"
// @Param request body dto.CreateEventRequest true "Event data"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} errors.AppError
// @Router /private/calendars/{slug}/events [post]
func (c *EventController) CreateEvent(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Authentication required")
	}

	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.EventService.CreateEvent(ctx.Request().Context(), userID, ctx.Param("slug"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event created successfully")
}

// GetEvent handles GET /events/:id
// @Summary Get an event by ID
// @Tags Event
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} errors.AppError
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	result, appErr := c.EventService.GetEventByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListEvents handles GET /calendars/:slug/events
// @Summary List a calendar's events
// @Tags Event
// @Produce json
// @Param slug path string true "Calendar slug"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param date query string false "RFC 3339 instant; only events spanning it"
// @Success 200 {object} dto.PaginatedEventResponse
// @Router /calendars/{slug}/events [get]
func (c *EventController) ListEvents(ctx echo.Context) error {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	size, _ := strconv.Atoi(ctx.QueryParam("page_size"))

	var date *time.Time
	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "date must be RFC 3339")
		}
		date = &parsed
	}

	result, appErr := c.EventService.ListEvents(ctx.Request().Context(), ctx.Param("slug"), params.QueryParams{
		PageNumber: page,
		PageSize:   size,
	}, date)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateEvent handles PUT /events/:id
// @Summary Update event details
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event data"
// @Success 200 {object} dto.EventResponse
// @Failure 403 {object} errors.AppError
// @Router /private/events/{id} [put]
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Authentication required")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var req dto.UpdateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.EventService.UpdateEvent(ctx.Request().Context(), id, userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event updated successfully")
}

// DeleteEvent handles DELETE /events/:id
// @Summary Delete an event and its occurrences
// @Tags Event
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} errors.AppError
// @Router /private/events/{id} [delete]
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Authentication required")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	if appErr := c.EventService.DeleteEvent(ctx.Request().Context(), id, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}

// GetOccurrences handles GET /events/:id/occurrences?start=&end=
// @Summary List an event's occurrences in a window
// @Tags Event
// @Produce json
// @Param id path string true "Event ID"
// @Param start query string true "Window start, RFC 3339"
// @Param end query string true "Window end, RFC 3339 (exclusive)"
// @Success 200 {array} dto.OccurrenceResponse
// @Router /events/{id}/occurrences [get]
func (c *EventController) GetOccurrences(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	start, err := time.Parse(time.RFC3339, ctx.QueryParam("start"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "start must be RFC 3339")
	}
	end, err := time.Parse(time.RFC3339, ctx.QueryParam("end"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "end must be RFC 3339")
	}
	if !start.Before(end) {
		return c.BadRequest(errors.ErrInvalidInput, "start must precede end")
	}

	result, appErr := c.EventService.GetOccurrences(ctx.Request().Context(), id, start, end)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// CreateRule handles POST /rules
// @Summary Create a recurrence rule
// @Tags Rule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateRuleRequest true "Rule data"
// @Success 200 {object} dto.RuleResponse
// @Failure 400 {object} errors.AppError
// @Router /private/rules [post]
func (c *EventController) CreateRule(ctx echo.Context) error {
	var req dto.CreateRuleRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.EventService.CreateRule(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Rule created successfully")
}

// GetRule handles GET /rules/:id
// @Summary Get a recurrence rule
// @Tags Rule
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} dto.RuleResponse
// @Failure 404 {object} errors.AppError
// @Router /rules/{id} [get]
func (c *EventController) GetRule(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid rule ID")
	}

	result, appErr := c.EventService.GetRuleByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListRules handles GET /rules
// @Summary List recurrence rules
// @Tags Rule
// @Produce json
// @Success 200 {array} dto.RuleResponse
// @Router /rules [get]
func (c *EventController) ListRules(ctx echo.Context) error {
	result, appErr := c.EventService.ListRules(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// CreateRelation handles POST /events/:id/relations
// @Summary Attach a user to an event
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.CreateEventRelationRequest true "Relation data"
// @Success 200 {object} dto.EventRelationResponse
// @Router /private/events/{id}/relations [post]
func (c *EventController) CreateRelation(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var req dto.CreateEventRelationRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.EventService.CreateRelation(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Relation created successfully")
}

// GetRelations handles GET /events/:id/relations?distinction=
// @Summary List event relations by distinction
// @Tags Event
// @Produce json
// @Param id path string true "Event ID"
// @Param distinction query string true "Relation distinction"
// @Success 200 {array} dto.EventRelationResponse
// @Router /events/{id}/relations [get]
func (c *EventController) GetRelations(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	distinction := ctx.QueryParam("distinction")
	if distinction == "" {
		return c.BadRequest(errors.ErrInvalidInput, "distinction query parameter is required")
	}

	result, appErr := c.EventService.GetRelations(ctx.Request().Context(), id, distinction)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

func currentUserID(ctx echo.Context) (uuid.UUID, bool) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}
