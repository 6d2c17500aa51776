package controller

import (
	"strconv"

	"appointments-api/core/controller"
	"appointments-api/core/errors"
	"appointments-api/core/params"
	"appointments-api/modules/calendar/dto"
	"appointments-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// CalendarController handles calendar HTTP requests
type CalendarController struct {
	controller.BaseController
	CalendarService service.CalendarServiceInterface
}

// NewCalendarController creates a new controller
func NewCalendarController(svc service.CalendarServiceInterface) *CalendarController {
	return &CalendarController{
		BaseController:  controller.NewBaseController(),
		CalendarService: svc,
	}
}

// CreateCalendar handles POST /calendars
// @Summary Create a calendar
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateCalendarRequest true "Calendar data"
// @Success 200 {object} dto.CalendarResponse
// @Failure 400 {object} errors.AppError
// @Router /private/calendars [post]
func (c *CalendarController) CreateCalendar(ctx echo.Context) error {
	var req dto.CreateCalendarRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.CalendarService.CreateCalendar(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Calendar created successfully")
}

// GetCalendar handles GET /calendars/:slug
// @Summary Get a calendar by slug
// @Tags Calendar
// @Produce json
// @Param slug path string true "Calendar slug"
// @Success 200 {object} dto.CalendarResponse
// @Failure 404 {object} errors.AppError
// @Router /calendars/{slug} [get]
func (c *CalendarController) GetCalendar(ctx echo.Context) error {
	result, appErr := c.CalendarService.GetCalendarBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListCalendars handles GET /calendars
// @Summary List calendars
// @Tags Calendar
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PaginatedCalendarResponse
// @Router /calendars [get]
func (c *CalendarController) ListCalendars(ctx echo.Context) error {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	size, _ := strconv.Atoi(ctx.QueryParam("page_size"))

	result, appErr := c.CalendarService.ListCalendars(ctx.Request().Context(), params.QueryParams{
		PageNumber: page,
		PageSize:   size,
	})
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateCalendar handles PUT /calendars/:slug
// @Summary Rename a calendar
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param slug path string true "Calendar slug"
// @Param request body dto.UpdateCalendarRequest true "Calendar data"
// @Success 200 {object} dto.CalendarResponse
// @Failure 404 {object} errors.AppError
// @Router /private/calendars/{slug} [put]
func (c *CalendarController) UpdateCalendar(ctx echo.Context) error {
	var req dto.UpdateCalendarRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.CalendarService.UpdateCalendar(ctx.Request().Context(), ctx.Param("slug"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Calendar updated successfully")
}

// DeleteCalendar handles DELETE /calendars/:slug
// @Summary Delete a calendar and everything it owns
// @Tags Calendar
// @Security BearerAuth
// @Param slug path string true "Calendar slug"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /private/calendars/{slug} [delete]
func (c *CalendarController) DeleteCalendar(ctx echo.Context) error {
	if appErr := c.CalendarService.DeleteCalendar(ctx.Request().Context(), ctx.Param("slug")); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Calendar deleted successfully")
}

// CreateRelation handles POST /calendars/:slug/relations
// @Summary Attach a user to a calendar
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param slug path string true "Calendar slug"
// @Param request body dto.CreateCalendarRelationRequest true "Relation data"
// @Success 200 {object} dto.CalendarRelationResponse
// @Router /private/calendars/{slug}/relations [post]
func (c *CalendarController) CreateRelation(ctx echo.Context) error {
	var req dto.CreateCalendarRelationRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.CalendarService.CreateRelation(ctx.Request().Context(), ctx.Param("slug"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Relation created successfully")
}

// GetRelations handles GET /calendars/:slug/relations?distinction=
// @Summary List calendar relations by distinction
// @Tags Calendar
// @Produce json
// @Param slug path string true "Calendar slug"
// @Param distinction query string true "Relation distinction"
// @Success 200 {array} dto.CalendarRelationResponse
// @Router /calendars/{slug}/relations [get]
func (c *CalendarController) GetRelations(ctx echo.Context) error {
	distinction := ctx.QueryParam("distinction")
	if distinction == "" {
		return c.BadRequest(errors.ErrInvalidInput, "distinction query parameter is required")
	}

	result, appErr := c.CalendarService.GetRelations(ctx.Request().Context(), ctx.Param("slug"), distinction)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
