package controller

import (
	"time"

	"appointments-api/core/controller"
	"appointments-api/core/errors"
	"appointments-api/core/utils"
	"appointments-api/modules/period/service"

	"github.com/labstack/echo/v4"
)

// PeriodController handles period HTTP requests
type PeriodController struct {
	controller.BaseController
	PeriodService service.PeriodServiceInterface
}

// NewPeriodController creates a new controller
func NewPeriodController(svc service.PeriodServiceInterface) *PeriodController {
	return &PeriodController{
		BaseController: controller.NewBaseController(),
		PeriodService:  svc,
	}
}

// GetPeriod handles GET /calendars/:slug/periods/:kind
// @Summary Render a calendar period
// @Tags Period
// @Produce json
// @Param slug path string true "Calendar slug"
// @Param kind path string true "day, week, month or year"
// @Param date query string false "Reference instant, RFC 3339; defaults to now"
// @Param year query int false "Reference instant, by components"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} errors.AppError
// @Router /calendars/{slug}/periods/{kind} [get]
func (c *PeriodController) GetPeriod(ctx echo.Context) error {
	kind, ref, httpErr := c.periodQuery(ctx)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := c.PeriodService.GetPeriod(ctx.Request().Context(), ctx.Param("slug"), kind, ref)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// HasOccurrences handles GET /calendars/:slug/periods/:kind/has-occurrences
// @Summary Report whether a period holds any occurrence
// @Tags Period
// @Produce json
// @Param slug path string true "Calendar slug"
// @Param kind path string true "day, week, month or year"
// @Param date query string false "Reference instant, RFC 3339; defaults to now"
// @Success 200 {object} map[string]bool
// @Router /calendars/{slug}/periods/{kind}/has-occurrences [get]
func (c *PeriodController) HasOccurrences(ctx echo.Context) error {
	kind, ref, httpErr := c.periodQuery(ctx)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := c.PeriodService.HasOccurrences(ctx.Request().Context(), ctx.Param("slug"), kind, ref)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, map[string]bool{"has_occurrences": result}, "Success")
}

// periodQuery reads the period kind plus the reference instant, given as
// an RFC 3339 "date" param or as date components; missing means now.
func (c *PeriodController) periodQuery(ctx echo.Context) (service.Kind, time.Time, *echo.HTTPError) {
	kind, err := service.ParseKind(ctx.Param("kind"))
	if err != nil {
		return "", time.Time{}, c.BadRequest(errors.ErrInvalidInput, err.Error())
	}

	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return "", time.Time{}, c.BadRequest(errors.ErrInvalidInput, "date must be RFC 3339")
		}
		return kind, parsed, nil
	}

	coerced, set, cerr := utils.CoerceDateDict(ctx.QueryParams(), time.UTC)
	if cerr != nil {
		return "", time.Time{}, c.BadRequest(errors.ErrInvalidInput, cerr.Error())
	}
	if set {
		return kind, coerced, nil
	}
	return kind, time.Now().UTC(), nil
}
