package dto

import (
	"time"

	"appointments-api/modules/calendar/entity"
)

// ===================== Request DTOs =====================

// CreateCalendarRequest for creating a new calendar
type CreateCalendarRequest struct {
	Name string `json:"name" validate:"required"`
	// Slug is optional; when empty it is derived from Name.
	Slug string `json:"slug"`
}

// UpdateCalendarRequest for renaming a calendar
type UpdateCalendarRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateCalendarRelationRequest for attaching a user to a calendar
type CreateCalendarRelationRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	Distinction string `json:"distinction" validate:"required"`
	Inheritable *bool  `json:"inheritable"`
}

// ===================== Response DTOs =====================

// CalendarResponse for calendar details
type CalendarResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// CalendarRelationResponse for a user/calendar relation
type CalendarRelationResponse struct {
	ID          string `json:"id"`
	CalendarID  string `json:"calendar_id"`
	UserID      string `json:"user_id"`
	Distinction string `json:"distinction"`
	Inheritable bool   `json:"inheritable"`
}

// PaginatedCalendarResponse for calendar lists
type PaginatedCalendarResponse struct {
	Calendars  []CalendarResponse `json:"calendars"`
	PageNumber int                `json:"page_number"`
	PageSize   int                `json:"page_size"`
	Total      int                `json:"total"`
}

// ===================== Mappers =====================

func ToCalendarResponse(c *entity.Calendar) *CalendarResponse {
	return &CalendarResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
	}
}

func ToCalendarRelationResponse(r *entity.CalendarRelation) *CalendarRelationResponse {
	return &CalendarRelationResponse{
		ID:          r.ID.String(),
		CalendarID:  r.CalendarID.String(),
		UserID:      r.UserID.String(),
		Distinction: r.Distinction,
		Inheritable: r.Inheritable,
	}
}
