package dto

import (
	"time"

	"appointments-api/modules/event/entity"
)

// ===================== Request DTOs =====================

// CreateEventRequest for creating a new event on a calendar
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Start       time.Time `json:"start" validate:"required"`
	// End is optional; when omitted it defaults to start plus the
	// configured default event duration.
	End                *time.Time `json:"end"`
	RuleID             string     `json:"rule_id"`
	EndRecurringPeriod *time.Time `json:"end_recurring_period"`
}

// UpdateEventRequest for updating event details
type UpdateEventRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Start              *time.Time `json:"start"`
	End                *time.Time `json:"end"`
	RuleID             *string    `json:"rule_id"`
	EndRecurringPeriod *time.Time `json:"end_recurring_period"`
}

// CreateRuleRequest for defining a recurrence rule
type CreateRuleRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Frequency   string     `json:"frequency" validate:"required"`
	Interval    int        `json:"interval"`
	Count       *int       `json:"count"`
	Until       *time.Time `json:"until"`
}

// CreateEventRelationRequest for attaching a user to an event
type CreateEventRelationRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	Distinction string `json:"distinction" validate:"required"`
}

// ===================== Response DTOs =====================

// EventResponse for event details
type EventResponse struct {
	ID                 string     `json:"id"`
	CalendarID         string     `json:"calendar_id"`
	CreatorID          string     `json:"creator_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Start              time.Time  `json:"start"`
	End                time.Time  `json:"end"`
	RuleID             string     `json:"rule_id,omitempty"`
	EndRecurringPeriod *time.Time `json:"end_recurring_period,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// RuleResponse for recurrence rule details
type RuleResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Frequency   string     `json:"frequency"`
	Interval    int        `json:"interval"`
	Count       *int       `json:"count,omitempty"`
	Until       *time.Time `json:"until,omitempty"`
}

// EventRelationResponse for a user/event relation
type EventRelationResponse struct {
	ID          string `json:"id"`
	EventID     string `json:"event_id"`
	UserID      string `json:"user_id"`
	Distinction string `json:"distinction"`
}

// PaginatedEventResponse for event lists
type PaginatedEventResponse struct {
	Events     []EventResponse `json:"events"`
	PageNumber int             `json:"page_number"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
}

// ===================== Mappers =====================

func ToEventResponse(e *entity.Event) *EventResponse {
	resp := &EventResponse{
		ID:                 e.ID.String(),
		CalendarID:         e.CalendarID.String(),
		CreatorID:          e.CreatorID.String(),
		Title:              e.Title,
		Start:              e.Start,
		End:                e.End,
		EndRecurringPeriod: e.EndRecurringPeriod,
		CreatedAt:          e.CreatedAt,
	}
	if e.Description != nil {
		resp.Description = *e.Description
	}
	if e.RuleID != nil {
		resp.RuleID = e.RuleID.String()
	}
	return resp
}

func ToRuleResponse(r *entity.Rule) *RuleResponse {
	resp := &RuleResponse{
		ID:        r.ID.String(),
		Name:      r.Name,
		Frequency: string(r.Frequency),
		Interval:  r.Interval,
		Count:     r.Count,
		Until:     r.Until,
	}
	if r.Description != nil {
		resp.Description = *r.Description
	}
	return resp
}

func ToEventRelationResponse(r *entity.EventRelation) *EventRelationResponse {
	return &EventRelationResponse{
		ID:          r.ID.String(),
		EventID:     r.EventID.String(),
		UserID:      r.UserID.String(),
		Distinction: r.Distinction,
	}
}
