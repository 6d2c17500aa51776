package dto

import (
	"time"

	"appointments-api/modules/occurrence/entity"
)

// ===================== Request DTOs =====================

// MoveOccurrenceRequest reschedules (and optionally annotates) one
// occurrence; the original slot stays the lookup anchor.
type MoveOccurrenceRequest struct {
	Start       time.Time  `json:"start" validate:"required"`
	End         *time.Time `json:"end"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
}

// ===================== Response DTOs =====================

// OccurrenceResponse for one occurrence, virtual or persisted
type OccurrenceResponse struct {
	// ID is empty while the occurrence is virtual.
	ID            string    `json:"id,omitempty"`
	EventID       string    `json:"event_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	OriginalStart time.Time `json:"original_start"`
	OriginalEnd   time.Time `json:"original_end"`
	Cancelled     bool      `json:"cancelled"`
	Persisted     bool      `json:"persisted"`
	Moved         bool      `json:"moved"`
}

// CancelOccurrenceResponse reports the cancelled occurrence plus the
// configured post-cancel destination, if any.
type CancelOccurrenceResponse struct {
	Occurrence OccurrenceResponse `json:"occurrence"`
	Redirect   string             `json:"redirect,omitempty"`
}

// ===================== Mappers =====================

func ToOccurrenceResponse(o *entity.Occurrence) *OccurrenceResponse {
	resp := &OccurrenceResponse{
		EventID:       o.EventID.String(),
		Start:         o.Start,
		End:           o.End,
		OriginalStart: o.OriginalStart,
		OriginalEnd:   o.OriginalEnd,
		Cancelled:     o.Cancelled,
		Persisted:     o.Persisted(),
		Moved:         o.Moved(),
	}
	if o.Persisted() {
		resp.ID = o.ID.String()
	}
	if o.Title != nil {
		resp.Title = *o.Title
	}
	if o.Description != nil {
		resp.Description = *o.Description
	}
	return resp
}

func ToOccurrenceResponses(occurrences []entity.Occurrence) []OccurrenceResponse {
	out := make([]OccurrenceResponse, 0, len(occurrences))
	for i := range occurrences {
		out = append(out, *ToOccurrenceResponse(&occurrences[i]))
	}
	return out
}
