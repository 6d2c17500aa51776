package dto

import (
	"time"

	occdto "appointments-api/modules/occurrence/dto"
)

// ClassifiedOccurrence pairs an occurrence with its status relative to
// the request time: "cancelled", "ended", "started" or "upcoming".
type ClassifiedOccurrence struct {
	Occurrence occdto.OccurrenceResponse `json:"occurrence"`
	Status     string                    `json:"status"`
}

// PeriodResponse describes one calendar period and its occurrences
type PeriodResponse struct {
	Kind        string                 `json:"kind"`
	Name        string                 `json:"name"`
	Start       time.Time              `json:"start"`
	End         time.Time              `json:"end"`
	Occurrences []ClassifiedOccurrence `json:"occurrences"`

	// Starts of the adjacent periods, for paging
	NextStart time.Time `json:"next_start"`
	PrevStart time.Time `json:"prev_start"`
}
