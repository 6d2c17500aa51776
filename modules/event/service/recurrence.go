package service

import (
	"fmt"
	"time"

	"appointments-api/modules/event/entity"

	"github.com/teambition/rrule-go"
)

var frequencies = map[entity.Frequency]rrule.Frequency{
	entity.FrequencyDaily:   rrule.DAILY,
	entity.FrequencyWeekly:  rrule.WEEKLY,
	entity.FrequencyMonthly: rrule.MONTHLY,
	entity.FrequencyYearly:  rrule.YEARLY,
}

// CandidateStarts produces the ascending original start times of an event
// inside [rangeStart, rangeEnd). Without a rule the sequence is the
// event's own start, iff it falls in the window. With a rule the sequence
// follows the rule from the event's start, additionally truncated at the
// event's end_recurring_period (exclusive) when set. The sequence is
// recomputed per call and holds no state.
func CandidateStarts(event *entity.Event, rule *entity.Rule, rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	if !rangeStart.Before(rangeEnd) {
		return nil, nil
	}

	limit := rangeEnd
	if event.EndRecurringPeriod != nil && event.EndRecurringPeriod.Before(limit) {
		limit = *event.EndRecurringPeriod
	}

	if rule == nil {
		if !event.Start.Before(rangeStart) && event.Start.Before(rangeEnd) {
			return []time.Time{event.Start}, nil
		}
		return nil, nil
	}

	r, err := buildRRule(event, rule)
	if err != nil {
		return nil, err
	}

	// Between is inclusive on both ends; the window is half-open, so
	// anything at or past the limit is filtered out below.
	candidates := r.Between(rangeStart, rangeEnd, true)

	out := make([]time.Time, 0, len(candidates))
	for _, t := range candidates {
		if t.Before(rangeStart) || !t.Before(limit) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// IsCandidateStart reports whether date is a start time the event's rule
// generates (or the event's own start for rule-less events).
func IsCandidateStart(event *entity.Event, rule *entity.Rule, date time.Time) (bool, error) {
	if rule == nil {
		return event.Start.Equal(date), nil
	}

	if event.EndRecurringPeriod != nil && !date.Before(*event.EndRecurringPeriod) {
		return false, nil
	}

	r, err := buildRRule(event, rule)
	if err != nil {
		return false, err
	}

	for _, t := range r.Between(date, date, true) {
		if t.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func buildRRule(event *entity.Event, rule *entity.Rule) (*rrule.RRule, error) {
	freq, ok := frequencies[rule.Frequency]
	if !ok {
		return nil, fmt.Errorf("unsupported frequency %q", rule.Frequency)
	}

	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	opt := rrule.ROption{
		Freq:     freq,
		Interval: interval,
		Dtstart:  event.Start,
	}
	if rule.Count != nil {
		opt.Count = *rule.Count
	}
	if rule.Until != nil {
		opt.Until = *rule.Until
	}

	return rrule.NewRRule(opt)
}
