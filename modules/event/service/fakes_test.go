package service

import (
	"context"
	"sort"
	"time"

	"appointments-api/core/params"
	"appointments-api/modules/event/entity"
	occentity "appointments-api/modules/occurrence/entity"

	"github.com/google/uuid"
)

// fakeEventRepo is an in-memory event repository for service tests
type fakeEventRepo struct {
	events    map[uuid.UUID]*entity.Event
	rules     map[uuid.UUID]*entity.Rule
	relations []entity.EventRelation
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: make(map[uuid.UUID]*entity.Event),
		rules:  make(map[uuid.UUID]*entity.Rule),
	}
}

func (f *fakeEventRepo) addRule(rule *entity.Rule) *entity.Rule {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	f.rules[rule.ID] = rule
	return rule
}

func (f *fakeEventRepo) addEvent(event *entity.Event) *entity.Event {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	f.events[event.ID] = event
	return event
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, event *entity.Event) (*entity.Event, error) {
	cp := *event
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	f.events[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeEventRepo) GetEventByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	return f.events[id], nil
}

func (f *fakeEventRepo) GetEventsByCalendarID(_ context.Context, calendarID uuid.UUID) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range f.events {
		if e.CalendarID == calendarID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeEventRepo) ListEvents(_ context.Context, calendarID uuid.UUID, _ params.QueryParams, date *time.Time) ([]entity.Event, int, error) {
	var out []entity.Event
	for _, e := range f.events {
		if e.CalendarID != calendarID {
			continue
		}
		if date != nil && (e.Start.After(*date) || e.End.Before(*date)) {
			continue
		}
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) UpdateEvent(_ context.Context, event *entity.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) DeleteEvent(_ context.Context, id uuid.UUID) error {
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) CreateRule(_ context.Context, rule *entity.Rule) (*entity.Rule, error) {
	cp := *rule
	cp.ID = uuid.New()
	f.rules[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeEventRepo) GetRuleByID(_ context.Context, id uuid.UUID) (*entity.Rule, error) {
	return f.rules[id], nil
}

func (f *fakeEventRepo) ListRules(_ context.Context) ([]entity.Rule, error) {
	var out []entity.Rule
	for _, r := range f.rules {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeEventRepo) CreateRelation(_ context.Context, relation *entity.EventRelation) (*entity.EventRelation, error) {
	cp := *relation
	cp.ID = uuid.New()
	f.relations = append(f.relations, cp)
	return &cp, nil
}

func (f *fakeEventRepo) GetRelationsByDistinction(_ context.Context, eventID uuid.UUID, distinction string) ([]entity.EventRelation, error) {
	var out []entity.EventRelation
	for _, r := range f.relations {
		if r.EventID == eventID && r.Distinction == distinction {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeOccurrenceRepo keys persisted rows by (event, original start)
type fakeOccurrenceRepo struct {
	rows map[uuid.UUID]map[int64]*occentity.Occurrence
}

func newFakeOccurrenceRepo() *fakeOccurrenceRepo {
	return &fakeOccurrenceRepo{rows: make(map[uuid.UUID]map[int64]*occentity.Occurrence)}
}

func (f *fakeOccurrenceRepo) GetByID(_ context.Context, id uuid.UUID) (*occentity.Occurrence, error) {
	for _, byStart := range f.rows {
		for _, occ := range byStart {
			if occ.ID == id {
				cp := *occ
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeOccurrenceRepo) GetByEventAndOriginalStart(_ context.Context, eventID uuid.UUID, originalStart time.Time) (*occentity.Occurrence, error) {
	if occ, ok := f.rows[eventID][originalStart.UnixNano()]; ok {
		cp := *occ
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeOccurrenceRepo) ListByEventBetween(_ context.Context, eventID uuid.UUID, rangeStart, rangeEnd time.Time) ([]occentity.Occurrence, error) {
	var out []occentity.Occurrence
	for _, occ := range f.rows[eventID] {
		if !occ.OriginalStart.Before(rangeStart) && occ.OriginalStart.Before(rangeEnd) {
			out = append(out, *occ)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OriginalStart.Before(out[j].OriginalStart) })
	return out, nil
}

func (f *fakeOccurrenceRepo) GetOrCreate(_ context.Context, occ *occentity.Occurrence) (*occentity.Occurrence, bool, error) {
	byStart, ok := f.rows[occ.EventID]
	if !ok {
		byStart = make(map[int64]*occentity.Occurrence)
		f.rows[occ.EventID] = byStart
	}
	if existing, ok := byStart[occ.OriginalStart.UnixNano()]; ok {
		cp := *existing
		return &cp, false, nil
	}
	cp := *occ
	cp.ID = uuid.New()
	byStart[occ.OriginalStart.UnixNano()] = &cp
	out := cp
	return &out, true, nil
}

func (f *fakeOccurrenceRepo) Update(_ context.Context, occ *occentity.Occurrence) error {
	for _, byStart := range f.rows {
		for key, existing := range byStart {
			if existing.ID == occ.ID {
				cp := *occ
				byStart[key] = &cp
				return nil
			}
		}
	}
	return nil
}
