// Package planner runs a production plan request end to end: validation,
// ranking, allocation, reporting and event publication.
package planner

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/powerplan/core/analysis"
	"github.com/kilianp07/powerplan/core/dispatch"
	"github.com/kilianp07/powerplan/core/events"
	"github.com/kilianp07/powerplan/core/logger"
	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/core/ranking"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

// Rejection reasons attached to PlanRejected events.
const (
	ReasonInvalidPayload      = "invalid_payload"
	ReasonUnsupportedCategory = "unsupported_category"
	ReasonCanceled            = "canceled"
)

// Result is the outcome of one request.
type Result struct {
	PlanID  string
	Plan    []model.PlanEntry
	Plants  []model.RankedPlant
	Regimes []dispatch.RegimeResult
	Summary analysis.Summary
}

// Planner computes production plans. It is safe for concurrent use.
type Planner struct {
	ranker *ranking.Orchestrator
	bus    eventbus.EventBus
	log    logger.Logger
	now    func() time.Time
	newID  func() string
}

// Option customizes a Planner.
type Option func(*Planner)

// WithClock overrides the time source used to stamp plans.
func WithClock(now func() time.Time) Option { return func(p *Planner) { p.now = now } }

// WithIDGenerator overrides the plan identifier generator.
func WithIDGenerator(f func() string) Option { return func(p *Planner) { p.newID = f } }

// New creates a Planner publishing its events on bus. Both bus and log may be nil.
func New(bus eventbus.EventBus, log logger.Logger, opts ...Option) *Planner {
	if log == nil {
		log = logger.Nop{}
	}
	p := &Planner{
		ranker: ranking.NewOrchestrator(),
		bus:    bus,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Plan validates payload and computes its production plan. The returned
// error wraps model.ErrInvalidPayload or model.ErrUnsupportedCategory when
// the request itself is at fault.
func (p *Planner) Plan(ctx context.Context, payload model.Payload) (Result, error) {
	if err := ctx.Err(); err != nil {
		p.reject(ReasonCanceled, err)
		return Result{}, err
	}
	if err := payload.Validate(); err != nil {
		p.reject(reasonFor(err), err)
		return Result{}, err
	}
	ranked, err := p.ranker.RankAll(payload.PowerPlants, model.ParseFuels(payload.Fuels))
	if err != nil {
		p.reject(reasonFor(err), err)
		return Result{}, err
	}

	start := time.Now()
	regimes := dispatch.AssembleRegimes(ranked, payload.Load)
	dispatch.ObservePlan(regimes, payload.Load, time.Since(start))

	var plants []model.RankedPlant
	for _, r := range regimes {
		p.log.Debugw("regime dispatched", map[string]any{
			"category":   r.Category.String(),
			"load":       r.Load,
			"dispatched": r.Dispatched,
			"plants":     len(r.Plants),
		})
		plants = append(plants, r.Plants...)
	}

	res := Result{
		PlanID:  p.newID(),
		Plants:  plants,
		Regimes: regimes,
		Summary: analysis.Summarize(plants, payload.Load),
	}
	res.Plan = make([]model.PlanEntry, len(plants))
	for i, pl := range plants {
		res.Plan[i] = model.PlanEntry{Name: pl.Name, Power: pl.DispatchedPower}
	}

	s := res.Summary
	p.log.Infof("plan %s: expected load %d, dispatched %d", res.PlanID, s.RequestedPower, s.DispatchedPower)
	if !s.Balanced {
		p.log.Warnf("plan %s is off by %d (requested %d, dispatched %d)", res.PlanID, s.Imbalance, s.RequestedPower, s.DispatchedPower)
	}
	if len(s.Violations) > 0 {
		p.log.Errorf("plan %s violates plant limits: %v", res.PlanID, s.Violations)
	}

	if p.bus != nil {
		p.bus.Publish(events.PlanComputed{
			PlanID:  res.PlanID,
			Time:    p.now(),
			Payload: payload,
			Plants:  plants,
			Summary: res.Summary,
		})
	}
	return res, nil
}

func (p *Planner) reject(reason string, err error) {
	p.log.Warnf("request rejected (%s): %v", reason, err)
	if p.bus != nil {
		p.bus.Publish(events.PlanRejected{Reason: reason, Err: err, Time: p.now()})
	}
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, model.ErrUnsupportedCategory):
		return ReasonUnsupportedCategory
	case errors.Is(err, model.ErrInvalidPayload):
		return ReasonInvalidPayload
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCanceled
	default:
		return "internal"
	}
}
