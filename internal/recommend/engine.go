// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/hunian/internal/logging"
	"github.com/tomtom215/hunian/internal/metrics"
)

var (
	// ErrNoStrategies is returned when Recommend is called before any
	// strategy was registered.
	ErrNoStrategies = errors.New("recommend: no strategies registered")

	// ErrStrategyPanic wraps a panic recovered from a strategy.
	ErrStrategyPanic = errors.New("recommend: strategy panicked")
)

// Strategy produces candidates for a request. Strategies must not retain the
// request or mutate its seen set.
type Strategy interface {
	// Name is the strategy tag reported in responses and metrics.
	Name() string

	// Applies reports whether the request carries what the strategy needs.
	Applies(req *Request) bool

	// Candidates returns ranked candidates. An empty slice lets the cascade
	// move on.
	Candidates(ctx context.Context, req *Request) ([]Candidate, error)
}

// funcStrategy adapts plain functions to Strategy.
type funcStrategy struct {
	name    string
	applies func(*Request) bool
	fn      func(context.Context, *Request) ([]Candidate, error)
}

// NewFuncStrategy builds a Strategy from functions. A nil applies always applies.
func NewFuncStrategy(name string, applies func(*Request) bool, fn func(context.Context, *Request) ([]Candidate, error)) Strategy {
	return &funcStrategy{name: name, applies: applies, fn: fn}
}

func (s *funcStrategy) Name() string { return s.name }

func (s *funcStrategy) Applies(req *Request) bool {
	return s.applies == nil || s.applies(req)
}

func (s *funcStrategy) Candidates(ctx context.Context, req *Request) ([]Candidate, error) {
	return s.fn(ctx, req)
}

// Engine runs the strategy cascade. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	strategies []Strategy
	mu         sync.RWMutex

	aggregator *Aggregator

	now func() time.Time
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, dp DataProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if dp == nil {
		return nil, errors.New("recommend: data provider is required")
	}

	logger = logger.With().Str("component", "recommend").Logger()

	return &Engine{
		config:     cfg,
		logger:     logger,
		strategies: make([]Strategy, 0, 3),
		aggregator: NewAggregator(dp, cfg.Limits.SeenInteractions, logger),
		now:        time.Now,
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// SetClock replaces the clock used for time windows.
func (e *Engine) SetClock(now func() time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
}

// RegisterStrategy appends a strategy to the cascade. The last registered
// strategy is terminal: its errors are returned instead of skipped.
func (e *Engine) RegisterStrategy(s Strategy) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.strategies = append(e.strategies, s)
	e.logger.Info().
		Str("strategy", s.Name()).
		Int("position", len(e.strategies)).
		Msg("registered strategy")
}

// RegisterStrategies appends strategies in order.
func (e *Engine) RegisterStrategies(strategies ...Strategy) {
	for _, s := range strategies {
		e.RegisterStrategy(s)
	}
}

// Strategies returns the registered strategy names in cascade order.
func (e *Engine) Strategies() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, len(e.strategies))
	for i, s := range e.strategies {
		names[i] = s.Name()
	}
	return names
}

// Recommend runs the cascade and returns the first non-empty result.
// If every strategy comes back empty, the response is an empty list tagged
// with the last strategy tried.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	e.mu.RLock()
	strategies := make([]Strategy, len(e.strategies))
	copy(strategies, e.strategies)
	now := e.now
	e.mu.RUnlock()

	if len(strategies) == 0 {
		return nil, ErrNoStrategies
	}

	req = e.prepareRequest(ctx, req, now)
	logger := e.requestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	req.Seen = e.aggregator.SeenSet(ctx, req.UserID)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	lastTried := strategies[len(strategies)-1].Name()
	for i, s := range strategies {
		name := s.Name()
		terminal := i == len(strategies)-1

		if !s.Applies(&req) {
			metrics.RecordStrategyOutcome(name, metrics.OutcomeSkipped, 0)
			continue
		}
		lastTried = name

		strategyStart := time.Now()
		candidates, err := runStrategy(ctx, s, &req)
		elapsed := time.Since(strategyStart)

		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.RecordStrategyOutcome(name, metrics.OutcomeError, elapsed)
			return nil, fmt.Errorf("recommend: %s: %w", name, ctxErr)
		}

		if err != nil {
			metrics.RecordStrategyOutcome(name, metrics.OutcomeError, elapsed)
			if terminal {
				logger.Error().Err(err).Str("strategy", name).Msg("terminal strategy failed")
				return nil, fmt.Errorf("strategy %s: %w", name, err)
			}
			logger.Warn().Err(err).Str("strategy", name).Msg("strategy failed, trying next")
			continue
		}

		candidates = e.enforce(candidates, &req, name)
		if len(candidates) == 0 {
			metrics.RecordStrategyOutcome(name, metrics.OutcomeEmpty, elapsed)
			logger.Debug().Str("strategy", name).Msg("strategy returned no candidates")
			continue
		}

		metrics.RecordStrategyOutcome(name, metrics.OutcomeHit, elapsed)
		return e.respond(req, name, candidates, start, logger), nil
	}

	return e.respond(req, lastTried, []Candidate{}, start, logger), nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(ctx context.Context, req Request, now func() time.Time) Request {
	req.K = e.config.ClampK(req.K)
	if req.Now.IsZero() {
		req.Now = now()
	}
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	req.Seen = nil
	return req
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) requestLogger(req Request) zerolog.Logger {
	logCtx := e.logger.With().
		Str("request_id", req.RequestID).
		Int("k", req.K)
	if req.UserID != "" {
		logCtx = logCtx.Str("user_id", req.UserID)
	}
	if req.SessionID != "" {
		logCtx = logCtx.Str("session_id", req.SessionID)
	}
	if req.CurrentFilterID != "" {
		logCtx = logCtx.Str("filter_id", req.CurrentFilterID)
	}
	return logCtx.Logger()
}

// runStrategy is the per-strategy error boundary.
func runStrategy(ctx context.Context, s Strategy, req *Request) (candidates []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			candidates = nil
			err = fmt.Errorf("%w: %s: %v", ErrStrategyPanic, s.Name(), r)
		}
	}()
	return s.Candidates(ctx, req)
}

// enforce drops seen, unapproved and duplicate properties and caps the list at K.
func (e *Engine) enforce(candidates []Candidate, req *Request, source string) []Candidate {
	if len(candidates) == 0 {
		return candidates
	}

	out := make([]Candidate, 0, min(len(candidates), req.K))
	emitted := make(map[string]struct{}, len(candidates))
	for i := range candidates {
		c := candidates[i]
		id := c.Property.ID
		if id == "" || req.Seen.Has(id) || !c.Property.Approved() {
			continue
		}
		if _, dup := emitted[id]; dup {
			continue
		}
		emitted[id] = struct{}{}
		if c.Source == "" {
			c.Source = source
		}
		out = append(out, c)
		if len(out) == req.K {
			break
		}
	}
	return out
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) respond(req Request, strategy string, candidates []Candidate, start time.Time, logger zerolog.Logger) *Response {
	metrics.RecordRecommendation(strategy, len(candidates))

	logger.Debug().
		Str("strategy", strategy).
		Int("seen", req.Seen.Len()).
		Int("returned", len(candidates)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return &Response{
		Recommendations: candidates,
		Strategy:        strategy,
		RequestID:       req.RequestID,
	}
}
