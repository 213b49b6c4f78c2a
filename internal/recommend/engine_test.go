// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestEngine(t *testing.T, dp DataProvider, strategies ...Strategy) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), dp, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	e.RegisterStrategies(strategies...)
	return e
}

func fixed(ids ...string) func(context.Context, *Request) ([]Candidate, error) {
	return func(context.Context, *Request) ([]Candidate, error) {
		out := make([]Candidate, len(ids))
		for i, id := range ids {
			out[i] = candidate(id, float64(len(ids)-i))
		}
		return out, nil
	}
}

func failing(err error) func(context.Context, *Request) ([]Candidate, error) {
	return func(context.Context, *Request) ([]Candidate, error) {
		return nil, err
	}
}

func needsUser(r *Request) bool   { return r.UserID != "" }
func needsFilter(r *Request) bool { return r.CurrentFilterID != "" }

func TestNewEngine(t *testing.T) {
	if _, err := NewEngine(nil, &fakeProvider{}, zerolog.Nop()); err != nil {
		t.Errorf("nil config should fall back to defaults, got %v", err)
	}

	bad := DefaultConfig()
	bad.Limits.DefaultK = 0
	if _, err := NewEngine(bad, &fakeProvider{}, zerolog.Nop()); err == nil {
		t.Error("expected error for invalid config")
	}

	if _, err := NewEngine(DefaultConfig(), nil, zerolog.Nop()); err == nil {
		t.Error("expected error for nil data provider")
	}
}

func TestEngine_NoStrategies(t *testing.T) {
	e := newTestEngine(t, &fakeProvider{})
	if _, err := e.Recommend(context.Background(), Request{}); !errors.Is(err, ErrNoStrategies) {
		t.Errorf("Recommend() error = %v, want ErrNoStrategies", err)
	}
}

func TestEngine_Cascade(t *testing.T) {
	storeDown := errors.New("store unavailable")

	tests := []struct {
		name         string
		strategies   []Strategy
		req          Request
		wantStrategy string
		wantIDs      []string
		wantErr      bool
	}{
		{
			name: "user id enters at interaction",
			strategies: []Strategy{
				NewFuncStrategy(StrategyInteraction, needsUser, fixed("a")),
				NewFuncStrategy(StrategyFilterSequence, needsFilter, fixed("b")),
				NewFuncStrategy(StrategyTrending, nil, fixed("c")),
			},
			req:          Request{UserID: "u1", CurrentFilterID: "f1"},
			wantStrategy: StrategyInteraction,
			wantIDs:      []string{"a"},
		},
		{
			name: "filter only enters at filter_sequence",
			strategies: []Strategy{
				NewFuncStrategy(StrategyInteraction, needsUser, fixed("a")),
				NewFuncStrategy(StrategyFilterSequence, needsFilter, fixed("b")),
				NewFuncStrategy(StrategyTrending, nil, fixed("c")),
			},
			req:          Request{CurrentFilterID: "f1"},
			wantStrategy: StrategyFilterSequence,
			wantIDs:      []string{"b"},
		},
		{
			name: "no identifiers enters at trending",
			strategies: []Strategy{
				NewFuncStrategy(StrategyInteraction, needsUser, fixed("a")),
				NewFuncStrategy(StrategyFilterSequence, needsFilter, fixed("b")),
				NewFuncStrategy(StrategyTrending, nil, fixed("c")),
			},
			wantStrategy: StrategyTrending,
			wantIDs:      []string{"c"},
		},
		{
			name: "empty result advances",
			strategies: []Strategy{
				NewFuncStrategy(StrategyInteraction, needsUser, fixed()),
				NewFuncStrategy(StrategyFilterSequence, needsFilter, fixed("b")),
				NewFuncStrategy(StrategyTrending, nil, fixed("c")),
			},
			req:          Request{UserID: "u1", CurrentFilterID: "f1"},
			wantStrategy: StrategyFilterSequence,
			wantIDs:      []string{"b"},
		},
		{
			name: "non-terminal error advances",
			strategies: []Strategy{
				NewFuncStrategy(StrategyInteraction, needsUser, failing(storeDown)),
				NewFuncStrategy(StrategyFilterSequence, needsFilter, failing(storeDown)),
				NewFuncStrategy(StrategyTrending, nil, fixed("c")),
			},
			req:          Request{UserID: "u1", CurrentFilterID: "f1"},
			wantStrategy: StrategyTrending,
			wantIDs:      []string{"c"},
		},
		{
			name: "non-terminal panic advances",
			strategies: []Strategy{
				NewFuncStrategy(StrategyInteraction, needsUser, func(context.Context, *Request) ([]Candidate, error) {
					panic("nil map")
				}),
				NewFuncStrategy(StrategyTrending, nil, fixed("c")),
			},
			req:          Request{UserID: "u1"},
			wantStrategy: StrategyTrending,
			wantIDs:      []string{"c"},
		},
		{
			name: "terminal error is returned",
			strategies: []Strategy{
				NewFuncStrategy(StrategyInteraction, needsUser, fixed()),
				NewFuncStrategy(StrategyTrending, nil, failing(storeDown)),
			},
			req:     Request{UserID: "u1"},
			wantErr: true,
		},
		{
			name: "all empty returns empty list tagged with last strategy",
			strategies: []Strategy{
				NewFuncStrategy(StrategyInteraction, needsUser, fixed()),
				NewFuncStrategy(StrategyFilterSequence, needsFilter, fixed()),
				NewFuncStrategy(StrategyTrending, nil, fixed()),
			},
			req:          Request{UserID: "u1", CurrentFilterID: "f1"},
			wantStrategy: StrategyTrending,
			wantIDs:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, &fakeProvider{}, tt.strategies...)

			resp, err := e.Recommend(context.Background(), tt.req)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Recommend() expected error, got %+v", resp)
				}
				if !errors.Is(err, storeDown) {
					t.Errorf("error %v should wrap the store error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if resp.Strategy != tt.wantStrategy {
				t.Errorf("Strategy = %q, want %q", resp.Strategy, tt.wantStrategy)
			}
			assertIDs(t, resp.Recommendations, tt.wantIDs)
			if resp.Recommendations == nil {
				t.Error("Recommendations must be non-nil")
			}
		})
	}
}

func TestEngine_PanicIsWrapped(t *testing.T) {
	e := newTestEngine(t, &fakeProvider{},
		NewFuncStrategy(StrategyTrending, nil, func(context.Context, *Request) ([]Candidate, error) {
			panic("boom")
		}),
	)

	_, err := e.Recommend(context.Background(), Request{})
	if !errors.Is(err, ErrStrategyPanic) {
		t.Errorf("Recommend() error = %v, want ErrStrategyPanic", err)
	}
}

func TestEngine_EnforcesInvariants(t *testing.T) {
	dp := &fakeProvider{
		interactions: map[string][]Interaction{"u1": {{PropertyID: "seen-view"}}},
		favorites:    map[string][]Favorite{"u1": {{PropertyID: "seen-fav"}}},
	}
	pending := candidate("pending", 9)
	pending.Property.Status = "pending"

	e := newTestEngine(t, dp, NewFuncStrategy(StrategyTrending, nil,
		func(context.Context, *Request) ([]Candidate, error) {
			return []Candidate{
				candidate("seen-view", 10),
				pending,
				candidate("a", 8),
				candidate("seen-fav", 7),
				candidate("a", 6),
				candidate("b", 5),
				candidate("c", 4),
			}, nil
		}))

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1", K: 2})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	assertIDs(t, resp.Recommendations, []string{"a", "b"})
	for _, c := range resp.Recommendations {
		if c.Source != StrategyTrending {
			t.Errorf("candidate %s Source = %q, want %q", c.Property.ID, c.Source, StrategyTrending)
		}
	}
}

func TestEngine_SeenSetReachesStrategies(t *testing.T) {
	dp := &fakeProvider{
		interactions: map[string][]Interaction{"u1": {{PropertyID: "p1"}, {PropertyID: "p2"}}},
		favorites:    map[string][]Favorite{"u1": {{PropertyID: "p3"}}},
	}
	var got SeenSet
	e := newTestEngine(t, dp, NewFuncStrategy(StrategyTrending, nil,
		func(_ context.Context, req *Request) ([]Candidate, error) {
			got = req.Seen
			return nil, nil
		}))

	if _, err := e.Recommend(context.Background(), Request{UserID: "u1", Seen: SeenSet{"forged": {}}}); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got.Len() != 3 || got.Has("forged") {
		t.Errorf("strategy saw seen set %v, want {p1 p2 p3}", got)
	}
}

func TestEngine_SeenSetFailureDegrades(t *testing.T) {
	dp := &fakeProvider{interactionsErr: errors.New("connection refused")}
	e := newTestEngine(t, dp,
		NewFuncStrategy(StrategyInteraction, needsUser, func(_ context.Context, req *Request) ([]Candidate, error) {
			if req.Seen.Len() != 0 {
				t.Errorf("seen set should be empty after failure, got %v", req.Seen)
			}
			return nil, nil
		}),
		NewFuncStrategy(StrategyTrending, nil, fixed("t1")),
	)

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Strategy != StrategyTrending {
		t.Errorf("Strategy = %q, want trending", resp.Strategy)
	}
}

func TestEngine_Cancellation(t *testing.T) {
	t.Run("canceled before strategies", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		e := newTestEngine(t, &fakeProvider{}, NewFuncStrategy(StrategyTrending, nil,
			func(context.Context, *Request) ([]Candidate, error) {
				called = true
				return nil, nil
			}))

		_, err := e.Recommend(ctx, Request{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Recommend() error = %v, want context.Canceled", err)
		}
		if called {
			t.Error("strategy should not run after cancellation")
		}
	})

	t.Run("deadline during seen set", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		e := newTestEngine(t, &fakeProvider{block: true}, NewFuncStrategy(StrategyTrending, nil, fixed("t1")))

		resp, err := e.Recommend(ctx, Request{UserID: "u1"})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Recommend() error = %v, want DeadlineExceeded", err)
		}
		if resp != nil {
			t.Errorf("expected no partial response, got %+v", resp)
		}
	})

	t.Run("canceled inside non-terminal strategy", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		e := newTestEngine(t, &fakeProvider{},
			NewFuncStrategy(StrategyInteraction, needsUser, func(ctx context.Context, _ *Request) ([]Candidate, error) {
				cancel()
				return nil, ctx.Err()
			}),
			NewFuncStrategy(StrategyTrending, nil, fixed("t1")),
		)

		if _, err := e.Recommend(ctx, Request{UserID: "u1"}); !errors.Is(err, context.Canceled) {
			t.Errorf("Recommend() error = %v, want context.Canceled", err)
		}
	})
}

func TestEngine_RequestDefaults(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		k     int
		wantK int
	}{
		{"default k", 0, DefaultK},
		{"negative k", -3, DefaultK},
		{"explicit k", 3, 3},
		{"k above max", 500, DefaultMaxK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen Request
			e := newTestEngine(t, &fakeProvider{}, NewFuncStrategy(StrategyTrending, nil,
				func(_ context.Context, req *Request) ([]Candidate, error) {
					seen = *req
					return nil, nil
				}))
			e.SetClock(func() time.Time { return clock })

			resp, err := e.Recommend(context.Background(), Request{K: tt.k})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if seen.K != tt.wantK {
				t.Errorf("K = %d, want %d", seen.K, tt.wantK)
			}
			if !seen.Now.Equal(clock) {
				t.Errorf("Now = %v, want %v", seen.Now, clock)
			}
			if seen.RequestID == "" || resp.RequestID != seen.RequestID {
				t.Errorf("request id not propagated: %q vs %q", seen.RequestID, resp.RequestID)
			}
		})
	}
}

func TestEngine_Strategies(t *testing.T) {
	e := newTestEngine(t, &fakeProvider{},
		NewFuncStrategy(StrategyInteraction, needsUser, fixed()),
		NewFuncStrategy(StrategyTrending, nil, fixed()),
	)

	got := e.Strategies()
	if len(got) != 2 || got[0] != StrategyInteraction || got[1] != StrategyTrending {
		t.Errorf("Strategies() = %v", got)
	}
}

func assertIDs(t *testing.T, got []Candidate, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d candidates %v, want %v", len(got), ids(got), want)
	}
	for i := range want {
		if got[i].Property.ID != want[i] {
			t.Errorf("candidate[%d] = %s, want %s (all: %v)", i, got[i].Property.ID, want[i], ids(got))
		}
	}
}

func ids(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Property.ID
	}
	return out
}
