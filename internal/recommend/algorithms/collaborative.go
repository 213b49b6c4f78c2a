// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package algorithms

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/hunian/internal/recommend"
)

// ReasonSimilarTaste is attached to every collaborative candidate.
const ReasonSimilarTaste = "users with similar taste also viewed this property"

// Collaborative implements user-overlap collaborative filtering.
//
// Two users are similar when they touched the same properties. For each
// other user the overlap is the number of their touched properties that are
// in the requester's seen set:
//
//	overlap(v) = |touched(v) ∩ seen(u)|
//
// Users with overlap >= MinOverlap are neighbors, ranked by overlap
// descending then user id, and only the top MaxNeighbors are used. Each
// unseen property a neighbor touched is scored as:
//
//	score(p) = Σ overlap(v)                   for neighbors v that interacted with p
//	         + Σ FavoriteWeight × overlap(v)  for neighbors v that favorited p
//
// Candidates are ranked by score descending, then by the most recent
// neighbor touch, then by property id.
type Collaborative struct {
	BaseStrategy

	dp     recommend.DataProvider
	config recommend.CollaborativeConfig
}

// NewCollaborative creates the interaction strategy. Zero config fields take
// the package defaults.
func NewCollaborative(dp recommend.DataProvider, cfg recommend.CollaborativeConfig) *Collaborative {
	if cfg.InteractionWindow <= 0 {
		cfg.InteractionWindow = recommend.DefaultNeighborWindow
	}
	if cfg.MinOverlap <= 0 {
		cfg.MinOverlap = recommend.DefaultMinOverlap
	}
	if cfg.MaxNeighbors <= 0 {
		cfg.MaxNeighbors = recommend.DefaultMaxNeighbors
	}
	if cfg.FavoriteWeight <= 0 {
		cfg.FavoriteWeight = recommend.DefaultFavoriteWeight
	}

	return &Collaborative{
		BaseStrategy: NewBaseStrategy(recommend.StrategyInteraction),
		dp:           dp,
		config:       cfg,
	}
}

// Applies requires a user id.
func (c *Collaborative) Applies(req *recommend.Request) bool {
	return req.UserID != ""
}

// userProfile is what one other user touched, with the latest touch time per property.
type userProfile struct {
	userID    string
	touched   map[string]time.Time
	favorited map[string]time.Time
	overlap   int
}

// neighbor is a similar user.
type neighbor struct {
	profile *userProfile
	overlap int
}

// scoredProperty accumulates a candidate's score.
type scoredProperty struct {
	id        string
	score     float64
	lastTouch time.Time
}

// Candidates returns collaborative candidates for the requester.
func (c *Collaborative) Candidates(ctx context.Context, req *recommend.Request) ([]recommend.Candidate, error) {
	if req.Seen.Len() == 0 {
		return nil, nil
	}
	k := wantK(req)

	interactions, favorites, err := c.fetchActivity(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	profiles := buildProfiles(interactions, favorites, req.UserID)
	neighbors := c.selectNeighbors(profiles, req.Seen)
	if len(neighbors) == 0 {
		return nil, nil
	}

	ranked := c.scoreCandidates(neighbors, req.Seen)
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	ids := make([]string, len(ranked))
	for i := range ranked {
		ids[i] = ranked[i].id
	}
	properties, err := c.dp.GetApprovedProperties(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load candidate properties: %w", err)
	}

	candidates := make([]recommend.Candidate, 0, len(ranked))
	for _, sp := range ranked {
		prop, ok := properties[sp.id]
		if !ok || !prop.Approved() {
			continue
		}
		candidates = append(candidates, recommend.Candidate{
			Property: prop,
			Score:    sp.score,
			Reason:   ReasonSimilarTaste,
			Icon:     recommend.IconUsers,
			Source:   c.Name(),
		})
	}
	return candidates, nil
}

// fetchActivity reads other users' interactions and favorites concurrently.
func (c *Collaborative) fetchActivity(ctx context.Context, userID string) ([]recommend.Interaction, []recommend.Favorite, error) {
	var (
		interactions []recommend.Interaction
		favorites    []recommend.Favorite
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := c.dp.GetNeighborInteractions(gctx, userID, recommend.NeighborInteractionTypes, c.config.InteractionWindow)
		if err != nil {
			return fmt.Errorf("neighbor interactions: %w", err)
		}
		interactions = capInteractions(rows, c.config.InteractionWindow)
		return nil
	})
	g.Go(func() error {
		rows, err := c.dp.GetNeighborFavorites(gctx, userID)
		if err != nil {
			return fmt.Errorf("neighbor favorites: %w", err)
		}
		favorites = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return interactions, favorites, nil
}

// buildProfiles groups activity by user. Rows from the requester are ignored.
//
//nolint:gocritic // rangeValCopy: rows are small value structs
func buildProfiles(interactions []recommend.Interaction, favorites []recommend.Favorite, requester string) map[string]*userProfile {
	profiles := make(map[string]*userProfile)
	profile := func(userID string) *userProfile {
		p, ok := profiles[userID]
		if !ok {
			p = &userProfile{
				userID:    userID,
				touched:   make(map[string]time.Time),
				favorited: make(map[string]time.Time),
			}
			profiles[userID] = p
		}
		return p
	}

	for _, in := range interactions {
		if in.UserID == "" || in.UserID == requester || in.PropertyID == "" {
			continue
		}
		touch(profile(in.UserID).touched, in.PropertyID, in.Timestamp)
	}
	for _, fav := range favorites {
		if fav.UserID == "" || fav.UserID == requester || fav.PropertyID == "" {
			continue
		}
		touch(profile(fav.UserID).favorited, fav.PropertyID, fav.CreatedAt)
	}
	return profiles
}

func touch(m map[string]time.Time, id string, at time.Time) {
	if prev, ok := m[id]; !ok || at.After(prev) {
		m[id] = at
	}
}

// selectNeighbors keeps users whose overlap meets the threshold, most similar first.
func (c *Collaborative) selectNeighbors(profiles map[string]*userProfile, seen recommend.SeenSet) []neighbor {
	neighbors := make([]neighbor, 0, len(profiles))
	for _, p := range profiles {
		p.overlap = overlap(p, seen)
		if p.overlap >= c.config.MinOverlap {
			neighbors = append(neighbors, neighbor{profile: p, overlap: p.overlap})
		}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].overlap != neighbors[j].overlap {
			return neighbors[i].overlap > neighbors[j].overlap
		}
		return neighbors[i].profile.userID < neighbors[j].profile.userID
	})

	if len(neighbors) > c.config.MaxNeighbors {
		neighbors = neighbors[:c.config.MaxNeighbors]
	}
	return neighbors
}

// overlap counts distinct properties touched or favorited by p that are in seen.
func overlap(p *userProfile, seen recommend.SeenSet) int {
	n := 0
	for id := range p.touched {
		if seen.Has(id) {
			n++
		}
	}
	for id := range p.favorited {
		if _, counted := p.touched[id]; !counted && seen.Has(id) {
			n++
		}
	}
	return n
}

// scoreCandidates accumulates neighbor scores over unseen properties and ranks them.
func (c *Collaborative) scoreCandidates(neighbors []neighbor, seen recommend.SeenSet) []scoredProperty {
	scores := make(map[string]*scoredProperty)
	add := func(id string, weight float64, at time.Time) {
		if seen.Has(id) {
			return
		}
		sp, ok := scores[id]
		if !ok {
			sp = &scoredProperty{id: id}
			scores[id] = sp
		}
		sp.score += weight
		if at.After(sp.lastTouch) {
			sp.lastTouch = at
		}
	}

	for _, n := range neighbors {
		w := float64(n.overlap)
		for id, at := range n.profile.touched {
			add(id, w, at)
		}
		for id, at := range n.profile.favorited {
			add(id, c.config.FavoriteWeight*w, at)
		}
	}

	ranked := make([]scoredProperty, 0, len(scores))
	for _, sp := range scores {
		ranked = append(ranked, *sp)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if !a.lastTouch.Equal(b.lastTouch) {
			return a.lastTouch.After(b.lastTouch)
		}
		return a.id < b.id
	})
	return ranked
}
