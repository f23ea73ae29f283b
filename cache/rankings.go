// Package cache memoizes per-round league rankings for one league
// session. Rankings are fetched from the scoring provider exactly once
// per round, batched in a bounded concurrency window, and treated as
// immutable once stored.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/cartola-league/models"
)

// ErrDataUnavailable marks a round whose ranking could not be retrieved
// or came back empty. Consumers must skip such rounds entirely; the
// marker is never a zero-point ranking in disguise.
var ErrDataUnavailable = errors.New("round ranking data unavailable")

// batchWindow bounds concurrent fetches when loading a round range, so
// a full-season load does not burst the upstream API.
const batchWindow = 5

// Fetcher retrieves one round's ranking from the scoring provider.
type Fetcher interface {
	RoundRanking(ctx context.Context, leagueID string, round int) (models.RoundRanking, error)
}

// ProgressFunc receives coarse progress while a range loads: rounds
// processed so far and the total requested.
type ProgressFunc func(processed, total int)

// RankingCache is the per-league-session round ranking cache. Writes are
// append-only (a new round key) or explicit invalidation of one key;
// stored rankings are never partially mutated, which is what lets every
// consumer share them without locking.
type RankingCache struct {
	leagueID string
	fetcher  Fetcher
	logger   *slog.Logger

	mu      sync.RWMutex
	rounds  map[int]models.RoundRanking
	missing map[int]bool
}

func NewRankingCache(leagueID string, fetcher Fetcher, logger *slog.Logger) *RankingCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RankingCache{
		leagueID: leagueID,
		fetcher:  fetcher,
		logger:   logger,
		rounds:   make(map[int]models.RoundRanking),
		missing:  make(map[int]bool),
	}
}

// Get returns the cached ranking for a round, fetching it on first use.
// A round previously marked as missing keeps failing with
// ErrDataUnavailable until Invalidate is called for it.
func (c *RankingCache) Get(ctx context.Context, round int) (models.RoundRanking, error) {
	c.mu.RLock()
	ranking, ok := c.rounds[round]
	miss := c.missing[round]
	c.mu.RUnlock()

	if ok {
		return ranking, nil
	}
	if miss {
		return nil, fmt.Errorf("round %d: %w", round, ErrDataUnavailable)
	}

	return c.fetch(ctx, round)
}

// Peek returns the cached ranking without fetching. The second return is
// false both for unknown rounds and rounds marked missing.
func (c *RankingCache) Peek(round int) (models.RoundRanking, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ranking, ok := c.rounds[round]
	return ranking, ok
}

// LoadRange fetches a contiguous range of rounds, at most batchWindow
// concurrently, reporting progress after each round. A failed or empty
// round stores a missing marker and does not fail the batch; only
// context cancellation aborts the load.
func (c *RankingCache) LoadRange(ctx context.Context, from, to int, progress ProgressFunc) error {
	if from < 1 {
		from = 1
	}
	if to < from {
		return nil
	}

	total := to - from + 1
	var processed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWindow)
	for round := from; round <= to; round++ {
		round := round
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.mu.RLock()
			_, cached := c.rounds[round]
			miss := c.missing[round]
			c.mu.RUnlock()
			if !cached && !miss {
				if _, err := c.fetch(ctx, round); err != nil && ctx.Err() != nil {
					return ctx.Err()
				}
			}
			if progress != nil {
				progress(int(processed.Add(1)), total)
			}
			return nil
		})
	}
	return g.Wait()
}

// Invalidate clears one round so the next Get re-fetches it.
func (c *RankingCache) Invalidate(round int) {
	c.mu.Lock()
	delete(c.rounds, round)
	delete(c.missing, round)
	c.mu.Unlock()
}

// MissingRounds lists the rounds currently marked unavailable, for the
// coarse "partial data" indicator.
func (c *RankingCache) MissingRounds() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rounds := make([]int, 0, len(c.missing))
	for r := range c.missing {
		rounds = append(rounds, r)
	}
	return rounds
}

func (c *RankingCache) fetch(ctx context.Context, round int) (models.RoundRanking, error) {
	ranking, err := c.fetcher.RoundRanking(ctx, c.leagueID, round)
	if err != nil || len(ranking) == 0 {
		if err != nil {
			c.logger.Warn("round ranking fetch failed",
				slog.String("league_id", c.leagueID), slog.Int("round", round), slog.Any("error", err))
		}
		c.mu.Lock()
		// A concurrent fetch may have succeeded meanwhile; keep its data.
		if _, ok := c.rounds[round]; !ok {
			c.missing[round] = true
		}
		c.mu.Unlock()
		return nil, fmt.Errorf("round %d: %w", round, ErrDataUnavailable)
	}

	c.mu.Lock()
	if existing, ok := c.rounds[round]; ok {
		// First write wins; cached rankings are immutable for the session.
		c.mu.Unlock()
		return existing, nil
	}
	c.rounds[round] = ranking
	delete(c.missing, round)
	c.mu.Unlock()
	return ranking, nil
}
