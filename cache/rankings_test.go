package cache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Dosada05/cartola-league/models"
)

// fakeFetcher serves scripted rankings and counts calls per round.
type fakeFetcher struct {
	mu       sync.Mutex
	rankings map[int]models.RoundRanking
	failing  map[int]bool
	calls    map[int]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		rankings: make(map[int]models.RoundRanking),
		failing:  make(map[int]bool),
		calls:    make(map[int]int),
	}
}

func (f *fakeFetcher) set(round int, teams ...string) {
	ranking := make(models.RoundRanking, 0, len(teams))
	for i, id := range teams {
		ranking = append(ranking, models.RankedEntry{TeamID: id, Points: float64(100 - i)})
	}
	f.rankings[round] = ranking
}

func (f *fakeFetcher) RoundRanking(_ context.Context, _ string, round int) (models.RoundRanking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[round]++
	if f.failing[round] {
		return nil, errors.New("upstream timeout")
	}
	return f.rankings[round], nil
}

func (f *fakeFetcher) callCount(round int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[round]
}

func TestGet_FetchesOncePerRound(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.set(3, "a", "b")
	c := NewRankingCache("1", fetcher, nil)

	for i := 0; i < 4; i++ {
		ranking, err := c.Get(context.Background(), 3)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if ranking.Position("a") != 1 {
			t.Fatalf("get %d: position of a = %d, want 1", i, ranking.Position("a"))
		}
	}

	if fetcher.callCount(3) != 1 {
		t.Errorf("upstream calls = %d, want 1 (memoized)", fetcher.callCount(3))
	}
}

func TestGet_FailedRoundStaysMissingUntilInvalidated(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.failing[7] = true
	c := NewRankingCache("1", fetcher, nil)

	for i := 0; i < 3; i++ {
		if _, err := c.Get(context.Background(), 7); !errors.Is(err, ErrDataUnavailable) {
			t.Fatalf("get %d: err = %v, want ErrDataUnavailable", i, err)
		}
	}
	if fetcher.callCount(7) != 1 {
		t.Errorf("upstream calls = %d, want 1 (missing marker must stop retries)", fetcher.callCount(7))
	}

	// After invalidation the next Get refetches, and fresh data heals
	// the round.
	fetcher.failing[7] = false
	fetcher.set(7, "a")
	c.Invalidate(7)

	ranking, err := c.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if len(ranking) != 1 {
		t.Errorf("ranking len = %d, want 1", len(ranking))
	}
	if got := c.MissingRounds(); len(got) != 0 {
		t.Errorf("missing rounds = %v, want none", got)
	}
}

func TestGet_EmptyRankingIsMissing(t *testing.T) {
	// The upstream answers 200 with an empty list for unplayed rounds.
	fetcher := newFakeFetcher()
	c := NewRankingCache("1", fetcher, nil)

	if _, err := c.Get(context.Background(), 12); !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("err = %v, want ErrDataUnavailable for empty ranking", err)
	}
	if got := c.MissingRounds(); len(got) != 1 || got[0] != 12 {
		t.Errorf("missing rounds = %v, want [12]", got)
	}
}

func TestPeek_NeverFetches(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.set(5, "a")
	c := NewRankingCache("1", fetcher, nil)

	if _, ok := c.Peek(5); ok {
		t.Error("peek reported data before any fetch")
	}
	if fetcher.callCount(5) != 0 {
		t.Errorf("upstream calls = %d, want 0", fetcher.callCount(5))
	}

	if _, err := c.Get(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Peek(5); !ok {
		t.Error("peek missed a cached round")
	}
}

func TestLoadRange_LoadsAllAndReportsProgress(t *testing.T) {
	fetcher := newFakeFetcher()
	for round := 1; round <= 12; round++ {
		fetcher.set(round, "a", "b", "c")
	}
	c := NewRankingCache("1", fetcher, nil)

	var mu sync.Mutex
	var finalProcessed, reports int
	err := c.LoadRange(context.Background(), 1, 12, func(processed, total int) {
		mu.Lock()
		defer mu.Unlock()
		reports++
		if total != 12 {
			t.Errorf("total = %d, want 12", total)
		}
		if processed > finalProcessed {
			finalProcessed = processed
		}
	})
	if err != nil {
		t.Fatalf("load range: %v", err)
	}

	if reports != 12 || finalProcessed != 12 {
		t.Errorf("progress reports = %d (max %d), want 12 reaching 12", reports, finalProcessed)
	}
	for round := 1; round <= 12; round++ {
		if _, ok := c.Peek(round); !ok {
			t.Errorf("round %d not cached after range load", round)
		}
	}
}

func TestLoadRange_FailedRoundDoesNotFailBatch(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.set(1, "a")
	fetcher.failing[2] = true
	fetcher.set(3, "a")
	c := NewRankingCache("1", fetcher, nil)

	if err := c.LoadRange(context.Background(), 1, 3, nil); err != nil {
		t.Fatalf("load range: %v", err)
	}

	if _, ok := c.Peek(1); !ok {
		t.Error("round 1 missing after range load")
	}
	if _, ok := c.Peek(3); !ok {
		t.Error("round 3 missing after range load")
	}
	if got := c.MissingRounds(); len(got) != 1 || got[0] != 2 {
		t.Errorf("missing rounds = %v, want [2]", got)
	}
}

func TestLoadRange_SkipsAlreadyCachedRounds(t *testing.T) {
	fetcher := newFakeFetcher()
	for round := 1; round <= 4; round++ {
		fetcher.set(round, "a")
	}
	c := NewRankingCache("1", fetcher, nil)

	if err := c.LoadRange(context.Background(), 1, 4, nil); err != nil {
		t.Fatal(err)
	}
	if err := c.LoadRange(context.Background(), 1, 4, nil); err != nil {
		t.Fatal(err)
	}

	for round := 1; round <= 4; round++ {
		if fetcher.callCount(round) != 1 {
			t.Errorf("round %d upstream calls = %d, want 1", round, fetcher.callCount(round))
		}
	}
}

func TestLoadRange_CancelledContextAborts(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.set(1, "a")
	c := NewRankingCache("1", fetcher, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.LoadRange(ctx, 1, 10, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLoadRange_EmptyAndInvertedRanges(t *testing.T) {
	c := NewRankingCache("1", newFakeFetcher(), nil)

	if err := c.LoadRange(context.Background(), 5, 4, nil); err != nil {
		t.Errorf("inverted range: %v", err)
	}
	if err := c.LoadRange(context.Background(), -3, 0, nil); err != nil {
		t.Errorf("non-positive range: %v", err)
	}
}

func TestInvalidate_UnknownRoundIsHarmless(t *testing.T) {
	c := NewRankingCache("1", newFakeFetcher(), nil)
	c.Invalidate(99)
	c.Invalidate(99)

	if got := c.MissingRounds(); len(got) != 0 {
		t.Errorf("missing rounds = %v, want none", got)
	}
}
