package brackets

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Dosada05/cartola-league/models"
)

// seedOf builds a ranking of n entrants with descending points, so the
// entrant at index i is seeded i+1.
func seedOf(n int) models.RoundRanking {
	seed := make(models.RoundRanking, 0, n)
	for i := 0; i < n; i++ {
		seed = append(seed, models.RankedEntry{
			TeamID: fmt.Sprintf("t%02d", i+1),
			Points: float64(200 - i),
		})
	}
	return seed
}

func scoresFor(points map[string]float64) models.RoundRanking {
	scores := make(models.RoundRanking, 0, len(points))
	for id, p := range points {
		scores = append(scores, models.RankedEntry{TeamID: id, Points: p})
	}
	return scores
}

func TestFirstStagePairings_RankIPlaysRank33MinusI(t *testing.T) {
	matches, err := FirstStagePairings(seedOf(32))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 16 {
		t.Fatalf("matches = %d, want 16", len(matches))
	}

	for i, m := range matches {
		wantA := fmt.Sprintf("t%02d", i+1)
		wantB := fmt.Sprintf("t%02d", 32-i)
		if m.A.TeamID != wantA || m.B.TeamID != wantB {
			t.Errorf("match %d pairs %s vs %s, want %s vs %s", m.Index, m.A.TeamID, m.B.TeamID, wantA, wantB)
		}
		if m.A.SeedRank != i+1 || m.B.SeedRank != 32-i {
			t.Errorf("match %d seed ranks %d/%d, want %d/%d", m.Index, m.A.SeedRank, m.B.SeedRank, i+1, 32-i)
		}
	}
}

func TestFirstStagePairings_SeedBeyond32Ignored(t *testing.T) {
	// A 40-entrant seed still produces a 32 bracket from the top 32.
	matches, err := FirstStagePairings(seedOf(40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range matches {
		if m.A.SeedRank > 32 || m.B.SeedRank > 32 {
			t.Errorf("match %d includes seed beyond 32", m.Index)
		}
	}
}

func TestFirstStagePairings_InsufficientEntrants(t *testing.T) {
	_, err := FirstStagePairings(seedOf(31))
	if !errors.Is(err, ErrInsufficientEntrants) {
		t.Errorf("err = %v, want ErrInsufficientEntrants", err)
	}
}

func TestResolveStage_PendingBeyondConsolidatedRound(t *testing.T) {
	matches, _ := FirstStagePairings(seedOf(32))

	resolved := ResolveStage(matches, nil, 15, 14)

	for _, m := range resolved {
		if m.Outcome.Kind != models.OutcomePending {
			t.Fatalf("match %d resolved while its round is unconsolidated", m.Index)
		}
		if m.A.Points != nil || m.B.Points != nil {
			t.Errorf("pending match %d carries points", m.Index)
		}
		if m.Round != 15 {
			t.Errorf("match %d round = %d, want 15", m.Index, m.Round)
		}
	}
}

func TestResolveStage_HigherPointsWin(t *testing.T) {
	matches, _ := FirstStagePairings(seedOf(32))
	scores := scoresFor(map[string]float64{"t01": 50, "t32": 80})

	resolved := ResolveStage(matches, scores, 10, 10)

	m := resolved[0]
	if m.Outcome.Kind != models.OutcomeDecided {
		t.Fatal("consolidated stage must decide every fixture")
	}
	if m.Outcome.Winner != "B" {
		t.Errorf("winner = %s, want B (t32 outscored t01)", m.Outcome.Winner)
	}
}

func TestResolveStage_TieFallsToBetterSeed(t *testing.T) {
	matches, _ := FirstStagePairings(seedOf(32))
	scores := scoresFor(map[string]float64{"t01": 60, "t32": 60})

	resolved := ResolveStage(matches, scores, 10, 10)

	if resolved[0].Outcome.Winner != "A" {
		t.Errorf("winner = %s, want A (seed 1 beats seed 32 on a tie)", resolved[0].Outcome.Winner)
	}
}

func TestResolveStage_MissingScoresFallToBetterSeed(t *testing.T) {
	// No snapshot rows at all: every fixture still decides, by seed.
	matches, _ := FirstStagePairings(seedOf(32))

	resolved := ResolveStage(matches, nil, 10, 10)

	for _, m := range resolved {
		if m.Outcome.Kind != models.OutcomeDecided {
			t.Fatalf("match %d undecided on a consolidated round", m.Index)
		}
		if m.Outcome.Winner != "A" {
			t.Errorf("match %d winner = %s, want A (better seed)", m.Index, m.Outcome.Winner)
		}
	}
}

func TestResolveStage_DeterministicAcrossRuns(t *testing.T) {
	matches, _ := FirstStagePairings(seedOf(32))
	scores := scoresFor(map[string]float64{"t01": 55.5, "t32": 55.5, "t02": 70, "t31": 71})

	first := ResolveStage(matches, scores, 10, 10)
	second := ResolveStage(matches, scores, 10, 10)

	for i := range first {
		if first[i].Outcome.Winner != second[i].Outcome.Winner {
			t.Fatalf("match %d winner differs between identical runs", i+1)
		}
	}
}

func TestResolveStage_DoesNotMutateInput(t *testing.T) {
	matches, _ := FirstStagePairings(seedOf(32))
	scores := scoresFor(map[string]float64{"t01": 10, "t32": 90})

	_ = ResolveStage(matches, scores, 10, 10)

	if matches[0].Outcome.Kind != "" || matches[0].A.Points != nil {
		t.Error("ResolveStage mutated its input matches")
	}
}

func TestNextStagePairings_ConsecutiveWinners(t *testing.T) {
	matches, _ := FirstStagePairings(seedOf(32))
	resolved := ResolveStage(matches, nil, 10, 10) // seed decides, side A everywhere

	next, err := NextStagePairings(resolved, models.StageRoundG16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next) != 8 {
		t.Fatalf("matches = %d, want 8", len(next))
	}
	// Winners of matches 1 and 2 are seeds 1 and 2.
	if next[0].A.TeamID != "t01" || next[0].B.TeamID != "t02" {
		t.Errorf("first oitavas fixture = %s vs %s, want t01 vs t02", next[0].A.TeamID, next[0].B.TeamID)
	}
	if next[0].A.Points != nil || next[0].B.Points != nil {
		t.Error("pairings must not carry points from the previous fase")
	}
}

func TestNextStagePairings_RefusesUndecidedStage(t *testing.T) {
	matches, _ := FirstStagePairings(seedOf(32))
	pending := ResolveStage(matches, nil, 15, 10)

	if _, err := NextStagePairings(pending, models.StageRoundG16); err == nil {
		t.Error("pairing an undecided fase must fail")
	}
}

func TestResolveStage_FullBracketRun(t *testing.T) {
	// With no score snapshots the better seed advances through every
	// fase and seed 1 takes the final.
	matches, err := FirstStagePairings(seedOf(32))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, stage := range models.Stages {
		resolved := ResolveStage(matches, nil, 10+i, 20)
		if len(resolved) != models.MatchesPerStage[stage] {
			t.Fatalf("%s has %d matches, want %d", stage, len(resolved), models.MatchesPerStage[stage])
		}
		if stage == models.StageFinal {
			winner, ok := resolved[0].WinnerSide()
			if !ok || winner.TeamID != "t01" {
				t.Errorf("champion = %+v, want t01", winner)
			}
			return
		}
		matches, err = NextStagePairings(resolved, models.Stages[i+1])
		if err != nil {
			t.Fatalf("pairing %s: %v", models.Stages[i+1], err)
		}
	}
}
