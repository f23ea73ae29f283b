// Package brackets resolves 32-entrant single-elimination editions
// fase-by-fase from per-round ranking snapshots, and carries the
// websocket hub that broadcasts recomputation events to dashboards.
package brackets

import (
	"errors"
	"fmt"

	"github.com/Dosada05/cartola-league/models"
)

// BracketSize is the only supported seed size: five fases of
// 16/8/4/2/1 fixtures.
const BracketSize = 32

var ErrInsufficientEntrants = errors.New("seed round has fewer entrants than the bracket size")

// FirstStagePairings pairs the seed ranking into the opening 16
// fixtures: the entrant ranked i plays the entrant ranked 33-i. The seed
// rank of each side is kept on the match as the deterministic tie-break
// key for every later fase.
//
// A seed with fewer than 32 entrants is a configuration error for the
// edition; resolution must halt rather than guess a smaller shape.
func FirstStagePairings(seed models.RoundRanking) ([]models.Match, error) {
	if len(seed) < BracketSize {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientEntrants, len(seed), BracketSize)
	}

	matches := make([]models.Match, 0, BracketSize/2)
	for i := 0; i < BracketSize/2; i++ {
		a, b := seed[i], seed[BracketSize-1-i]
		matches = append(matches, models.Match{
			Index: i + 1,
			Stage: models.StageFirst,
			A:     sideFromSeed(a, i+1),
			B:     sideFromSeed(b, BracketSize-i),
		})
	}
	return matches, nil
}

func sideFromSeed(e models.RankedEntry, seedRank int) models.MatchSide {
	return models.MatchSide{
		TeamID:      e.TeamID,
		DisplayName: e.DisplayName,
		TeamName:    e.TeamName,
		ClubID:      e.ClubID,
		SeedRank:    seedRank,
	}
}

// NextStagePairings pairs consecutive winners of a fully decided fase in
// bracket order: winner of match 1 plays winner of match 2, and so on.
func NextStagePairings(previous []models.Match, stage models.Stage) ([]models.Match, error) {
	if len(previous)%2 != 0 {
		return nil, fmt.Errorf("cannot pair %d matches for stage %s", len(previous), stage)
	}
	matches := make([]models.Match, 0, len(previous)/2)
	for i := 0; i < len(previous); i += 2 {
		winA, okA := previous[i].WinnerSide()
		winB, okB := previous[i+1].WinnerSide()
		if !okA || !okB {
			return nil, fmt.Errorf("stage %s not fully decided, cannot pair stage %s", previous[i].Stage, stage)
		}
		matches = append(matches, models.Match{
			Index: i/2 + 1,
			Stage: stage,
			A:     clearPoints(winA),
			B:     clearPoints(winB),
		})
	}
	return matches, nil
}

func clearPoints(s models.MatchSide) models.MatchSide {
	s.Points = nil
	return s
}

// ResolveStage applies one fase's score snapshot to its fixtures and
// returns new, resolved Match values; inputs are never mutated.
//
// stageRound is the competition round that scores the fase. While
// stageRound is beyond lastConsolidated the fase is pending: no points
// are attached and no winner is chosen. Otherwise every fixture is
// decided by a total order: higher points win; equal points (including
// both sides missing from the snapshot) fall back to the better seed
// rank; identical seed ranks decide for side A. The same inputs always
// produce the same winners.
func ResolveStage(entrants []models.Match, scores models.RoundRanking, stageRound, lastConsolidated int) []models.Match {
	resolved := make([]models.Match, len(entrants))
	pending := stageRound > lastConsolidated
	points := scores.PointsByTeam()

	for i, m := range entrants {
		m.Round = stageRound
		if pending {
			m.A.Points = nil
			m.B.Points = nil
			m.Outcome = models.Outcome{Kind: models.OutcomePending}
			resolved[i] = m
			continue
		}

		m.A.Points = lookupPoints(points, m.A.TeamID)
		m.B.Points = lookupPoints(points, m.B.TeamID)
		m.Outcome = models.Outcome{Kind: models.OutcomeDecided, Winner: decideWinner(m.A, m.B)}
		resolved[i] = m
	}
	return resolved
}

// decideWinner implements the total-order tie-break. It must never leave
// a fixture undecided once its round is consolidated.
func decideWinner(a, b models.MatchSide) string {
	if a.Points != nil && b.Points != nil {
		if *a.Points > *b.Points {
			return "A"
		}
		if *b.Points > *a.Points {
			return "B"
		}
	}
	// Points tied, or one side absent from the snapshot: the better
	// (lower) seed rank advances; full ties go to side A.
	if b.SeedRank < a.SeedRank {
		return "B"
	}
	return "A"
}

func lookupPoints(points map[string]float64, teamID string) *float64 {
	p, ok := points[teamID]
	if !ok {
		return nil
	}
	return &p
}
