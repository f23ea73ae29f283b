// Package finance translates competition outcomes into signed monetary
// deltas per participant per round, and aggregates them into the
// per-participant cash ledger.
package finance

import (
	"math"

	"github.com/Dosada05/cartola-league/models"
)

// RoundRobinResult is the settlement of one head-to-head fixture.
type RoundRobinResult struct {
	DeltaA   float64
	DeltaB   float64
	BlowoutA bool
	BlowoutB bool
	// Excluded marks a fixture where at least one side has no points for
	// the round. It pays nothing and must not count as a played fixture.
	Excluded bool
}

// SettleRoundRobin settles a round-robin fixture from the two sides'
// round points. Either side missing excludes the fixture entirely: it is
// not a 0-0 draw, it simply never happened for settlement purposes.
func SettleRoundRobin(pointsA, pointsB *float64, cfg models.RoundRobinPayout) RoundRobinResult {
	if pointsA == nil || pointsB == nil {
		return RoundRobinResult{Excluded: true}
	}

	margin := math.Abs(*pointsA - *pointsB)

	if margin <= cfg.DrawTolerance {
		return RoundRobinResult{DeltaA: cfg.DrawValue, DeltaB: cfg.DrawValue}
	}

	value := cfg.WinValue
	blowout := margin >= cfg.BlowoutMargin
	if blowout {
		value = cfg.BlowoutValue
	}

	if *pointsA > *pointsB {
		return RoundRobinResult{DeltaA: value, DeltaB: -value, BlowoutA: blowout}
	}
	return RoundRobinResult{DeltaA: -value, DeltaB: value, BlowoutB: blowout}
}

// KnockoutResult is the settlement of one bracket fixture.
type KnockoutResult struct {
	WinnerTeamID string
	LoserTeamID  string
	DeltaWinner  float64
	DeltaLoser   float64
	// Pending fixtures pay nothing and stay out of the ledger until the
	// deciding round is consolidated.
	Pending bool
}

// SettleKnockout settles one bracket fixture.
func SettleKnockout(m models.Match, cfg models.KnockoutPayout) KnockoutResult {
	if m.Outcome.Kind != models.OutcomeDecided {
		return KnockoutResult{Pending: true}
	}
	winner, _ := m.WinnerSide()
	loser, _ := m.LoserSide()
	return KnockoutResult{
		WinnerTeamID: winner.TeamID,
		LoserTeamID:  loser.TeamID,
		DeltaWinner:  cfg.Value,
		DeltaLoser:   -cfg.Value,
	}
}

// KnockoutDeltas flattens a resolved bracket into per-team, per-round
// deltas. Pending fixtures contribute nothing.
func KnockoutDeltas(matches []models.Match, cfg models.KnockoutPayout) map[string]map[int]float64 {
	deltas := make(map[string]map[int]float64)
	add := func(teamID string, round int, v float64) {
		if deltas[teamID] == nil {
			deltas[teamID] = make(map[int]float64)
		}
		deltas[teamID][round] += v
	}
	for _, m := range matches {
		res := SettleKnockout(m, cfg)
		if res.Pending {
			continue
		}
		add(res.WinnerTeamID, m.Round, res.DeltaWinner)
		add(res.LoserTeamID, m.Round, res.DeltaLoser)
	}
	return deltas
}
