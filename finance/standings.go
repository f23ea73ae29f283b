package finance

import (
	"sort"

	"github.com/Dosada05/cartola-league/models"
)

// League points per head-to-head result, as played in production.
const (
	leaguePointsWin     = 3
	leaguePointsBlowout = 4
	leaguePointsDraw    = 1
)

// RankingLookup resolves the ranking of one competition round. The
// second return is false when the round's data is unavailable; such
// rounds are skipped entirely, never settled as zeros.
type RankingLookup func(round int) (models.RoundRanking, bool)

// RoundRobinOutcome captures all round-robin computation for a league in
// one pass: the per-team per-round money deltas feeding the ledger, and
// the classification table.
type RoundRobinOutcome struct {
	Deltas    map[string]map[int]float64
	Standings []models.StandingRow
}

// ComputeRoundRobin settles every scheduled fixture whose scoring round
// is consolidated and has ranking data. Schedule round i is scored by
// competition round format.StartRound+i.
func ComputeRoundRobin(
	schedule []ScheduleRound,
	format models.RoundRobinFormat,
	lastConsolidated int,
	rankings RankingLookup,
	cfg models.RoundRobinPayout,
) RoundRobinOutcome {
	deltas := make(map[string]map[int]float64)
	rows := make(map[string]*models.StandingRow)

	row := func(p models.Participant) *models.StandingRow {
		r, ok := rows[p.TeamID]
		if !ok {
			r = &models.StandingRow{TeamID: p.TeamID, DisplayName: p.DisplayName, TeamName: p.TeamName}
			rows[p.TeamID] = r
		}
		return r
	}
	add := func(teamID string, round int, v float64) {
		if deltas[teamID] == nil {
			deltas[teamID] = make(map[int]float64)
		}
		deltas[teamID][round] += v
	}

	for i, scheduleRound := range schedule {
		round := format.StartRound + i
		if round > lastConsolidated {
			break
		}
		ranking, ok := rankings(round)
		if !ok {
			continue
		}
		points := ranking.PointsByTeam()

		for _, f := range scheduleRound {
			pa := pointsOf(points, f.TeamA.TeamID)
			pb := pointsOf(points, f.TeamB.TeamID)
			res := SettleRoundRobin(pa, pb, cfg)
			if res.Excluded {
				continue
			}

			add(f.TeamA.TeamID, round, res.DeltaA)
			add(f.TeamB.TeamID, round, res.DeltaB)

			ra, rb := row(f.TeamA), row(f.TeamB)
			ra.Played++
			rb.Played++
			ra.ScoreFor += *pa
			ra.ScoreAgainst += *pb
			rb.ScoreFor += *pb
			rb.ScoreAgainst += *pa
			ra.Balance += res.DeltaA
			rb.Balance += res.DeltaB

			switch {
			case res.DeltaA == res.DeltaB: // draw
				ra.Draws++
				rb.Draws++
				ra.LeaguePoints += leaguePointsDraw
				rb.LeaguePoints += leaguePointsDraw
			case res.DeltaA > res.DeltaB:
				ra.Wins++
				rb.Losses++
				if res.BlowoutA {
					ra.Blowouts++
					ra.LeaguePoints += leaguePointsBlowout
				} else {
					ra.LeaguePoints += leaguePointsWin
				}
			default:
				rb.Wins++
				ra.Losses++
				if res.BlowoutB {
					rb.Blowouts++
					rb.LeaguePoints += leaguePointsBlowout
				} else {
					rb.LeaguePoints += leaguePointsWin
				}
			}
		}
	}

	standings := make([]models.StandingRow, 0, len(rows))
	for _, r := range rows {
		standings = append(standings, *r)
	}
	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.LeaguePoints != b.LeaguePoints {
			return a.LeaguePoints > b.LeaguePoints
		}
		if diffA, diffB := a.ScoreFor-a.ScoreAgainst, b.ScoreFor-b.ScoreAgainst; diffA != diffB {
			return diffA > diffB
		}
		if a.ScoreFor != b.ScoreFor {
			return a.ScoreFor > b.ScoreFor
		}
		return a.TeamID < b.TeamID // stable order on full ties
	})

	return RoundRobinOutcome{Deltas: deltas, Standings: standings}
}

func pointsOf(points map[string]float64, teamID string) *float64 {
	p, ok := points[teamID]
	if !ok {
		return nil
	}
	return &p
}
