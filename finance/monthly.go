package finance

import (
	"sort"

	"github.com/Dosada05/cartola-league/models"
)

// ComputeMonthly builds the leaderboard of one monthly edition: total
// points per participant over the edition's round window. Rounds without
// ranking data are skipped and flag the standing as partial.
func ComputeMonthly(
	edition models.Edition,
	lastConsolidated int,
	rankings RankingLookup,
) models.MonthlyStanding {
	standing := models.MonthlyStanding{
		Edition: edition,
		Status:  edition.Status(lastConsolidated),
	}
	if standing.Status == models.EditionNotStarted {
		return standing
	}

	last := edition.EndRound
	if lastConsolidated < last {
		last = lastConsolidated
	}

	totals := make(map[string]*models.MonthlyRow)
	for round := edition.StartRound; round <= last; round++ {
		ranking, ok := rankings(round)
		if !ok {
			standing.Partial = true
			continue
		}
		for _, e := range ranking {
			row, found := totals[e.TeamID]
			if !found {
				row = &models.MonthlyRow{TeamID: e.TeamID, DisplayName: e.DisplayName, TeamName: e.TeamName}
				totals[e.TeamID] = row
			}
			row.TotalPoints += e.Points
			row.RoundsCounted++
		}
	}

	rows := make([]models.MonthlyRow, 0, len(totals))
	for _, r := range totals {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		return rows[i].TeamID < rows[j].TeamID
	})
	standing.Rows = rows
	return standing
}
