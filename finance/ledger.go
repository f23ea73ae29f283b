package finance

import "github.com/Dosada05/cartola-league/models"

// LedgerInput collects everything ComputeLedger needs. All fields are
// plain values over already-cached data: computing a ledger twice from
// the same input yields byte-identical output.
type LedgerInput struct {
	ParticipantID string
	Rounds        int // compute rounds 1..Rounds in order
	Rankings      RankingLookup
	RankTable     models.RankPayoutTable
	// RoundRobinDeltas and KnockoutDeltas are pre-settled per-round
	// amounts for this participant (round -> delta). Nil maps mean the
	// league does not run that format.
	RoundRobinDeltas map[int]float64
	KnockoutDeltas   map[int]float64
	Adjustments      []models.Adjustment
}

// ComputeLedger aggregates rank payouts, round-robin deltas, knockout
// deltas and the user-editable adjustment fields into one statement.
//
// A round whose ranking is unavailable, or where the participant does
// not appear, contributes zero to every category and is excluded from
// the best/worst counters. The running balance of row r always equals
// the running balance of row r-1 plus that round's deltas.
func ComputeLedger(in LedgerInput) models.Ledger {
	entries := make([]models.LedgerEntry, 0, in.Rounds)
	summary := models.LedgerSummary{
		ParticipantID: in.ParticipantID,
		Adjustments:   append([]models.Adjustment(nil), in.Adjustments...),
	}

	balance := 0.0
	for round := 1; round <= in.Rounds; round++ {
		entry := models.LedgerEntry{Round: round}

		ranking, ok := in.Rankings(round)
		if ok {
			entry.TotalEntrants = len(ranking)
			entry.Position = ranking.Position(in.ParticipantID)
		}

		if ok && entry.Position > 0 {
			entry.DataAvailable = true
			entry.RankDelta = in.RankTable.Amount(entry.Position)
			entry.RoundRobinDelta = in.RoundRobinDeltas[round]
			entry.KnockoutDelta = in.KnockoutDeltas[round]
			entry.Best = entry.Position == in.RankTable.TopPosition()
			entry.Worst = entry.Position == entry.TotalEntrants && entry.TotalEntrants > 1

			summary.RankTotal += entry.RankDelta
			summary.RoundRobinTotal += entry.RoundRobinDelta
			summary.KnockoutTotal += entry.KnockoutDelta
			if entry.Best {
				summary.BestCount++
			}
			if entry.Worst {
				summary.WorstCount++
			}
		}

		balance += entry.RankDelta + entry.RoundRobinDelta + entry.KnockoutDelta
		entry.RunningBalance = balance
		entries = append(entries, entry)
	}

	summary.Saldo = summary.RankTotal + summary.RoundRobinTotal + summary.KnockoutTotal +
		summary.AdjustmentTotal()

	return models.Ledger{Entries: entries, Summary: summary}
}
