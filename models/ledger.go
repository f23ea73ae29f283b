package models

import "time"

// LedgerEntry is one row of a participant's cash ledger: the deltas
// earned in a single round and the balance accumulated up to and
// including it. Rounds without ranking data produce an entry with
// DataAvailable false and zero deltas, never a silent zero merged with
// real data.
type LedgerEntry struct {
	Round           int     `json:"round"`
	Position        int     `json:"position,omitempty"` // 1-indexed, 0 when absent
	TotalEntrants   int     `json:"total_entrants"`
	RankDelta       float64 `json:"rank_delta"`
	RoundRobinDelta float64 `json:"round_robin_delta"`
	KnockoutDelta   float64 `json:"knockout_delta"`
	RunningBalance  float64 `json:"running_balance"`
	Best            bool    `json:"best"`  // finished 1st
	Worst           bool    `json:"worst"` // finished last
	DataAvailable   bool    `json:"data_available"`
}

// Adjustment is one user-editable named ledger field. Up to four slots
// (1..4) exist per participant; values are persisted externally and
// merged into the final balance at computation time.
type Adjustment struct {
	Slot  int     `json:"slot"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MaxAdjustmentSlots bounds the editable fields per participant.
const MaxAdjustmentSlots = 4

// LedgerSummary totals each delta category across all processed rounds.
// Saldo always equals the sum of the category totals plus every
// adjustment value.
type LedgerSummary struct {
	ParticipantID   string       `json:"participant_id"`
	RankTotal       float64      `json:"rank_total"`
	RoundRobinTotal float64      `json:"round_robin_total"`
	KnockoutTotal   float64      `json:"knockout_total"`
	BestCount       int          `json:"best_count"`
	WorstCount      int          `json:"worst_count"`
	Adjustments     []Adjustment `json:"adjustments"`
	Saldo           float64      `json:"saldo"`
}

// Ledger is the full computed statement for one participant.
type Ledger struct {
	Entries []LedgerEntry `json:"entries"`
	Summary LedgerSummary `json:"summary"`
}

// AdjustmentTotal sums the merged adjustment values.
func (s LedgerSummary) AdjustmentTotal() float64 {
	total := 0.0
	for _, a := range s.Adjustments {
		total += a.Value
	}
	return total
}

// LedgerSnapshot is a persisted ledger computation, reused while the
// last consolidated round has not advanced past LastRound.
type LedgerSnapshot struct {
	LeagueID  string    `json:"league_id"`
	TeamID    string    `json:"team_id"`
	LastRound int       `json:"last_round"`
	Ledger    Ledger    `json:"ledger"`
	UpdatedAt time.Time `json:"updated_at"`
}
