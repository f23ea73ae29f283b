package models

// RankPayoutTable maps a round finishing position to a signed amount.
// Positions absent from the table pay zero.
type RankPayoutTable map[int]float64

// Amount returns the payout for a finishing position.
func (t RankPayoutTable) Amount(position int) float64 {
	return t[position]
}

// Size returns the highest position the table covers.
func (t RankPayoutTable) Size() int {
	max := 0
	for pos := range t {
		if pos > max {
			max = pos
		}
	}
	return max
}

// TopPosition and BottomPosition bound the table's credit/debit extremes,
// used for the finished-1st / finished-last counters.
func (t RankPayoutTable) TopPosition() int    { return 1 }
func (t RankPayoutTable) BottomPosition() int { return t.Size() }

// DefaultRankTable32 is the standard 32-entrant schedule: positions 1-11
// earn 20 down to 10, the middle band is neutral and the bottom 11 mirror
// the credits as debits.
func DefaultRankTable32() RankPayoutTable {
	t := make(RankPayoutTable, 32)
	for i := 0; i < 11; i++ {
		t[1+i] = 20.0 - float64(i)
		t[32-i] = -(20.0 - float64(i))
	}
	for pos := 12; pos <= 21; pos++ {
		t[pos] = 0
	}
	return t
}

// SmallRankTable6 is the alternate 6-entrant schedule.
func SmallRankTable6() RankPayoutTable {
	return RankPayoutTable{1: 7.0, 2: 4.0, 3: 0, 4: -2.0, 5: -5.0, 6: -10.0}
}

// SmallRankTable4 is the alternate 4-entrant schedule used after the
// small league's mid-season cut.
func SmallRankTable4() RankPayoutTable {
	return RankPayoutTable{1: 5.0, 2: 0, 3: 0, 4: -5.0}
}

// RoundRobinPayout configures head-to-head settlement for the
// round-robin competition.
type RoundRobinPayout struct {
	WinValue       float64 `json:"win_value"`       // plain win, mirrored as the loss
	BlowoutValue   float64 `json:"blowout_value"`   // win by BlowoutMargin or more
	BlowoutMargin  float64 `json:"blowout_margin"`  // points of margin that make a blowout
	DrawValue      float64 `json:"draw_value"`      // credited to both sides on a draw
	DrawTolerance  float64 `json:"draw_tolerance"`  // margin at or below which the fixture draws
}

// DefaultRoundRobinPayout returns the observed production settlement:
// 5 for a win, 7 for a blowout at 50 points of margin, nothing on a draw.
func DefaultRoundRobinPayout() RoundRobinPayout {
	return RoundRobinPayout{WinValue: 5.0, BlowoutValue: 7.0, BlowoutMargin: 50.0}
}

// KnockoutPayout configures bracket settlement. A decided fixture pays
// the winner Value and debits the loser the same amount.
type KnockoutPayout struct {
	Value float64 `json:"value"`
}

// DefaultKnockoutPayout pays 10 per decided fixture.
func DefaultKnockoutPayout() KnockoutPayout {
	return KnockoutPayout{Value: 10.0}
}

// PayoutConfig is the complete per-league settlement configuration,
// resolved once by league configuration and passed into the engine. The
// engine has no knowledge of specific league identities.
type PayoutConfig struct {
	RankTable  RankPayoutTable   `json:"rank_table"`
	RoundRobin *RoundRobinPayout `json:"round_robin,omitempty"` // nil: league runs no round-robin
	Knockout   KnockoutPayout    `json:"knockout"`
}
