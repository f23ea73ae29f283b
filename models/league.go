package models

// RoundRobinFormat configures the league's all-play-all competition:
// schedule round i (0-based) is scored by competition round
// StartRound+i.
type RoundRobinFormat struct {
	StartRound int `json:"start_round"`
}

// LeagueSettings is everything the engine needs to know about one
// league, resolved by league configuration before any computation runs.
type LeagueSettings struct {
	LeagueID         string            `json:"league_id"`
	Name             string            `json:"name"`
	TotalRounds      int               `json:"total_rounds"`
	Payout           PayoutConfig      `json:"payout"`
	RoundRobin       *RoundRobinFormat `json:"round_robin,omitempty"` // nil: format not played
	KnockoutEditions []Edition         `json:"knockout_editions"`
	MonthlyEditions  []Edition         `json:"monthly_editions"`
}

// RunsRoundRobin reports whether the league plays the round-robin format.
func (s LeagueSettings) RunsRoundRobin() bool {
	return s.RoundRobin != nil && s.Payout.RoundRobin != nil
}
