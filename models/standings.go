package models

// StandingRow is one line of the round-robin classification table.
// League points use the observed schedule: 3 for a win, 4 for a blowout
// win, 1 for a draw, 0 for a loss.
type StandingRow struct {
	TeamID       string  `json:"team_id"`
	DisplayName  string  `json:"display_name"`
	TeamName     string  `json:"team_name"`
	Played       int     `json:"played"`
	Wins         int     `json:"wins"`
	Draws        int     `json:"draws"`
	Losses       int     `json:"losses"`
	Blowouts     int     `json:"blowouts"` // wins by the blowout margin or more
	LeaguePoints int     `json:"league_points"`
	ScoreFor     float64 `json:"score_for"`
	ScoreAgainst float64 `json:"score_against"`
	Balance      float64 `json:"balance"` // accumulated settlement money
}

// MonthlyRow is one line of a monthly edition's leaderboard.
type MonthlyRow struct {
	TeamID        string  `json:"team_id"`
	DisplayName   string  `json:"display_name"`
	TeamName      string  `json:"team_name"`
	TotalPoints   float64 `json:"total_points"`
	RoundsCounted int     `json:"rounds_counted"` // rounds with data inside the window
}

// MonthlyStanding is the computed state of one monthly edition.
type MonthlyStanding struct {
	Edition Edition       `json:"edition"`
	Status  EditionStatus `json:"status"`
	Rows    []MonthlyRow  `json:"rows"`
	Partial bool          `json:"partial"` // some window rounds had no data
}
