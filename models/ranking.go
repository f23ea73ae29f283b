package models

// RankedEntry is one row of a per-round ranking: a participant and the
// points their team scored in that round.
type RankedEntry struct {
	TeamID      string  `json:"team_id"`
	Points      float64 `json:"points"`
	DisplayName string  `json:"display_name,omitempty"`
	TeamName    string  `json:"team_name,omitempty"`
	ClubID      *int    `json:"club_id,omitempty"`
}

// RoundRanking is the ordered ranking of a (league, round) pair, sorted
// descending by points. Ties in the source data keep arrival order.
// Rankings are owned by the cache and must be treated as read-only by
// consumers.
type RoundRanking []RankedEntry

// Position returns the 1-indexed finishing position of teamID, or 0 when
// the participant does not appear in this round.
func (r RoundRanking) Position(teamID string) int {
	for i, e := range r {
		if e.TeamID == teamID {
			return i + 1
		}
	}
	return 0
}

// PointsOf returns the points scored by teamID in this round, or nil when
// the participant does not appear.
func (r RoundRanking) PointsOf(teamID string) *float64 {
	for _, e := range r {
		if e.TeamID == teamID {
			p := e.Points
			return &p
		}
	}
	return nil
}

// PointsByTeam builds a teamID -> points lookup for the round.
func (r RoundRanking) PointsByTeam() map[string]float64 {
	m := make(map[string]float64, len(r))
	for _, e := range r {
		m[e.TeamID] = e.Points
	}
	return m
}
