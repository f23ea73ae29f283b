package models

// Participant is one league entrant as returned by the roster endpoint.
// Entries are created when the roster is fetched and are immutable for
// the session.
type Participant struct {
	TeamID      string `json:"team_id"`
	DisplayName string `json:"display_name"`
	TeamName    string `json:"team_name"`
	ClubID      *int   `json:"club_id,omitempty"` // favourite club, display only
}
