package models

// BracketStage is one resolved fase of a knockout edition.
type BracketStage struct {
	Stage   Stage   `json:"stage"`
	Round   int     `json:"round"`
	Matches []Match `json:"matches"`
}

// Bracket is the resolved state of one knockout edition. Stages stop at
// the first pending fase; later fases cannot be paired until it is
// decided.
type Bracket struct {
	LeagueID string         `json:"league_id"`
	Edition  Edition        `json:"edition"`
	Stages   []BracketStage `json:"stages"`
	Complete bool           `json:"complete"`
	Champion *MatchSide     `json:"champion,omitempty"`
	// PartialData flags that at least one consolidated stage round had
	// no ranking data and was decided purely by seed rank.
	PartialData bool `json:"partial_data"`
}
