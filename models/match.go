package models

// Stage identifies one phase of a 32-entrant single-elimination bracket.
type Stage string

const (
	StageFirst    Stage = "primeira"
	StageRoundG16 Stage = "oitavas"
	StageQuarter  Stage = "quartas"
	StageSemi     Stage = "semis"
	StageFinal    Stage = "final"
)

// Stages lists the five bracket phases in playing order.
var Stages = []Stage{StageFirst, StageRoundG16, StageQuarter, StageSemi, StageFinal}

// MatchesPerStage maps each phase to its fixture count.
var MatchesPerStage = map[Stage]int{
	StageFirst:    16,
	StageRoundG16: 8,
	StageQuarter:  4,
	StageSemi:     2,
	StageFinal:    1,
}

// OutcomeKind tags whether a bracket fixture has been decided.
type OutcomeKind string

const (
	OutcomeDecided OutcomeKind = "decided"
	OutcomePending OutcomeKind = "pending"
)

// MatchSide is one side of a bracket fixture. SeedRank is the side's rank
// in the edition's definition-round ranking, carried through every stage
// as the deterministic tie-break key. Points is nil until the stage's
// round has ranking data for this participant.
type MatchSide struct {
	TeamID      string   `json:"team_id"`
	DisplayName string   `json:"display_name"`
	TeamName    string   `json:"team_name"`
	ClubID      *int     `json:"club_id,omitempty"`
	SeedRank    int      `json:"seed_rank"`
	Points      *float64 `json:"points,omitempty"`
}

// Outcome is the resolved state of a fixture. Winner is "A" or "B" when
// Kind is OutcomeDecided and empty while pending. Once decided, an
// Outcome is never mutated; recomputation rebuilds Match values instead.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner string      `json:"winner,omitempty"`
}

// Match is one bracket fixture.
type Match struct {
	Index   int       `json:"index"` // 1-based position inside the stage
	Stage   Stage     `json:"stage"`
	Round   int       `json:"round"` // competition round that scores the fixture
	A       MatchSide `json:"a"`
	B       MatchSide `json:"b"`
	Outcome Outcome   `json:"outcome"`
}

// WinnerSide returns the winning side of a decided match.
func (m Match) WinnerSide() (MatchSide, bool) {
	switch m.Outcome.Winner {
	case "A":
		return m.A, true
	case "B":
		return m.B, true
	}
	return MatchSide{}, false
}

// LoserSide returns the losing side of a decided match.
func (m Match) LoserSide() (MatchSide, bool) {
	switch m.Outcome.Winner {
	case "A":
		return m.B, true
	case "B":
		return m.A, true
	}
	return MatchSide{}, false
}
