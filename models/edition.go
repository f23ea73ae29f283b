package models

// Edition is one configured window of a recurring tournament format.
// Knockout editions score their five stages on rounds StartRound through
// StartRound+4; monthly editions aggregate every round in
// [StartRound, EndRound]. Editions are independent aggregation scopes
// and several can exist concurrently.
type Edition struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	StartRound      int    `json:"start_round"`
	EndRound        int    `json:"end_round"`
	DefinitionRound int    `json:"definition_round,omitempty"` // knockout seed round
}

// StageRound returns the competition round that scores the given phase
// index (0-based) of a knockout edition.
func (e Edition) StageRound(stageIdx int) int {
	return e.StartRound + stageIdx
}

// EditionStatus describes how far an edition has progressed relative to
// the last consolidated round.
type EditionStatus string

const (
	EditionNotStarted EditionStatus = "aguardando"
	EditionInProgress EditionStatus = "andamento"
	EditionCompleted  EditionStatus = "concluida"
)

// Status classifies the edition against the last consolidated round.
func (e Edition) Status(lastConsolidated int) EditionStatus {
	switch {
	case lastConsolidated < e.StartRound:
		return EditionNotStarted
	case lastConsolidated >= e.EndRound:
		return EditionCompleted
	default:
		return EditionInProgress
	}
}
