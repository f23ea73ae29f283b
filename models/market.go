package models

// MarketStatus is the scoring provider's competition state: the round in
// progress and whether its market is open (teams still editable, scores
// not final).
type MarketStatus struct {
	CurrentRound int  `json:"rodada_atual"`
	MarketOpen   bool `json:"mercado_aberto"`
}

// LastConsolidatedRound returns the newest round whose scores are final.
// While the market is open the current round has not been played, so the
// previous round is the last trustworthy one.
func (m MarketStatus) LastConsolidatedRound() int {
	if m.MarketOpen {
		if m.CurrentRound <= 2 {
			return 1
		}
		return m.CurrentRound - 1
	}
	return m.CurrentRound
}
