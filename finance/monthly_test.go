package finance

import (
	"testing"

	"github.com/Dosada05/cartola-league/models"
)

func TestComputeMonthly_SumsEditionWindow(t *testing.T) {
	edition := models.Edition{ID: 1, Name: "Melhor de Maio", StartRound: 5, EndRound: 7}
	rankings := rankingsFrom(map[int]models.RoundRanking{
		5: {{TeamID: "a", Points: 50}, {TeamID: "b", Points: 40}},
		6: {{TeamID: "b", Points: 90}, {TeamID: "a", Points: 30}},
		7: {{TeamID: "a", Points: 60}, {TeamID: "b", Points: 10}},
	})

	standing := ComputeMonthly(edition, 7, rankings)

	if standing.Status != models.EditionCompleted {
		t.Fatalf("status = %s, want %s", standing.Status, models.EditionCompleted)
	}
	if standing.Partial {
		t.Error("fully available window must not be partial")
	}
	if standing.Rows[0].TeamID != "a" || standing.Rows[0].TotalPoints != 140 {
		t.Errorf("leader = %+v, want a with 140", standing.Rows[0])
	}
	if standing.Rows[1].TotalPoints != 140 {
		t.Errorf("runner-up total = %.1f, want 140", standing.Rows[1].TotalPoints)
	}
	// a and b tie on 140; team ID breaks the tie deterministically.
	if standing.Rows[1].TeamID != "b" {
		t.Errorf("tied rows out of order: %s before %s", standing.Rows[0].TeamID, standing.Rows[1].TeamID)
	}
}

func TestComputeMonthly_NotStartedHasNoRows(t *testing.T) {
	edition := models.Edition{ID: 2, StartRound: 20, EndRound: 24}
	rankings := rankingsFrom(nil)

	standing := ComputeMonthly(edition, 10, rankings)

	if standing.Status != models.EditionNotStarted {
		t.Fatalf("status = %s, want %s", standing.Status, models.EditionNotStarted)
	}
	if len(standing.Rows) != 0 {
		t.Errorf("rows = %d, want none before the edition starts", len(standing.Rows))
	}
}

func TestComputeMonthly_InProgressStopsAtConsolidatedRound(t *testing.T) {
	edition := models.Edition{ID: 3, StartRound: 5, EndRound: 9}
	rankings := rankingsFrom(map[int]models.RoundRanking{
		5: {{TeamID: "a", Points: 50}},
		6: {{TeamID: "a", Points: 20}},
		7: {{TeamID: "a", Points: 99}}, // beyond the consolidated window
	})

	standing := ComputeMonthly(edition, 6, rankings)

	if standing.Status != models.EditionInProgress {
		t.Fatalf("status = %s, want %s", standing.Status, models.EditionInProgress)
	}
	if standing.Rows[0].TotalPoints != 70 {
		t.Errorf("total = %.1f, want 70 (rounds 5 and 6 only)", standing.Rows[0].TotalPoints)
	}
	if standing.Rows[0].RoundsCounted != 2 {
		t.Errorf("rounds counted = %d, want 2", standing.Rows[0].RoundsCounted)
	}
}

func TestComputeMonthly_MissingRoundFlagsPartial(t *testing.T) {
	edition := models.Edition{ID: 4, StartRound: 5, EndRound: 7}
	rankings := rankingsFrom(map[int]models.RoundRanking{
		5: {{TeamID: "a", Points: 50}},
		// round 6 missing
		7: {{TeamID: "a", Points: 30}},
	})

	standing := ComputeMonthly(edition, 7, rankings)

	if !standing.Partial {
		t.Error("a gap inside the window must flag the standing as partial")
	}
	if standing.Rows[0].TotalPoints != 80 {
		t.Errorf("total = %.1f, want 80 (available rounds only, never zeros)", standing.Rows[0].TotalPoints)
	}
}
