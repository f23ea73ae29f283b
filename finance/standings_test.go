package finance

import (
	"testing"

	"github.com/Dosada05/cartola-league/models"
)

func pairSchedule(a, b string) []ScheduleRound {
	return []ScheduleRound{
		{{TeamA: models.Participant{TeamID: a}, TeamB: models.Participant{TeamID: b}}},
	}
}

func TestComputeRoundRobin_WinMovesMoneyAndLeaguePoints(t *testing.T) {
	schedule := pairSchedule("a", "b")
	format := models.RoundRobinFormat{StartRound: 5}
	rankings := rankingsFrom(map[int]models.RoundRanking{
		5: {{TeamID: "a", Points: 70}, {TeamID: "b", Points: 55}},
	})

	out := ComputeRoundRobin(schedule, format, 5, rankings, models.DefaultRoundRobinPayout())

	if out.Deltas["a"][5] != 5 || out.Deltas["b"][5] != -5 {
		t.Errorf("deltas = %v, want a +5 / b -5 on round 5", out.Deltas)
	}
	if out.Standings[0].TeamID != "a" || out.Standings[0].LeaguePoints != 3 {
		t.Errorf("leader = %+v, want a with 3 league points", out.Standings[0])
	}
	if out.Standings[1].Losses != 1 {
		t.Errorf("b losses = %d, want 1", out.Standings[1].Losses)
	}
}

func TestComputeRoundRobin_BlowoutEarnsExtraLeaguePoint(t *testing.T) {
	schedule := pairSchedule("a", "b")
	format := models.RoundRobinFormat{StartRound: 1}
	rankings := rankingsFrom(map[int]models.RoundRanking{
		1: {{TeamID: "a", Points: 120}, {TeamID: "b", Points: 40}},
	})

	out := ComputeRoundRobin(schedule, format, 1, rankings, models.DefaultRoundRobinPayout())

	leader := out.Standings[0]
	if leader.LeaguePoints != 4 {
		t.Errorf("blowout winner league points = %d, want 4", leader.LeaguePoints)
	}
	if leader.Blowouts != 1 {
		t.Errorf("blowouts = %d, want 1", leader.Blowouts)
	}
	if out.Deltas["a"][1] != 7 {
		t.Errorf("blowout delta = %.1f, want +7", out.Deltas["a"][1])
	}
}

func TestComputeRoundRobin_SkipsUnconsolidatedRounds(t *testing.T) {
	// Two schedule rounds, but only the first scoring round is consolidated.
	schedule := []ScheduleRound{
		{{TeamA: models.Participant{TeamID: "a"}, TeamB: models.Participant{TeamID: "b"}}},
		{{TeamA: models.Participant{TeamID: "a"}, TeamB: models.Participant{TeamID: "b"}}},
	}
	format := models.RoundRobinFormat{StartRound: 10}
	rankings := rankingsFrom(map[int]models.RoundRanking{
		10: {{TeamID: "a", Points: 70}, {TeamID: "b", Points: 50}},
		11: {{TeamID: "a", Points: 10}, {TeamID: "b", Points: 90}},
	})

	out := ComputeRoundRobin(schedule, format, 10, rankings, models.DefaultRoundRobinPayout())

	if _, scored := out.Deltas["b"][11]; scored {
		t.Error("round 11 is beyond the consolidated window and must not settle")
	}
	if out.Standings[0].Played != 1 {
		t.Errorf("played = %d, want 1", out.Standings[0].Played)
	}
}

func TestComputeRoundRobin_UnavailableRoundIsSkippedNotZeroed(t *testing.T) {
	schedule := []ScheduleRound{
		{{TeamA: models.Participant{TeamID: "a"}, TeamB: models.Participant{TeamID: "b"}}},
		{{TeamA: models.Participant{TeamID: "a"}, TeamB: models.Participant{TeamID: "b"}}},
	}
	format := models.RoundRobinFormat{StartRound: 1}
	rankings := rankingsFrom(map[int]models.RoundRanking{
		// round 1 missing entirely
		2: {{TeamID: "a", Points: 70}, {TeamID: "b", Points: 50}},
	})

	out := ComputeRoundRobin(schedule, format, 2, rankings, models.DefaultRoundRobinPayout())

	if out.Standings[0].Played != 1 {
		t.Errorf("played = %d, want 1 (missing round skipped)", out.Standings[0].Played)
	}
	if _, settled := out.Deltas["a"][1]; settled {
		t.Error("a round with no ranking data must not settle as 0-0")
	}
}

func TestComputeRoundRobin_FixtureWithAbsentTeamExcluded(t *testing.T) {
	// b is missing from the round snapshot: the fixture never happened.
	schedule := pairSchedule("a", "b")
	format := models.RoundRobinFormat{StartRound: 1}
	rankings := rankingsFrom(map[int]models.RoundRanking{
		1: {{TeamID: "a", Points: 70}},
	})

	out := ComputeRoundRobin(schedule, format, 1, rankings, models.DefaultRoundRobinPayout())

	if len(out.Deltas) != 0 {
		t.Errorf("deltas = %v, want none for an excluded fixture", out.Deltas)
	}
	if len(out.Standings) != 0 {
		t.Errorf("standings = %v, want empty, the excluded fixture counts for nobody", out.Standings)
	}
}

func TestComputeRoundRobin_TableSortOrder(t *testing.T) {
	// c beats everyone, a and b split; score difference breaks their tie.
	schedule := []ScheduleRound{
		{
			{TeamA: models.Participant{TeamID: "a"}, TeamB: models.Participant{TeamID: "b"}},
		},
		{
			{TeamA: models.Participant{TeamID: "a"}, TeamB: models.Participant{TeamID: "c"}},
		},
		{
			{TeamA: models.Participant{TeamID: "b"}, TeamB: models.Participant{TeamID: "c"}},
		},
	}
	format := models.RoundRobinFormat{StartRound: 1}
	rankings := rankingsFrom(map[int]models.RoundRanking{
		1: {{TeamID: "a", Points: 80}, {TeamID: "b", Points: 60}},
		2: {{TeamID: "c", Points: 90}, {TeamID: "a", Points: 50}},
		3: {{TeamID: "c", Points: 75}, {TeamID: "b", Points: 75}},
	})

	out := ComputeRoundRobin(schedule, format, 3, rankings, models.DefaultRoundRobinPayout())

	if out.Standings[0].TeamID != "c" {
		t.Errorf("leader = %s, want c", out.Standings[0].TeamID)
	}
	// a: one win one loss (3 pts); b: one loss one draw (1 pt).
	if out.Standings[1].TeamID != "a" || out.Standings[2].TeamID != "b" {
		t.Errorf("table order = %s, %s, %s; want c, a, b",
			out.Standings[0].TeamID, out.Standings[1].TeamID, out.Standings[2].TeamID)
	}
}
