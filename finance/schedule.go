package finance

import "github.com/Dosada05/cartola-league/models"

// Fixture pairs two participants for one schedule round.
type Fixture struct {
	TeamA models.Participant
	TeamB models.Participant
}

// ScheduleRound is the set of fixtures played on one schedule round.
type ScheduleRound []Fixture

// BuildSchedule generates an all-play-all schedule with the circle
// method: fix the first entrant, rotate the rest one seat per round. An
// odd entrant count gets a phantom bye seat; fixtures against the bye
// are omitted, so that entrant rests for the round.
func BuildSchedule(participants []models.Participant) []ScheduleRound {
	n := len(participants)
	if n < 2 {
		return nil
	}

	seats := make([]*models.Participant, 0, n+1)
	for i := range participants {
		p := participants[i]
		seats = append(seats, &p)
	}
	if n%2 != 0 {
		seats = append(seats, nil) // bye
		n++
	}

	rounds := make([]ScheduleRound, 0, n-1)
	for r := 0; r < n-1; r++ {
		round := make(ScheduleRound, 0, n/2)
		for i := 0; i < n/2; i++ {
			a := seats[i]
			b := seats[n-1-i]
			if a != nil && b != nil {
				round = append(round, Fixture{TeamA: *a, TeamB: *b})
			}
		}
		rounds = append(rounds, round)

		// Rotate every seat but the first.
		last := seats[n-1]
		copy(seats[2:], seats[1:n-1])
		seats[1] = last
	}
	return rounds
}

// FixtureFor finds the fixture involving teamID on one schedule round.
func (r ScheduleRound) FixtureFor(teamID string) (Fixture, bool) {
	for _, f := range r {
		if f.TeamA.TeamID == teamID || f.TeamB.TeamID == teamID {
			return f, true
		}
	}
	return Fixture{}, false
}
