package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/cartola-league/cache"
	"github.com/Dosada05/cartola-league/models"
)

func newMonthlyFixture(t *testing.T, settings models.LeagueSettings, lastConsolidated int) *MonthlyService {
	t.Helper()

	fetcher := &stubFetcher{ranking: fourTeamRankings(), horizon: lastConsolidated}
	sessions := NewLeagueSessions(func(leagueID string) RankingSource {
		return cache.NewRankingCache(leagueID, fetcher, discardLogger())
	})
	status := &stubStatus{status: models.MarketStatus{CurrentRound: lastConsolidated, MarketOpen: false}}

	return NewMonthlyService(NewStaticSettings(settings), status, sessions, discardLogger())
}

func TestLeaderboard_CompletedEdition(t *testing.T) {
	settings := fourTeamLeague()
	settings.MonthlyEditions = []models.Edition{
		{ID: 1, Name: "Melhor de Abril", StartRound: 2, EndRound: 4},
	}
	svc := newMonthlyFixture(t, settings, 10)

	standing, err := svc.Leaderboard(context.Background(), "liga", 1)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}

	if standing.Status != models.EditionCompleted {
		t.Errorf("status = %s, want %s", standing.Status, models.EditionCompleted)
	}
	// t1 scores 100 on each of the three window rounds.
	if standing.Rows[0].TeamID != "t1" || standing.Rows[0].TotalPoints != 300 {
		t.Errorf("leader = %+v, want t1 with 300", standing.Rows[0])
	}
}

func TestLeaderboard_UnknownEdition(t *testing.T) {
	svc := newMonthlyFixture(t, fourTeamLeague(), 10)

	_, err := svc.Leaderboard(context.Background(), "liga", 9)
	if !errors.Is(err, ErrEditionNotFound) {
		t.Errorf("err = %v, want ErrEditionNotFound", err)
	}
}

func TestLeaderboards_ResolvesEveryEditionInOrder(t *testing.T) {
	settings := fourTeamLeague()
	settings.MonthlyEditions = []models.Edition{
		{ID: 1, StartRound: 1, EndRound: 3},
		{ID: 2, StartRound: 4, EndRound: 6},
		{ID: 3, StartRound: 30, EndRound: 33},
	}
	svc := newMonthlyFixture(t, settings, 5)

	standings, err := svc.Leaderboards(context.Background(), "liga")
	if err != nil {
		t.Fatalf("leaderboards: %v", err)
	}

	if len(standings) != 3 {
		t.Fatalf("standings = %d, want 3", len(standings))
	}
	if standings[0].Status != models.EditionCompleted {
		t.Errorf("first edition status = %s, want completed", standings[0].Status)
	}
	if standings[1].Status != models.EditionInProgress {
		t.Errorf("second edition status = %s, want in progress", standings[1].Status)
	}
	if standings[2].Status != models.EditionNotStarted || len(standings[2].Rows) != 0 {
		t.Errorf("future edition = %+v, want empty and not started", standings[2])
	}
}
