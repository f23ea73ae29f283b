package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/cartola-league/finance"
	"github.com/Dosada05/cartola-league/models"
)

type MonthlyService struct {
	settings SettingsProvider
	status   StatusProvider
	sessions *LeagueSessions
	logger   *slog.Logger
}

func NewMonthlyService(
	settings SettingsProvider,
	status StatusProvider,
	sessions *LeagueSessions,
	logger *slog.Logger,
) *MonthlyService {
	return &MonthlyService{
		settings: settings,
		status:   status,
		sessions: sessions,
		logger:   logger,
	}
}

// Leaderboard aggregates one monthly edition's consolidated rounds into
// its points table.
func (s *MonthlyService) Leaderboard(ctx context.Context, leagueID string, editionID int) (models.MonthlyStanding, error) {
	settings, err := s.settings.Settings(ctx, leagueID)
	if err != nil {
		return models.MonthlyStanding{}, err
	}
	edition, ok := findEdition(settings.MonthlyEditions, editionID)
	if !ok {
		return models.MonthlyStanding{}, ErrEditionNotFound
	}

	status := s.status.MarketStatus(ctx)
	lastConsolidated := status.LastConsolidatedRound()

	standing, err := s.resolve(ctx, leagueID, edition, lastConsolidated)
	if err != nil {
		return models.MonthlyStanding{}, err
	}
	return standing, nil
}

// Leaderboards resolves every configured monthly edition, in
// configuration order. Editions that have not started are returned with
// empty rows rather than omitted.
func (s *MonthlyService) Leaderboards(ctx context.Context, leagueID string) ([]models.MonthlyStanding, error) {
	settings, err := s.settings.Settings(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	status := s.status.MarketStatus(ctx)
	lastConsolidated := status.LastConsolidatedRound()

	standings := make([]models.MonthlyStanding, 0, len(settings.MonthlyEditions))
	for _, edition := range settings.MonthlyEditions {
		standing, err := s.resolve(ctx, leagueID, edition, lastConsolidated)
		if err != nil {
			return nil, err
		}
		standings = append(standings, standing)
	}
	return standings, nil
}

func (s *MonthlyService) resolve(ctx context.Context, leagueID string, edition models.Edition, lastConsolidated int) (models.MonthlyStanding, error) {
	rankings := s.sessions.For(leagueID)

	if edition.Status(lastConsolidated) != models.EditionNotStarted {
		to := edition.EndRound
		if to > lastConsolidated {
			to = lastConsolidated
		}
		if err := rankings.LoadRange(ctx, edition.StartRound, to, nil); err != nil {
			return models.MonthlyStanding{}, fmt.Errorf("failed to load round rankings: %w", err)
		}
	}

	lookup := func(round int) (models.RoundRanking, bool) {
		return rankings.Peek(round)
	}
	return finance.ComputeMonthly(edition, lastConsolidated, lookup), nil
}
