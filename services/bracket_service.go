package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/cartola-league/brackets"
	"github.com/Dosada05/cartola-league/finance"
	"github.com/Dosada05/cartola-league/models"
)

type BracketService struct {
	settings SettingsProvider
	status   StatusProvider
	sessions *LeagueSessions
	hub      *brackets.Hub
	logger   *slog.Logger
}

func NewBracketService(
	settings SettingsProvider,
	status StatusProvider,
	sessions *LeagueSessions,
	hub *brackets.Hub,
	logger *slog.Logger,
) *BracketService {
	return &BracketService{
		settings: settings,
		status:   status,
		sessions: sessions,
		hub:      hub,
		logger:   logger,
	}
}

// ResolveEdition recomputes a knockout edition's bracket from the
// current consolidated rankings and broadcasts the result to the
// league's room.
func (s *BracketService) ResolveEdition(ctx context.Context, leagueID string, editionID int) (models.Bracket, error) {
	settings, err := s.settings.Settings(ctx, leagueID)
	if err != nil {
		return models.Bracket{}, err
	}

	edition, ok := findEdition(settings.KnockoutEditions, editionID)
	if !ok {
		return models.Bracket{}, ErrEditionNotFound
	}

	status := s.status.MarketStatus(ctx)
	lastConsolidated := status.LastConsolidatedRound()

	bracket, err := s.resolve(ctx, settings, edition, s.sessions.For(leagueID), lastConsolidated)
	if err != nil {
		return models.Bracket{}, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(leagueID, brackets.EventMessage{
			Type:    brackets.EventBracketUpdated,
			Payload: bracket,
			RoomID:  leagueID,
		})
	}
	return bracket, nil
}

// resolve walks the five fases in order, pairing each from the previous
// fase's winners and stopping at the first pending one.
func (s *BracketService) resolve(
	ctx context.Context,
	settings models.LeagueSettings,
	edition models.Edition,
	rankings RankingSource,
	lastConsolidated int,
) (models.Bracket, error) {
	if lastConsolidated < edition.DefinitionRound {
		return models.Bracket{}, fmt.Errorf("%w: seed round %d not yet consolidated", ErrEditionNotStarted, edition.DefinitionRound)
	}

	seed, err := rankings.Get(ctx, edition.DefinitionRound)
	if err != nil {
		return models.Bracket{}, fmt.Errorf("%w: round %d: %v", ErrSeedUnavailable, edition.DefinitionRound, err)
	}

	matches, err := brackets.FirstStagePairings(seed)
	if err != nil {
		return models.Bracket{}, err
	}

	bracket := models.Bracket{
		LeagueID: settings.LeagueID,
		Edition:  edition,
	}

	for i, stage := range models.Stages {
		stageRound := edition.StageRound(i)

		var scores models.RoundRanking
		if stageRound <= lastConsolidated {
			scores, err = rankings.Get(ctx, stageRound)
			if err != nil {
				// A consolidated round with no ranking data still
				// resolves, purely on seed rank.
				s.logger.Warn("stage round ranking unavailable, deciding by seed",
					"league_id", settings.LeagueID,
					"edition_id", edition.ID,
					"round", stageRound,
					"error", err)
				bracket.PartialData = true
			}
		}

		resolved := brackets.ResolveStage(matches, scores, stageRound, lastConsolidated)
		bracket.Stages = append(bracket.Stages, models.BracketStage{
			Stage:   stage,
			Round:   stageRound,
			Matches: resolved,
		})

		if resolved[0].Outcome.Kind == models.OutcomePending {
			break
		}

		if stage == models.StageFinal {
			winner, _ := resolved[0].WinnerSide()
			bracket.Complete = true
			bracket.Champion = &winner
			break
		}

		matches, err = brackets.NextStagePairings(resolved, models.Stages[i+1])
		if err != nil {
			return models.Bracket{}, err
		}
	}

	return bracket, nil
}

// Deltas resolves every knockout edition of the league and merges the
// per-round settlement deltas of all decided fixtures, keyed by team.
// Editions whose seed round is not consolidated yet are skipped; a
// league misconfiguration on one edition does not sink the others.
func (s *BracketService) Deltas(
	ctx context.Context,
	settings models.LeagueSettings,
	rankings RankingSource,
	lastConsolidated int,
) map[string]map[int]float64 {
	merged := make(map[string]map[int]float64)

	for _, edition := range settings.KnockoutEditions {
		bracket, err := s.resolve(ctx, settings, edition, rankings, lastConsolidated)
		if err != nil {
			if !errors.Is(err, ErrEditionNotStarted) {
				s.logger.Warn("skipping knockout edition in settlement",
					"league_id", settings.LeagueID,
					"edition_id", edition.ID,
					"error", err)
			}
			continue
		}

		for _, stage := range bracket.Stages {
			for team, rounds := range finance.KnockoutDeltas(stage.Matches, settings.Payout.Knockout) {
				if merged[team] == nil {
					merged[team] = make(map[int]float64)
				}
				for round, v := range rounds {
					merged[team][round] += v
				}
			}
		}
	}
	return merged
}

func findEdition(editions []models.Edition, id int) (models.Edition, bool) {
	for _, e := range editions {
		if e.ID == id {
			return e, true
		}
	}
	return models.Edition{}, false
}
