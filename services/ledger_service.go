package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/Dosada05/cartola-league/brackets"
	"github.com/Dosada05/cartola-league/finance"
	"github.com/Dosada05/cartola-league/models"
	"github.com/Dosada05/cartola-league/repositories"
)

const maxAdjustmentNameLen = 40

type LedgerService struct {
	settings    SettingsProvider
	status      StatusProvider
	roster      RosterProvider
	sessions    *LeagueSessions
	brackets    *BracketService
	snapshots   repositories.LedgerSnapshotRepository
	adjustments repositories.AdjustmentRepository
	hub         *brackets.Hub
	logger      *slog.Logger

	// One generation counter per (league, participant) selection. A
	// statement computed under an older generation is discarded in
	// favor of the newer request.
	generations sync.Map // string -> *atomic.Int64
}

func NewLedgerService(
	settings SettingsProvider,
	status StatusProvider,
	roster RosterProvider,
	sessions *LeagueSessions,
	bracketService *BracketService,
	snapshots repositories.LedgerSnapshotRepository,
	adjustments repositories.AdjustmentRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) *LedgerService {
	return &LedgerService{
		settings:    settings,
		status:      status,
		roster:      roster,
		sessions:    sessions,
		brackets:    bracketService,
		snapshots:   snapshots,
		adjustments: adjustments,
		hub:         hub,
		logger:      logger,
	}
}

func (s *LedgerService) generation(leagueID, teamID string) *atomic.Int64 {
	key := leagueID + "/" + teamID
	if g, ok := s.generations.Load(key); ok {
		return g.(*atomic.Int64)
	}
	g, _ := s.generations.LoadOrStore(key, new(atomic.Int64))
	return g.(*atomic.Int64)
}

// Statement returns the participant's full cash ledger up to the last
// consolidated round. A stored snapshot is served as-is while the
// consolidated round has not advanced past it; force recomputes
// regardless.
func (s *LedgerService) Statement(ctx context.Context, leagueID, teamID string, force bool) (*models.LedgerSnapshot, error) {
	settings, err := s.settings.Settings(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	status := s.status.MarketStatus(ctx)
	lastConsolidated := status.LastConsolidatedRound()

	if !force {
		snapshot, err := s.snapshots.Get(ctx, nil, leagueID, teamID)
		if err == nil && snapshot.LastRound >= lastConsolidated {
			return snapshot, nil
		}
		if err != nil && !errors.Is(err, repositories.ErrLedgerSnapshotNotFound) {
			s.logger.Warn("ledger snapshot lookup failed, recomputing",
				"league_id", leagueID, "team_id", teamID, "error", err)
		}
	}

	counter := s.generation(leagueID, teamID)
	gen := counter.Add(1)

	ledger, err := s.compute(ctx, settings, teamID, lastConsolidated)
	if err != nil {
		return nil, err
	}

	if counter.Load() != gen {
		return nil, ErrSuperseded
	}

	snapshot := &models.LedgerSnapshot{
		LeagueID:  leagueID,
		TeamID:    teamID,
		LastRound: lastConsolidated,
		Ledger:    *ledger,
		UpdatedAt: time.Now(),
	}
	if err := s.snapshots.Save(ctx, nil, snapshot); err != nil {
		s.logger.Warn("ledger snapshot save failed",
			"league_id", leagueID, "team_id", teamID, "error", err)
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(leagueID, brackets.EventMessage{
			Type:    brackets.EventLedgerUpdated,
			Payload: snapshot,
			RoomID:  leagueID,
		})
	}
	return snapshot, nil
}

func (s *LedgerService) compute(ctx context.Context, settings models.LeagueSettings, teamID string, lastConsolidated int) (*models.Ledger, error) {
	rankings := s.sessions.For(settings.LeagueID)

	total := lastConsolidated
	if err := rankings.LoadRange(ctx, 1, lastConsolidated, func(processed, _ int) {
		s.logger.Debug("loading round rankings",
			"league_id", settings.LeagueID, "processed", processed, "total", total)
	}); err != nil {
		return nil, fmt.Errorf("failed to load round rankings: %w", err)
	}

	roster, err := s.roster.Roster(ctx, settings.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load league roster: %w", err)
	}
	participant, ok := findParticipant(roster, teamID)
	if !ok {
		return nil, ErrParticipantNotFound
	}

	if err := finance.ValidateRankTable(settings.Payout.RankTable, len(roster)); err != nil {
		return nil, err
	}

	lookup := func(round int) (models.RoundRanking, bool) {
		return rankings.Peek(round)
	}

	var roundRobinDeltas map[int]float64
	if settings.RunsRoundRobin() {
		sort.Slice(roster, func(i, j int) bool { return roster[i].TeamID < roster[j].TeamID })
		schedule := finance.BuildSchedule(roster)
		outcome := finance.ComputeRoundRobin(schedule, *settings.RoundRobin, lastConsolidated, lookup, *settings.Payout.RoundRobin)
		roundRobinDeltas = outcome.Deltas[participant.TeamID]
	}

	knockoutDeltas := s.brackets.Deltas(ctx, settings, rankings, lastConsolidated)[participant.TeamID]

	adjustments, err := s.adjustments.ListByParticipant(ctx, nil, settings.LeagueID, teamID)
	if err != nil {
		s.logger.Warn("adjustment load failed, computing without adjustments",
			"league_id", settings.LeagueID, "team_id", teamID, "error", err)
		adjustments = nil
	}

	ledger := finance.ComputeLedger(finance.LedgerInput{
		ParticipantID:    participant.TeamID,
		Rounds:           lastConsolidated,
		Rankings:         lookup,
		RankTable:        settings.Payout.RankTable,
		RoundRobinDeltas: roundRobinDeltas,
		KnockoutDeltas:   knockoutDeltas,
		Adjustments:      adjustments,
	})
	return &ledger, nil
}

// Standings recomputes the round-robin classification table from the
// consolidated rounds.
func (s *LedgerService) Standings(ctx context.Context, leagueID string) ([]models.StandingRow, error) {
	settings, err := s.settings.Settings(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !settings.RunsRoundRobin() {
		return nil, nil
	}

	status := s.status.MarketStatus(ctx)
	lastConsolidated := status.LastConsolidatedRound()

	rankings := s.sessions.For(leagueID)
	if err := rankings.LoadRange(ctx, 1, lastConsolidated, nil); err != nil {
		return nil, fmt.Errorf("failed to load round rankings: %w", err)
	}

	roster, err := s.roster.Roster(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load league roster: %w", err)
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].TeamID < roster[j].TeamID })

	lookup := func(round int) (models.RoundRanking, bool) {
		return rankings.Peek(round)
	}
	schedule := finance.BuildSchedule(roster)
	outcome := finance.ComputeRoundRobin(schedule, *settings.RoundRobin, lastConsolidated, lookup, *settings.Payout.RoundRobin)
	return outcome.Standings, nil
}

// UpdateAdjustment validates and persists one editable ledger field,
// then drops the participant's stored snapshot so the next statement
// reflects the edit. A storage failure after validation is reported as
// ErrAdjustmentPersistFailed so callers can warn instead of failing.
func (s *LedgerService) UpdateAdjustment(ctx context.Context, leagueID, teamID string, adj models.Adjustment) error {
	if adj.Slot < 1 || adj.Slot > models.MaxAdjustmentSlots {
		return fmt.Errorf("%w: got %d", ErrAdjustmentSlotInvalid, adj.Slot)
	}
	if utf8.RuneCountInString(adj.Name) > maxAdjustmentNameLen {
		return fmt.Errorf("%w: %d runes, limit %d", ErrAdjustmentNameLong, utf8.RuneCountInString(adj.Name), maxAdjustmentNameLen)
	}

	if err := s.adjustments.Upsert(ctx, nil, leagueID, teamID, adj); err != nil {
		return fmt.Errorf("%w: %v", ErrAdjustmentPersistFailed, err)
	}
	s.dropSnapshot(ctx, leagueID, teamID)
	return nil
}

// InvalidateRound discards a cached round ranking and the participant's
// snapshot so the next statement refetches and recomputes.
func (s *LedgerService) InvalidateRound(ctx context.Context, leagueID, teamID string, round int) {
	s.sessions.For(leagueID).Invalidate(round)
	s.dropSnapshot(ctx, leagueID, teamID)
}

func (s *LedgerService) dropSnapshot(ctx context.Context, leagueID, teamID string) {
	if err := s.snapshots.Delete(ctx, nil, leagueID, teamID); err != nil &&
		!errors.Is(err, repositories.ErrLedgerSnapshotNotFound) {
		s.logger.Warn("ledger snapshot delete failed",
			"league_id", leagueID, "team_id", teamID, "error", err)
	}
}

func findParticipant(roster []models.Participant, teamID string) (models.Participant, bool) {
	for _, p := range roster {
		if p.TeamID == teamID {
			return p, true
		}
	}
	return models.Participant{}, false
}
