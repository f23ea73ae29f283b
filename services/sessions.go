package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/Dosada05/cartola-league/cache"
	"github.com/Dosada05/cartola-league/models"
)

// RankingSource is the slice of the ranking cache the services need.
// Implemented by cache.RankingCache.
type RankingSource interface {
	Get(ctx context.Context, round int) (models.RoundRanking, error)
	Peek(round int) (models.RoundRanking, bool)
	LoadRange(ctx context.Context, from, to int, progress cache.ProgressFunc) error
	Invalidate(round int)
	MissingRounds() []int
}

// StatusProvider reports the scoring provider's competition state.
// Implemented by cartola.Client.
type StatusProvider interface {
	MarketStatus(ctx context.Context) models.MarketStatus
}

// RosterProvider fetches league rosters. Implemented by cartola.Client.
type RosterProvider interface {
	Roster(ctx context.Context, leagueID string) ([]models.Participant, error)
}

// SettingsProvider resolves a league's payout and edition configuration.
// The engine itself carries no knowledge of specific league identities.
type SettingsProvider interface {
	Settings(ctx context.Context, leagueID string) (models.LeagueSettings, error)
}

// StaticSettings is a SettingsProvider over a fixed set of leagues,
// registered at startup.
type StaticSettings struct {
	leagues map[string]models.LeagueSettings
}

func NewStaticSettings(leagues ...models.LeagueSettings) *StaticSettings {
	m := make(map[string]models.LeagueSettings, len(leagues))
	for _, l := range leagues {
		m[l.LeagueID] = l
	}
	return &StaticSettings{leagues: m}
}

func (s *StaticSettings) Settings(_ context.Context, leagueID string) (models.LeagueSettings, error) {
	settings, ok := s.leagues[leagueID]
	if !ok {
		return models.LeagueSettings{}, ErrLeagueNotConfigured
	}
	return settings, nil
}

// LoadStaticSettings reads the league registry from a JSON file: an
// array of LeagueSettings. Leagues without an explicit payout get the
// default 32-entrant shapes.
func LoadStaticSettings(path string) (*StaticSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read league registry: %w", err)
	}

	var leagues []models.LeagueSettings
	if err := json.Unmarshal(data, &leagues); err != nil {
		return nil, fmt.Errorf("failed to parse league registry %s: %w", path, err)
	}

	for i := range leagues {
		applyPayoutDefaults(&leagues[i])
	}
	return NewStaticSettings(leagues...), nil
}

func applyPayoutDefaults(s *models.LeagueSettings) {
	if s.Payout.RankTable == nil {
		s.Payout.RankTable = models.DefaultRankTable32()
	}
	if s.Payout.Knockout.Value == 0 {
		s.Payout.Knockout = models.DefaultKnockoutPayout()
	}
	if s.RoundRobin != nil && s.Payout.RoundRobin == nil {
		rr := models.DefaultRoundRobinPayout()
		s.Payout.RoundRobin = &rr
	}
}

// LeagueSessions hands out one ranking cache per league for the lifetime
// of the process. Caches are created lazily on first use.
type LeagueSessions struct {
	factory func(leagueID string) RankingSource

	mu       sync.Mutex
	sessions map[string]RankingSource
}

func NewLeagueSessions(factory func(leagueID string) RankingSource) *LeagueSessions {
	return &LeagueSessions{
		factory:  factory,
		sessions: make(map[string]RankingSource),
	}
}

// For returns the league's ranking cache, creating it on first use.
func (s *LeagueSessions) For(leagueID string) RankingSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	if src, ok := s.sessions[leagueID]; ok {
		return src
	}
	src := s.factory(leagueID)
	s.sessions[leagueID] = src
	return src
}
