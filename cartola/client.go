// Package cartola is the HTTP client for the external scoring provider:
// per-round league rankings, league rosters and the market status used
// to decide which rounds are final. Requests are rate limited with a
// token bucket to respect the upstream's limits.
package cartola

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/Dosada05/cartola-league/models"
)

const (
	// marketStatusTimeout bounds the auxiliary status call; the engine
	// falls back to a fixed value instead of blocking a computation.
	marketStatusTimeout = 3 * time.Second
)

// Client talks to the scoring provider's REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a provider client. requestsPerMinute caps the
// sustained request rate; bursts of one are allowed.
func NewClient(baseURL string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

type rankingEntryPayload struct {
	TimeID       string   `json:"time_id"`
	Pontos       *float64 `json:"pontos"`
	ClubeID      *int     `json:"clube_id,omitempty"`
	NomeCartola  string   `json:"nome_cartola"`
	NomeTime     string   `json:"nome_time"`
}

// RoundRanking fetches the ordered ranking of one (league, round) pair.
// Rounds with no data yet come back empty; the caller decides whether
// that is an error.
func (c *Client) RoundRanking(ctx context.Context, leagueID string, round int) (models.RoundRanking, error) {
	var payload []rankingEntryPayload
	path := fmt.Sprintf("/ligas/%s/rodadas?rodada=%d", leagueID, round)
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}

	ranking := make(models.RoundRanking, 0, len(payload))
	for _, e := range payload {
		if e.TimeID == "" || e.Pontos == nil {
			continue // rows without a score carry no information
		}
		ranking = append(ranking, models.RankedEntry{
			TeamID:      e.TimeID,
			Points:      *e.Pontos,
			DisplayName: e.NomeCartola,
			TeamName:    e.NomeTime,
			ClubID:      e.ClubeID,
		})
	}
	return ranking, nil
}

type rosterEntryPayload struct {
	TimeID      string `json:"time_id"`
	NomeCartola string `json:"nome_cartola"`
	NomeTime    string `json:"nome_time"`
	ClubeID     *int   `json:"clube_id,omitempty"`
}

// Roster fetches the league's participant list.
func (c *Client) Roster(ctx context.Context, leagueID string) ([]models.Participant, error) {
	var payload []rosterEntryPayload
	if err := c.get(ctx, "/ligas/"+leagueID+"/times", &payload); err != nil {
		return nil, err
	}

	roster := make([]models.Participant, 0, len(payload))
	for _, e := range payload {
		if e.TimeID == "" {
			continue
		}
		roster = append(roster, models.Participant{
			TeamID:      e.TimeID,
			DisplayName: e.NomeCartola,
			TeamName:    e.NomeTime,
			ClubID:      e.ClubeID,
		})
	}
	return roster, nil
}

type marketStatusPayload struct {
	RodadaAtual   int  `json:"rodada_atual"`
	MercadoAberto bool `json:"mercado_aberto"`
	StatusMercado int  `json:"status_mercado"`
}

// MarketStatus fetches the competition state. The call is bounded to a
// few seconds; on failure or expiry a fixed fallback (round 1, market
// closed) is returned so callers never block indefinitely.
func (c *Client) MarketStatus(ctx context.Context) models.MarketStatus {
	ctx, cancel := context.WithTimeout(ctx, marketStatusTimeout)
	defer cancel()

	var payload marketStatusPayload
	if err := c.get(ctx, "/mercado/status", &payload); err != nil {
		c.logger.Warn("market status unavailable, using fallback", slog.Any("error", err))
		return models.MarketStatus{CurrentRound: 1, MarketOpen: false}
	}

	return models.MarketStatus{
		CurrentRound: payload.RodadaAtual,
		MarketOpen:   payload.MercadoAberto || payload.StatusMercado == 1,
	}
}

// get performs a rate-limited GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
