package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/cartola-league/storage"
)

// ExportService publishes computed artifacts (ledger statements,
// brackets, leaderboards) as JSON objects in the public bucket so they
// can be shared outside the dashboard.
type ExportService struct {
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewExportService(uploader storage.FileUploader, logger *slog.Logger) *ExportService {
	return &ExportService{uploader: uploader, logger: logger}
}

// ExportResult is the public location of one published artifact.
type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Publish uploads the payload as a timestamped JSON object under
// exports/{league}/{kind}/ and returns its public location.
func (s *ExportService) Publish(ctx context.Context, leagueID, kind string, payload interface{}) (*ExportResult, error) {
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s export: %w", kind, err)
	}

	key := fmt.Sprintf("exports/%s/%s/%s.json", leagueID, kind, time.Now().UTC().Format("20060102-150405"))
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s export: %w", kind, err)
	}

	s.logger.Info("export published", "league_id", leagueID, "kind", kind, "key", result.Key)
	return &ExportResult{Key: result.Key, URL: result.Location}, nil
}
