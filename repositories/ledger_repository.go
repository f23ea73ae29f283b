package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/cartola-league/models"
)

var ErrLedgerSnapshotNotFound = errors.New("ledger snapshot not found")

// LedgerSnapshotRepository persists computed ledgers per (league,
// participant) so an unchanged season window is served from storage
// instead of being recomputed.
type LedgerSnapshotRepository interface {
	Get(ctx context.Context, exec SQLExecutor, leagueID, teamID string) (*models.LedgerSnapshot, error)
	Save(ctx context.Context, exec SQLExecutor, snapshot *models.LedgerSnapshot) error
	Delete(ctx context.Context, exec SQLExecutor, leagueID, teamID string) error
}

type postgresLedgerSnapshotRepository struct {
	db *sql.DB
}

func NewPostgresLedgerSnapshotRepository(db *sql.DB) LedgerSnapshotRepository {
	return &postgresLedgerSnapshotRepository{db: db}
}

func (r *postgresLedgerSnapshotRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresLedgerSnapshotRepository) Get(ctx context.Context, exec SQLExecutor, leagueID, teamID string) (*models.LedgerSnapshot, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT last_round, ledger, updated_at
		FROM ledger_snapshots
		WHERE league_id = $1 AND team_id = $2`

	snapshot := models.LedgerSnapshot{LeagueID: leagueID, TeamID: teamID}
	var ledgerJSON []byte
	err := executor.QueryRowContext(ctx, query, leagueID, teamID).
		Scan(&snapshot.LastRound, &ledgerJSON, &snapshot.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLedgerSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get ledger snapshot for team %s: %w", teamID, err)
	}

	if err := json.Unmarshal(ledgerJSON, &snapshot.Ledger); err != nil {
		// A snapshot that no longer parses is worthless; report it as
		// absent so the caller recomputes instead of failing.
		return nil, ErrLedgerSnapshotNotFound
	}
	return &snapshot, nil
}

func (r *postgresLedgerSnapshotRepository) Save(ctx context.Context, exec SQLExecutor, snapshot *models.LedgerSnapshot) error {
	executor := r.getExecutor(exec)
	ledgerJSON, err := json.Marshal(snapshot.Ledger)
	if err != nil {
		return fmt.Errorf("failed to encode ledger snapshot: %w", err)
	}
	if snapshot.UpdatedAt.IsZero() {
		snapshot.UpdatedAt = time.Now()
	}

	query := `
		INSERT INTO ledger_snapshots (league_id, team_id, last_round, ledger, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (league_id, team_id)
		DO UPDATE SET last_round = EXCLUDED.last_round, ledger = EXCLUDED.ledger, updated_at = EXCLUDED.updated_at`
	_, err = executor.ExecContext(ctx, query,
		snapshot.LeagueID, snapshot.TeamID, snapshot.LastRound, ledgerJSON, snapshot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save ledger snapshot for team %s: %w", snapshot.TeamID, err)
	}
	return nil
}

func (r *postgresLedgerSnapshotRepository) Delete(ctx context.Context, exec SQLExecutor, leagueID, teamID string) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM ledger_snapshots WHERE league_id = $1 AND team_id = $2`
	result, err := executor.ExecContext(ctx, query, leagueID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrLedgerSnapshotNotFound)
}
