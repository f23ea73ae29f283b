package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/cartola-league/models"
)

var (
	ErrAdjustmentNotFound    = errors.New("adjustment field not found")
	ErrAdjustmentSlotInvalid = errors.New("adjustment slot must be between 1 and 4")
)

// AdjustmentRepository is the key-value store for the four user-editable
// ledger fields, keyed by (league, participant, slot).
type AdjustmentRepository interface {
	ListByParticipant(ctx context.Context, exec SQLExecutor, leagueID, teamID string) ([]models.Adjustment, error)
	Upsert(ctx context.Context, exec SQLExecutor, leagueID, teamID string, adj models.Adjustment) error
	Delete(ctx context.Context, exec SQLExecutor, leagueID, teamID string, slot int) error
}

type postgresAdjustmentRepository struct {
	db *sql.DB
}

func NewPostgresAdjustmentRepository(db *sql.DB) AdjustmentRepository {
	return &postgresAdjustmentRepository{db: db}
}

func (r *postgresAdjustmentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresAdjustmentRepository) ListByParticipant(ctx context.Context, exec SQLExecutor, leagueID, teamID string) ([]models.Adjustment, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT slot, name, value
		FROM ledger_adjustments
		WHERE league_id = $1 AND team_id = $2
		ORDER BY slot ASC`
	rows, err := executor.QueryContext(ctx, query, leagueID, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments for league %s team %s: %w", leagueID, teamID, err)
	}
	defer rows.Close()

	adjustments := make([]models.Adjustment, 0, models.MaxAdjustmentSlots)
	for rows.Next() {
		var a models.Adjustment
		if err := rows.Scan(&a.Slot, &a.Name, &a.Value); err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, rows.Err()
}

func (r *postgresAdjustmentRepository) Upsert(ctx context.Context, exec SQLExecutor, leagueID, teamID string, adj models.Adjustment) error {
	if adj.Slot < 1 || adj.Slot > models.MaxAdjustmentSlots {
		return fmt.Errorf("%w: got %d", ErrAdjustmentSlotInvalid, adj.Slot)
	}
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO ledger_adjustments (league_id, team_id, slot, name, value, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (league_id, team_id, slot)
		DO UPDATE SET name = EXCLUDED.name, value = EXCLUDED.value, updated_at = NOW()`
	_, err := executor.ExecContext(ctx, query, leagueID, teamID, adj.Slot, adj.Name, adj.Value)
	if err != nil {
		return fmt.Errorf("failed to upsert adjustment slot %d for team %s: %w", adj.Slot, teamID, err)
	}
	return nil
}

func (r *postgresAdjustmentRepository) Delete(ctx context.Context, exec SQLExecutor, leagueID, teamID string, slot int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM ledger_adjustments WHERE league_id = $1 AND team_id = $2 AND slot = $3`
	result, err := executor.ExecContext(ctx, query, leagueID, teamID, slot)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAdjustmentNotFound)
}
