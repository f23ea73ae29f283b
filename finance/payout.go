package finance

import (
	"errors"
	"fmt"

	"github.com/Dosada05/cartola-league/models"
)

var ErrPayoutTableMismatch = errors.New("rank payout table does not match entrant count")

// ValidateRankTable checks that the active payout table's domain covers
// the league's entrant count. The table is a per-league configuration
// input; the engine never infers it from round size.
func ValidateRankTable(table models.RankPayoutTable, entrants int) error {
	if table.Size() != entrants {
		return fmt.Errorf("%w: table covers %d positions, league has %d entrants",
			ErrPayoutTableMismatch, table.Size(), entrants)
	}
	return nil
}
