package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
)

// ProductionLog records completed batches as spreadsheet rows:
// batch, brew style, tank, start, end, expected volume, actual volume, notes.
type ProductionLog struct {
	rows BatchRowAppender
}

// NewProductionLog appends completed batches through rows.
func NewProductionLog(rows BatchRowAppender) *ProductionLog {
	return &ProductionLog{rows: rows}
}

// RecordCompletedBatch appends one row describing a finished batch.
func (p *ProductionLog) RecordCompletedBatch(ctx context.Context, schedule models.ProductionSchedule, tank models.Tank) error {
	if err := p.rows.AppendBatchRow(ctx, productionRow(schedule, tank)); err != nil {
		return fmt.Errorf("record batch %s: %w", schedule.BatchNumber, err)
	}
	return nil
}

func productionRow(schedule models.ProductionSchedule, tank models.Tank) []interface{} {
	var actual interface{} = ""
	if schedule.ActualVolume != nil {
		actual = *schedule.ActualVolume
	}
	return []interface{}{
		schedule.BatchNumber,
		schedule.BrewStyle,
		tank.Name,
		schedule.StartDate.Format(time.DateOnly),
		schedule.EndDate.Format(time.DateOnly),
		schedule.ExpectedVolume,
		actual,
		schedule.Notes,
	}
}
