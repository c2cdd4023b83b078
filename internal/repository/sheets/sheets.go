package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/brewhouse/internal/config"
)

// productionColumns is the width of a production log row.
const productionColumns = 8

// ErrNoRange is returned when the production sheet has no target range configured.
var ErrNoRange = errors.New("production range not configured")

// BatchRowAppender appends finished-batch rows to the production log.
type BatchRowAppender interface {
	AppendBatchRow(ctx context.Context, row []interface{}) error
}

// ProductionSheet appends batch rows to one range of a Google spreadsheet.
type ProductionSheet struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewProductionSheet opens the spreadsheet named in cfg with the service account
// credentials file. Rows go to cfg.ProductionRange.
func NewProductionSheet(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*ProductionSheet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProductionRange == "" {
		return nil, ErrNoRange
	}

	svc, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("init sheets client: %w", err)
	}

	return &ProductionSheet{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.ProductionRange,
		logger:        logger,
	}, nil
}

// Range is the A1 range rows are appended to.
func (p *ProductionSheet) Range() string { return p.sheetRange }

// AppendBatchRow adds row below the last filled line of the production range.
func (p *ProductionSheet) AppendBatchRow(ctx context.Context, row []interface{}) error {
	payload, err := batchValueRange(row)
	if err != nil {
		return err
	}

	resp, err := p.values.Append(p.spreadsheetID, p.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append production row to %s: %w", p.sheetRange, err)
	}

	fields := []zap.Field{zap.String("range", p.sheetRange), zap.Any("batch", row[0])}
	if resp.Updates != nil {
		fields = append(fields, zap.String("updated_range", resp.Updates.UpdatedRange))
	}
	p.logger.Debug("production row appended", fields...)
	return nil
}

// batchValueRange wraps a single production row, rejecting rows of the wrong width
// so a column shift never reaches the sheet.
func batchValueRange(row []interface{}) (*sheetsapi.ValueRange, error) {
	if len(row) != productionColumns {
		return nil, fmt.Errorf("production row has %d columns, want %d", len(row), productionColumns)
	}
	return &sheetsapi.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{row},
	}, nil
}
