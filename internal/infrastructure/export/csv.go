package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CSVExporter appends rows to a local CSV file, one line per committed
// assignment, in the same seven-column order as the external sheet.
type CSVExporter struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

func NewCSVExporter(path string, logger *zap.Logger) *CSVExporter {
	if logger == nil {
		logger = zap.L()
	}
	return &CSVExporter{
		path: path,
		log:  logger.With(zap.String("component", "export_csv")),
	}
}

func (e *CSVExporter) Append(ctx context.Context, row Row) error {
	_ = ctx
	e.mu.Lock()
	defer e.mu.Unlock()

	f, err := os.OpenFile(e.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("export csv: open: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := []string{
		row.Timestamp.Format(time.DateTime),
		row.SellerName,
		row.ProductName,
		strconv.FormatInt(row.Quantity, 10),
		strconv.FormatInt(row.UnitPrice, 10),
		strconv.FormatInt(row.TotalCost, 10),
		row.Note,
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("export csv: write: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export csv: flush: %w", err)
	}

	e.log.Debug("export_row_appended", zap.String("path", e.path))
	return nil
}
