package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dokonbot/dokonbot/internal/pkg/logging"
	"go.uber.org/zap"
)

// WebhookExporter POSTs each row as JSON to a configured endpoint (a sheet
// automation or any row-appending receiver). An empty URL disables it: every
// append becomes a log record, never an error.
type WebhookExporter struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

func NewWebhookExporter(url string, logger *zap.Logger) *WebhookExporter {
	if logger == nil {
		logger = zap.L()
	}
	return &WebhookExporter{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    logger.With(zap.String("component", "export_webhook")),
	}
}

func (e *WebhookExporter) Append(ctx context.Context, row Row) error {
	logger := logging.FromContext(ctx)
	if e.url == "" {
		logger.Warn("export_skipped_unconfigured",
			zap.String("seller", row.SellerName),
			zap.String("product", row.ProductName),
		)
		return nil
	}

	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("export webhook: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("export webhook: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("export webhook: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("export webhook: unexpected status %d", resp.StatusCode)
	}

	e.log.Info("export_row_appended",
		zap.String("seller", row.SellerName),
		zap.String("product", row.ProductName),
		zap.Int64("quantity", row.Quantity),
	)
	return nil
}
