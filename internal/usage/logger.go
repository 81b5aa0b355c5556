package usage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/config"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/entity"
	"github.com/PatrickFoster659/pdfoster-creative-api/internal/model"
)

const sinkTable = "usage_events"

// Logger writes usage events to an external PostgREST-style sink and,
// when a repository is configured, mirrors them into the local database.
// Every write is best-effort: failures are logged and never returned.
type Logger struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	repo       model.Repository
}

func NewLogger(cfg config.Config, repo model.Repository) *Logger {
	return &Logger{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.UsageSinkURL), "/"),
		serviceKey: strings.TrimSpace(cfg.UsageSinkServiceKey),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		repo:       repo,
	}
}

// Enabled reports whether any usage destination is configured, the external
// sink or the database mirror. Callers may skip Record entirely when neither
// is.
func (l *Logger) Enabled() bool {
	return l != nil && (l.baseURL != "" || l.repo != nil)
}

// Record persists one usage event. It never returns an error; billing
// accuracy is not guaranteed by this service.
func (l *Logger) Record(ctx context.Context, event entity.UsageEvent) {
	if l == nil {
		return
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	l.writeSink(ctx, event)
	l.mirror(ctx, event)
}

func (l *Logger) writeSink(ctx context.Context, event entity.UsageEvent) {
	if l.baseURL == "" || l.serviceKey == "" {
		logrus.WithFields(logrus.Fields{
			"customer_id": event.CustomerID,
		}).Warn("usage sink not configured, skipping usage log")
		return
	}

	bs, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Warn("usage_log_marshal_failed")
		return
	}

	url := l.baseURL + "/rest/v1/" + sinkTable
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bs))
	if err != nil {
		logrus.WithError(err).Warn("usage_log_request_failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", l.serviceKey)
	req.Header.Set("Authorization", "Bearer "+l.serviceKey)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"customer_id": event.CustomerID,
		}).Warn("usage_log_failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		logrus.WithFields(logrus.Fields{
			"status":      resp.StatusCode,
			"body":        strings.TrimSpace(string(body)),
			"customer_id": event.CustomerID,
		}).Warn("usage_log_rejected")
		return
	}

	logrus.WithFields(logrus.Fields{
		"customer_id": event.CustomerID,
		"cost_key":    event.CostKey,
	}).Info("usage_log_written")
}

func (l *Logger) mirror(ctx context.Context, event entity.UsageEvent) {
	if l.repo == nil {
		return
	}

	row := entity.DbUsageEvent{
		CustomerID: event.CustomerID,
		Type:       event.Type,
		Cost:       event.Cost,
		CostKey:    event.CostKey,
		CreatedAt:  event.CreatedAt,
	}
	if err := l.repo.CreateUsageEvent(ctx, &row); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"customer_id": event.CustomerID,
		}).Warn("usage_log_mirror_failed")
	}
}
