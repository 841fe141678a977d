// Package notify pushes operator notifications over an ntfy-style
// topic.
package notify

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tn-afk/cme-event-contracts-scraper/internal/config"
)

const notifyTitle = "CME Event Contracts Scraper"

// Notifier posts plain-text messages to the configured topic. Sending
// is best effort: delivery failures are logged and never fail a pass.
type Notifier struct {
	cfg    config.NotifyConfig
	client *http.Client
}

// New creates a Notifier with the given config. An empty topic URL
// disables sending.
func New(cfg config.NotifyConfig) *Notifier {
	return &Notifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Failure notifies the operator about a failed pass.
func (n *Notifier) Failure(ctx context.Context, message string) {
	if n.cfg.TopicURL == "" {
		return
	}

	if err := n.send(ctx, message); err != nil {
		zap.L().Error("notify: failed to send notification", zap.Error(err))
		return
	}
	zap.L().Info("notify: notification sent", zap.String("topic", n.cfg.TopicURL))
}

func (n *Notifier) send(ctx context.Context, message string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.TopicURL, strings.NewReader(message))
	if err != nil {
		return eris.Wrap(err, "notify: create request")
	}
	req.Header.Set("Title", notifyTitle)
	if n.cfg.Priority != "" {
		req.Header.Set("Priority", n.cfg.Priority)
	}
	if n.cfg.Email != "" {
		req.Header.Set("Email", n.cfg.Email)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "notify: post")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return eris.Errorf("notify: topic returned status %d", resp.StatusCode)
	}
	return nil
}
