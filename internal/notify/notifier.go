package notify

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/pulsehealth/pulsehealth/internal/config"
	"github.com/pulsehealth/pulsehealth/pkg/types"
)

const defaultCooldown = 15 * time.Minute

// Notification is a single delivered notification event.
type Notification struct {
	Machine        string               `json:"machine"`
	Recommendation types.Recommendation `json:"recommendation"`
	SentAt         time.Time            `json:"sent_at"`
}

// Notifier delivers recommendations at or above a minimum priority to the
// configured webhook targets, suppressing repeats per machine+category
// within the cooldown.
//
// Notifier is safe for concurrent use.
type Notifier struct {
	minPriority types.Priority
	cooldown    time.Duration
	webhooks    []config.WebhookConfig

	mu       sync.Mutex
	lastSent map[string]time.Time // key: "machine:category"
	client   *http.Client

	now func() time.Time // injectable for deterministic tests
}

// New creates a Notifier from the notify configuration.
// A Notifier with no webhooks is valid — Publish becomes a no-op.
func New(cfg config.NotifyConfig) *Notifier {
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &Notifier{
		minPriority: types.Priority(cfg.MinPriority),
		cooldown:    cooldown,
		webhooks:    cfg.Webhooks,
		lastSent:    make(map[string]time.Time),
		client:      &http.Client{Timeout: 10 * time.Second},
		now:         time.Now,
	}
}

// Publish walks the report's recommendations and delivers every one at or
// above the minimum priority, unless the same machine+category notified
// within the cooldown. Delivery runs asynchronously; failures are logged
// and never affect the caller.
func (n *Notifier) Publish(report *types.AnalysisReport) {
	if len(n.webhooks) == 0 {
		return
	}

	for _, rec := range report.Recommendations {
		if rec.Priority.Rank() > n.minPriority.Rank() {
			continue
		}

		key := report.Machine + ":" + string(rec.Category)
		now := n.now()

		n.mu.Lock()
		if now.Sub(n.lastSent[key]) <= n.cooldown {
			n.mu.Unlock()
			continue
		}
		n.lastSent[key] = now
		n.mu.Unlock()

		slog.Warn("notify: recommendation published",
			"machine", report.Machine,
			"category", rec.Category,
			"priority", rec.Priority,
		)
		go n.deliver(&Notification{
			Machine:        report.Machine,
			Recommendation: rec,
			SentAt:         now,
		})
	}
}

// deliver sends nf to all configured targets.
// Errors are logged but do not affect the caller.
func (n *Notifier) deliver(nf *Notification) {
	for _, wh := range n.webhooks {
		url := wh.URL()
		if url == "" {
			continue
		}

		var err error
		switch wh.Type {
		case "slack":
			err = n.sendSlack(url, nf)
		case "teams":
			err = n.sendTeams(url, nf)
		case "http":
			err = n.sendHTTP(url, nf)
		default:
			slog.Warn("notify: unknown webhook type — skipping", "type", wh.Type)
			continue
		}

		if err != nil {
			slog.Error("notify: webhook delivery failed",
				"type", wh.Type,
				"machine", nf.Machine,
				"err", err,
			)
		} else {
			slog.Debug("notify: webhook delivered",
				"type", wh.Type,
				"machine", nf.Machine,
				"category", nf.Recommendation.Category,
			)
		}
	}
}
