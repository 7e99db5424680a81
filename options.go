package fbohub

import (
	"time"

	"github.com/google/uuid"

	"github.com/propilot/fbohub/internal/metrics"
	"github.com/propilot/fbohub/internal/remote"
	"github.com/propilot/fbohub/internal/store"
	"github.com/propilot/fbohub/pkg/constants"
	"github.com/propilot/fbohub/pkg/errors"
	"github.com/propilot/fbohub/pkg/fbo"
)

// Option is a function that configures a Manager instance.
type Option func(*config) error

// config holds the assembled Manager configuration.
type config struct {
	store           store.Store
	remote          remote.Client
	metrics         *metrics.Metrics
	deviceLabel     string
	autoSyncEnabled bool
	syncInterval    time.Duration
}

func defaultConfig() *config {
	return &config{
		deviceLabel:  "device-" + uuid.NewString()[:8],
		syncInterval: constants.DefaultSyncInterval,
	}
}

// WithStore configures the local store. The default is an in-memory store
// that lives only as long as the process.
func WithStore(s store.Store) Option {
	return func(c *config) error {
		if s == nil {
			return errors.NewValidationError("store", nil, "store must not be nil")
		}
		c.store = s
		return nil
	}
}

// WithRemote configures the collaborative remote store. Without one the
// Manager runs offline: syncs reduce to local deduplication passes and
// edits stay queued for push.
func WithRemote(client remote.Client) Option {
	return func(c *config) error {
		c.remote = client
		return nil
	}
}

// WithMetrics configures the metrics set the Manager records into, letting
// the caller share one Prometheus registry between the Manager and an HTTP
// /metrics endpoint.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) error {
		c.metrics = m
		return nil
	}
}

// WithDeviceLabel configures the provenance label stamped onto interactive
// edits that do not carry their own. The default is a random per-process
// label.
func WithDeviceLabel(label string) Option {
	return func(c *config) error {
		if label == "" {
			return errors.NewValidationError("device_label", label, "must not be empty")
		}
		if label == fbo.ImportLabel {
			return errors.NewValidationError("device_label", label, "label is reserved for bulk imports")
		}
		c.deviceLabel = label
		return nil
	}
}

// WithAutoSync configures whether periodic background syncs start with the
// Manager.
func WithAutoSync(enabled bool) Option {
	return func(c *config) error {
		c.autoSyncEnabled = enabled
		return nil
	}
}

// WithSyncInterval configures how often auto-sync runs.
func WithSyncInterval(interval time.Duration) Option {
	return func(c *config) error {
		if interval <= 0 {
			return errors.NewValidationError("sync_interval", interval, "must be positive")
		}
		c.syncInterval = interval
		return nil
	}
}
