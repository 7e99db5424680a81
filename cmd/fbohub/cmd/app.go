package cmd

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/propilot/fbohub"
	"github.com/propilot/fbohub/internal/metrics"
	"github.com/propilot/fbohub/internal/remote"
	"github.com/propilot/fbohub/internal/store"
	"github.com/propilot/fbohub/pkg/logging"
)

// app bundles a manager with the resources behind it so commands can tear
// everything down in one call.
type app struct {
	manager  fbohub.Manager
	registry *prometheus.Registry
	mongo    *mongo.Client
}

// newApp assembles a manager from the resolved configuration. The store
// defaults to SQLite at --store; ":memory:" selects the in-memory store.
// A remote is only attached when --remote-uri is set.
func newApp(ctx context.Context, extra ...fbohub.Option) (*app, error) {
	registry := prometheus.NewRegistry()

	opts := []fbohub.Option{
		fbohub.WithMetrics(metrics.New(registry)),
	}

	if path := viper.GetString("store"); path != "" && path != ":memory:" {
		st, err := store.NewSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fbohub.WithStore(st))
	}

	if device := viper.GetString("device"); device != "" {
		opts = append(opts, fbohub.WithDeviceLabel(device))
	}

	var client *mongo.Client
	if uri := viper.GetString("remote-uri"); uri != "" {
		var err error
		client, err = remote.NewMongoClient(ctx, uri)
		if err != nil {
			return nil, err
		}
		db := client.Database(viper.GetString("remote-db"))
		opts = append(opts, fbohub.WithRemote(remote.NewMongo(ctx, db)))
	}
	opts = append(opts, extra...)

	m, err := fbohub.New(opts...)
	if err != nil {
		if client != nil {
			_ = client.Disconnect(ctx)
		}
		return nil, err
	}
	return &app{manager: m, registry: registry, mongo: client}, nil
}

// close releases the manager and its remote connection.
func (a *app) close(ctx context.Context) {
	if err := a.manager.Close(); err != nil {
		logging.Warn().Err(err).Msg("Closing manager")
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			logging.Warn().Err(err).Msg("Disconnecting remote store")
		}
	}
}
