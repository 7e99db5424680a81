package fbohub

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/propilot/fbohub/pkg/constants"
	"github.com/propilot/fbohub/pkg/errors"
	"github.com/propilot/fbohub/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoSyncer = (*manager)(nil)

// AutoSyncer provides controls for periodic background syncs.
type AutoSyncer interface {
	// AutoSyncOn begins periodic background syncs
	AutoSyncOn() error

	// AutoSyncOff stops periodic background syncs
	AutoSyncOff() error
}

// AutoSyncOn begins periodic background syncs of every known location.
func (m *manager) AutoSyncOn() error {
	if m.config.syncInterval <= 0 {
		return &errors.ValidationError{
			Field:   "syncInterval",
			Value:   m.config.syncInterval,
			Message: "sync interval must be positive",
		}
	}

	// Stop any existing loop to prevent resource leaks.
	if err := m.AutoSyncOff(); err != nil {
		return err
	}

	// Recreate stopCh since it was closed in AutoSyncOff.
	m.stopCh = make(chan struct{})

	m.syncTicker = time.NewTicker(m.config.syncInterval)

	ctx, cancel := context.WithCancel(context.Background())
	m.syncCancel = cancel

	m.background.Add(1)
	go func(parentCtx context.Context) {
		defer m.background.Done()
		for {
			select {
			case <-m.syncTicker.C:
				syncCtx, syncCancel := context.WithTimeout(parentCtx, constants.CommandTimeout)
				_, err := m.SyncAll(syncCtx)
				syncCancel()

				if err != nil {
					// A canceled context means we are shutting down.
					if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
						return
					}
					logging.Error().Err(err).Msg("Auto-sync failed")
				}
			case <-parentCtx.Done():
				return
			case <-m.stopCh:
				return
			}
		}
	}(ctx)

	return nil
}

// AutoSyncOff stops periodic background syncs.
func (m *manager) AutoSyncOff() error {
	if m.syncTicker != nil {
		m.syncTicker.Stop()
		m.syncTicker = nil
	}
	if m.syncCancel != nil {
		m.syncCancel()
		m.syncCancel = nil
	}
	select {
	case <-m.stopCh:
		// Already closed
	default:
		close(m.stopCh)
	}
	return nil
}
