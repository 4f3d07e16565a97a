package poller

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/business/sync"
	"github.com/robfig/cron/v3"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

type syncService interface {
	Run(ctx context.Context) error
}

// Poller triggers full resync passes on a cron schedule. Passes never
// overlap: a tick firing while the previous pass is still running is
// skipped, which keeps the at-most-one-sync-in-flight contract of the sync
// service.
type Poller struct {
	logger      *zap.SugaredLogger
	sync        syncService
	schedule    string
	syncOnStart bool
}

func NewPoller(logger *zap.SugaredLogger, sync syncService, schedule string, syncOnStart bool) *Poller {
	return &Poller{
		logger:      logger,
		sync:        sync,
		schedule:    schedule,
		syncOnStart: syncOnStart,
	}
}

func (p *Poller) Start(ctx context.Context) error {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DiscardLogger),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	if _, err := c.AddFunc(p.schedule, func() { p.runOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", p.schedule, err)
	}

	c.Start()
	closer.Bind(func() {
		<-c.Stop().Done()
	})

	p.logger.Infow("poller started", "schedule", p.schedule)

	if p.syncOnStart {
		go p.runOnce(ctx)
	}

	return nil
}

func (p *Poller) runOnce(ctx context.Context) {
	// Run logs its own outcome; the poller only cares about skipped ticks.
	if err := p.sync.Run(ctx); errors.Is(err, sync.ErrSyncInProgress) {
		p.logger.Debugw("sync already running, tick skipped")
	}
}
