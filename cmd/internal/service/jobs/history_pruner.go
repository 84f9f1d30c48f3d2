package jobs

import (
	"consultacnpj/cmd/internal/utils"
	"context"
	"time"

	"github.com/labstack/gommon/log"
)

const (
	DefaultRetention = 90 * 24 * time.Hour
	SweepInterval    = 1 * time.Hour
)

type LookupRepository interface {
	DeleteOlderThan(before int64) error
}

// HistoryPruner sweeps lookup-history rows older than the retention
// window on a fixed interval.
type HistoryPruner struct {
	historyRepo LookupRepository
	retention   time.Duration
	interval    time.Duration
}

func NewHistoryPruner(repo LookupRepository, retention time.Duration) *HistoryPruner {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &HistoryPruner{
		historyRepo: repo,
		retention:   retention,
		interval:    SweepInterval,
	}
}

func (p *HistoryPruner) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Info("History pruner cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping history pruner...")
			return
		case <-ticker.C:
			p.sweep()
		}
	}
}

func (p *HistoryPruner) sweep() {
	cutoff := utils.NowUTC() - p.retention.Milliseconds()

	err := p.historyRepo.DeleteOlderThan(cutoff)
	if err != nil {
		log.Errorf("Pruner: failed to delete expired history rows: %v", err)
		return
	}

	log.Debugf("Pruner: successfully swept history rows older than %d", cutoff)
}
