package ledger

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Sweeper periodically reclaims expired holds from a MemoryLedger. Lazy
// expiry already frees seats on the next touching operation; the sweep
// covers shows that nothing touches again.
type Sweeper struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
}

func NewSweeper(ledger *MemoryLedger, interval time.Duration, logger *slog.Logger) (*Sweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			swept := ledger.Sweep()
			if swept > 0 {
				logger.Info("swept expired holds", "count", swept)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	return &Sweeper{scheduler: scheduler, logger: logger}, nil
}

func (s *Sweeper) Start() {
	s.scheduler.Start()
}

func (s *Sweeper) Shutdown() error {
	return s.scheduler.Shutdown()
}
