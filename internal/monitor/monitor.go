package monitor

import (
	"context"
	"sync"
	"time"

	monitorconfig "github.com/trovehq/prowler/internal/config/monitor"
	"github.com/trovehq/prowler/internal/database"
	"github.com/trovehq/prowler/internal/logger"
)

// State is the monitoring loop's externally visible state.
type State string

// Loop states. The loop is Idle while monitoring is switched off,
// Running while a cycle is in progress and Sleeping between cycles.
const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateSleeping State = "sleeping"
)

// Monitor drives the recurring discovery cycle. One cycle processes a
// snapshot of the active watchlist; influencers added mid-cycle are
// picked up next cycle.
type Monitor struct {
	pipeline    *Pipeline
	influencers database.InfluencerRepositoryInterface
	configs     database.ConfigRepositoryInterface
	cfg         *monitorconfig.Config
	logger      logger.Interface

	mu    sync.RWMutex
	state State
}

// New creates a monitor.
func New(
	pipeline *Pipeline,
	influencers database.InfluencerRepositoryInterface,
	configs database.ConfigRepositoryInterface,
	cfg *monitorconfig.Config,
	log logger.Interface,
) *Monitor {
	return &Monitor{
		pipeline:    pipeline,
		influencers: influencers,
		configs:     configs,
		cfg:         cfg,
		logger:      log.WithComponent("monitor"),
		state:       StateIdle,
	}
}

// State returns the loop's current state.
func (m *Monitor) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Monitor) setState(state State) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

// Run blocks until the context is cancelled. While monitoring is switched
// off in the database it polls the config at the idle interval; while on,
// it runs a cycle and then sleeps for the configured interval. The
// interval is re-read every iteration so control plane changes take
// effect without a restart.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitoring loop started",
		"idle_poll_interval", m.cfg.IdlePollInterval,
		"influencer_delay", m.cfg.InfluencerDelay,
	)

	for {
		cfg, err := m.configs.Get(ctx)
		if err != nil {
			m.logger.WithError(err).Error("failed to read monitor config")
			if !m.sleep(ctx, m.cfg.IdlePollInterval) {
				return ctx.Err()
			}
			continue
		}

		if !cfg.IsActive {
			m.setState(StateIdle)
			if !m.sleep(ctx, m.cfg.IdlePollInterval) {
				return ctx.Err()
			}
			continue
		}

		m.setState(StateRunning)
		m.runCycle(ctx)

		m.setState(StateSleeping)
		m.logger.Info("cycle finished, sleeping", "interval", cfg.Interval())
		if !m.sleep(ctx, cfg.Interval()) {
			return ctx.Err()
		}
	}
}

// runCycle processes every influencer in the current active watchlist
// snapshot. A failing influencer never stops the cycle; its result is
// already logged by the pipeline.
func (m *Monitor) runCycle(ctx context.Context) {
	watchlist, err := m.influencers.GetActiveWatchlist(ctx)
	if err != nil {
		m.logger.WithError(err).Error("failed to load watchlist, skipping cycle")
		return
	}

	if len(watchlist) == 0 {
		m.logger.Info("watchlist is empty, nothing to do")
		return
	}

	m.logger.Info("starting cycle", "influencers", len(watchlist))
	start := time.Now()
	saved := 0

	for i, influencer := range watchlist {
		if ctx.Err() != nil {
			m.logger.Info("cycle interrupted", "processed", i, "total", len(watchlist))
			return
		}

		result := m.pipeline.Process(ctx, influencer.Handle, influencer.Platform)
		saved += result.ProductsSaved

		// Fixed pause between influencers, but not after the last one.
		if i < len(watchlist)-1 {
			if !m.sleep(ctx, m.cfg.InfluencerDelay) {
				return
			}
		}
	}

	m.logger.WithDuration(time.Since(start)).Info("cycle complete",
		"influencers", len(watchlist),
		"products_saved", saved,
	)
}

// sleep waits for d or until the context is cancelled. Returns false on
// cancellation.
func (m *Monitor) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
