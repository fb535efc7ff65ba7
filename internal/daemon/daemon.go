package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aircast-fm/aircast/internal/api"
	"github.com/aircast-fm/aircast/internal/app/analytics"
	"github.com/aircast-fm/aircast/internal/app/ingest"
	"github.com/aircast-fm/aircast/internal/app/rewards"
	"github.com/aircast-fm/aircast/internal/infra/events"
	"github.com/aircast-fm/aircast/internal/infra/registry"
	"github.com/aircast-fm/aircast/internal/infra/sqlite"
	"github.com/aircast-fm/aircast/internal/logging"
)

// Run assembles the engagement core from cfg and serves until ctx is
// cancelled.
func Run(ctx context.Context, cfg Config) error {
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log := logging.WithComponent("daemon")

	db, err := sqlite.Open(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	reg := registry.NewManager(db)
	if err := reg.Load(); err != nil {
		return fmt.Errorf("load listener registry: %w", err)
	}
	log.Info().Int("listeners", reg.Count()).Msg("listener registry loaded")

	hub := events.NewHub()

	rw := rewards.New(rewards.Config{
		LedgerCap: cfg.Rewards.LedgerCap,
		TopN:      cfg.Rewards.LeaderboardSize,
	}, reg, hub)

	an := analytics.New(analytics.Config{
		HistoryCap:  cfg.Analytics.SessionHistoryCap,
		HistoryDays: cfg.Analytics.HistoryDays,
		TopSongs:    cfg.Analytics.TopSongs,
	})

	disp := ingest.New(rw, an, db)

	if cfg.Storage.ReplayOnStart {
		n, err := disp.Replay(ctx)
		if err != nil {
			return fmt.Errorf("replay activity log: %w", err)
		}
		log.Info().Int("events", n).Msg("activity log replayed")
	}

	srv := api.NewServer(disp, rw, an, reg, hub)
	if cfg.API.Metrics {
		srv.EnableMetrics()
	}

	httpSrv := &http.Server{
		Addr:    cfg.API.Addr(),
		Handler: srv.Handler(),
	}

	go weeklySweep(ctx, rw, cfg.Rewards.SweepIntervalDuration())

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpSrv.Addr).Msg("api listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutCtx); err != nil {
			return fmt.Errorf("shutdown api: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve api: %w", err)
	}
}

// weeklySweep zeroes weekly totals when the ISO week rolls over. The check
// is cheap, so a short cadence is fine.
func weeklySweep(ctx context.Context, rw *rewards.Service, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rw.MaybeResetWeekly(now)
		}
	}
}
