package worker

// closing_cron.go
// Background goroutine that renders the daily closing report once a day at a
// fixed wall-clock time and then asks the process to shut down.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultClosingInterval = time.Minute

// ClosingReporter renders the closing report of a calendar date.
type ClosingReporter interface {
	DailyClosing(ctx context.Context, day time.Time) (string, error)
}

// ClosingCronConfig holds all dependencies for the closing goroutine.
type ClosingCronConfig struct {
	Hour     int
	Minute   int
	Interval time.Duration // at most one minute, or the target minute can be skipped
	Reporter ClosingReporter
	Shutdown func() // nil keeps the process running after the close
	Now      func() time.Time
}

// ClosingTrigger decides when the daily close is due. It fires on the first
// check that falls in the target minute, at most once per calendar date.
type ClosingTrigger struct {
	hour, minute int
	firedOn      string
}

func NewClosingTrigger(hour, minute int) *ClosingTrigger {
	return &ClosingTrigger{hour: hour, minute: minute}
}

// Due reports whether the close must run at now and marks the date as done.
func (t *ClosingTrigger) Due(now time.Time) bool {
	if now.Hour() != t.hour || now.Minute() != t.minute {
		return false
	}
	day := now.Format("2006-01-02")
	if day == t.firedOn {
		return false
	}
	t.firedOn = day
	return true
}

// StartClosingCron launches the ticker goroutine. It respects ctx for
// graceful shutdown and returns a channel closed when the goroutine exits.
func StartClosingCron(ctx context.Context, cfg ClosingCronConfig) <-chan struct{} {
	if cfg.Interval <= 0 || cfg.Interval > defaultClosingInterval {
		cfg.Interval = defaultClosingInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	trigger := NewClosingTrigger(cfg.Hour, cfg.Minute)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Msgf("closing_cron: started, daily close at %02d:%02d", cfg.Hour, cfg.Minute)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("closing_cron: shutting down")
				return
			case <-ticker.C:
				now := cfg.Now()
				if !trigger.Due(now) {
					continue
				}
				runClosing(ctx, cfg, now)
				if cfg.Shutdown != nil {
					log.Info().Msg("closing_cron: daily close done, requesting shutdown")
					cfg.Shutdown()
					return
				}
			}
		}
	}()
	return done
}

func runClosing(ctx context.Context, cfg ClosingCronConfig, now time.Time) {
	path, err := cfg.Reporter.DailyClosing(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("closing_cron: daily closing report failed")
		return
	}
	log.Info().Str("path", path).Msg("closing_cron: daily closing report generated")
}
