package resyncjob

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

type TriggerConfig struct {
	Interval time.Duration
	Logger   log.FieldLogger
}

func DefaultTriggerConfig() TriggerConfig {
	return TriggerConfig{
		Interval: 30 * time.Second,
		Logger:   log.StandardLogger(),
	}
}

// TriggerWithConfig calls fn on every tick until ctx is done. A failed
// attempt is logged and retried on the next tick.
func TriggerWithConfig(ctx context.Context, fn func() error, config TriggerConfig) {
	if config.Logger == nil {
		config.Logger = log.StandardLogger()
	}

	ticker := time.NewTicker(config.Interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(); err != nil {
				failures++
				config.Logger.WithError(err).
					WithField("attempt", failures).
					Warn("task state resync failed")
				continue
			}
			failures = 0
		}
	}
}

func Trigger(ctx context.Context, fn func() error) {
	TriggerWithConfig(ctx, fn, DefaultTriggerConfig())
}
