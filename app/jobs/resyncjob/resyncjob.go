// Package resyncjob retries failed task state writes in the background so a
// storage outage heals without waiting for the next mutation.
package resyncjob

import (
	"context"
	"sync"
)

// Resyncer is implemented by taskstore.Store.
type Resyncer interface {
	Dirty() bool
	Resync(ctx context.Context) error
}

type TriggerFunc func(context.Context, func() error)

type ResyncJobConfig struct {
	Trigger TriggerFunc
}

type ResyncJob struct {
	config ResyncJobConfig
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New() *ResyncJob {
	return NewWithConfig(ResyncJobConfig{
		Trigger: Trigger,
	})
}

func NewWithConfig(cfg ResyncJobConfig) *ResyncJob {
	if cfg.Trigger == nil {
		cfg.Trigger = Trigger
	}

	return &ResyncJob{
		config: cfg,
	}
}

func (j *ResyncJob) Register(ctx context.Context, store Resyncer) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	j.cancel = cancel

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.config.Trigger(ctx, func() error {
			if !store.Dirty() {
				return nil
			}
			return store.Resync(ctx)
		})
	}()

	return cancel
}

func (j *ResyncJob) Shutdown() {
	if j.cancel != nil {
		j.cancel()
	}
	j.wg.Wait()
}
