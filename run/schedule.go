//go:build !tinygo

package run

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
)

// Schedule drives c from a gocron scheduler instead of Run's sleep loop,
// which keeps ticks aligned to the wall clock on a host. Ticks never overlap:
// while a refresh blocks, the ticks that fall due are skipped. It returns when
// ctx is done or the retry policy gives up.
func Schedule(ctx context.Context, c *Controller) error {
	s := gocron.NewScheduler(time.Local)
	s.SingletonModeAll()

	done := make(chan error, 1)
	_, err := s.Every(c.config.Tick).StartImmediately().Do(func() {
		for ctx.Err() == nil {
			wait := c.Tick(ctx, c.config.Now())
			if nil != c.err {
				select {
				case done <- c.err:
				default:
				}
				return
			}
			if wait > 0 {
				return
			}
		}
	})
	if nil != err {
		return err
	}

	c.log.Println("info: units " + c.config.Units.String())
	s.StartAsync()
	defer s.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
