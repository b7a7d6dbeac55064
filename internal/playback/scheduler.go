package playback

import (
	"time"

	"github.com/robfig/cron/v3"
)

// Handle stops a running schedule.
type Handle interface {
	Stop()
}

// Scheduler runs fn repeatedly at a fixed interval until stopped.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (Handle, error)
}

// CronScheduler runs each schedule on its own cron instance.
// cron.Every has one second resolution; shorter intervals run every second.
type CronScheduler struct{}

func (CronScheduler) Every(interval time.Duration, fn func()) (Handle, error) {
	c := cron.New()
	c.Schedule(cron.Every(interval), cron.FuncJob(fn))
	c.Start()
	return cronHandle{c}, nil
}

type cronHandle struct {
	c *cron.Cron
}

// Stop does not wait for a running job; the session drops late ticks itself.
func (h cronHandle) Stop() {
	h.c.Stop()
}
