// Package scheduler runs the weekly adaptive planning job inside the
// server process on a cron cadence.
package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron *cron.Cron
}

// New registers job under the given cron expression (standard 5-field
// syntax; production default is "0 2 * * 0", Sunday 02:00). The job does
// not run until Start is called.
func New(spec string, job func()) (*Scheduler, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("[scheduler] weekly planning schedule started")
}

// Stop halts scheduling; a run already in progress is not interrupted.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
