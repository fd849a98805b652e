package jobs

import (
	"fmt"
)

type job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the background jobs of the service as a group.
type JobManager struct {
	relay job
}

// NewJobManager manages the outbox relay job.
func NewJobManager(relay *OutboxRelayJob) *JobManager {
	return &JobManager{relay: relay}
}

// StartAll returns the first start failure; jobs started before it keep running until StopAll.
func (jm *JobManager) StartAll() error {
	if err := jm.relay.Start(); err != nil {
		return fmt.Errorf("start outbox relay: %w", err)
	}
	return nil
}

// StopAll blocks until running batches finish.
func (jm *JobManager) StopAll() {
	jm.relay.Stop()
}
