package jobs

import (
	"fmt"

	"movers/internal/pkg/log"
)

// Job is a scheduled task the manager can start and stop.
type Job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the enabled jobs as a group.
type JobManager struct {
	jobs    []Job
	started []Job
	logger  *log.Zap
}

func NewJobManager(logger *log.Zap, jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs, logger: logger.Named("jobs")}
}

// StartAll starts every job. If one fails, the jobs already started are stopped.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start job #%d: %w", i, err)
		}
		jm.started = append(jm.started, job)
	}
	return nil
}

// StopAll stops started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
