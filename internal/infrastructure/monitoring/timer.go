package monitoring

import "time"

// Timer tracks the duration of a command
type Timer struct {
	start   time.Time
	metrics *Metrics
	command string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, command string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		command: command,
	}
}

// Stop stops the timer and records the command's outcome
func (t *Timer) Stop(err error) time.Duration {
	duration := time.Since(t.start)
	t.metrics.RecordOperation(t.command, err, duration)
	return duration
}
