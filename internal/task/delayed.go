package task

import (
	"sync"
	"time"
)

// DelayedTask executes a task once after a fixed delay unless it is cancelled first.
// It is used wherever a completion callback must be suppressible, e.g. the success
// hand-off after a login callback: cancelling the task guarantees the callback never
// fires into an already torn-down consumer.
type DelayedTask struct {
	mtx       sync.Mutex
	timer     *time.Timer
	cancelled bool
	done      bool
}

// NewDelayed schedules task to run once after the given delay
func NewDelayed(fn func(), delay time.Duration) *DelayedTask {
	obj := &DelayedTask{}
	obj.timer = time.AfterFunc(delay, func() {
		obj.mtx.Lock()
		if obj.cancelled {
			obj.mtx.Unlock()
			return
		}
		obj.done = true
		obj.mtx.Unlock()
		fn()
	})
	return obj
}

// Cancel suppresses the task.
// It returns whether the task was actually cancelled; false means it already ran.
// Cancelling an already cancelled task is a no-op.
func (task *DelayedTask) Cancel() bool {
	task.mtx.Lock()
	defer task.mtx.Unlock()
	if task.done {
		return false
	}
	task.cancelled = true
	task.timer.Stop()
	return true
}
