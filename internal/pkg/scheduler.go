package pkg

import "time"

// Scheduler runs a task once after a delay.
type Scheduler interface {
	AfterFunc(delay time.Duration, task func()) Cancel
}

// Cancel stops a scheduled task. It reports whether the task was stopped
// before it ran.
type Cancel func() bool

type timerScheduler struct{}

// NewTimerScheduler - returns a Scheduler backed by time.AfterFunc.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) AfterFunc(delay time.Duration, task func()) Cancel {
	return time.AfterFunc(delay, task).Stop
}

// ImmediateScheduler runs every task synchronously, ignoring the delay.
type ImmediateScheduler struct{}

func (ImmediateScheduler) AfterFunc(_ time.Duration, task func()) Cancel {
	task()
	return func() bool { return false }
}

// ManualScheduler queues tasks until Flush is called.
type ManualScheduler struct {
	tasks  []func()
	delays []time.Duration
}

func (that *ManualScheduler) AfterFunc(delay time.Duration, task func()) Cancel {
	index := len(that.tasks)
	that.tasks = append(that.tasks, task)
	that.delays = append(that.delays, delay)

	return func() bool {
		if that.tasks[index] == nil {
			return false
		}
		that.tasks[index] = nil
		return true
	}
}

// Pending - number of tasks that have neither run nor been cancelled.
func (that *ManualScheduler) Pending() int {
	pending := 0
	for _, task := range that.tasks {
		if task != nil {
			pending++
		}
	}
	return pending
}

// Delays - the delays tasks were scheduled with, in order.
func (that *ManualScheduler) Delays() []time.Duration {
	return that.delays
}

// Flush runs every pending task in scheduling order.
func (that *ManualScheduler) Flush() {
	for i := 0; i < len(that.tasks); i++ {
		task := that.tasks[i]
		if task == nil {
			continue
		}
		that.tasks[i] = nil
		task()
	}
}
