package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/learncss/Annotum/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingTask struct {
	runs     atomic.Int32
	schedule cron.Schedule
	startup  bool
	panics   bool
}

func (t *countingTask) Name() string            { return "counting" }
func (t *countingTask) Schedule() cron.Schedule { return t.schedule }
func (t *countingTask) IsStartupRun() bool      { return t.startup }
func (t *countingTask) Run(context.Context) error {
	t.runs.Add(1)
	if t.panics {
		panic("boom")
	}
	return nil
}

func TestParseSchedule(t *testing.T) {
	for _, expr := range []string{"@every 24h", "@daily", "0 3 * * *"} {
		s, err := ParseSchedule(expr)
		require.NoError(t, err, expr)
		assert.True(t, s.Next(time.Now()).After(time.Now()), expr)
	}
	_, err := ParseSchedule("every day")
	assert.Error(t, err)
}

func TestSchedulerLoop(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)
	task := &countingTask{schedule: cron.Every(time.Second), startup: true}
	s.AddTask(task)
	s.Start()

	assert.Eventually(t, func() bool { return task.runs.Load() >= 2 }, 5*time.Second, 20*time.Millisecond)

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
}

func TestSchedulerStartupOnlyAndPanic(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)
	task := &countingTask{startup: true, panics: true}
	s.AddTask(task)
	s.Start()

	// the attached worker returns on its own after the single run
	require.NoError(t, sc.WaitClosed())
	assert.EqualValues(t, 1, task.runs.Load())
}

func TestSchedulerEmpty(t *testing.T) {
	sc := safe_close.NewSafeClose()
	NewScheduler(zap.NewNop(), sc).Start()
	assert.NoError(t, sc.WaitClosed())
}
