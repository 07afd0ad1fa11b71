// Package task runs background jobs on cron schedules.
package task

import (
	"github.com/learncss/Annotum/internal/app"
	"github.com/learncss/Annotum/pkg/safe_close"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Manager 任务管理器,负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
	app       *app.App
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose, a *app.App) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
		app:       a,
	}
}

// RegisterTasks builds every registered task. Disabled tasks are skipped;
// the first construction error is returned after all factories ran.
func (m *Manager) RegisterTasks() error {
	var first error
	for _, factory := range GetFactories() {
		t, err := factory(m.app)
		if err != nil {
			m.logger.Warn("failed to create task", zap.Error(err))
			if first == nil {
				first = errors.Wrap(err, "create task")
			}
			continue
		}
		if t == nil {
			continue
		}
		m.scheduler.AddTask(t)
		m.logger.Info("task registered", zap.String("name", t.Name()))
	}
	return first
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
