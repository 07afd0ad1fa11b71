package task

import (
	"context"

	"github.com/learncss/Annotum/internal/app"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ArchiveTask stores the XML of every published article in the configured
// storage backend.
// ArchiveTask 定时归档任务
type ArchiveTask struct {
	app      *app.App
	schedule cron.Schedule
	startup  bool
}

func (t *ArchiveTask) Name() string {
	return "JatsArchive"
}

func (t *ArchiveTask) Schedule() cron.Schedule {
	return t.schedule
}

func (t *ArchiveTask) IsStartupRun() bool {
	return t.startup
}

// Run 执行归档
func (t *ArchiveTask) Run(ctx context.Context) error {
	if t.app.IsShuttingDown() {
		return nil
	}
	done := t.app.TrackOperation()
	defer done()

	res, err := t.app.ArchiveService.ArchiveAll(ctx)
	if err != nil {
		return err
	}
	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.Int("total", res.Total),
		zap.Int("stored", res.Stored),
		zap.Int("failed", res.Failed))
	return nil
}

// NewArchiveTask 创建归档任务；未启用或没有可用存储时返回 nil
func NewArchiveTask(a *app.App) (Task, error) {
	cfg := a.Config().Archive
	if !cfg.Enabled {
		return nil, nil
	}
	if a.Storage == nil {
		a.Logger().Warn("archive task disabled: storage unavailable")
		return nil, nil
	}
	schedule, err := ParseSchedule(cfg.Cron)
	if err != nil {
		return nil, errors.Wrapf(err, "archive cron %q", cfg.Cron)
	}
	return &ArchiveTask{app: a, schedule: schedule, startup: cfg.StartupRun}, nil
}

func init() {
	Register(NewArchiveTask)
}
