package task

import (
	"sync"

	"github.com/learncss/Annotum/internal/app"
)

// TaskFactory builds a task from the container. A nil Task with a nil
// error means the task is disabled by configuration.
type TaskFactory func(a *app.App) (Task, error)

var (
	taskRegistry  []TaskFactory
	registryMutex sync.RWMutex
)

// Register 注册任务工厂函数，通常在任务文件的 init() 中调用
func Register(factory TaskFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	taskRegistry = append(taskRegistry, factory)
}

// GetFactories 获取所有已注册的任务工厂
func GetFactories() []TaskFactory {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	factories := make([]TaskFactory, len(taskRegistry))
	copy(factories, taskRegistry)
	return factories
}
