package util

import (
	"sync"

	"github.com/denisbrodbeck/machineid"
)

var (
	machineID     string
	machineIDOnce sync.Once
)

// GetMachineID 获取当前机器的唯一标识符
// The raw id is HMAC'ed with the application name; "" when unreadable.
func GetMachineID() string {
	machineIDOnce.Do(func() {
		if id, err := machineid.ProtectedID("annotum"); err == nil {
			machineID = id
		}
	})
	return machineID
}
