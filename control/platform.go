// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Portable platform probes.

package control

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// RegisterPlatformProbes sets CPU and runtime debug probes. OS-specific
// probes are added by registerOSProbes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.goroutines", func() any {
		return runtime.NumGoroutine()
	})
	dp.RegisterProbe("platform.cacheline", func() any {
		return int(unsafe.Sizeof(cpu.CacheLinePad{}))
	})
	dp.RegisterProbe("platform.arch", func() any {
		return runtime.GOOS + "/" + runtime.GOARCH
	})
	registerOSProbes(dp)
}
