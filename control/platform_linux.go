//go:build linux
// +build linux

// control/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific platform debug probe integrations.

package control

import (
	"golang.org/x/sys/cpu"
	"golang.org/x/sys/unix"
)

func registerOSProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.affinity", func() any {
		var set unix.CPUSet
		if err := unix.SchedGetaffinity(0, &set); err != nil {
			return -1
		}
		return set.Count()
	})
	dp.RegisterProbe("platform.x86.avx2", func() any {
		return cpu.X86.HasAVX2
	})
}
