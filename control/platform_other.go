//go:build !linux
// +build !linux

// control/platform_other.go
// Author: momentics <momentics@gmail.com>

package control

func registerOSProbes(dp *DebugProbes) {}
