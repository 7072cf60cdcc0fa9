//go:build !linux

// File: platform/affinity_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for platforms without CPU pinning.

package platform

import (
	"runtime"

	"github.com/DaveBerkeley/panglos-sub001/api"
)

// PinCurrentThread locks the calling goroutine to its OS thread. Binding to
// a CPU is not supported here.
func PinCurrentThread(cpu int) error {
	runtime.LockOSThread()
	return api.ErrNotSupported
}
