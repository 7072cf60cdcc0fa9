// Package platform
// Author: momentics <momentics@gmail.com>
//
// Portable defaults for the synchronisation contracts in package api: a
// mutex, a counting semaphore and a thread factory with optional CPU
// pinning. Targets with their own primitives supply api implementations
// instead.
package platform
