// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Services built on the core containers: tick clocks, a Dispatcher that
// fires EvQueue events against a clock, and an Executor whose workers drain
// a MessageQueue of tasks and stop on the zero-value sentinel.
package concurrency
