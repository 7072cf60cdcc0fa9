// Package adapters provides glue code between the api contracts and the
// control and concurrency implementations.
package adapters
