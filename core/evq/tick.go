// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Wraparound-safe tick arithmetic.

package evq

import "github.com/DaveBerkeley/panglos-sub001/api"

// Tick is the scheduling key, a uint32 counter that wraps silently.
type Tick = api.Tick

// Compare returns b-a computed in the counter's width and read as signed.
// A positive result means b is after a. The result is only meaningful
// while a and b lie within 2^31 ticks of each other.
func Compare(a, b Tick) int32 {
	return int32(b - a)
}

// Due reports whether when has been reached at now.
func Due(when, now Tick) bool {
	return Compare(when, now) >= 0
}
