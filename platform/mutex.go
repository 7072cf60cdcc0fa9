// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package platform

import (
	"sync"

	"github.com/DaveBerkeley/panglos-sub001/api"
)

// NewMutex returns the default Locker.
func NewMutex() api.Locker {
	return new(sync.Mutex)
}
