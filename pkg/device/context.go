package device

import (
	"sync/atomic"

	"github.com/backkem/matterbridge/pkg/callbacks"
)

var contextTaken atomic.Bool

// Context is proof that the caller owns the process-wide SDK state. Only one
// exists at a time.
type Context struct {
	released atomic.Bool
}

// TakeContext claims the process context.
func TakeContext() (*Context, error) {
	if !contextTaken.CompareAndSwap(false, true) {
		return nil, ErrContextTaken
	}
	return &Context{}, nil
}

// Release gives the context back so it can be taken again. Repeated calls
// are no-ops.
func (c *Context) Release() {
	if c.released.CompareAndSwap(false, true) {
		contextTaken.Store(false)
	}
}

// Lock runs fn inside the host lock of the installed registry.
func (c *Context) Lock(fn func()) {
	callbacks.Lock(fn)
}
