package callbacks

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/backkem/matterbridge/pkg/chip"
	"github.com/backkem/matterbridge/pkg/ember"
)

var (
	// ErrAlreadyInstalled is returned by Install when a registry is active.
	ErrAlreadyInstalled = errors.New("callbacks: registry already installed")

	// ErrNilRegistry is returned by Install for a nil registry.
	ErrNilRegistry = errors.New("callbacks: nil registry")
)

// AttributeAccess serves externally stored attributes.
type AttributeAccess interface {
	// ReadAttribute fills buf with the attribute value. A returned
	// ember.Status is passed through; other errors become StatusFailure.
	ReadAttribute(endpoint ember.EndpointID, cluster ember.ClusterID, attr *ember.AttributeMetadata, buf []byte) error

	// WriteAttribute stores data, which is exactly attr.Size bytes.
	WriteAttribute(endpoint ember.EndpointID, cluster ember.ClusterID, attr *ember.AttributeMetadata, data []byte) error
}

// ActionHandler handles the Actions cluster InstantAction command.
type ActionHandler interface {
	HandleInstantAction(handler *ember.CommandHandler, path ember.ConcreteCommandPath, data ember.InstantAction) bool
}

// PluginServerInit runs when the Actions cluster server initializes.
type PluginServerInit interface {
	InitActionsPlugin()
}

// CommissionableDataProvider supplies the pairing secrets.
type CommissionableDataProvider interface {
	SetupDiscriminator() (uint16, error)
	Spake2pIterationCount() (uint32, error)

	// Spake2pSalt copies the salt into span and reduces its size.
	Spake2pSalt(span *chip.MutableByteSpan) error

	// Spake2pVerifier copies the verifier into span, reduces its size, and
	// returns the verifier length.
	Spake2pVerifier(span *chip.MutableByteSpan) (int, error)

	SetupPasscode() (uint32, error)
}

// Registry holds the active callback implementations. Nil fields select the
// default behavior of the matching trampolines.
type Registry struct {
	Attributes         AttributeAccess
	Actions            ActionHandler
	PluginInit         PluginServerInit
	CommissionableData CommissionableDataProvider

	// Lock is the host lock pair wrapped around table mutations. Optional.
	Lock sync.Locker
}

var (
	installed atomic.Bool
	active    atomic.Pointer[Registry]
)

// Install publishes reg. It must run before native threads call the
// trampolines, and fails if a registry is already installed.
func Install(reg *Registry) error {
	if reg == nil {
		return ErrNilRegistry
	}
	if !installed.CompareAndSwap(false, true) {
		return ErrAlreadyInstalled
	}
	active.Store(reg)
	return nil
}

// Uninstall clears the published registry. Trampolines fall back to their
// defaults afterwards.
func Uninstall() {
	active.Store(nil)
	installed.Store(false)
}

// Installed reports whether a registry is published.
func Installed() bool {
	return installed.Load()
}

func current() *Registry {
	return active.Load()
}

// Lock runs fn under the installed registry's lock, if it has one.
func Lock(fn func()) {
	if reg := current(); reg != nil && reg.Lock != nil {
		reg.Lock.Lock()
		defer reg.Lock.Unlock()
	}
	fn()
}
