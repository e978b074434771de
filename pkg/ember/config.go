package ember

import (
	"errors"

	"github.com/pion/logging"
)

const (
	// DefaultDynamicEndpointCount is the dynamic slot count when none is
	// configured. It matches the smallest build tier.
	DefaultDynamicEndpointCount = 4

	// MaxDynamicEndpointCount is the largest supported build tier.
	MaxDynamicEndpointCount = 1024
)

var (
	// ErrInvalidDynamicEndpointCount is returned for a slot count outside
	// 1..MaxDynamicEndpointCount.
	ErrInvalidDynamicEndpointCount = errors.New("ember: invalid dynamic endpoint count")

	// ErrDuplicateFixedEndpoint is returned when two fixed endpoints share an id.
	ErrDuplicateFixedEndpoint = errors.New("ember: duplicate fixed endpoint id")

	// ErrInvalidFixedEndpoint is returned for a fixed endpoint without a type
	// or with the invalid id.
	ErrInvalidFixedEndpoint = errors.New("ember: invalid fixed endpoint")
)

// FixedEndpoint is an endpoint compiled into the application.
type FixedEndpoint struct {
	ID          EndpointID
	Type        *EndpointType
	DeviceTypes []DeviceType
	Parent      EndpointID
}

// RuntimeConfig configures a Runtime.
type RuntimeConfig struct {
	// FixedEndpoints are placed at indices 0..len-1. Defaults to
	// BridgeAppEndpoints().
	FixedEndpoints []FixedEndpoint

	// DynamicEndpointCount is the number of dynamic slots after the fixed
	// endpoints.
	DynamicEndpointCount int

	// Hooks receives external attribute access and command callbacks.
	Hooks Hooks

	// Listener is notified on reportable attribute changes. Optional.
	Listener ChangeListener

	LoggerFactory logging.LoggerFactory
}

// Validate checks the configuration for errors.
func (c *RuntimeConfig) Validate() error {
	if c.DynamicEndpointCount < 0 || c.DynamicEndpointCount > MaxDynamicEndpointCount {
		return ErrInvalidDynamicEndpointCount
	}
	seen := make(map[EndpointID]bool, len(c.FixedEndpoints))
	for _, fe := range c.FixedEndpoints {
		if fe.Type == nil || fe.ID == InvalidEndpointID {
			return ErrInvalidFixedEndpoint
		}
		if seen[fe.ID] {
			return ErrDuplicateFixedEndpoint
		}
		seen[fe.ID] = true
	}
	return nil
}

func (c *RuntimeConfig) applyDefaults() {
	if c.FixedEndpoints == nil {
		c.FixedEndpoints = BridgeAppEndpoints()
	}
	if c.DynamicEndpointCount == 0 {
		c.DynamicEndpointCount = DefaultDynamicEndpointCount
	}
	if c.Hooks == nil {
		c.Hooks = noHooks{}
	}
	if c.LoggerFactory == nil {
		c.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
}
