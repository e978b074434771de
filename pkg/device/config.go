package device

import (
	"net"
	"sync"

	"github.com/backkem/matterbridge/internal/sdkbuild"
	"github.com/backkem/matterbridge/pkg/callbacks"
	"github.com/backkem/matterbridge/pkg/discovery"
	"github.com/backkem/matterbridge/pkg/ember"
	"github.com/pion/logging"
)

// Default identity of an uncertified development device.
const (
	DefaultVendorID  = 0xFFF1
	DefaultProductID = 0x8001
)

// Config configures a Device.
type Config struct {
	// Identity stored into the root Basic Information cluster and the
	// onboarding payload.
	VendorID   uint16
	ProductID  uint16
	VendorName string
	DeviceName string // max 32 chars

	// Commissionable supplies discriminator, passcode and verifier. Required.
	Commissionable callbacks.CommissionableDataProvider

	// Host callbacks. Nil fields keep the trampoline defaults.
	Attributes callbacks.AttributeAccess
	Actions    callbacks.ActionHandler
	PluginInit callbacks.PluginServerInit

	// Locker is the host lock pair around endpoint table changes.
	Locker sync.Locker

	// Features describes the SDK build. Features.Endpoints sets the number
	// of dynamic endpoint slots.
	Features sdkbuild.Features

	// Storage persists the endpoint id map. Defaults to MemoryStorage.
	Storage Storage

	// Advertising.
	Port               int
	Interfaces         []net.Interface
	ServerFactory      discovery.MDNSServerFactory
	DisableAdvertising bool

	LoggerFactory logging.LoggerFactory
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Commissionable == nil {
		return ErrCommissionableRequired
	}
	if d, err := c.Commissionable.SetupDiscriminator(); err == nil && d > discovery.MaxDiscriminator {
		return ErrInvalidDiscriminator
	}
	if len(c.DeviceName) > discovery.MaxDeviceNameLength {
		return ErrInvalidDeviceName
	}
	if len(c.VendorName) > ember.MaxCharStringLength {
		return ErrInvalidVendorName
	}
	if c.Features.Endpoints != 0 {
		if err := c.Features.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.VendorID == 0 {
		c.VendorID = DefaultVendorID
	}
	if c.ProductID == 0 {
		c.ProductID = DefaultProductID
	}
	if c.Features.Endpoints == 0 {
		c.Features.Endpoints = sdkbuild.DefaultEndpoints
	}
	if c.Storage == nil {
		c.Storage = NewMemoryStorage()
	}
	if c.Port == 0 {
		c.Port = discovery.DefaultPort
	}
	if c.LoggerFactory == nil {
		c.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
}

// BuildSettings is the startup dump of the compiled-in features.
type BuildSettings struct {
	Features  sdkbuild.Features
	VendorID  uint16
	ProductID uint16
	Port      int
}

// BuildSettings returns the settings that New logs at startup.
func (c *Config) BuildSettings() BuildSettings {
	return BuildSettings{
		Features:  c.Features,
		VendorID:  c.VendorID,
		ProductID: c.ProductID,
		Port:      c.Port,
	}
}
