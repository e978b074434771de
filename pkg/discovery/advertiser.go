package discovery

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"net"
	"sync"

	"github.com/grandcat/zeroconf"
	"github.com/pion/logging"
)

// MDNSServer is a running service registration.
type MDNSServer interface {
	Shutdown()
}

// MDNSServerFactory registers services with an mDNS responder.
type MDNSServerFactory interface {
	Register(instance, service, domain string, port int, txt []string, ifaces []net.Interface) (MDNSServer, error)
}

type zeroconfServerFactory struct{}

func (zeroconfServerFactory) Register(instance, service, domain string, port int, txt []string, ifaces []net.Interface) (MDNSServer, error) {
	return zeroconf.Register(instance, service, domain, port, txt, ifaces)
}

// AdvertiserConfig configures an Advertiser.
type AdvertiserConfig struct {
	// Port is the advertised port (default: 5540).
	Port int

	// Interfaces restricts advertising. Nil means all interfaces.
	Interfaces []net.Interface

	// ServerFactory defaults to grandcat/zeroconf.
	ServerFactory MDNSServerFactory

	LoggerFactory logging.LoggerFactory
}

// Advertiser publishes the commissionable service.
type Advertiser struct {
	config  AdvertiserConfig
	factory MDNSServerFactory
	log     logging.LeveledLogger

	mu       sync.Mutex
	server   MDNSServer
	instance string
	closed   bool
}

// NewAdvertiser creates an Advertiser.
func NewAdvertiser(config AdvertiserConfig) *Advertiser {
	if config.Port <= 0 || config.Port > 65535 {
		config.Port = DefaultPort
	}
	if config.ServerFactory == nil {
		config.ServerFactory = zeroconfServerFactory{}
	}
	if config.LoggerFactory == nil {
		config.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
	return &Advertiser{
		config:  config,
		factory: config.ServerFactory,
		log:     config.LoggerFactory.NewLogger("discovery"),
	}
}

// StartCommissionable registers _matterc._udp with subtypes _S<short>,
// _L<long>, and _CM, _V<vid>, _T<type> when applicable.
func (a *Advertiser) StartCommissionable(txt CommissionableTXT) error {
	if err := txt.Validate(); err != nil {
		return fmt.Errorf("advertiser: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.server != nil {
		return ErrAlreadyStarted
	}

	instance, err := randomInstanceName()
	if err != nil {
		return fmt.Errorf("advertiser: instance name: %w", err)
	}

	service := ServiceCommissionable + "," + CommissionableSubtypes(txt)

	records := txt.Encode()
	a.log.Debugf("Registering %s instance=%s port=%d", service, instance, a.config.Port)
	a.log.Tracef("TXT records: %v", records)

	server, err := a.factory.Register(instance, service, DefaultDomain, a.config.Port, records, a.config.Interfaces)
	if err != nil {
		return fmt.Errorf("advertiser: mDNS registration failed for %s: %w", service, err)
	}

	a.log.Infof("Advertising commissionable node %s (discriminator %d)", instance, txt.Discriminator)
	a.server = server
	a.instance = instance
	return nil
}

// CommissionableSubtypes returns the comma separated subtype list for txt.
func CommissionableSubtypes(txt CommissionableTXT) string {
	s := fmt.Sprintf("_S%d,_L%d", txt.ShortDiscriminator(), txt.Discriminator)
	if txt.CommissioningMode > CommissioningModeDisabled {
		s += ",_CM"
	}
	if txt.VendorID != 0 {
		s += fmt.Sprintf(",_V%d", txt.VendorID)
	}
	if txt.DeviceType != 0 {
		s += fmt.Sprintf(",_T%d", txt.DeviceType)
	}
	return s
}

// StopCommissionable withdraws the service.
func (a *Advertiser) StopCommissionable() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.server == nil {
		return ErrNotStarted
	}
	a.server.Shutdown()
	a.server = nil
	a.instance = ""
	return nil
}

// IsAdvertising reports whether the service is registered.
func (a *Advertiser) IsAdvertising() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.server != nil
}

// InstanceName returns the active instance name, or "".
func (a *Advertiser) InstanceName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.instance
}

// Close withdraws the service and disables the advertiser.
func (a *Advertiser) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
	a.closed = true
	return nil
}

// randomInstanceName returns 16 uppercase hex characters.
func randomInstanceName() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016X", binary.BigEndian.Uint64(buf[:])), nil
}
