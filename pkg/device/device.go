package device

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/backkem/matterbridge/pkg/callbacks"
	"github.com/backkem/matterbridge/pkg/chip"
	"github.com/backkem/matterbridge/pkg/discovery"
	"github.com/backkem/matterbridge/pkg/ember"
	"github.com/backkem/matterbridge/pkg/endpoint"
	"github.com/pion/logging"
)

// scheduleQueueSize bounds work queued with Schedule.
const scheduleQueueSize = 64

// Device is a running bridge: the endpoint table, its static endpoints, and
// the event loop that serves it.
type Device struct {
	config    Config
	log       logging.LeveledLogger
	runtime   *ember.Runtime
	endpoints *endpoint.Manager
	adv       *discovery.Advertiser

	state   atomic.Int32
	work    chan func()
	closed  chan struct{}
	closeMu sync.Once

	idMu sync.Mutex
}

// New brings up the device. ctx proves ownership of the process state and
// must stay held until Close.
func New(ctx *Context, config Config) (*Device, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if ctx.released.Load() {
		return nil, ErrContextReleased
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.applyDefaults()

	d := &Device{
		config: config,
		log:    config.LoggerFactory.NewLogger("device"),
		work:   make(chan func(), scheduleQueueSize),
		closed: make(chan struct{}),
	}

	reg := &callbacks.Registry{
		Attributes:         config.Attributes,
		Actions:            config.Actions,
		PluginInit:         config.PluginInit,
		CommissionableData: config.Commissionable,
		Lock:               config.Locker,
	}
	if err := callbacks.Install(reg); err != nil {
		return nil, fmt.Errorf("device: %w", err)
	}

	rt, err := ember.NewRuntime(ember.RuntimeConfig{
		DynamicEndpointCount: config.Features.Endpoints,
		Hooks:                callbacks.Trampolines{},
		LoggerFactory:        config.LoggerFactory,
	})
	if err != nil {
		callbacks.Uninstall()
		return nil, fmt.Errorf("device: %w", err)
	}
	d.runtime = rt
	d.endpoints = endpoint.NewManager(endpoint.ManagerConfig{
		Table:         rt,
		LoggerFactory: config.LoggerFactory,
	})

	if err := d.endpoints.InitializeStatic(); err != nil {
		callbacks.Uninstall()
		return nil, fmt.Errorf("device: static endpoints: %w", err)
	}
	if err := d.writeBasicInformation(); err != nil {
		callbacks.Uninstall()
		return nil, err
	}
	rt.InitPlugins()

	if !config.DisableAdvertising {
		d.adv = discovery.NewAdvertiser(discovery.AdvertiserConfig{
			Port:          config.Port,
			Interfaces:    config.Interfaces,
			ServerFactory: config.ServerFactory,
			LoggerFactory: config.LoggerFactory,
		})
	}

	d.logBuildSettings()
	d.state.Store(int32(StateInitialized))

	if err := d.PrintOnboardingCodes(); err != nil {
		d.log.Warnf("Onboarding codes unavailable: %v", err)
	}
	return d, nil
}

// writeBasicInformation stores the identity into the root node.
func (d *Device) writeBasicInformation() error {
	var vid, pid [2]byte
	binary.LittleEndian.PutUint16(vid[:], d.config.VendorID)
	binary.LittleEndian.PutUint16(pid[:], d.config.ProductID)

	writes := []struct {
		attr  ember.AttributeID
		value []byte
	}{
		{ember.AttributeIDVendorID, vid[:]},
		{ember.AttributeIDProductID, pid[:]},
		{ember.AttributeIDVendorName, charString(d.config.VendorName)},
		{ember.AttributeIDProductName, charString(d.config.DeviceName)},
		{ember.AttributeIDNodeLabel, charString(d.config.DeviceName)},
	}
	for _, w := range writes {
		path := ember.ConcreteAttributePath{
			Endpoint:  ember.RootEndpointID,
			Cluster:   ember.ClusterIDBasicInformation,
			Attribute: w.attr,
		}
		if st := d.runtime.WriteAttribute(path, w.value); !st.IsSuccess() {
			return fmt.Errorf("device: basic information 0x%04x: %w", w.attr, st)
		}
	}
	return nil
}

// charString encodes s as a length-prefixed character string. Config
// validation bounds s to ember.MaxCharStringLength.
func charString(s string) []byte {
	return append([]byte{byte(len(s))}, s...)
}

func (d *Device) logBuildSettings() {
	s := d.config.BuildSettings()
	d.log.Infof("Build settings: features=%s vendor=0x%04X product=0x%04X port=%d",
		s.Features, s.VendorID, s.ProductID, s.Port)
	d.log.Infof("Dynamic endpoints: %d slots starting at endpoint %d",
		d.endpoints.SlotCount(), d.endpoints.DynamicRangeStart())
}

// Run serves the device until ctx is done: scheduled work runs on this
// goroutine and the commissionable service is advertised.
func (d *Device) Run(ctx context.Context) error {
	if !d.state.CompareAndSwap(int32(StateInitialized), int32(StateRunning)) &&
		!d.state.CompareAndSwap(int32(StateStopped), int32(StateRunning)) {
		if d.State() == StateClosed {
			return ErrClosed
		}
		return ErrAlreadyRunning
	}
	d.log.Info("Device running")

	if d.adv != nil {
		if err := d.startAdvertising(); err != nil {
			d.state.Store(int32(StateStopped))
			return err
		}
		defer d.adv.StopCommissionable()
	}

	defer d.state.CompareAndSwap(int32(StateRunning), int32(StateStopped))
	for {
		select {
		case <-ctx.Done():
			d.log.Info("Device stopping")
			return ctx.Err()
		case <-d.closed:
			return ErrClosed
		case fn := <-d.work:
			fn()
		}
	}
}

func (d *Device) startAdvertising() error {
	var disc uint16
	if err := chip.Convert(callbacks.GetSetupDiscriminator(&disc)); err != nil {
		return fmt.Errorf("device: discriminator: %w", err)
	}
	txt := discovery.CommissionableTXT{
		Discriminator:     disc,
		CommissioningMode: discovery.CommissioningModeBasic,
		VendorID:          d.config.VendorID,
		ProductID:         d.config.ProductID,
		DeviceType:        uint32(ember.DeviceTypeAggregator),
		DeviceName:        d.config.DeviceName,
	}
	if err := d.adv.StartCommissionable(txt); err != nil {
		return fmt.Errorf("device: %w", err)
	}
	return nil
}

// Schedule queues fn to run on the Run goroutine.
func (d *Device) Schedule(fn func()) error {
	select {
	case <-d.closed:
		return ErrClosed
	default:
	}
	select {
	case d.work <- fn:
		return nil
	case <-d.closed:
		return ErrClosed
	}
}

// EndpointUpdated reports every attribute of endpoint as changed.
func (d *Device) EndpointUpdated(id ember.EndpointID) {
	d.runtime.ReportEndpointChange(id)
}

// AttributeUpdated reports one attribute as changed.
func (d *Device) AttributeUpdated(ep ember.EndpointID, cluster ember.ClusterID, attr ember.AttributeID) {
	d.runtime.ReportAttributeChange(ep, cluster, attr)
}

// Endpoints returns the endpoint manager.
func (d *Device) Endpoints() *endpoint.Manager {
	return d.endpoints
}

// Runtime returns the endpoint table.
func (d *Device) Runtime() *ember.Runtime {
	return d.runtime
}

// DynamicEndpointRangeStart is the first endpoint id available to bridged
// devices.
func (d *Device) DynamicEndpointRangeStart() ember.EndpointID {
	return d.endpoints.DynamicRangeStart()
}

// AssignEndpointID returns the persistent endpoint id of uniqueID, allocating
// one on first use.
func (d *Device) AssignEndpointID(uniqueID string) (ember.EndpointID, error) {
	d.idMu.Lock()
	defer d.idMu.Unlock()

	m, err := d.config.Storage.LoadEndpointMap()
	if err != nil {
		return 0, err
	}
	id, allocated, err := m.assign(uniqueID, d.DynamicEndpointRangeStart())
	if err != nil {
		return 0, err
	}
	if allocated {
		if err := d.config.Storage.SaveEndpointMap(m); err != nil {
			return 0, err
		}
		d.log.Debugf("Assigned endpoint %d to %s", id, uniqueID)
	}
	return id, nil
}

// ReleaseEndpointID forgets the endpoint id of uniqueID.
func (d *Device) ReleaseEndpointID(uniqueID string) error {
	d.idMu.Lock()
	defer d.idMu.Unlock()

	m, err := d.config.Storage.LoadEndpointMap()
	if err != nil {
		return err
	}
	if _, ok := m.Entries[uniqueID]; !ok {
		return nil
	}
	delete(m.Entries, uniqueID)
	return d.config.Storage.SaveEndpointMap(m)
}

// State returns the lifecycle state.
func (d *Device) State() State {
	return State(d.state.Load())
}

// Close stops the loop, clears every dynamic slot and uninstalls the
// callback registry.
func (d *Device) Close() error {
	err := ErrClosed
	d.closeMu.Do(func() {
		err = nil
		close(d.closed)
		if d.adv != nil {
			d.adv.Close()
		}
		callbacks.Lock(func() {
			for i, n := uint16(0), d.runtime.DynamicEndpointCount(); i < n; i++ {
				d.runtime.ClearDynamicEndpoint(i)
			}
		})
		callbacks.Uninstall()
		d.state.Store(int32(StateClosed))
		d.log.Info("Device closed")
	})
	return err
}
