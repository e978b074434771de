package endpoint

import (
	"fmt"
	"sync"

	"github.com/backkem/matterbridge/pkg/callbacks"
	"github.com/backkem/matterbridge/pkg/ember"
	"github.com/pion/logging"
)

// SlotTable is the runtime's endpoint table. *ember.Runtime implements it.
type SlotTable interface {
	FixedEndpointCount() uint16
	DynamicEndpointCount() uint16

	// EndpointFromIndex takes an absolute table index.
	EndpointFromIndex(index uint16) ember.EndpointID

	// SetDynamicEndpoint and ClearDynamicEndpoint take an index counted
	// from the first dynamic slot.
	SetDynamicEndpoint(index uint16, id ember.EndpointID, ep *ember.EndpointType,
		dataVersions []ember.DataVersion, deviceTypes []ember.DeviceType, parent ember.EndpointID) ember.Status
	ClearDynamicEndpoint(index uint16) ember.EndpointID

	EndpointEnableDisable(id ember.EndpointID, enable bool) bool
	SetDeviceTypeList(id ember.EndpointID, deviceTypes []ember.DeviceType) error
}

var _ SlotTable = (*ember.Runtime)(nil)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	Table SlotTable

	// Lock runs fn inside the host lock pair. Defaults to callbacks.Lock.
	Lock func(fn func())

	LoggerFactory logging.LoggerFactory
}

// Manager registers endpoints against a SlotTable.
type Manager struct {
	table SlotTable
	lock  func(fn func())
	log   logging.LeveledLogger
}

// NewManager returns a Manager for cfg.Table.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Lock == nil {
		cfg.Lock = callbacks.Lock
	}
	if cfg.LoggerFactory == nil {
		cfg.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
	return &Manager{
		table: cfg.Table,
		lock:  cfg.Lock,
		log:   cfg.LoggerFactory.NewLogger("endpoint"),
	}
}

// DynamicRangeStart is the first endpoint id after the fixed endpoints.
func (m *Manager) DynamicRangeStart() ember.EndpointID {
	return ember.EndpointID(m.table.FixedEndpointCount())
}

// SlotCount returns the number of dynamic slots.
func (m *Manager) SlotCount() int {
	return int(m.table.DynamicEndpointCount())
}

// FindIndex scans every fixed and dynamic slot for id and returns its
// absolute index.
func (m *Manager) FindIndex(id ember.EndpointID) (uint16, bool) {
	var (
		index uint16
		found bool
	)
	m.lock(func() {
		index, found = m.findIndex(id)
	})
	return index, found
}

func (m *Manager) findIndex(id ember.EndpointID) (uint16, bool) {
	total := m.table.FixedEndpointCount() + m.table.DynamicEndpointCount()
	for i := uint16(0); i < total; i++ {
		if m.table.EndpointFromIndex(i) == id {
			return i, true
		}
	}
	return 0, false
}

// Register places ep into the first free dynamic slot under id. deviceTypes
// and dataVersions must stay untouched while the registration is live;
// dataVersions needs one entry per cluster of ep.
func (m *Manager) Register(id ember.EndpointID, deviceTypes []DeviceType, ep *EndpointType,
	dataVersions []ember.DataVersion, parent StaticEndpoint) (*Registration, error) {
	if ep == nil {
		return nil, ErrNilEndpointType
	}

	var err error
	m.lock(func() {
		if _, ok := m.findIndex(id); ok {
			err = fmt.Errorf("%w: endpoint %d: %w", ErrAlreadyRegistered, id, ember.StatusDuplicateExists)
			return
		}
		index, ok := m.findIndex(ember.InvalidEndpointID)
		if !ok {
			err = fmt.Errorf("%w: endpoint %d: %w", ErrResourceExhausted, id, ember.StatusResourceExhausted)
			return
		}

		m.log.Infof("Registering EP %d at index %d", id, index)

		dyn := index - m.table.FixedEndpointCount()
		if st := m.table.SetDynamicEndpoint(dyn, id, ep.Runtime(), dataVersions,
			runtimeDeviceTypes(deviceTypes), parent.ID()); st != ember.StatusSuccess {
			err = fmt.Errorf("endpoint: register %d: %w", id, st)
		}
	})
	if err != nil {
		return nil, err
	}
	return &Registration{id: id, m: m}, nil
}

// Registration is a live dynamic endpoint.
type Registration struct {
	id     ember.EndpointID
	m      *Manager
	mu     sync.Mutex
	closed bool
}

// ID returns the endpoint id.
func (r *Registration) ID() ember.EndpointID {
	return r.id
}

// Index returns the absolute table index of the registration.
func (r *Registration) Index() (uint16, bool) {
	return r.m.FindIndex(r.id)
}

// Enable enables or disables the endpoint.
func (r *Registration) Enable(enable bool) {
	r.m.log.Infof("Setting enabled state for EP %d to %t", r.id, enable)

	r.m.lock(func() {
		index, ok := r.m.findIndex(r.id)
		if !ok {
			r.m.log.Warnf("EP %d is not registered", r.id)
			return
		}
		r.m.table.EndpointEnableDisable(r.m.table.EndpointFromIndex(index), enable)
	})
}

// Close frees the slot holding this endpoint. Further calls do nothing.
func (r *Registration) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	r.m.lock(func() {
		index, ok := r.m.findIndex(r.id)
		if !ok || index < r.m.table.FixedEndpointCount() {
			err = fmt.Errorf("%w: endpoint %d", ErrNotRegistered, r.id)
			return
		}

		r.m.log.Infof("Unregistering EP %d from index %d", r.id, index)
		r.m.table.ClearDynamicEndpoint(index - r.m.table.FixedEndpointCount())
	})
	return err
}
