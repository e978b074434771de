package ember

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/backkem/matterbridge/pkg/chip"
	"github.com/pion/logging"
)

// slot is one row of the endpoint table.
type slot struct {
	id           EndpointID
	ep           *EndpointType
	dataVersions []DataVersion
	deviceTypes  []DeviceType
	parent       EndpointID
	enabled      bool
	values       map[ConcreteAttributePath][]byte
}

func (s *slot) reset() {
	*s = slot{
		id:     InvalidEndpointID,
		parent: InvalidEndpointID,
		values: make(map[ConcreteAttributePath][]byte),
	}
}

// Runtime holds the endpoint table and dispatches attribute access.
// It is safe for concurrent use. Hooks and the change listener are always
// invoked without internal locks held.
type Runtime struct {
	mu         sync.RWMutex
	slots      []slot
	fixedCount int

	hooks    Hooks
	listener ChangeListener
	log      logging.LeveledLogger
}

// NewRuntime builds a runtime with the fixed endpoints enabled and every
// dynamic slot empty.
func NewRuntime(cfg RuntimeConfig) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	r := &Runtime{
		slots:      make([]slot, len(cfg.FixedEndpoints)+cfg.DynamicEndpointCount),
		fixedCount: len(cfg.FixedEndpoints),
		hooks:      cfg.Hooks,
		listener:   cfg.Listener,
		log:        cfg.LoggerFactory.NewLogger("ember"),
	}

	for i := range r.slots {
		r.slots[i].reset()
	}
	for i, fe := range cfg.FixedEndpoints {
		s := &r.slots[i]
		s.id = fe.ID
		s.ep = fe.Type
		s.deviceTypes = fe.DeviceTypes
		s.parent = fe.Parent
		s.dataVersions = make([]DataVersion, len(fe.Type.Clusters))
		seedDataVersions(s.dataVersions)
		s.enabled = true
	}

	r.log.Debugf("endpoint table: %d fixed, %d dynamic", r.fixedCount, cfg.DynamicEndpointCount)
	return r, nil
}

// FixedEndpointCount returns the number of fixed endpoints.
func (r *Runtime) FixedEndpointCount() uint16 {
	return uint16(r.fixedCount)
}

// DynamicEndpointCount returns the number of dynamic slots.
func (r *Runtime) DynamicEndpointCount() uint16 {
	return uint16(len(r.slots) - r.fixedCount)
}

// EndpointCount returns the total table size.
func (r *Runtime) EndpointCount() uint16 {
	return uint16(len(r.slots))
}

// EndpointFromIndex returns the id at absolute table index, or
// InvalidEndpointID for an empty or out-of-range slot.
func (r *Runtime) EndpointFromIndex(index uint16) EndpointID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if int(index) >= len(r.slots) {
		return InvalidEndpointID
	}
	return r.slots[index].id
}

// IndexFromEndpoint returns the absolute table index of id.
func (r *Runtime) IndexFromEndpoint(id EndpointID) (uint16, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexLocked(id)
	if i < 0 {
		return 0, false
	}
	return uint16(i), true
}

func (r *Runtime) indexLocked(id EndpointID) int {
	if id == InvalidEndpointID {
		return -1
	}
	for i := range r.slots {
		if r.slots[i].id == id {
			return i
		}
	}
	return -1
}

// SetDynamicEndpoint places an endpoint into dynamic slot index, counted from
// the first dynamic slot. The caller keeps ownership of dataVersions, which
// is seeded here and indexed by cluster position; clusters past its length
// have no tracked version. The endpoint is enabled on success.
func (r *Runtime) SetDynamicEndpoint(index uint16, id EndpointID, ep *EndpointType,
	dataVersions []DataVersion, deviceTypes []DeviceType, parent EndpointID) Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	abs := int(index) + r.fixedCount
	if abs >= len(r.slots) {
		return StatusResourceExhausted
	}
	if id == InvalidEndpointID || ep == nil {
		return StatusConstraintError
	}
	for i := r.fixedCount; i < len(r.slots); i++ {
		if r.slots[i].id == id {
			return StatusDuplicateExists
		}
	}
	for i := 0; i < r.fixedCount; i++ {
		if r.slots[i].id == id {
			return StatusDuplicateExists
		}
	}

	seedDataVersions(dataVersions)

	s := &r.slots[abs]
	s.reset()
	s.id = id
	s.ep = ep
	s.dataVersions = dataVersions
	s.deviceTypes = deviceTypes
	s.parent = parent
	s.enabled = true

	r.log.Debugf("dynamic endpoint %d set at index %d (parent %d)", id, index, parent)
	return StatusSuccess
}

// ClearDynamicEndpoint empties dynamic slot index and returns the id it
// held, or InvalidEndpointID when the slot was already empty.
func (r *Runtime) ClearDynamicEndpoint(index uint16) EndpointID {
	r.mu.Lock()
	defer r.mu.Unlock()

	abs := int(index) + r.fixedCount
	if abs >= len(r.slots) || r.slots[abs].id == InvalidEndpointID {
		return InvalidEndpointID
	}
	id := r.slots[abs].id
	r.slots[abs].reset()

	r.log.Debugf("dynamic endpoint %d cleared from index %d", id, index)
	return id
}

// EndpointEnableDisable changes the enabled state of id. It reports false
// when no endpoint has that id.
func (r *Runtime) EndpointEnableDisable(id EndpointID, enable bool) bool {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return false
	}
	changed := r.slots[i].enabled != enable
	r.slots[i].enabled = enable
	parent := r.slots[i].parent
	r.mu.Unlock()

	if changed && parent != InvalidEndpointID {
		// Parts lists of the parent change with its children.
		r.notify(ConcreteAttributePath{Endpoint: parent, Cluster: ClusterIDDescriptor, Attribute: AttributeIDPartsList})
	}
	return true
}

// IsEndpointEnabled reports whether id exists and is enabled.
func (r *Runtime) IsEndpointEnabled(id EndpointID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexLocked(id)
	return i >= 0 && r.slots[i].enabled
}

// SetDeviceTypeList replaces the device type list of id.
func (r *Runtime) SetDeviceTypeList(id EndpointID, deviceTypes []DeviceType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return chip.ErrInvalidArgument
	}
	r.slots[i].deviceTypes = deviceTypes
	return nil
}

// DeviceTypeList returns the device types of id.
func (r *Runtime) DeviceTypeList(id EndpointID) ([]DeviceType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexLocked(id)
	if i < 0 {
		return nil, false
	}
	return append([]DeviceType(nil), r.slots[i].deviceTypes...), true
}

// ParentEndpoint returns the parent of id.
func (r *Runtime) ParentEndpoint(id EndpointID) EndpointID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexLocked(id)
	if i < 0 {
		return InvalidEndpointID
	}
	return r.slots[i].parent
}

// ChildEndpoints returns the enabled endpoints whose parent is id, in table
// order.
func (r *Runtime) ChildEndpoints(id EndpointID) []EndpointID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var children []EndpointID
	for i := range r.slots {
		s := &r.slots[i]
		if s.id != InvalidEndpointID && s.enabled && s.parent == id {
			children = append(children, s.id)
		}
	}
	return children
}

// DataVersion returns the current data version of a cluster on an endpoint.
func (r *Runtime) DataVersion(endpoint EndpointID, cluster ClusterID) (DataVersion, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexLocked(endpoint)
	if i < 0 {
		return 0, false
	}
	ci := clusterIndex(r.slots[i].ep, cluster)
	if ci < 0 || ci >= len(r.slots[i].dataVersions) {
		return 0, false
	}
	return r.slots[i].dataVersions[ci], true
}

// ReportAttributeChange marks an attribute dirty: the cluster data version is
// bumped and the change listener is notified.
func (r *Runtime) ReportAttributeChange(endpoint EndpointID, cluster ClusterID, attribute AttributeID) {
	r.mu.Lock()
	ok := r.bumpLocked(endpoint, cluster)
	r.mu.Unlock()

	if ok {
		r.notify(ConcreteAttributePath{Endpoint: endpoint, Cluster: cluster, Attribute: attribute})
	}
}

// ReportEndpointChange marks every attribute of every cluster on endpoint
// dirty.
func (r *Runtime) ReportEndpointChange(endpoint EndpointID) {
	r.mu.Lock()
	i := r.indexLocked(endpoint)
	if i < 0 || r.slots[i].ep == nil {
		r.mu.Unlock()
		return
	}
	var paths []ConcreteAttributePath
	for _, c := range r.slots[i].ep.Clusters {
		r.bumpLocked(endpoint, c.ID)
		for _, a := range c.Attributes {
			paths = append(paths, ConcreteAttributePath{Endpoint: endpoint, Cluster: c.ID, Attribute: a.ID})
		}
	}
	r.mu.Unlock()

	for _, p := range paths {
		r.notify(p)
	}
}

// SetChangeListener replaces the change listener.
func (r *Runtime) SetChangeListener(l ChangeListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = l
}

// InitPlugins runs the plugin server init callbacks.
func (r *Runtime) InitPlugins() {
	r.hooks.ActionsPluginServerInit()
}

func (r *Runtime) bumpLocked(endpoint EndpointID, cluster ClusterID) bool {
	i := r.indexLocked(endpoint)
	if i < 0 {
		return false
	}
	ci := clusterIndex(r.slots[i].ep, cluster)
	if ci < 0 || ci >= len(r.slots[i].dataVersions) {
		return false
	}
	r.slots[i].dataVersions[ci]++
	return true
}

func (r *Runtime) notify(path ConcreteAttributePath) {
	r.mu.RLock()
	l := r.listener
	r.mu.RUnlock()

	if l != nil {
		l.OnAttributeChanged(path)
	}
}

func clusterIndex(ep *EndpointType, id ClusterID) int {
	if ep == nil {
		return -1
	}
	for i := range ep.Clusters {
		if ep.Clusters[i].ID == id {
			return i
		}
	}
	return -1
}

// seedDataVersions fills versions with a random starting point.
func seedDataVersions(versions []DataVersion) {
	if len(versions) == 0 {
		return
	}
	var buf [4]byte
	base := DataVersion(1)
	if _, err := rand.Read(buf[:]); err == nil {
		base = DataVersion(binary.LittleEndian.Uint32(buf[:]))
	}
	for i := range versions {
		versions[i] = base + DataVersion(i)
	}
}
