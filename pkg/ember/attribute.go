package ember

import "encoding/binary"

// lookup resolves an attribute path. The returned metadata points into the
// endpoint type, which is immutable after registration.
func (r *Runtime) lookup(path ConcreteAttributePath) (*slot, *AttributeMetadata, Status) {
	i := r.indexLocked(path.Endpoint)
	if i < 0 || !r.slots[i].enabled {
		return nil, nil, StatusUnsupportedEndpoint
	}
	s := &r.slots[i]
	ci := clusterIndex(s.ep, path.Cluster)
	if ci < 0 {
		return nil, nil, StatusUnsupportedCluster
	}
	meta := s.ep.Clusters[ci].Attribute(path.Attribute)
	if meta == nil {
		return nil, nil, StatusUnsupportedAttribute
	}
	return s, meta, StatusSuccess
}

// ReadAttribute reads an attribute into buf and returns the number of bytes
// of the attribute's storage size written. Descriptor cluster lists are
// served from the endpoint table; externally stored attributes are read
// through Hooks, which see at most the attribute's storage size.
func (r *Runtime) ReadAttribute(path ConcreteAttributePath, buf []byte) (int, Status) {
	r.mu.RLock()
	s, meta, status := r.lookup(path)
	if status != StatusSuccess {
		r.mu.RUnlock()
		return 0, status
	}
	if path.Cluster == ClusterIDDescriptor {
		n, status := r.readDescriptorLocked(s, path.Attribute, buf)
		r.mu.RUnlock()
		return n, status
	}
	if len(buf) < int(meta.Size) {
		r.mu.RUnlock()
		return 0, StatusResourceExhausted
	}
	if !meta.IsExternal() {
		n := copy(buf, r.valueLocked(s, path, meta))
		r.mu.RUnlock()
		return n, StatusSuccess
	}
	m := *meta
	r.mu.RUnlock()

	maxLen := m.Size
	if status := r.hooks.ExternalAttributeRead(path.Endpoint, path.Cluster, &m, buf[:maxLen], maxLen); status != StatusSuccess {
		return 0, status
	}
	return int(m.Size), StatusSuccess
}

// WriteAttribute stores data, which may be shorter than the attribute size
// but not longer. On success the cluster data version is bumped and the
// change listener is notified.
func (r *Runtime) WriteAttribute(path ConcreteAttributePath, data []byte) Status {
	r.mu.Lock()
	s, meta, status := r.lookup(path)
	if status != StatusSuccess {
		r.mu.Unlock()
		return status
	}
	if path.Cluster == ClusterIDDescriptor {
		r.mu.Unlock()
		return StatusUnsupportedWrite
	}
	if len(data) > int(meta.Size) {
		r.mu.Unlock()
		return StatusConstraintError
	}
	value := make([]byte, meta.Size)
	copy(value, data)

	if !meta.IsExternal() {
		s.values[path] = value
		r.bumpLocked(path.Endpoint, path.Cluster)
		r.mu.Unlock()
		r.notify(path)
		return StatusSuccess
	}
	m := *meta
	r.mu.Unlock()

	if status := r.hooks.ExternalAttributeWrite(path.Endpoint, path.Cluster, &m, value); status != StatusSuccess {
		return status
	}
	r.ReportAttributeChange(path.Endpoint, path.Cluster, path.Attribute)
	return StatusSuccess
}

// valueLocked returns the stored value of an internal attribute, or its
// default when it was never written.
func (r *Runtime) valueLocked(s *slot, path ConcreteAttributePath, meta *AttributeMetadata) []byte {
	if v, ok := s.values[path]; ok {
		return v
	}
	v := make([]byte, meta.Size)
	var def [4]byte
	binary.LittleEndian.PutUint32(def[:], meta.Default)
	copy(v, def[:])
	return v
}

// InvokeInstantAction dispatches the Actions cluster InstantAction command
// and returns the resulting status. An unhandled command yields
// StatusInvalidCommand.
func (r *Runtime) InvokeInstantAction(endpoint EndpointID, data InstantAction) (*CommandHandler, Status) {
	path := ConcreteCommandPath{Endpoint: endpoint, Cluster: ClusterIDActions, Command: CommandIDInstantAction}

	r.mu.RLock()
	i := r.indexLocked(endpoint)
	if i < 0 || !r.slots[i].enabled {
		r.mu.RUnlock()
		return nil, StatusUnsupportedEndpoint
	}
	ci := clusterIndex(r.slots[i].ep, ClusterIDActions)
	if ci < 0 {
		r.mu.RUnlock()
		return nil, StatusUnsupportedCluster
	}
	if !r.slots[i].ep.Clusters[ci].AcceptsCommand(CommandIDInstantAction) {
		r.mu.RUnlock()
		return nil, StatusUnsupportedCommand
	}
	r.mu.RUnlock()

	handler := &CommandHandler{}
	if !r.hooks.InstantAction(handler, path, data) {
		handler.AddStatus(path, StatusInvalidCommand)
		return handler, StatusInvalidCommand
	}
	if st := handler.Statuses(); len(st) > 0 {
		return handler, st[len(st)-1].Status
	}
	return handler, StatusSuccess
}

// readDescriptorLocked encodes a Descriptor cluster list as a little-endian
// uint16 count followed by the entries: device types as (uint16 id, uint8
// version), cluster ids as uint32, parts as uint16.
func (r *Runtime) readDescriptorLocked(s *slot, attr AttributeID, buf []byte) (int, Status) {
	var out []byte
	switch attr {
	case AttributeIDDeviceList:
		out = binary.LittleEndian.AppendUint16(out, uint16(len(s.deviceTypes)))
		for _, dt := range s.deviceTypes {
			out = binary.LittleEndian.AppendUint16(out, uint16(dt.ID))
			out = append(out, dt.Version)
		}
	case AttributeIDServerList, AttributeIDClientList:
		var ids []ClusterID
		for _, c := range s.ep.Clusters {
			server := c.Mask&ClusterMaskServer != 0
			client := c.Mask&ClusterMaskClient != 0
			if (attr == AttributeIDServerList && server) || (attr == AttributeIDClientList && client) {
				ids = append(ids, c.ID)
			}
		}
		out = binary.LittleEndian.AppendUint16(out, uint16(len(ids)))
		for _, id := range ids {
			out = binary.LittleEndian.AppendUint32(out, uint32(id))
		}
	case AttributeIDPartsList:
		parts := r.partsLocked(s.id)
		out = binary.LittleEndian.AppendUint16(out, uint16(len(parts)))
		for _, p := range parts {
			out = binary.LittleEndian.AppendUint16(out, uint16(p))
		}
	default:
		return 0, StatusUnsupportedAttribute
	}
	if len(out) > len(buf) {
		return 0, StatusResourceExhausted
	}
	return copy(buf, out), StatusSuccess
}

// partsLocked returns every enabled descendant of id. The root endpoint
// lists all other enabled endpoints.
func (r *Runtime) partsLocked(id EndpointID) []EndpointID {
	var parts []EndpointID
	for i := range r.slots {
		s := &r.slots[i]
		if s.id == InvalidEndpointID || s.id == id || !s.enabled {
			continue
		}
		if id == RootEndpointID || r.descendsLocked(s, id) {
			parts = append(parts, s.id)
		}
	}
	return parts
}

func (r *Runtime) descendsLocked(s *slot, ancestor EndpointID) bool {
	for depth := 0; depth < len(r.slots); depth++ {
		if s.parent == ancestor {
			return true
		}
		i := r.indexLocked(s.parent)
		if i < 0 {
			return false
		}
		s = &r.slots[i]
	}
	return false
}
