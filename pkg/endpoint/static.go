package endpoint

import (
	"fmt"

	"github.com/backkem/matterbridge/pkg/ember"
)

// StaticEndpoint is an endpoint compiled into the application.
type StaticEndpoint ember.EndpointID

// Static endpoints of the bridge composition.
const (
	RootNode   = StaticEndpoint(ember.RootEndpointID)
	BridgeNode = StaticEndpoint(ember.BridgeEndpointID)

	templateNode = StaticEndpoint(ember.TemplateEndpointID)
)

// ID returns the endpoint id.
func (s StaticEndpoint) ID() ember.EndpointID {
	return ember.EndpointID(s)
}

// InitializeEndpoint sets the device type list of a static endpoint.
func (m *Manager) InitializeEndpoint(ep StaticEndpoint, deviceTypes []DeviceType) error {
	var err error
	m.lock(func() {
		err = m.table.SetDeviceTypeList(ep.ID(), runtimeDeviceTypes(deviceTypes))
	})
	if err != nil {
		return fmt.Errorf("endpoint: initialize %d: %w", ep, err)
	}
	return nil
}

// EnableStatic enables or disables a static endpoint.
func (m *Manager) EnableStatic(ep StaticEndpoint, enable bool) {
	m.lock(func() {
		m.table.EndpointEnableDisable(ep.ID(), enable)
	})
}

// InitializeStatic sets up the bridge composition: root node and aggregator
// device types, the template endpoint disabled, and the aggregator disabled
// until the application enables it.
func (m *Manager) InitializeStatic() error {
	if err := m.InitializeEndpoint(RootNode, []DeviceType{DeviceTypeOf(ember.DeviceTypeRootNode)}); err != nil {
		return err
	}
	if err := m.InitializeEndpoint(BridgeNode, []DeviceType{DeviceTypeOf(ember.DeviceTypeAggregator)}); err != nil {
		return err
	}

	m.EnableStatic(templateNode, false)
	m.EnableStatic(BridgeNode, false)
	return nil
}
