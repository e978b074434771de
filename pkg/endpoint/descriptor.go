package endpoint

import "github.com/backkem/matterbridge/pkg/ember"

// Attribute describes an externally stored attribute.
type Attribute ember.AttributeMetadata

// NewAttribute returns an attribute descriptor. The external storage bit is
// always set.
func NewAttribute(id ember.AttributeID, typ ember.AttributeType, size uint16, mask ember.AttributeMask) Attribute {
	return Attribute{
		ID:   id,
		Type: typ,
		Size: size,
		Mask: mask | ember.AttributeMaskExternalStorage,
	}
}

// Metadata returns the runtime view of a.
func (a Attribute) Metadata() ember.AttributeMetadata {
	return ember.AttributeMetadata(a)
}

func Boolean(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeBoolean, 1, 0)
}

func Bitmap8(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeBitmap8, 1, 0)
}

func Bitmap16(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeBitmap16, 2, 0)
}

func Bitmap32(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeBitmap32, 4, 0)
}

func Bitmap64(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeBitmap64, 8, 0)
}

func Uint8(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeInt8U, 1, 0)
}

func Uint16(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeInt16U, 2, 0)
}

func Uint32(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeInt32U, 4, 0)
}

func Uint64(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeInt64U, 8, 0)
}

func Int8(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeInt8S, 1, 0)
}

func Int16(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeInt16S, 2, 0)
}

func Int32(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeInt32S, 4, 0)
}

func Int64(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeInt64S, 8, 0)
}

// String is a length-prefixed character string of up to
// ember.MaxCharStringLength characters.
func String(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeCharString, ember.MaxCharStringLength+1, 0)
}

// Array is a list attribute encoded into at most 254 bytes.
func Array(id ember.AttributeID) Attribute {
	return NewAttribute(id, ember.AttributeTypeArray, 254, 0)
}

// Command is a command id in an accepted or generated list.
type Command ember.CommandID

// Cluster describes a server cluster.
type Cluster ember.Cluster

// NewCluster returns a server cluster with the given attributes and command
// lists. The slices are copied.
func NewCluster(id ember.ClusterID, attributes []Attribute, accepted, generated []Command) Cluster {
	c := Cluster{ID: id, Mask: ember.ClusterMaskServer}
	for _, a := range attributes {
		c.Attributes = append(c.Attributes, a.Metadata())
	}
	for _, cmd := range accepted {
		c.AcceptedCommands = append(c.AcceptedCommands, ember.CommandID(cmd))
	}
	for _, cmd := range generated {
		c.GeneratedCommands = append(c.GeneratedCommands, ember.CommandID(cmd))
	}
	return c
}

// Attribute returns the descriptor of attribute id, if present.
func (c Cluster) Attribute(id ember.AttributeID) (Attribute, bool) {
	for _, a := range c.Attributes {
		if a.ID == id {
			return Attribute(a), true
		}
	}
	return Attribute{}, false
}

// EndpointType is an endpoint composition.
type EndpointType ember.EndpointType

// NewEndpointType returns a composition of clusters, in order.
func NewEndpointType(clusters ...Cluster) *EndpointType {
	t := &EndpointType{}
	for _, c := range clusters {
		t.Clusters = append(t.Clusters, ember.Cluster(c))
	}
	return t
}

// Runtime returns the runtime view of t.
func (t *EndpointType) Runtime() *ember.EndpointType {
	return (*ember.EndpointType)(t)
}

// ClusterCount returns the number of clusters, which is the number of data
// versions a registration of t needs.
func (t *EndpointType) ClusterCount() int {
	return len(t.Clusters)
}

// DeviceType is a device type list entry.
type DeviceType ember.DeviceType

// DeviceTypeOf returns revision 1 of device type id.
func DeviceTypeOf(id ember.DeviceTypeID) DeviceType {
	return DeviceType{ID: id, Version: 1}
}

func runtimeDeviceTypes(types []DeviceType) []ember.DeviceType {
	out := make([]ember.DeviceType, len(types))
	for i, dt := range types {
		out[i] = ember.DeviceType(dt)
	}
	return out
}
