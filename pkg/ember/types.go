package ember

type (
	// EndpointID is a 16-bit endpoint identifier.
	EndpointID uint16

	// ClusterID is a 32-bit cluster identifier.
	ClusterID uint32

	// AttributeID is a 32-bit attribute identifier.
	AttributeID uint32

	// CommandID is a 32-bit command identifier.
	CommandID uint32

	// DataVersion is a 32-bit version number for cluster data.
	DataVersion uint32

	// DeviceTypeID is a device type identifier from the device library.
	DeviceTypeID uint16
)

// InvalidEndpointID marks an unused endpoint slot.
const InvalidEndpointID EndpointID = 0xFFFF

// MaxCharStringLength is the longest character string attribute value.
// Storage holds one length byte followed by the characters.
const MaxCharStringLength = 32

// AttributeType is a ZCL attribute storage type tag.
type AttributeType uint8

// Attribute type tags.
const (
	AttributeTypeBoolean     AttributeType = 0x10
	AttributeTypeBitmap8     AttributeType = 0x18
	AttributeTypeBitmap16    AttributeType = 0x19
	AttributeTypeBitmap32    AttributeType = 0x1B
	AttributeTypeBitmap64    AttributeType = 0x1F
	AttributeTypeInt8U       AttributeType = 0x20
	AttributeTypeInt16U      AttributeType = 0x21
	AttributeTypeInt24U      AttributeType = 0x22
	AttributeTypeInt32U      AttributeType = 0x23
	AttributeTypeInt64U      AttributeType = 0x27
	AttributeTypeInt8S       AttributeType = 0x28
	AttributeTypeInt16S      AttributeType = 0x29
	AttributeTypeInt32S      AttributeType = 0x2B
	AttributeTypeInt64S      AttributeType = 0x2F
	AttributeTypeEnum8       AttributeType = 0x30
	AttributeTypeEnum16      AttributeType = 0x31
	AttributeTypeOctetString AttributeType = 0x41
	AttributeTypeCharString  AttributeType = 0x42
	AttributeTypeLongOctet   AttributeType = 0x43
	AttributeTypeLongChar    AttributeType = 0x44
	AttributeTypeArray       AttributeType = 0x48
	AttributeTypeStruct      AttributeType = 0x4C
)

// AttributeMask holds attribute metadata flags.
type AttributeMask uint8

// Attribute mask bits.
const (
	AttributeMaskWritable        AttributeMask = 0x01
	AttributeMaskNonvolatile     AttributeMask = 0x02
	AttributeMaskMinMax          AttributeMask = 0x04
	AttributeMaskMustUseTimed    AttributeMask = 0x08
	AttributeMaskExternalStorage AttributeMask = 0x10
	AttributeMaskSingleton       AttributeMask = 0x20
	AttributeMaskNullable        AttributeMask = 0x40
)

// ClusterMask holds cluster metadata flags.
type ClusterMask uint8

// Cluster mask bits.
const (
	ClusterMaskInitFunction     ClusterMask = 0x01
	ClusterMaskAttributeChanged ClusterMask = 0x02
	ClusterMaskServer           ClusterMask = 0x40
	ClusterMaskClient           ClusterMask = 0x80
)

// AttributeMetadata describes one attribute of a cluster.
type AttributeMetadata struct {
	ID      AttributeID
	Type    AttributeType
	Size    uint16
	Mask    AttributeMask
	Default uint32 // little-endian default for internally stored values
}

// IsExternal reports whether reads and writes go through Hooks.
func (a *AttributeMetadata) IsExternal() bool {
	return a.Mask&AttributeMaskExternalStorage != 0
}

// IsWritable reports whether the attribute accepts writes from clients.
func (a *AttributeMetadata) IsWritable() bool {
	return a.Mask&AttributeMaskWritable != 0
}

// Cluster describes a cluster instance on an endpoint type.
type Cluster struct {
	ID                ClusterID
	Attributes        []AttributeMetadata
	Mask              ClusterMask
	AcceptedCommands  []CommandID
	GeneratedCommands []CommandID
}

// IsServer reports whether the cluster is a server instance.
func (c *Cluster) IsServer() bool {
	return c.Mask&ClusterMaskServer != 0
}

// Attribute returns the metadata for id, or nil.
func (c *Cluster) Attribute(id AttributeID) *AttributeMetadata {
	for i := range c.Attributes {
		if c.Attributes[i].ID == id {
			return &c.Attributes[i]
		}
	}
	return nil
}

// AcceptsCommand reports whether id is in the accepted command list.
func (c *Cluster) AcceptsCommand(id CommandID) bool {
	for _, cmd := range c.AcceptedCommands {
		if cmd == id {
			return true
		}
	}
	return false
}

// EndpointType is the composition shared by endpoints of one kind.
type EndpointType struct {
	Clusters []Cluster
}

// ServerClusterCount returns the number of server clusters, which is the
// number of data versions an endpoint of this type needs.
func (t *EndpointType) ServerClusterCount() int {
	n := 0
	for i := range t.Clusters {
		if t.Clusters[i].IsServer() {
			n++
		}
	}
	return n
}

// DeviceType is an entry of an endpoint's device type list.
type DeviceType struct {
	ID      DeviceTypeID
	Version uint8
}

// ConcreteAttributePath identifies an attribute on an endpoint.
type ConcreteAttributePath struct {
	Endpoint  EndpointID
	Cluster   ClusterID
	Attribute AttributeID
}

// ConcreteCommandPath identifies a command on an endpoint.
type ConcreteCommandPath struct {
	Endpoint EndpointID
	Cluster  ClusterID
	Command  CommandID
}

// InstantAction is the decoded payload of the Actions cluster InstantAction
// command.
type InstantAction struct {
	ActionID uint16
	InvokeID *uint32
}

// CommandStatus is a status recorded against a command path.
type CommandStatus struct {
	Path   ConcreteCommandPath
	Status Status
}

// CommandHandler collects the responses produced while a command is handled.
type CommandHandler struct {
	statuses []CommandStatus
}

// AddStatus records a status response for path.
func (h *CommandHandler) AddStatus(path ConcreteCommandPath, status Status) {
	h.statuses = append(h.statuses, CommandStatus{Path: path, Status: status})
}

// Statuses returns the recorded responses.
func (h *CommandHandler) Statuses() []CommandStatus {
	return h.statuses
}
