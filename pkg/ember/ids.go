package ember

// Cluster identifiers used by the bridge composition.
const (
	ClusterIDOnOff              ClusterID = 0x0006
	ClusterIDLevelControl       ClusterID = 0x0008
	ClusterIDDescriptor         ClusterID = 0x001D
	ClusterIDActions            ClusterID = 0x0025
	ClusterIDBasicInformation   ClusterID = 0x0028
	ClusterIDBridgedDeviceBasic ClusterID = 0x0039
	ClusterIDTargetNavigator    ClusterID = 0x0505
	ClusterIDMediaPlayback      ClusterID = 0x0506
	ClusterIDKeypadInput        ClusterID = 0x0509
)

// Descriptor cluster attributes.
const (
	AttributeIDDeviceList AttributeID = 0x0000
	AttributeIDServerList AttributeID = 0x0001
	AttributeIDClientList AttributeID = 0x0002
	AttributeIDPartsList  AttributeID = 0x0003
)

// Basic Information and Bridged Device Basic Information attributes.
const (
	AttributeIDDataModelRevision AttributeID = 0x0000
	AttributeIDVendorName        AttributeID = 0x0001
	AttributeIDVendorID          AttributeID = 0x0002
	AttributeIDProductName       AttributeID = 0x0003
	AttributeIDProductID         AttributeID = 0x0004
	AttributeIDNodeLabel         AttributeID = 0x0005
	AttributeIDReachable         AttributeID = 0x0011
	AttributeIDUniqueID          AttributeID = 0x0012
)

// On/Off and Level Control attributes.
const (
	AttributeIDOnOff        AttributeID = 0x0000
	AttributeIDCurrentLevel AttributeID = 0x0000
	AttributeIDOptions      AttributeID = 0x000F
	AttributeIDOnLevel      AttributeID = 0x0011
)

// Target Navigator and Media Playback attributes.
const (
	AttributeIDTargetList    AttributeID = 0x0000
	AttributeIDCurrentTarget AttributeID = 0x0001
	AttributeIDCurrentState  AttributeID = 0x0000
)

// Command identifiers.
const (
	CommandIDInstantAction          CommandID = 0x00
	CommandIDNavigateTarget         CommandID = 0x00
	CommandIDNavigateTargetResponse CommandID = 0x01
	CommandIDPlay                   CommandID = 0x00
	CommandIDPause                  CommandID = 0x01
	CommandIDStop                   CommandID = 0x02
	CommandIDPlaybackResponse       CommandID = 0x0A
	CommandIDSendKey                CommandID = 0x00
	CommandIDSendKeyResponse        CommandID = 0x01
)

// Device type identifiers.
const (
	DeviceTypeRootNode    DeviceTypeID = 0x0016
	DeviceTypeAggregator  DeviceTypeID = 0x000E
	DeviceTypeBridgedNode DeviceTypeID = 0x0013
	DeviceTypeOnOffLight  DeviceTypeID = 0x0100
)
