package ember

// Fixed endpoint ids of the bridge composition.
const (
	RootEndpointID     EndpointID = 0
	BridgeEndpointID   EndpointID = 1
	TemplateEndpointID EndpointID = 2
)

func descriptorCluster() Cluster {
	return Cluster{
		ID:   ClusterIDDescriptor,
		Mask: ClusterMaskServer,
		Attributes: []AttributeMetadata{
			{ID: AttributeIDDeviceList, Type: AttributeTypeArray, Size: 254, Mask: AttributeMaskExternalStorage},
			{ID: AttributeIDServerList, Type: AttributeTypeArray, Size: 254, Mask: AttributeMaskExternalStorage},
			{ID: AttributeIDClientList, Type: AttributeTypeArray, Size: 254, Mask: AttributeMaskExternalStorage},
			{ID: AttributeIDPartsList, Type: AttributeTypeArray, Size: 254, Mask: AttributeMaskExternalStorage},
		},
	}
}

// BridgeAppEndpoints returns the fixed composition of a bridge: the root
// node, the aggregator, and a disabled template endpoint that carries every
// cluster a bridged device may use.
func BridgeAppEndpoints() []FixedEndpoint {
	root := &EndpointType{Clusters: []Cluster{
		descriptorCluster(),
		{
			ID:   ClusterIDBasicInformation,
			Mask: ClusterMaskServer,
			Attributes: []AttributeMetadata{
				{ID: AttributeIDDataModelRevision, Type: AttributeTypeInt16U, Size: 2, Default: 17},
				{ID: AttributeIDVendorName, Type: AttributeTypeCharString, Size: MaxCharStringLength + 1},
				{ID: AttributeIDVendorID, Type: AttributeTypeInt16U, Size: 2},
				{ID: AttributeIDProductName, Type: AttributeTypeCharString, Size: MaxCharStringLength + 1},
				{ID: AttributeIDProductID, Type: AttributeTypeInt16U, Size: 2},
				{ID: AttributeIDNodeLabel, Type: AttributeTypeCharString, Size: MaxCharStringLength + 1, Mask: AttributeMaskWritable | AttributeMaskNonvolatile},
			},
		},
	}}

	bridge := &EndpointType{Clusters: []Cluster{
		descriptorCluster(),
		{
			ID:               ClusterIDActions,
			Mask:             ClusterMaskServer,
			AcceptedCommands: []CommandID{CommandIDInstantAction},
		},
	}}

	template := &EndpointType{Clusters: []Cluster{
		descriptorCluster(),
		{
			ID:         ClusterIDOnOff,
			Mask:       ClusterMaskServer,
			Attributes: []AttributeMetadata{{ID: AttributeIDOnOff, Type: AttributeTypeBoolean, Size: 1}},
		},
		{
			ID:   ClusterIDLevelControl,
			Mask: ClusterMaskServer,
			Attributes: []AttributeMetadata{
				{ID: AttributeIDCurrentLevel, Type: AttributeTypeInt8U, Size: 1},
				{ID: AttributeIDOptions, Type: AttributeTypeBitmap8, Size: 1},
				{ID: AttributeIDOnLevel, Type: AttributeTypeInt8U, Size: 1},
			},
		},
		{
			ID:   ClusterIDBridgedDeviceBasic,
			Mask: ClusterMaskServer,
			Attributes: []AttributeMetadata{
				{ID: AttributeIDNodeLabel, Type: AttributeTypeCharString, Size: MaxCharStringLength + 1},
				{ID: AttributeIDReachable, Type: AttributeTypeBoolean, Size: 1, Default: 1},
			},
		},
	}}

	return []FixedEndpoint{
		{ID: RootEndpointID, Type: root, Parent: InvalidEndpointID},
		{ID: BridgeEndpointID, Type: bridge, Parent: RootEndpointID},
		{ID: TemplateEndpointID, Type: template, Parent: RootEndpointID},
	}
}
