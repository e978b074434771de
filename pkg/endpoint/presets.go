package endpoint

import "github.com/backkem/matterbridge/pkg/ember"

// Descriptor is the Descriptor cluster.
func Descriptor() Cluster {
	return NewCluster(ember.ClusterIDDescriptor, []Attribute{
		Array(ember.AttributeIDDeviceList),
		Array(ember.AttributeIDServerList),
		Array(ember.AttributeIDClientList),
		Array(ember.AttributeIDPartsList),
	}, nil, nil)
}

// Bridged is the Bridged Device Basic Information cluster with the node
// label and reachable attributes.
func Bridged() Cluster {
	return NewCluster(ember.ClusterIDBridgedDeviceBasic, []Attribute{
		String(ember.AttributeIDNodeLabel),
		Boolean(ember.AttributeIDReachable),
	}, nil, nil)
}

// BasicBridged extends Bridged with vendor, product and unique id.
func BasicBridged() Cluster {
	return NewCluster(ember.ClusterIDBridgedDeviceBasic, []Attribute{
		String(ember.AttributeIDVendorName),
		String(ember.AttributeIDProductName),
		String(ember.AttributeIDNodeLabel),
		Boolean(ember.AttributeIDReachable),
		String(ember.AttributeIDUniqueID),
	}, nil, nil)
}

func OnOff() Cluster {
	return NewCluster(ember.ClusterIDOnOff, []Attribute{
		Boolean(ember.AttributeIDOnOff),
	}, nil, nil)
}

func LevelControl() Cluster {
	return NewCluster(ember.ClusterIDLevelControl, []Attribute{
		Uint8(ember.AttributeIDCurrentLevel),
		Uint8(ember.AttributeIDOnLevel),
		Bitmap8(ember.AttributeIDOptions),
	}, nil, nil)
}

func TargetNavigator() Cluster {
	return NewCluster(ember.ClusterIDTargetNavigator, []Attribute{
		Array(ember.AttributeIDTargetList),
		Uint8(ember.AttributeIDCurrentTarget),
	},
		[]Command{Command(ember.CommandIDNavigateTarget)},
		[]Command{Command(ember.CommandIDNavigateTargetResponse)},
	)
}

func MediaPlayback() Cluster {
	return NewCluster(ember.ClusterIDMediaPlayback, []Attribute{
		Uint8(ember.AttributeIDCurrentState),
	},
		[]Command{Command(ember.CommandIDPlay), Command(ember.CommandIDPause), Command(ember.CommandIDStop)},
		[]Command{Command(ember.CommandIDPlaybackResponse)},
	)
}

func KeypadInput() Cluster {
	return NewCluster(ember.ClusterIDKeypadInput, nil,
		[]Command{Command(ember.CommandIDSendKey)},
		[]Command{Command(ember.CommandIDSendKeyResponse)},
	)
}
