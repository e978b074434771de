package ember

// Hooks are the host callbacks the runtime dispatches into. They correspond
// to the native callbacks an application provides to the ember layer.
type Hooks interface {
	// ExternalAttributeRead fills buf with the value of an externally stored
	// attribute. maxReadLength is the usable length of buf.
	ExternalAttributeRead(endpoint EndpointID, cluster ClusterID, meta *AttributeMetadata, buf []byte, maxReadLength uint16) Status

	// ExternalAttributeWrite stores an externally stored attribute. buf holds
	// meta.Size bytes.
	ExternalAttributeWrite(endpoint EndpointID, cluster ClusterID, meta *AttributeMetadata, buf []byte) Status

	// InstantAction handles the Actions cluster InstantAction command and
	// reports whether it was handled.
	InstantAction(handler *CommandHandler, path ConcreteCommandPath, data InstantAction) bool

	// ActionsPluginServerInit runs once during server initialization.
	ActionsPluginServerInit()
}

// ChangeListener is notified when attribute data changes and is reportable.
type ChangeListener interface {
	OnAttributeChanged(path ConcreteAttributePath)
}

// noHooks rejects every external access.
type noHooks struct{}

func (noHooks) ExternalAttributeRead(EndpointID, ClusterID, *AttributeMetadata, []byte, uint16) Status {
	return StatusFailure
}

func (noHooks) ExternalAttributeWrite(EndpointID, ClusterID, *AttributeMetadata, []byte) Status {
	return StatusFailure
}

func (noHooks) InstantAction(*CommandHandler, ConcreteCommandPath, InstantAction) bool {
	return false
}

func (noHooks) ActionsPluginServerInit() {}
