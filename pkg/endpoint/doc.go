// Package endpoint describes endpoint compositions and manages their
// registration in the runtime's dynamic endpoint table.
//
// Descriptors (Attribute, Cluster, EndpointType, DeviceType) are plain values
// built once and never mutated. Attributes are always externally stored, so
// every read and write of a registered endpoint reaches the host's
// callbacks.AttributeAccess implementation.
//
// A Registration binds one endpoint id to one dynamic slot. Close frees that
// slot again.
package endpoint
