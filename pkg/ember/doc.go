// Package ember is an in-process model of the SDK's ember attribute layer:
// the endpoint table (fixed endpoints followed by a fixed number of dynamic
// slots), attribute access dispatch, and the reporting hooks.
//
// Attributes marked with AttributeMaskExternalStorage are never stored here.
// Reads and writes of those attributes are handed to Hooks, which is where
// the host application's callbacks are attached.
//
// The exported operations mirror the native functions of the same purpose:
//
//	emberAfSetDynamicEndpoint         Runtime.SetDynamicEndpoint
//	emberAfClearDynamicEndpoint       Runtime.ClearDynamicEndpoint
//	emberAfEndpointFromIndex          Runtime.EndpointFromIndex
//	emberAfEndpointEnableDisable      Runtime.EndpointEnableDisable
//	emberAfSetDeviceTypeList          Runtime.SetDeviceTypeList
//	MatterReportingAttributeChange... Runtime.ReportAttributeChange
package ember
