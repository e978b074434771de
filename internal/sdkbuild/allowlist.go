package sdkbuild

import "regexp"

// Types lists the SDK types a binding exposes.
var Types = []string{
	"chip::ChipError",
	"chip::Span",
	"chip::ByteSpan",
	"chip::MutableByteSpan",
	"chip::DeviceLayer::PlatformManager",
	"chip::DeviceLayer::ConfigurationManager",
	"chip::DeviceLayer::ConfigurationManagerImpl",
	"chip::DeviceLayer::CommissionableDataProvider",
	"chip::RendezvousInformationFlag",
	"chip::RendezvousInformationFlags",
	"chip::Server",
	"chip::ServerInitParams",
	"chip::CommonCaseDeviceServerInitParams",
	"chip::EndpointId",
	"chip::ClusterId",
	"chip::CommandId",
	"chip::DataVersion",
	"chip::app::CommandHandler",
	"chip::app::ConcreteCommandPath",
	"chip::app::Clusters::Actions::Commands::InstantAction::DecodableType",
	"EmberAfStatus",
	"EmberAfDeviceType",
	"EmberAfEndpointType",
	"EmberAfAttributeMetadata",
	"EmberAfClusterMask",
	"EmberAfGenericClusterFunction",
	"EmberAfCluster",
}

// Functions lists the SDK functions a binding calls.
var Functions = []string{
	"glue::Initialize",
	"glue::CommonCaseDeviceServerInitParams",
	"chip::Platform::MemoryInit",
	"chip::Server::GetInstance",
	"chip::DeviceLayer::PlatformMgr",
	"chip::DeviceLayer::ConfigurationMgr",
	"chip::DeviceLayer::ConfigurationManagerImpl",
	"chip::Credentials::SetDeviceAttestationCredentialsProvider",
	"chip::Credentials::Examples::GetExampleDACProvider",
	"PrintOnboardingCodes",
	"emberAfEndpointFromIndex",
	"emberAfFixedEndpointCount",
	"emberAfEndpointEnableDisable",
	"emberAfSetDeviceTypeList",
	"emberAfSetDynamicEndpoint",
	"emberAfClearDynamicEndpoint",
	"MatterReportingAttributeChangeCallback",
}

// Vars lists the constant name patterns a binding exports.
var Vars = []string{
	`chip::k.*`,
	`CONFIG_.*`,
	`INET_CONFIG_.*`,
	`CHIP_.*`,
	`ZCL_.*`,
	`EmberAfStatus_.*`,
	`ATTRIBUTE_MASK_.*`,
	`CLUSTER_MASK_.*`,
	`FIXED_ENDPOINT_COUNT`,
}

// Allowlist matches names against anchored patterns.
type Allowlist struct {
	res []*regexp.Regexp
}

// NewAllowlist compiles patterns. Each pattern must match a whole name.
func NewAllowlist(patterns []string) (*Allowlist, error) {
	a := &Allowlist{res: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile("^(?:" + p + ")$")
		if err != nil {
			return nil, err
		}
		a.res = append(a.res, re)
	}
	return a, nil
}

// Match reports whether name matches any pattern.
func (a *Allowlist) Match(name string) bool {
	for _, re := range a.res {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// MatchAllowlist reports whether name matches one of patterns. Invalid
// patterns never match.
func MatchAllowlist(patterns []string, name string) bool {
	a, err := NewAllowlist(patterns)
	if err != nil {
		return false
	}
	return a.Match(name)
}
