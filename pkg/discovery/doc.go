// Package discovery advertises a commissionable device over DNS-SD
// (_matterc._udp) so commissioners can find it while its pairing window is
// open.
package discovery

// ServiceCommissionable is the DNS-SD service type for commissionable nodes.
const ServiceCommissionable = "_matterc._udp"

// DefaultDomain is the mDNS domain.
const DefaultDomain = "local."

// DefaultPort is the Matter UDP port.
const DefaultPort = 5540

// CommissioningMode is the CM TXT value.
type CommissioningMode uint8

const (
	CommissioningModeDisabled CommissioningMode = 0
	CommissioningModeBasic    CommissioningMode = 1
	CommissioningModeEnhanced CommissioningMode = 2
)

func (m CommissioningMode) String() string {
	switch m {
	case CommissioningModeDisabled:
		return "Disabled"
	case CommissioningModeBasic:
		return "Basic"
	case CommissioningModeEnhanced:
		return "Enhanced"
	default:
		return "Unknown"
	}
}
