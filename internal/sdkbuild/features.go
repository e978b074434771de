package sdkbuild

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DefaultEndpoints is the dynamic endpoint count of the smallest tier.
const DefaultEndpoints = 4

// EndpointTiers are the supported dynamic endpoint counts.
var EndpointTiers = []int{4, 8, 16, 32, 64, 128, 256, 512, 1024}

var (
	ErrUnknownFeature   = errors.New("sdkbuild: unknown feature")
	ErrInvalidEndpoints = errors.New("sdkbuild: unsupported endpoint tier")
)

// Features selects the optional parts of the SDK build.
type Features struct {
	BLE    bool
	WiFi   bool
	Thread bool
	IPv4   bool
	TCP    bool
	Debug  bool

	// Endpoints is CHIP_DEVICE_CONFIG_DYNAMIC_ENDPOINT_COUNT.
	Endpoints int
}

// DefaultFeatures returns a build with no optional features and the
// smallest endpoint tier.
func DefaultFeatures() Features {
	return Features{Endpoints: DefaultEndpoints}
}

// ParseFeatures parses a comma separated list such as
// "ble,wifi,endpoints-16". The largest endpoints-N entry wins.
func ParseFeatures(s string) (Features, error) {
	f := DefaultFeatures()
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case "":
		case "ble":
			f.BLE = true
		case "wifi":
			f.WiFi = true
		case "thread":
			f.Thread = true
		case "ipv4":
			f.IPv4 = true
		case "tcp":
			f.TCP = true
		case "debug":
			f.Debug = true
		default:
			n, ok := strings.CutPrefix(name, "endpoints-")
			if !ok {
				return Features{}, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
			}
			count, err := strconv.Atoi(n)
			if err != nil || !slices.Contains(EndpointTiers, count) {
				return Features{}, fmt.Errorf("%w: %q", ErrInvalidEndpoints, name)
			}
			f.Endpoints = max(f.Endpoints, count)
		}
	}
	return f, nil
}

// Validate checks the endpoint tier.
func (f Features) Validate() error {
	if !slices.Contains(EndpointTiers, f.Endpoints) {
		return fmt.Errorf("%w: %d", ErrInvalidEndpoints, f.Endpoints)
	}
	return nil
}

// String renders f in ParseFeatures syntax.
func (f Features) String() string {
	var parts []string
	for _, opt := range []struct {
		on   bool
		name string
	}{
		{f.BLE, "ble"}, {f.WiFi, "wifi"}, {f.Thread, "thread"},
		{f.IPv4, "ipv4"}, {f.TCP, "tcp"}, {f.Debug, "debug"},
	} {
		if opt.on {
			parts = append(parts, opt.name)
		}
	}
	parts = append(parts, fmt.Sprintf("endpoints-%d", f.Endpoints))
	return strings.Join(parts, ",")
}

// GNArgs renders the value of gn's --args flag.
func (f Features) GNArgs(standalone bool) string {
	args := []struct {
		key string
		on  bool
	}{
		{"is_debug", f.Debug},
		{"standalone", standalone},
		{"chip_config_network_layer_ble", f.BLE},
		{"chip_enable_wifi", f.WiFi},
		{"chip_enable_openthread", f.Thread},
		{"chip_inet_config_enable_ipv4", f.IPv4},
		{"chip_inet_config_enable_tcp_endpoint", f.TCP},
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.key + "=" + strconv.FormatBool(a.on)
	}
	return strings.Join(parts, " ")
}

// AppConfigHeader renders CHIPProjectAppConfig.h.
func (f Features) AppConfigHeader() string {
	return fmt.Sprintf("#pragma once\n#define CHIP_DEVICE_CONFIG_DYNAMIC_ENDPOINT_COUNT %d\n#include <CHIPProjectConfig.h>\n", f.Endpoints)
}
