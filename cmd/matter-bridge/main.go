// matter-bridge exposes a set of on/off lights as a Matter bridge.
//
// Usage:
//
//	matter-bridge [options]
//
// Options:
//
//	-port          UDP port (default: 5540)
//	-discriminator 12-bit discriminator (default: 3840)
//	-passcode      Setup passcode (default: 20202021)
//	-state         Path for persistent state (default: in-memory)
//	-config        Bridge configuration YAML (default: one light)
//	-name          Device name (default: "Matter Bridge")
//	-features      SDK features (default: endpoints-4)
//	-interactive   Start the console
//	-log-level     Log level (default: info)
//
// Example:
//
//	matter-bridge -config lights.yaml -state bridge.cbor -interactive
package main

import (
	"context"
	"log"

	"github.com/backkem/matterbridge/examples/bridge"
	"github.com/backkem/matterbridge/examples/common"
	"github.com/backkem/matterbridge/pkg/device"
)

func main() {
	opts := common.ParseFlags()

	cfg := bridge.DefaultConfig()
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = bridge.LoadConfig(opts.ConfigPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	devCfg, err := common.DeviceConfig(opts)
	if err != nil {
		log.Fatalf("Failed to configure device: %v", err)
	}
	b := bridge.New(devCfg.LoggerFactory)
	devCfg.VendorName = bridge.VendorName
	devCfg.Attributes = b
	devCfg.Actions = b
	devCfg.PluginInit = b

	ctx, err := device.TakeContext()
	if err != nil {
		log.Fatalf("Failed to take device context: %v", err)
	}
	defer ctx.Release()

	dev, err := device.New(ctx, devCfg)
	if err != nil {
		log.Fatalf("Failed to create device: %v", err)
	}
	defer dev.Close()

	if err := b.Attach(dev); err != nil {
		log.Fatalf("Failed to attach bridge: %v", err)
	}
	for _, l := range cfg.Lights {
		if _, err := b.AddLight(l); err != nil {
			log.Fatalf("Failed to add light %q: %v", l.Name, err)
		}
	}

	var console func(context.Context) error
	if opts.Interactive {
		console = bridge.NewConsole(b, dev).Run
	}
	if err := common.Run(dev, console); err != nil {
		log.Printf("Device error: %v", err)
	}
}
