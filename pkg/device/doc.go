// Package device is the application-facing entry point of the bridge
// runtime. It owns the process-wide Context, installs the callback registry,
// brings up the endpoint table with its static endpoints, and runs the event
// loop that advertises the device while it waits for commissioning.
//
// Typical use:
//
//	ctx, err := device.TakeContext()
//	if err != nil {
//		return err
//	}
//	defer ctx.Release()
//
//	dev, err := device.New(ctx, device.Config{
//		Commissionable: commissioning.TestData(),
//		Attributes:     bridge,
//	})
//	if err != nil {
//		return err
//	}
//	defer dev.Close()
//
//	return dev.Run(runCtx)
package device
