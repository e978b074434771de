package callbacks

import (
	"github.com/backkem/matterbridge/pkg/chip"
	"github.com/backkem/matterbridge/pkg/ember"
)

// ExternalAttributeRead forwards an attribute read. buf is cut to
// maxReadLength before it reaches the implementation.
func ExternalAttributeRead(endpoint ember.EndpointID, cluster ember.ClusterID, meta *ember.AttributeMetadata, buf []byte, maxReadLength uint16) ember.Status {
	reg := current()
	if reg == nil || reg.Attributes == nil {
		return ember.StatusFailure
	}
	if int(maxReadLength) < len(buf) {
		buf = buf[:maxReadLength]
	}
	return ember.StatusOf(reg.Attributes.ReadAttribute(endpoint, cluster, meta, buf))
}

// ExternalAttributeWrite forwards an attribute write. buf is cut to the
// attribute size.
func ExternalAttributeWrite(endpoint ember.EndpointID, cluster ember.ClusterID, meta *ember.AttributeMetadata, buf []byte) ember.Status {
	reg := current()
	if reg == nil || reg.Attributes == nil {
		return ember.StatusFailure
	}
	if int(meta.Size) < len(buf) {
		buf = buf[:meta.Size]
	}
	return ember.StatusOf(reg.Attributes.WriteAttribute(endpoint, cluster, meta, buf))
}

// InstantAction forwards the Actions InstantAction command. With no handler
// the command counts as handled.
func InstantAction(handler *ember.CommandHandler, path ember.ConcreteCommandPath, data ember.InstantAction) bool {
	reg := current()
	if reg == nil || reg.Actions == nil {
		return true
	}
	return reg.Actions.HandleInstantAction(handler, path, data)
}

// ActionsPluginServerInit forwards the Actions plugin init callback.
func ActionsPluginServerInit() {
	if reg := current(); reg != nil && reg.PluginInit != nil {
		reg.PluginInit.InitActionsPlugin()
	}
}

func provider() CommissionableDataProvider {
	if reg := current(); reg != nil {
		return reg.CommissionableData
	}
	return nil
}

// GetSetupDiscriminator stores the discriminator in out.
func GetSetupDiscriminator(out *uint16) chip.Code {
	p := provider()
	if p == nil {
		return chip.ErrNotImplemented.Code()
	}
	v, err := p.SetupDiscriminator()
	if err != nil {
		return chip.ToRaw(err)
	}
	*out = v
	return chip.NoError
}

// GetSpake2pIterationCount stores the PBKDF2 iteration count in out.
func GetSpake2pIterationCount(out *uint32) chip.Code {
	p := provider()
	if p == nil {
		return chip.ErrNotImplemented.Code()
	}
	v, err := p.Spake2pIterationCount()
	if err != nil {
		return chip.ToRaw(err)
	}
	*out = v
	return chip.NoError
}

// GetSpake2pSalt copies the salt into span.
func GetSpake2pSalt(span *chip.MutableByteSpan) chip.Code {
	p := provider()
	if p == nil {
		return chip.ErrNotImplemented.Code()
	}
	return chip.ToRaw(p.Spake2pSalt(span))
}

// GetSpake2pVerifier copies the verifier into span and its length into
// outLen.
func GetSpake2pVerifier(span *chip.MutableByteSpan, outLen *int) chip.Code {
	p := provider()
	if p == nil {
		return chip.ErrNotImplemented.Code()
	}
	n, err := p.Spake2pVerifier(span)
	if err != nil {
		return chip.ToRaw(err)
	}
	*outLen = n
	return chip.NoError
}

// GetSetupPasscode stores the setup passcode in out.
func GetSetupPasscode(out *uint32) chip.Code {
	p := provider()
	if p == nil {
		return chip.ErrNotImplemented.Code()
	}
	v, err := p.SetupPasscode()
	if err != nil {
		return chip.ToRaw(err)
	}
	*out = v
	return chip.NoError
}

// Trampolines routes runtime hooks through the package trampolines.
type Trampolines struct{}

func (Trampolines) ExternalAttributeRead(endpoint ember.EndpointID, cluster ember.ClusterID, meta *ember.AttributeMetadata, buf []byte, maxReadLength uint16) ember.Status {
	return ExternalAttributeRead(endpoint, cluster, meta, buf, maxReadLength)
}

func (Trampolines) ExternalAttributeWrite(endpoint ember.EndpointID, cluster ember.ClusterID, meta *ember.AttributeMetadata, buf []byte) ember.Status {
	return ExternalAttributeWrite(endpoint, cluster, meta, buf)
}

func (Trampolines) InstantAction(handler *ember.CommandHandler, path ember.ConcreteCommandPath, data ember.InstantAction) bool {
	return InstantAction(handler, path, data)
}

func (Trampolines) ActionsPluginServerInit() {
	ActionsPluginServerInit()
}

var _ ember.Hooks = Trampolines{}
