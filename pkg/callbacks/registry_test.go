package callbacks

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/backkem/matterbridge/pkg/chip"
	"github.com/backkem/matterbridge/pkg/ember"
)

type fakeAttributes struct {
	gotEndpoint ember.EndpointID
	gotCluster  ember.ClusterID
	gotMeta     *ember.AttributeMetadata
	gotBuf      []byte
	err         error
}

func (f *fakeAttributes) ReadAttribute(ep ember.EndpointID, c ember.ClusterID, meta *ember.AttributeMetadata, buf []byte) error {
	f.gotEndpoint, f.gotCluster, f.gotMeta, f.gotBuf = ep, c, meta, buf
	if f.err == nil && len(buf) > 0 {
		buf[0] = 0xAB
	}
	return f.err
}

func (f *fakeAttributes) WriteAttribute(ep ember.EndpointID, c ember.ClusterID, meta *ember.AttributeMetadata, data []byte) error {
	f.gotEndpoint, f.gotCluster, f.gotMeta, f.gotBuf = ep, c, meta, data
	return f.err
}

type fakeActions struct {
	got    ember.InstantAction
	result bool
}

func (f *fakeActions) HandleInstantAction(h *ember.CommandHandler, path ember.ConcreteCommandPath, data ember.InstantAction) bool {
	f.got = data
	return f.result
}

type fakeInit struct{ runs int }

func (f *fakeInit) InitActionsPlugin() { f.runs++ }

type fakeProvider struct{ err error }

func (f fakeProvider) SetupDiscriminator() (uint16, error)    { return 3840, f.err }
func (f fakeProvider) Spake2pIterationCount() (uint32, error) { return 1000, f.err }
func (f fakeProvider) SetupPasscode() (uint32, error)         { return 20202021, f.err }

func (f fakeProvider) Spake2pSalt(span *chip.MutableByteSpan) error {
	if f.err != nil {
		return f.err
	}
	span.ReduceSize(copy(span.Data(), "salt"))
	return nil
}

func (f fakeProvider) Spake2pVerifier(span *chip.MutableByteSpan) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := copy(span.Data(), "verifier")
	span.ReduceSize(n)
	return n, nil
}

func install(t *testing.T, reg *Registry) {
	t.Helper()
	if err := Install(reg); err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	t.Cleanup(Uninstall)
}

var onOff = &ember.AttributeMetadata{ID: ember.AttributeIDOnOff, Type: ember.AttributeTypeBoolean, Size: 1}

func TestDefaults_NoRegistry(t *testing.T) {
	if Installed() {
		t.Fatal("registry installed at test start")
	}
	buf := make([]byte, 4)

	if st := ExternalAttributeRead(1, 6, onOff, buf, 4); st != ember.StatusFailure {
		t.Errorf("read = %v, want Failure", st)
	}
	if st := ExternalAttributeWrite(1, 6, onOff, buf); st != ember.StatusFailure {
		t.Errorf("write = %v, want Failure", st)
	}
	if !InstantAction(&ember.CommandHandler{}, ember.ConcreteCommandPath{}, ember.InstantAction{}) {
		t.Error("instant action default = false, want true")
	}
	ActionsPluginServerInit()

	notImpl := chip.ErrNotImplemented.Code()
	var d uint16
	var u uint32
	var n int
	span := chip.NewMutableByteSpan(make([]byte, 8))
	codes := map[string]chip.Code{
		"discriminator": GetSetupDiscriminator(&d),
		"iterations":    GetSpake2pIterationCount(&u),
		"salt":          GetSpake2pSalt(span),
		"verifier":      GetSpake2pVerifier(span, &n),
		"passcode":      GetSetupPasscode(&u),
	}
	for name, code := range codes {
		if code != notImpl {
			t.Errorf("%s = 0x%X, want NotImplemented", name, code)
		}
	}
}

func TestDefaults_EmptySlots(t *testing.T) {
	install(t, &Registry{})

	if st := ExternalAttributeRead(1, 6, onOff, make([]byte, 1), 1); st != ember.StatusFailure {
		t.Errorf("read = %v, want Failure", st)
	}
	var d uint16
	if code := GetSetupDiscriminator(&d); code != chip.ErrNotImplemented.Code() {
		t.Errorf("discriminator = 0x%X, want NotImplemented", code)
	}
}

func TestInstall_TakeOnce(t *testing.T) {
	install(t, &Registry{})

	if err := Install(&Registry{}); !errors.Is(err, ErrAlreadyInstalled) {
		t.Errorf("second Install = %v, want ErrAlreadyInstalled", err)
	}
	if err := Install(nil); !errors.Is(err, ErrNilRegistry) {
		t.Errorf("Install(nil) = %v, want ErrNilRegistry", err)
	}
	Uninstall()
	if Installed() {
		t.Error("Installed() after Uninstall")
	}
	if err := Install(&Registry{}); err != nil {
		t.Errorf("Install after Uninstall = %v", err)
	}
}

func TestAttributeForwarding(t *testing.T) {
	attrs := &fakeAttributes{}
	install(t, &Registry{Attributes: attrs})

	buf := make([]byte, 8)
	if st := ExternalAttributeRead(7, ember.ClusterIDOnOff, onOff, buf, 2); st != ember.StatusSuccess {
		t.Fatalf("read = %v", st)
	}
	if attrs.gotEndpoint != 7 || attrs.gotCluster != ember.ClusterIDOnOff || attrs.gotMeta != onOff {
		t.Errorf("read args = %d, %d, %p", attrs.gotEndpoint, attrs.gotCluster, attrs.gotMeta)
	}
	if len(attrs.gotBuf) != 2 || buf[0] != 0xAB {
		t.Errorf("read buffer len = %d, buf[0] = %x", len(attrs.gotBuf), buf[0])
	}

	if st := ExternalAttributeWrite(7, ember.ClusterIDOnOff, onOff, []byte{1, 2, 3}); st != ember.StatusSuccess {
		t.Fatalf("write = %v", st)
	}
	if !bytes.Equal(attrs.gotBuf, []byte{1}) {
		t.Errorf("write data = %v, want cut to attribute size", attrs.gotBuf)
	}

	attrs.err = ember.StatusConstraintError
	if st := ExternalAttributeWrite(7, ember.ClusterIDOnOff, onOff, []byte{1}); st != ember.StatusConstraintError {
		t.Errorf("write status = %v, want passthrough", st)
	}
	attrs.err = errors.New("boom")
	if st := ExternalAttributeRead(7, ember.ClusterIDOnOff, onOff, buf, 8); st != ember.StatusFailure {
		t.Errorf("read status = %v, want Failure", st)
	}
}

func TestActionForwarding(t *testing.T) {
	actions := &fakeActions{result: false}
	pinit := &fakeInit{}
	install(t, &Registry{Actions: actions, PluginInit: pinit})

	invoke := uint32(9)
	data := ember.InstantAction{ActionID: 3, InvokeID: &invoke}
	if InstantAction(&ember.CommandHandler{}, ember.ConcreteCommandPath{}, data) {
		t.Error("result not passed through")
	}
	if actions.got.ActionID != 3 || actions.got.InvokeID != &invoke {
		t.Errorf("action data = %+v", actions.got)
	}

	ActionsPluginServerInit()
	if pinit.runs != 1 {
		t.Errorf("plugin init runs = %d", pinit.runs)
	}
}

func TestCommissionableDataForwarding(t *testing.T) {
	install(t, &Registry{CommissionableData: fakeProvider{}})

	var d uint16
	var iter, pass uint32
	if code := GetSetupDiscriminator(&d); code != chip.NoError || d != 3840 {
		t.Errorf("discriminator = %d, 0x%X", d, code)
	}
	if code := GetSpake2pIterationCount(&iter); code != chip.NoError || iter != 1000 {
		t.Errorf("iterations = %d, 0x%X", iter, code)
	}
	if code := GetSetupPasscode(&pass); code != chip.NoError || pass != 20202021 {
		t.Errorf("passcode = %d, 0x%X", pass, code)
	}

	span := chip.NewMutableByteSpan(make([]byte, 32))
	if code := GetSpake2pSalt(span); code != chip.NoError || string(span.Bytes()) != "salt" {
		t.Errorf("salt = %q, 0x%X", span.Bytes(), code)
	}
	var n int
	span = chip.NewMutableByteSpan(make([]byte, 32))
	if code := GetSpake2pVerifier(span, &n); code != chip.NoError || n != 8 || string(span.Bytes()) != "verifier" {
		t.Errorf("verifier = %q (%d), 0x%X", span.Bytes(), n, code)
	}
}

func TestCommissionableDataErrors(t *testing.T) {
	install(t, &Registry{CommissionableData: fakeProvider{err: chip.ErrBufferTooSmall}})

	var pass uint32 = 7
	if code := GetSetupPasscode(&pass); code != chip.ErrBufferTooSmall.Code() {
		t.Errorf("code = 0x%X, want BufferTooSmall", code)
	}
	if pass != 7 {
		t.Errorf("out written on error: %d", pass)
	}
}

type countingLocker struct {
	sync.Mutex
	locks int
}

func (l *countingLocker) Lock() {
	l.Mutex.Lock()
	l.locks++
}

func TestLock(t *testing.T) {
	ran := false
	Lock(func() { ran = true })
	if !ran {
		t.Fatal("Lock without registry did not run fn")
	}

	l := &countingLocker{}
	install(t, &Registry{Lock: l})
	Lock(func() {})
	if l.locks != 1 {
		t.Errorf("locks = %d, want 1", l.locks)
	}
}

func TestTrampolinesAsHooks(t *testing.T) {
	attrs := &fakeAttributes{}
	install(t, &Registry{Attributes: attrs})

	r, err := ember.NewRuntime(ember.RuntimeConfig{Hooks: Trampolines{}, DynamicEndpointCount: 1})
	if err != nil {
		t.Fatalf("NewRuntime failed: %v", err)
	}
	light := &ember.EndpointType{Clusters: []ember.Cluster{{
		ID:         ember.ClusterIDOnOff,
		Mask:       ember.ClusterMaskServer,
		Attributes: []ember.AttributeMetadata{{ID: ember.AttributeIDOnOff, Type: ember.AttributeTypeBoolean, Size: 1, Mask: ember.AttributeMaskExternalStorage}},
	}}}
	if st := r.SetDynamicEndpoint(0, 9, light, make([]ember.DataVersion, 1), nil, ember.BridgeEndpointID); st != ember.StatusSuccess {
		t.Fatalf("SetDynamicEndpoint = %v", st)
	}

	buf := make([]byte, 1)
	if _, st := r.ReadAttribute(ember.ConcreteAttributePath{Endpoint: 9, Cluster: ember.ClusterIDOnOff, Attribute: ember.AttributeIDOnOff}, buf); st != ember.StatusSuccess {
		t.Fatalf("ReadAttribute = %v", st)
	}
	if attrs.gotEndpoint != 9 || buf[0] != 0xAB {
		t.Errorf("runtime read not forwarded: ep=%d buf=%v", attrs.gotEndpoint, buf)
	}
}
