package device

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/backkem/matterbridge/pkg/callbacks"
	"github.com/backkem/matterbridge/pkg/chip"
	"github.com/backkem/matterbridge/pkg/commissioning"
	"github.com/backkem/matterbridge/pkg/discovery"
	"github.com/backkem/matterbridge/pkg/ember"
	"github.com/backkem/matterbridge/pkg/endpoint"
)

// newTestDevice takes the context and builds a device with mock
// advertising. Cleanup closes both.
func newTestDevice(t *testing.T, mutate func(*Config)) (*Device, *discovery.MockServerFactory) {
	t.Helper()
	ctx, err := TakeContext()
	if err != nil {
		t.Fatalf("TakeContext failed: %v", err)
	}
	t.Cleanup(ctx.Release)

	factory := &discovery.MockServerFactory{}
	cfg := Config{
		Commissionable: commissioning.TestData(),
		ServerFactory:  factory,
		DeviceName:     "Test Bridge",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	d, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d, factory
}

func TestTakeContext(t *testing.T) {
	ctx, err := TakeContext()
	if err != nil {
		t.Fatalf("TakeContext failed: %v", err)
	}

	_, err = TakeContext()
	if !errors.Is(err, ErrContextTaken) {
		t.Fatalf("second TakeContext error = %v, want ErrContextTaken", err)
	}
	var ce chip.Error
	if !errors.As(err, &ce) || ce != chip.ErrIncorrectState {
		t.Errorf("ErrContextTaken does not wrap ErrIncorrectState: %v", err)
	}

	ctx.Release()
	ctx.Release()

	again, err := TakeContext()
	if err != nil {
		t.Fatalf("TakeContext after Release failed: %v", err)
	}
	again.Release()
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"no commissionable", Config{}, ErrCommissionableRequired},
		{"wide discriminator", Config{Commissionable: &commissioning.StaticData{Discriminator: 0x1000}}, ErrInvalidDiscriminator},
		{"long name", Config{Commissionable: commissioning.TestData(), DeviceName: strings.Repeat("x", 33)}, ErrInvalidDeviceName},
		{"long vendor", Config{Commissionable: commissioning.TestData(), VendorName: strings.Repeat("v", 33)}, ErrInvalidVendorName},
		{"max names", Config{Commissionable: commissioning.TestData(), DeviceName: strings.Repeat("x", 32), VendorName: strings.Repeat("v", 32)}, nil},
		{"ok", Config{Commissionable: commissioning.TestData()}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNew_NilContext(t *testing.T) {
	if _, err := New(nil, Config{Commissionable: commissioning.TestData()}); !errors.Is(err, ErrNilContext) {
		t.Errorf("New(nil) error = %v", err)
	}
}

func TestNew_ReleasedContext(t *testing.T) {
	ctx, err := TakeContext()
	if err != nil {
		t.Fatalf("TakeContext failed: %v", err)
	}
	ctx.Release()

	_, err = New(ctx, Config{Commissionable: commissioning.TestData(), DisableAdvertising: true})
	if !errors.Is(err, ErrContextReleased) {
		t.Fatalf("New(released) error = %v, want ErrContextReleased", err)
	}
	var ce chip.Error
	if !errors.As(err, &ce) || ce != chip.ErrIncorrectState {
		t.Errorf("ErrContextReleased does not wrap ErrIncorrectState: %v", err)
	}
	if callbacks.Installed() {
		t.Error("registry installed for a released context")
	}
}

func TestNew_BasicInformationStrings(t *testing.T) {
	name := strings.Repeat("b", 32)
	d, _ := newTestDevice(t, func(c *Config) {
		c.DeviceName = name
		c.VendorName = "Acme"
	})

	tests := []struct {
		attr ember.AttributeID
		want string
	}{
		{ember.AttributeIDVendorName, "Acme"},
		{ember.AttributeIDProductName, name},
		{ember.AttributeIDNodeLabel, name},
	}
	for _, tt := range tests {
		buf := make([]byte, 64)
		n, st := d.Runtime().ReadAttribute(ember.ConcreteAttributePath{
			Endpoint: ember.RootEndpointID, Cluster: ember.ClusterIDBasicInformation, Attribute: tt.attr,
		}, buf)
		if st != ember.StatusSuccess {
			t.Fatalf("read 0x%04x status = %v", tt.attr, st)
		}
		if l := int(buf[0]); l != len(tt.want) || 1+l > n || string(buf[1:1+l]) != tt.want {
			t.Errorf("attribute 0x%04x = %q (n=%d), want %q", tt.attr, buf[:n], n, tt.want)
		}
	}
}

func TestNew_InitializesTable(t *testing.T) {
	d, _ := newTestDevice(t, nil)

	if d.State() != StateInitialized {
		t.Errorf("State() = %v, want Initialized", d.State())
	}
	if !callbacks.Installed() {
		t.Error("registry not installed")
	}
	if d.DynamicEndpointRangeStart() != 3 {
		t.Errorf("DynamicEndpointRangeStart() = %d, want 3", d.DynamicEndpointRangeStart())
	}
	if d.Endpoints().SlotCount() != 4 {
		t.Errorf("SlotCount() = %d, want 4", d.Endpoints().SlotCount())
	}

	rt := d.Runtime()
	if !rt.IsEndpointEnabled(ember.RootEndpointID) {
		t.Error("root endpoint disabled")
	}
	if rt.IsEndpointEnabled(ember.TemplateEndpointID) {
		t.Error("template endpoint enabled")
	}
	types, _ := rt.DeviceTypeList(ember.RootEndpointID)
	if len(types) != 1 || types[0].ID != ember.DeviceTypeRootNode {
		t.Errorf("root device types = %+v", types)
	}

	buf := make([]byte, 2)
	n, st := rt.ReadAttribute(ember.ConcreteAttributePath{
		Endpoint: ember.RootEndpointID, Cluster: ember.ClusterIDBasicInformation, Attribute: ember.AttributeIDVendorID,
	}, buf)
	if st != ember.StatusSuccess || n != 2 || buf[0] != 0xF1 || buf[1] != 0xFF {
		t.Errorf("VendorID read = %x (%d, %v)", buf, n, st)
	}
}

func TestNew_SecondDeviceFails(t *testing.T) {
	newTestDevice(t, nil)

	ctx := &Context{}
	if _, err := New(ctx, Config{Commissionable: commissioning.TestData()}); !errors.Is(err, callbacks.ErrAlreadyInstalled) {
		t.Errorf("second New error = %v, want ErrAlreadyInstalled", err)
	}
}

func TestDevice_OnboardingCodes(t *testing.T) {
	d, _ := newTestDevice(t, nil)

	codes, err := d.OnboardingCodes()
	if err != nil {
		t.Fatalf("OnboardingCodes failed: %v", err)
	}
	if codes.ManualCode != "34970112332" {
		t.Errorf("ManualCode = %q", codes.ManualCode)
	}
	if !strings.HasPrefix(codes.QRCode, "MT:") || len(codes.QRCode) != 22 {
		t.Errorf("QRCode = %q", codes.QRCode)
	}
}

func TestDevice_RunAdvertisesAndSchedules(t *testing.T) {
	d, factory := newTestDevice(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	ran := make(chan struct{})
	if err := d.Schedule(func() { close(ran) }); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled work did not run")
	}

	if d.State() != StateRunning {
		t.Errorf("State() = %v, want Running", d.State())
	}
	reg := factory.Last()
	if reg == nil {
		t.Fatal("commissionable service not registered")
	}
	if !strings.HasPrefix(reg.Service, discovery.ServiceCommissionable+",_S15,_L3840") {
		t.Errorf("service = %q", reg.Service)
	}
	txt, err := discovery.ParseCommissionableTXT(reg.TXT)
	if err != nil || txt.Discriminator != 3840 || txt.VendorID != DefaultVendorID || txt.DeviceName != "Test Bridge" {
		t.Errorf("txt = %+v, %v", txt, err)
	}

	if err := d.Run(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run error = %v", err)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	if d.State() != StateStopped {
		t.Errorf("State() = %v, want Stopped", d.State())
	}
	if !reg.Shutdown {
		t.Error("advertisement not withdrawn")
	}
}

func TestDevice_Close(t *testing.T) {
	d, _ := newTestDevice(t, func(c *Config) { c.DisableAdvertising = true })

	_, err := d.Endpoints().Register(10, []endpoint.DeviceType{endpoint.DeviceTypeOf(ember.DeviceTypeOnOffLight)},
		endpoint.NewEndpointType(endpoint.OnOff(), endpoint.Descriptor()), make([]ember.DataVersion, 2), endpoint.BridgeNode)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if callbacks.Installed() {
		t.Error("registry still installed")
	}
	if _, ok := d.Endpoints().FindIndex(10); ok {
		t.Error("dynamic endpoint survived Close")
	}
	if err := d.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close error = %v", err)
	}
	if err := d.Schedule(func() {}); !errors.Is(err, ErrClosed) {
		t.Errorf("Schedule after Close error = %v", err)
	}
	if err := d.Run(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Run after Close error = %v", err)
	}
}

type countingListener struct{ paths []ember.ConcreteAttributePath }

func (l *countingListener) OnAttributeChanged(p ember.ConcreteAttributePath) {
	l.paths = append(l.paths, p)
}

func TestDevice_AttributeUpdated(t *testing.T) {
	d, _ := newTestDevice(t, func(c *Config) { c.DisableAdvertising = true })
	l := &countingListener{}
	d.Runtime().SetChangeListener(l)

	before, _ := d.Runtime().DataVersion(ember.RootEndpointID, ember.ClusterIDBasicInformation)
	d.AttributeUpdated(ember.RootEndpointID, ember.ClusterIDBasicInformation, ember.AttributeIDNodeLabel)
	after, _ := d.Runtime().DataVersion(ember.RootEndpointID, ember.ClusterIDBasicInformation)
	if after != before+1 {
		t.Errorf("data version %d -> %d", before, after)
	}
	if len(l.paths) != 1 {
		t.Errorf("notifications = %d, want 1", len(l.paths))
	}

	d.EndpointUpdated(ember.RootEndpointID)
	if len(l.paths) < 2 {
		t.Error("EndpointUpdated did not notify")
	}
}

func TestDevice_AssignEndpointID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.cbor")
	d, _ := newTestDevice(t, func(c *Config) {
		c.DisableAdvertising = true
		c.Storage = NewFileStorage(path)
	})

	a, err := d.AssignEndpointID("light-a")
	if err != nil {
		t.Fatalf("AssignEndpointID failed: %v", err)
	}
	b, _ := d.AssignEndpointID("light-b")
	if a != 3 || b != 4 {
		t.Errorf("ids = %d, %d; want 3, 4", a, b)
	}
	if again, _ := d.AssignEndpointID("light-a"); again != a {
		t.Errorf("reassigned %d, want %d", again, a)
	}

	if err := d.ReleaseEndpointID("light-a"); err != nil {
		t.Fatalf("ReleaseEndpointID failed: %v", err)
	}
	c, _ := d.AssignEndpointID("light-c")
	if c != 5 {
		t.Errorf("light-c = %d, want 5", c)
	}

	m, err := NewFileStorage(path).LoadEndpointMap()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if m.Entries["light-b"] != 4 || m.Entries["light-c"] != 5 || m.NextID != 6 {
		t.Errorf("reloaded map = %+v", m)
	}
	if _, ok := m.Entries["light-a"]; ok {
		t.Error("released id persisted")
	}
}
