package endpoint

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/backkem/matterbridge/pkg/ember"
)

var lightTypes = []DeviceType{
	DeviceTypeOf(ember.DeviceTypeOnOffLight),
	DeviceTypeOf(ember.DeviceTypeBridgedNode),
}

func lightEndpoint() *EndpointType {
	return NewEndpointType(OnOff(), Descriptor(), Bridged())
}

func newTestManager(t *testing.T, slots int) (*Manager, *ember.Runtime) {
	t.Helper()
	rt, err := ember.NewRuntime(ember.RuntimeConfig{DynamicEndpointCount: slots})
	if err != nil {
		t.Fatalf("NewRuntime failed: %v", err)
	}
	var mu sync.Mutex
	m := NewManager(ManagerConfig{
		Table: rt,
		Lock: func(fn func()) {
			mu.Lock()
			defer mu.Unlock()
			fn()
		},
	})
	return m, rt
}

func TestRegister_EndToEnd(t *testing.T) {
	m, rt := newTestManager(t, 4)
	const id = ember.EndpointID(3)

	reg, err := m.Register(id, lightTypes, lightEndpoint(), make([]ember.DataVersion, 2), BridgeNode)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	index, ok := m.FindIndex(id)
	total := uint16(int(rt.FixedEndpointCount()) + m.SlotCount())
	if !ok || index >= total {
		t.Fatalf("FindIndex(%d) = %d, %v; want index in [0, %d)", id, index, ok, total)
	}

	reg.Enable(true)
	if !rt.IsEndpointEnabled(id) {
		t.Error("endpoint not enabled")
	}
	reg.Enable(false)
	if rt.IsEndpointEnabled(id) {
		t.Error("endpoint still enabled")
	}

	if err := reg.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, ok := m.FindIndex(id); ok {
		t.Error("FindIndex found endpoint after Close")
	}
	if err := reg.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	m, _ := newTestManager(t, 4)

	for _, id := range []ember.EndpointID{3, 10, 500} {
		reg, err := m.Register(id, lightTypes, lightEndpoint(), make([]ember.DataVersion, 3), BridgeNode)
		if err != nil {
			t.Fatalf("Register(%d) failed: %v", id, err)
		}
		_, err = m.Register(id, lightTypes, lightEndpoint(), make([]ember.DataVersion, 3), BridgeNode)
		if !errors.Is(err, ErrAlreadyRegistered) {
			t.Errorf("Register(%d) twice = %v, want ErrAlreadyRegistered", id, err)
		}
		if ember.StatusOf(err) != ember.StatusDuplicateExists {
			t.Errorf("status = %v, want DuplicateExists", ember.StatusOf(err))
		}
		if msg := err.Error(); !strings.Contains(msg, "DuplicateExists") {
			t.Errorf("Error() = %q, want status name", msg)
		}
		reg.Close()
	}

	// Fixed endpoint ids are taken too.
	if _, err := m.Register(ember.RootEndpointID, lightTypes, lightEndpoint(), make([]ember.DataVersion, 3), BridgeNode); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("Register(root) = %v, want ErrAlreadyRegistered", err)
	}
}

func TestRegister_Exhaustion(t *testing.T) {
	m, _ := newTestManager(t, 3)
	var regs []*Registration

	for i := 0; i < 3; i++ {
		reg, err := m.Register(ember.EndpointID(10+i), lightTypes, lightEndpoint(), make([]ember.DataVersion, 3), BridgeNode)
		if err != nil {
			t.Fatalf("Register(%d) failed: %v", 10+i, err)
		}
		regs = append(regs, reg)
	}

	_, err := m.Register(20, lightTypes, lightEndpoint(), make([]ember.DataVersion, 3), BridgeNode)
	if err != nil && !strings.Contains(err.Error(), "ResourceExhausted") {
		t.Errorf("Error() = %q, want status name", err.Error())
	}
	if !errors.Is(err, ErrResourceExhausted) {
		t.Fatalf("Register on full table = %v, want ErrResourceExhausted", err)
	}

	if err := regs[1].Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := m.Register(20, lightTypes, lightEndpoint(), make([]ember.DataVersion, 3), BridgeNode); err != nil {
		t.Fatalf("Register after free = %v", err)
	}
	if _, err := m.Register(21, lightTypes, lightEndpoint(), make([]ember.DataVersion, 3), BridgeNode); !errors.Is(err, ErrResourceExhausted) {
		t.Errorf("second Register after one free = %v, want ErrResourceExhausted", err)
	}
}

func TestClose_FreesOwnSlot(t *testing.T) {
	m, rt := newTestManager(t, 4)
	ids := []ember.EndpointID{7, 8, 9}
	regs := make(map[ember.EndpointID]*Registration)
	slots := make(map[ember.EndpointID]uint16)

	for _, id := range ids {
		reg, err := m.Register(id, lightTypes, lightEndpoint(), make([]ember.DataVersion, 3), BridgeNode)
		if err != nil {
			t.Fatalf("Register(%d) failed: %v", id, err)
		}
		regs[id] = reg
		slots[id], _ = reg.Index()
	}

	if err := regs[8].Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if got := rt.EndpointFromIndex(slots[8]); got != ember.InvalidEndpointID {
		t.Errorf("slot of 8 holds %d, want empty", got)
	}
	for _, id := range []ember.EndpointID{7, 9} {
		if got := rt.EndpointFromIndex(slots[id]); got != id {
			t.Errorf("slot of %d holds %d", id, got)
		}
	}
}

func TestRegister_NilType(t *testing.T) {
	m, _ := newTestManager(t, 1)
	if _, err := m.Register(3, nil, nil, nil, BridgeNode); !errors.Is(err, ErrNilEndpointType) {
		t.Errorf("Register(nil type) = %v, want ErrNilEndpointType", err)
	}
}

func TestInitializeStatic(t *testing.T) {
	m, rt := newTestManager(t, 1)

	if err := m.InitializeStatic(); err != nil {
		t.Fatalf("InitializeStatic failed: %v", err)
	}
	types, _ := rt.DeviceTypeList(ember.RootEndpointID)
	if len(types) != 1 || types[0].ID != ember.DeviceTypeRootNode {
		t.Errorf("root device types = %v", types)
	}
	types, _ = rt.DeviceTypeList(ember.BridgeEndpointID)
	if len(types) != 1 || types[0].ID != ember.DeviceTypeAggregator {
		t.Errorf("bridge device types = %v", types)
	}
	if rt.IsEndpointEnabled(ember.BridgeEndpointID) || rt.IsEndpointEnabled(ember.TemplateEndpointID) {
		t.Error("bridge or template endpoint enabled after init")
	}
	if !rt.IsEndpointEnabled(ember.RootEndpointID) {
		t.Error("root endpoint disabled after init")
	}

	m.EnableStatic(BridgeNode, true)
	if !rt.IsEndpointEnabled(ember.BridgeEndpointID) {
		t.Error("EnableStatic(BridgeNode, true) had no effect")
	}

	if err := m.InitializeEndpoint(StaticEndpoint(42), nil); err == nil {
		t.Error("InitializeEndpoint(missing) succeeded")
	}
}

func TestDynamicRangeStart(t *testing.T) {
	m, _ := newTestManager(t, 1)
	if got := m.DynamicRangeStart(); got != 3 {
		t.Errorf("DynamicRangeStart() = %d, want 3", got)
	}
}

// fakeTable checks that slot-relative indices reach the table.
type fakeTable struct {
	fixed, dynamic uint16
	ids            []ember.EndpointID
	setIndex       []uint16
	clearIndex     []uint16
}

func newFakeTable(fixed, dynamic uint16) *fakeTable {
	ft := &fakeTable{fixed: fixed, dynamic: dynamic, ids: make([]ember.EndpointID, fixed+dynamic)}
	for i := range ft.ids {
		if uint16(i) < fixed {
			ft.ids[i] = ember.EndpointID(i)
		} else {
			ft.ids[i] = ember.InvalidEndpointID
		}
	}
	return ft
}

func (f *fakeTable) FixedEndpointCount() uint16   { return f.fixed }
func (f *fakeTable) DynamicEndpointCount() uint16 { return f.dynamic }
func (f *fakeTable) EndpointFromIndex(i uint16) ember.EndpointID {
	return f.ids[i]
}

func (f *fakeTable) SetDynamicEndpoint(index uint16, id ember.EndpointID, ep *ember.EndpointType, dv []ember.DataVersion, dt []ember.DeviceType, parent ember.EndpointID) ember.Status {
	f.setIndex = append(f.setIndex, index)
	f.ids[f.fixed+index] = id
	return ember.StatusSuccess
}

func (f *fakeTable) ClearDynamicEndpoint(index uint16) ember.EndpointID {
	f.clearIndex = append(f.clearIndex, index)
	id := f.ids[f.fixed+index]
	f.ids[f.fixed+index] = ember.InvalidEndpointID
	return id
}

func (f *fakeTable) EndpointEnableDisable(ember.EndpointID, bool) bool { return true }
func (f *fakeTable) SetDeviceTypeList(ember.EndpointID, []ember.DeviceType) error {
	return nil
}

func TestRegister_SlotRelativeIndex(t *testing.T) {
	ft := newFakeTable(2, 3)
	m := NewManager(ManagerConfig{Table: ft})

	a, _ := m.Register(100, nil, lightEndpoint(), nil, BridgeNode)
	b, _ := m.Register(101, nil, lightEndpoint(), nil, BridgeNode)
	if len(ft.setIndex) != 2 || ft.setIndex[0] != 0 || ft.setIndex[1] != 1 {
		t.Fatalf("set indices = %v, want [0 1]", ft.setIndex)
	}

	b.Close()
	a.Close()
	if len(ft.clearIndex) != 2 || ft.clearIndex[0] != 1 || ft.clearIndex[1] != 0 {
		t.Errorf("clear indices = %v, want [1 0]", ft.clearIndex)
	}
}
