package discovery

import (
	"net"
	"sync"
)

// MockRegistration records one Register call.
type MockRegistration struct {
	Instance string
	Service  string
	Domain   string
	Port     int
	TXT      []string
	Shutdown bool
}

// MockServerFactory records registrations without touching the network.
type MockServerFactory struct {
	mu            sync.Mutex
	Registrations []*MockRegistration
	Err           error
}

// Register implements MDNSServerFactory.
func (m *MockServerFactory) Register(instance, service, domain string, port int, txt []string, _ []net.Interface) (MDNSServer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	r := &MockRegistration{Instance: instance, Service: service, Domain: domain, Port: port, TXT: txt}
	m.Registrations = append(m.Registrations, r)
	return &mockServer{factory: m, reg: r}, nil
}

// Last returns the most recent registration, or nil.
func (m *MockServerFactory) Last() *MockRegistration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Registrations) == 0 {
		return nil
	}
	return m.Registrations[len(m.Registrations)-1]
}

type mockServer struct {
	factory *MockServerFactory
	reg     *MockRegistration
}

func (s *mockServer) Shutdown() {
	s.factory.mu.Lock()
	s.reg.Shutdown = true
	s.factory.mu.Unlock()
}
