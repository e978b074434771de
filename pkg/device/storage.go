package device

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/backkem/matterbridge/pkg/ember"
	"github.com/fxamacker/cbor/v2"
)

// Storage persists the bridge state that must survive restarts.
//
// All methods must be safe for concurrent use.
type Storage interface {
	// LoadEndpointMap returns the stored map, or an empty one.
	LoadEndpointMap() (*EndpointMap, error)
	SaveEndpointMap(m *EndpointMap) error
}

// EndpointMap assigns stable endpoint ids to bridged devices by unique id.
type EndpointMap struct {
	// NextID is the next endpoint id to hand out. Zero means unset.
	NextID  ember.EndpointID            `cbor:"1,keyasint"`
	Entries map[string]ember.EndpointID `cbor:"2,keyasint"`
}

// NewEndpointMap returns an empty map.
func NewEndpointMap() *EndpointMap {
	return &EndpointMap{Entries: make(map[string]ember.EndpointID)}
}

// Clone returns a deep copy.
func (m *EndpointMap) Clone() *EndpointMap {
	if m == nil {
		return NewEndpointMap()
	}
	c := &EndpointMap{NextID: m.NextID, Entries: make(map[string]ember.EndpointID, len(m.Entries))}
	for k, v := range m.Entries {
		c.Entries[k] = v
	}
	return c
}

// inUse reports whether id is assigned to any unique id.
func (m *EndpointMap) inUse(id ember.EndpointID) bool {
	for _, v := range m.Entries {
		if v == id {
			return true
		}
	}
	return false
}

// assign returns the id for uniqueID, allocating one at or after first when
// needed. Ids wrap back to first before reaching the invalid id.
func (m *EndpointMap) assign(uniqueID string, first ember.EndpointID) (ember.EndpointID, bool, error) {
	if id, ok := m.Entries[uniqueID]; ok {
		return id, false, nil
	}
	if m.NextID < first {
		m.NextID = first
	}
	span := int(ember.InvalidEndpointID - first)
	for i := 0; i < span; i++ {
		id := m.NextID
		m.NextID++
		if m.NextID == ember.InvalidEndpointID {
			m.NextID = first
		}
		if !m.inUse(id) {
			m.Entries[uniqueID] = id
			return id, true, nil
		}
	}
	return 0, false, ErrEndpointIDsExhausted
}

// MemoryStorage keeps state in memory. Data is lost when the process exits.
type MemoryStorage struct {
	mu        sync.RWMutex
	endpoints *EndpointMap
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{endpoints: NewEndpointMap()}
}

func (s *MemoryStorage) LoadEndpointMap() (*EndpointMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endpoints.Clone(), nil
}

func (s *MemoryStorage) SaveEndpointMap(m *EndpointMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endpoints = m.Clone()
	return nil
}

// FileStorage keeps state in a CBOR file.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage returns a FileStorage backed by path. The file is created
// on first save.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

type fileState struct {
	Endpoints *EndpointMap `cbor:"1,keyasint"`
}

func (s *FileStorage) LoadEndpointMap() (*EndpointMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.read()
	if err != nil {
		return nil, err
	}
	return st.Endpoints.Clone(), nil
}

func (s *FileStorage) SaveEndpointMap(m *EndpointMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.read()
	if err != nil {
		return err
	}
	st.Endpoints = m.Clone()
	return s.write(st)
}

func (s *FileStorage) read() (*fileState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &fileState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", s.path, err)
	}
	var st fileState
	if err := cbor.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", s.path, err)
	}
	return &st, nil
}

// write replaces the file atomically.
func (s *FileStorage) write(st *fileState) error {
	data, err := cbor.Marshal(st)
	if err != nil {
		return fmt.Errorf("storage: encode: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("storage: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("storage: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}
