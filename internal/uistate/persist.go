package uistate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// StorageKey names the persisted document, as a browser would key local storage.
const StorageKey = "portfolio-storage"

const storageVersion = 0

// Persister loads and saves the persisted part of the store.
type Persister interface {
	Load() (Draft, error)
	Save(Draft) error
}

type persistedState struct {
	State struct {
		ContactForm Draft `json:"contactForm"`
	} `json:"state"`
	Version int `json:"version"`
}

func encode(d Draft) ([]byte, error) {
	var ps persistedState
	ps.State.ContactForm = d
	ps.Version = storageVersion
	return json.Marshal(ps)
}

func decode(data []byte) (Draft, error) {
	var ps persistedState
	if err := json.Unmarshal(data, &ps); err != nil {
		return Draft{}, fmt.Errorf("decode %s: %w", StorageKey, err)
	}
	return ps.State.ContactForm, nil
}

// FilePersister keeps the draft in a JSON file.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// DefaultStoragePath is $XDG_CONFIG_HOME/portfolioctl/portfolio-storage.json or the OS equivalent.
func DefaultStoragePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "portfolioctl", StorageKey+".json"), nil
}

func (p *FilePersister) Path() string {
	return p.path
}

// Load returns an empty draft when nothing has been saved yet.
func (p *FilePersister) Load() (Draft, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return Draft{}, nil
	}
	if err != nil {
		return Draft{}, err
	}
	return decode(data)
}

// Save writes through a temp file so a crash never leaves a truncated document.
func (p *FilePersister) Save(d Draft) error {
	data, err := encode(d)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}

// MemoryPersister holds the encoded document in memory. Sharing one between
// two stores simulates a page reload.
type MemoryPersister struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Load() (Draft, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data == nil {
		return Draft{}, nil
	}
	return decode(p.data)
}

func (p *MemoryPersister) Save(d Draft) error {
	data, err := encode(d)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.data = data
	p.mu.Unlock()
	return nil
}

// Raw returns the stored document.
func (p *MemoryPersister) Raw() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.data...)
}
