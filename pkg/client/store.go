package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SessionData estado persistido de la sesión.
type SessionData struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Store persiste la sesión entre ejecuciones. Load devuelve (nil, nil) si no hay nada guardado.
type Store interface {
	Load() (*SessionData, error)
	Save(data *SessionData) error
	Clear() error
}

// MemoryStore Store en memoria de proceso.
type MemoryStore struct {
	mu   sync.Mutex
	data *SessionData
}

// NewMemoryStore crea un MemoryStore vacío.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load() (*SessionData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	cp := *m.data
	return &cp, nil
}

func (m *MemoryStore) Save(data *SessionData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *data
	m.data = &cp
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// FileStore Store sobre un archivo JSON con permisos 0600.
type FileStore struct {
	path string
}

// NewFileStore crea el store; el archivo se crea en el primer Save.
func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (f *FileStore) Load() (*SessionData, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fudge: leer sesión: %w", err)
	}
	var data SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("fudge: sesión corrupta en %s: %w", f.path, err)
	}
	return &data, nil
}

// Save escribe en un temporal y renombra, para no dejar el archivo a medias.
func (f *FileStore) Save(data *SessionData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("fudge: serializar sesión: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("fudge: crear directorio de sesión: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("fudge: crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("fudge: permisos de sesión: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("fudge: escribir sesión: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("fudge: escribir sesión: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("fudge: guardar sesión: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("fudge: borrar sesión: %w", err)
	}
	return nil
}
