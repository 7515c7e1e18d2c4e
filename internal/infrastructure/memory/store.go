// Package memory implementa los puertos de repositorio en memoria de proceso.
// Sirve a STORAGE_DRIVER=memory y a los tests; no persiste entre reinicios.
package memory

import (
	"sync"

	"github.com/jhoicas/fudge-api/internal/domain/entity"
)

// Store estado compartido por los repositorios. Los valores guardados nunca se mutan
// en sitio: cada escritura reemplaza el puntero, así un snapshot superficial basta para rollback.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*entity.User
	emails    map[string]string // email -> id
	sweets    map[string]*entity.Sweet
	order     []string // IDs de sweets en orden de inserción
	movements []*entity.StockMovement
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:  make(map[string]*entity.User),
		emails: make(map[string]string),
		sweets: make(map[string]*entity.Sweet),
	}
}

// Users repositorio de usuarios sobre este store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Sweets repositorio de dulces sobre este store.
func (s *Store) Sweets() *SweetRepo { return &SweetRepo{s: s} }

// Movements repositorio del ledger sobre este store.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{s: s} }

// TxRunner runner transaccional sobre este store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// lock toma el lock de escritura salvo que el repo ya corra dentro de una tx.
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rlock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}
