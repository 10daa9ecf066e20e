package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*VolatileRepository)(nil)

// VolatileRepository repositorio de snapshot sin disco (STORE_BACKEND=memory y tests).
// Guarda una copia para que el llamador no comparta punteros con lo persistido.
type VolatileRepository struct {
	mu   sync.Mutex
	snap *entity.Snapshot
	// FailWith si no es nil, Save devuelve este error (simula caída del backend).
	FailWith error
	saves    int
}

// NewVolatileRepository crea el repositorio, opcionalmente con un documento inicial.
func NewVolatileRepository(initial *entity.Snapshot) *VolatileRepository {
	r := &VolatileRepository{}
	if initial != nil {
		r.snap = initial.Clone()
	}
	return r
}

func (r *VolatileRepository) Load(_ context.Context) (*entity.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snap == nil {
		return nil, nil
	}
	return r.snap.Clone(), nil
}

func (r *VolatileRepository) Save(_ context.Context, snap *entity.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.snap = snap.Clone()
	r.saves++
	return nil
}

// Saves cantidad de escrituras exitosas.
func (r *VolatileRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
