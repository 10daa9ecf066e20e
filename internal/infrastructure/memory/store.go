// Package memory implementa el almacén de un solo escritor sobre un documento en memoria.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

var _ repository.Store = (*Store)(nil)

// Store guarda el estado vigente y serializa las escrituras con un único candado.
type Store struct {
	mu    sync.RWMutex
	state *entity.Snapshot
	repo  repository.SnapshotRepository
	log   *logger.Logger
}

// Open carga el documento del repositorio, ejecuta la migración y persiste el resultado.
func Open(ctx context.Context, repo repository.SnapshotRepository, opts MigrationOptions, log *logger.Logger) (*Store, MigrationReport, error) {
	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, MigrationReport{}, fmt.Errorf("cargar snapshot: %w", err)
	}
	if snap == nil {
		snap = &entity.Snapshot{}
	}
	report, err := Migrate(snap, opts)
	if err != nil {
		return nil, report, fmt.Errorf("migrar snapshot: %w", err)
	}
	if err := repo.Save(ctx, snap); err != nil {
		return nil, report, fmt.Errorf("guardar snapshot migrado: %w", err)
	}
	return &Store{state: snap, repo: repo, log: log}, report, nil
}

// View ejecuta fn bajo candado de lectura. fn no debe modificar el snapshot.
func (s *Store) View(ctx context.Context, fn func(snap *entity.Snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// Run aplica fn sobre una copia, la persiste y solo entonces la publica.
// Si fn o Save fallan, el estado anterior queda intacto.
func (s *Store) Run(ctx context.Context, fn func(snap *entity.Snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("persistencia del snapshot falló; se conserva el estado anterior")
		return fmt.Errorf("guardar snapshot: %w", err)
	}
	s.state = next
	return nil
}

// Snapshot copia del estado vigente (seed, exportaciones).
func (s *Store) Snapshot() *entity.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}
