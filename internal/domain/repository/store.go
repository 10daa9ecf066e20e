package repository

import (
	"context"

	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

// SnapshotRepository puerto de persistencia del documento completo (DIP).
type SnapshotRepository interface {
	// Load devuelve el último documento guardado, o (nil, nil) si no existe.
	Load(ctx context.Context) (*entity.Snapshot, error)
	// Save reemplaza el documento guardado.
	Save(ctx context.Context, snap *entity.Snapshot) error
}

// Store acceso serializado al estado. Run es la única vía de escritura:
// fn recibe una copia, y la copia solo se publica si fn no falla y Save tiene éxito.
type Store interface {
	View(ctx context.Context, fn func(snap *entity.Snapshot) error) error
	Run(ctx context.Context, fn func(snap *entity.Snapshot) error) error
}
