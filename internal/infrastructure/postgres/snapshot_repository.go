package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS app_snapshots (
	key        TEXT PRIMARY KEY,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS order_values (
	snapshot_key TEXT NOT NULL,
	order_id     TEXT NOT NULL,
	order_number TEXT NOT NULL,
	buyer_id     TEXT NOT NULL,
	supplier_id  TEXT NOT NULL,
	status       TEXT NOT NULL,
	order_value  NUMERIC(18,2) NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (snapshot_key, order_id)
);`

// SnapshotRepo guarda el documento completo como JSONB en una fila por clave y
// proyecta el valor de cada pedido en order_values (NUMERIC) para reportes SQL.
type SnapshotRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
	key  string
}

// NewSnapshotRepository construye el adaptador. key identifica el documento (STORE_SNAPSHOT_KEY).
func NewSnapshotRepository(pool *pgxpool.Pool, key string) *SnapshotRepo {
	return &SnapshotRepo{pool: pool, tx: NewTxRunner(pool), key: key}
}

// EnsureSchema crea las tablas si no existen.
func (r *SnapshotRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear esquema de snapshot: %w", err)
	}
	return nil
}

// Load obtiene el documento; (nil, nil) si aún no se guardó ninguno.
func (r *SnapshotRepo) Load(ctx context.Context) (*entity.Snapshot, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT document FROM app_snapshots WHERE key = $1`, r.key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	var snap entity.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decodificar snapshot: %w", err)
	}
	return &snap, nil
}

// Save reemplaza el documento y la proyección de valores en una sola transacción.
func (r *SnapshotRepo) Save(ctx context.Context, snap *entity.Snapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("codificar snapshot: %w", err)
	}
	now := time.Now().UTC()

	return r.tx.Run(ctx, func(q Querier) error {
		upsert := `
			INSERT INTO app_snapshots (key, document, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`
		if _, err := q.Exec(ctx, upsert, r.key, doc, now); err != nil {
			return fmt.Errorf("upsert snapshot: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM order_values WHERE snapshot_key = $1`, r.key); err != nil {
			return fmt.Errorf("limpiar order_values: %w", err)
		}
		rows := make([][]any, 0, len(snap.Orders))
		for _, o := range snap.Orders {
			rows = append(rows, []any{r.key, o.ID, o.OrderNumber, o.BuyerID, o.SupplierID, string(o.Status), o.OrderValue, o.UpdatedAt})
		}
		_, err := q.CopyFrom(ctx, pgx.Identifier{"order_values"},
			[]string{"snapshot_key", "order_id", "order_number", "buyer_id", "supplier_id", "status", "order_value", "updated_at"},
			pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("copiar order_values: %w", err)
		}
		return nil
	})
}
