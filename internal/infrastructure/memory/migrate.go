package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/workflow"
)

// SuperAdminID id fijo del superadmin que crea la migración.
const SuperAdminID = "u-super"

// legacyStatuses estados de documentos antiguos y su equivalente actual.
var legacyStatuses = map[string]entity.StatusID{
	"packing":   entity.StatusConfirmed,
	"submitted": entity.StatusPending,
	"invoiced":  entity.StatusCompleted,
}

// MigrationOptions parámetros de la migración de carga.
type MigrationOptions struct {
	SuperAdminName     string
	SuperAdminEmail    string
	SuperAdminPassword string
	// SupplierLookup productId -> supplierId para documentos sin supplierId.
	SupplierLookup map[string]string
	// DefaultSupplierID se usa cuando el lookup no resuelve.
	DefaultSupplierID string
	// BcryptCost 0 usa bcrypt.DefaultCost.
	BcryptCost int
	Now        func() time.Time
}

// MigrationReport resumen de los cambios aplicados (se registra al iniciar).
type MigrationReport struct {
	SuperAdminCreated  bool
	ExtraSuperAdmins   []string
	CustomStagesKept   int
	StatusesNormalized int
	ApprovalsDefaulted int
	CreatorsDefaulted  int
	ProductsBackfilled int
	OrdersBackfilled   int
	LinesDropped       int
	PasswordsHashed    int
	IDsAssigned        int
}

// Migrate normaliza un documento cargado para que cumpla los invariantes actuales.
// Es idempotente: aplicarla dos veces no produce cambios adicionales.
func Migrate(snap *entity.Snapshot, opts MigrationOptions) (MigrationReport, error) {
	var rep MigrationReport
	now := time.Now().UTC()
	if opts.Now != nil {
		now = opts.Now()
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	if err := ensureSuperAdmin(snap, opts, now, cost, &rep); err != nil {
		return rep, err
	}
	for i := range snap.Users {
		u := &snap.Users[i]
		if u.ID == "" {
			u.ID = uuid.New().String()
			rep.IDsAssigned++
		}
		if u.LegacyPassword == "" {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.LegacyPassword), cost)
		if err != nil {
			return rep, fmt.Errorf("hash de contraseña de %s: %w", u.ID, err)
		}
		u.PasswordHash = string(hash)
		u.LegacyPassword = ""
		rep.PasswordsHashed++
	}

	rebuildCatalog(snap, &rep)
	catalog := workflow.NewCatalog(snap.OrderStatuses)

	for i := range snap.Products {
		p := &snap.Products[i]
		if p.SupplierID == "" {
			p.SupplierID = lookupSupplier(opts, p.ID)
			rep.ProductsBackfilled++
		}
	}

	defaultCreator := "system"
	if len(snap.Users) > 0 {
		defaultCreator = snap.Users[0].ID
	}
	for i := range snap.Orders {
		o := &snap.Orders[i]
		if o.ID == "" {
			o.ID = uuid.New().String()
			rep.IDsAssigned++
		}
		if st := normalizeStatus(catalog, string(o.Status)); st != o.Status {
			o.Status = st
			rep.StatusesNormalized++
		}
		if !o.ApprovalStatus.Valid() {
			o.ApprovalStatus = entity.ApprovalPending
			rep.ApprovalsDefaulted++
		}
		if o.CreatedBy == "" {
			o.CreatedBy = defaultCreator
			rep.CreatorsDefaulted++
		}

		kept := o.Items[:0]
		for _, line := range o.Items {
			if snap.FindProduct(line.ProductID) != nil {
				kept = append(kept, line)
			}
		}
		if dropped := len(o.Items) - len(kept); dropped > 0 {
			rep.LinesDropped += dropped
			o.Items = kept
			o.RecalculateValue()
		}

		if o.SupplierID == "" {
			o.SupplierID = orderSupplier(snap, opts, o)
			rep.OrdersBackfilled++
		}
	}
	return rep, nil
}

func ensureSuperAdmin(snap *entity.Snapshot, opts MigrationOptions, now time.Time, cost int, rep *MigrationReport) error {
	var supers []*entity.User
	for i := range snap.Users {
		if snap.Users[i].Role == entity.RoleSuperAdmin {
			supers = append(supers, &snap.Users[i])
		}
	}
	if len(supers) == 0 {
		if opts.SuperAdminEmail == "" || opts.SuperAdminPassword == "" {
			return fmt.Errorf("no existe superadmin y no se configuró SUPERADMIN_EMAIL/SUPERADMIN_PASSWORD")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(opts.SuperAdminPassword), cost)
		if err != nil {
			return fmt.Errorf("hash de contraseña del superadmin: %w", err)
		}
		name := opts.SuperAdminName
		if name == "" {
			name = "Super Admin"
		}
		snap.Users = append(snap.Users, entity.User{
			ID: SuperAdminID, Name: name, Email: opts.SuperAdminEmail, Role: entity.RoleSuperAdmin,
			PasswordHash: string(hash), Protected: true, CreatedAt: now, UpdatedAt: now,
		})
		rep.SuperAdminCreated = true
		return nil
	}

	// Se protege uno solo: el ya protegido o, si no hay, el primero.
	keep := supers[0]
	for _, u := range supers {
		if u.Protected {
			keep = u
			break
		}
	}
	for _, u := range supers {
		if u == keep {
			u.Protected = true
			continue
		}
		u.Protected = false
		rep.ExtraSuperAdmins = append(rep.ExtraSuperAdmins, u.ID)
	}
	return nil
}

// rebuildCatalog reemplaza las etapas reservadas por las actuales y conserva las personalizadas
// después de ellas, en su orden relativo.
func rebuildCatalog(snap *entity.Snapshot, rep *MigrationReport) {
	var custom []entity.OrderStatus
	for _, s := range snap.OrderStatuses {
		if !workflow.IsReserved(s.ID) && s.ID != "" {
			custom = append(custom, s)
		}
	}
	sort.SliceStable(custom, func(i, j int) bool { return custom[i].Order < custom[j].Order })

	statuses := workflow.ReservedStatuses()
	next := float64(workflow.CustomRankBase)
	for _, c := range custom {
		if c.Order < next {
			c.Order = next
		}
		c.Reserved = false
		next = c.Order + 1
		statuses = append(statuses, c)
	}
	snap.OrderStatuses = statuses
	rep.CustomStagesKept = len(custom)
}

func normalizeStatus(catalog workflow.Catalog, raw string) entity.StatusID {
	if st, ok := legacyStatuses[raw]; ok {
		return st
	}
	if catalog.Has(entity.StatusID(raw)) {
		return entity.StatusID(raw)
	}
	return entity.StatusPending
}

func lookupSupplier(opts MigrationOptions, productID string) string {
	if id, ok := opts.SupplierLookup[productID]; ok && id != "" {
		return id
	}
	return opts.DefaultSupplierID
}

func orderSupplier(snap *entity.Snapshot, opts MigrationOptions, o *entity.Order) string {
	if len(o.Items) > 0 {
		if p := snap.FindProduct(o.Items[0].ProductID); p != nil && p.SupplierID != "" {
			return p.SupplierID
		}
		return lookupSupplier(opts, o.Items[0].ProductID)
	}
	return opts.DefaultSupplierID
}
