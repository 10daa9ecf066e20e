package entity

import "maps"

// Snapshot documento único con todas las colecciones. Es la forma persistida y el estado
// en memoria del almacén. AuditLogs se mantiene de más nueva a más antigua.
type Snapshot struct {
	Users         []User        `json:"users"`
	Suppliers     []Supplier    `json:"suppliers"`
	Buyers        []Buyer       `json:"buyers"`
	BuyerTiers    []BuyerTier   `json:"buyerTiers"`
	Products      []Product     `json:"products"`
	Orders        []Order       `json:"orders"`
	OrderStatuses []OrderStatus `json:"orderStatuses"`
	AuditLogs     []AuditLog    `json:"auditLogs"`
}

// FindUser devuelve un puntero al usuario dentro del snapshot (nil si no existe).
func (s *Snapshot) FindUser(id string) *User {
	if id == "" {
		return nil
	}
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// FindUserByEmail búsqueda exacta por email.
func (s *Snapshot) FindUserByEmail(email string) *User {
	for i := range s.Users {
		if s.Users[i].Email == email {
			return &s.Users[i]
		}
	}
	return nil
}

// FindSupplier devuelve el proveedor o nil.
func (s *Snapshot) FindSupplier(id string) *Supplier {
	for i := range s.Suppliers {
		if s.Suppliers[i].ID == id {
			return &s.Suppliers[i]
		}
	}
	return nil
}

// FindBuyer devuelve la empresa compradora o nil.
func (s *Snapshot) FindBuyer(id string) *Buyer {
	for i := range s.Buyers {
		if s.Buyers[i].ID == id {
			return &s.Buyers[i]
		}
	}
	return nil
}

// FindProduct devuelve el producto o nil.
func (s *Snapshot) FindProduct(id string) *Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// FindOrder devuelve el pedido o nil.
func (s *Snapshot) FindOrder(id string) *Order {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return &s.Orders[i]
		}
	}
	return nil
}

// FindStatus devuelve la etapa del catálogo o nil.
func (s *Snapshot) FindStatus(id StatusID) *OrderStatus {
	for i := range s.OrderStatuses {
		if s.OrderStatuses[i].ID == id {
			return &s.OrderStatuses[i]
		}
	}
	return nil
}

// RemoveUser elimina por id; devuelve false si no existía.
func (s *Snapshot) RemoveUser(id string) bool {
	return removeByID(&s.Users, id, func(u User) string { return u.ID })
}

// RemoveSupplier elimina por id.
func (s *Snapshot) RemoveSupplier(id string) bool {
	return removeByID(&s.Suppliers, id, func(v Supplier) string { return v.ID })
}

// RemoveBuyer elimina por id.
func (s *Snapshot) RemoveBuyer(id string) bool {
	return removeByID(&s.Buyers, id, func(v Buyer) string { return v.ID })
}

// RemoveProduct elimina por id.
func (s *Snapshot) RemoveProduct(id string) bool {
	return removeByID(&s.Products, id, func(v Product) string { return v.ID })
}

// RemoveOrder elimina por id.
func (s *Snapshot) RemoveOrder(id string) bool {
	return removeByID(&s.Orders, id, func(v Order) string { return v.ID })
}

func removeByID[T any](items *[]T, id string, key func(T) string) bool {
	for i, it := range *items {
		if key(it) == id {
			*items = append((*items)[:i], (*items)[i+1:]...)
			return true
		}
	}
	return false
}

// Clone copia profunda: ninguna mutación de la copia afecta al original.
// Conserva la distinción entre colecciones nil y vacías.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return &Snapshot{}
	}
	c := &Snapshot{
		Users:         cloneSlice(s.Users),
		Suppliers:     cloneSlice(s.Suppliers),
		Buyers:        cloneSlice(s.Buyers),
		BuyerTiers:    cloneSlice(s.BuyerTiers),
		Products:      cloneSlice(s.Products),
		Orders:        cloneSlice(s.Orders),
		OrderStatuses: cloneSlice(s.OrderStatuses),
		AuditLogs:     cloneSlice(s.AuditLogs),
	}
	for i := range c.Users {
		if p := c.Users[i].Permissions; p != nil {
			cp := *p
			c.Users[i].Permissions = &cp
		}
	}
	for i := range c.Suppliers {
		sup := &c.Suppliers[i]
		sup.Categories = cloneSlice(sup.Categories)
		sup.Tags = cloneSlice(sup.Tags)
		if sup.Rating != nil {
			r := *sup.Rating
			sup.Rating = &r
		}
	}
	for i := range c.Buyers {
		b := &c.Buyers[i]
		b.Tags = cloneSlice(b.Tags)
		if b.LastOrderDate != nil {
			d := *b.LastOrderDate
			b.LastOrderDate = &d
		}
	}
	for i := range c.Products {
		c.Products[i].TierPrices = cloneSlice(c.Products[i].TierPrices)
	}
	for i := range c.Orders {
		c.Orders[i] = c.Orders[i].Clone()
	}
	for i := range c.AuditLogs {
		if c.AuditLogs[i].Metadata != nil {
			c.AuditLogs[i].Metadata = maps.Clone(c.AuditLogs[i].Metadata)
		}
	}
	return c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
