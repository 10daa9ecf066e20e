package entity

import "time"

// Supplier organización proveedora (tenant de cumplimiento, dueña de un catálogo).
type Supplier struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Region     string    `json:"region,omitempty"`
	Website    string    `json:"website,omitempty"`
	Categories []string  `json:"categories"`
	Tags       []string  `json:"tags,omitempty"`
	Rating     *float64  `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
