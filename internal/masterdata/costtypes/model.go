package costtypes

import "time"

// CostType categorises cost lines (trucking, customs fee, storage). Each
// type defines a schema of boolean tags its costs may carry.
type CostType struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Attributes []Attribute `json:"attributes,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Attribute defines one boolean tag applicable to costs of a type, e.g.
// "Trả hộ" or "Ko hóa đơn". A cost carries the tag through a sparse
// attribute-value row; absence means false.
type Attribute struct {
	ID         int64  `json:"id"`
	CostTypeID int64  `json:"cost_type_id"`
	Name       string `json:"name"`
}
