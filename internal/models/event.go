package models

import "time"

// Product event types published after a successful write.
const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
)

// ProductEvent describes a change to a product row.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  uint      `json:"productID"`
	Product    *Product  `json:"product,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
