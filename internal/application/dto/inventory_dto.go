package dto

import "time"

// QuantityRequest body de purchase y restock.
type QuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// MovementResponse salida de un movimiento del ledger de stock.
type MovementResponse struct {
	ID                string    `json:"id"`
	SweetID           string    `json:"sweetId"`
	UserID            string    `json:"userId"`
	Type              string    `json:"type"`
	Quantity          int       `json:"quantity"`
	ResultingQuantity int       `json:"resultingQuantity"`
	CreatedAt         time.Time `json:"createdAt"`
}
