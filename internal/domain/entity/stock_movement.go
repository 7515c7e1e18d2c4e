package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypePurchase = "PURCHASE" // salida por compra
	MovementTypeRestock  = "RESTOCK"  // entrada por reposición
)

// StockMovement es una entrada del libro de movimientos de un dulce.
// Quantity siempre es positiva; Type indica el sentido.
type StockMovement struct {
	ID                string
	SweetID           string
	UserID            string
	Type              string
	Quantity          int
	ResultingQuantity int // stock después de aplicar el movimiento
	CreatedAt         time.Time
}
