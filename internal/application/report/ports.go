package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockReportItem fila del reporte de existencias.
type StockReportItem struct {
	Name     string
	Category string
	Price    decimal.Decimal
	Quantity int
	Value    decimal.Decimal // Price * Quantity
	LowStock bool
}

// StockReport datos ya calculados que el generador solo debe maquetar.
type StockReport struct {
	GeneratedAt       time.Time
	Items             []StockReportItem
	TotalUnits        int
	TotalValue        decimal.Decimal
	LowStockThreshold int
	LowStockCount     int
}

// StockReportGenerator puerto de salida para renderizar el reporte (PDF).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, report *StockReport) ([]byte, error)
}
