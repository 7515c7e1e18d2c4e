package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fudge-api/internal/domain/repository"
)

const batchSize = 100

// UseCase arma el reporte de existencias del catálogo completo.
type UseCase struct {
	repo      repository.SweetRepository
	generator StockReportGenerator
	threshold int
	now       func() time.Time
}

// NewUseCase construye el caso de uso. threshold marca como stock bajo quantity <= threshold.
func NewUseCase(repo repository.SweetRepository, generator StockReportGenerator, threshold int) *UseCase {
	return &UseCase{repo: repo, generator: generator, threshold: threshold, now: time.Now}
}

// Build recorre el catálogo por lotes y calcula totales.
func (uc *UseCase) Build(ctx context.Context) (*StockReport, error) {
	rep := &StockReport{
		GeneratedAt:       uc.now().UTC(),
		TotalValue:        decimal.Zero,
		LowStockThreshold: uc.threshold,
	}
	for offset := 0; ; offset += batchSize {
		list, total, err := uc.repo.List(ctx, repository.SweetFilter{}, batchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("report: listar dulces: %w", err)
		}
		for _, s := range list {
			value := s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
			low := s.Quantity <= uc.threshold
			rep.Items = append(rep.Items, StockReportItem{
				Name:     s.Name,
				Category: s.Category,
				Price:    s.Price,
				Quantity: s.Quantity,
				Value:    value,
				LowStock: low,
			})
			rep.TotalUnits += s.Quantity
			rep.TotalValue = rep.TotalValue.Add(value)
			if low {
				rep.LowStockCount++
			}
		}
		if len(list) == 0 || offset+len(list) >= total {
			break
		}
	}
	return rep, nil
}

// StockReportPDF genera el PDF y su nombre de archivo sugerido.
func (uc *UseCase) StockReportPDF(ctx context.Context) ([]byte, string, error) {
	rep, err := uc.Build(ctx)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateStockReport(ctx, rep)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf: %w", err)
	}
	filename := fmt.Sprintf("stock-report-%s.pdf", rep.GeneratedAt.Format("20060102"))
	return pdf, filename, nil
}
