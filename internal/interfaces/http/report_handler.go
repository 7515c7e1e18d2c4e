package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fudge-api/internal/application/report"
)

// ReportHandler expone los reportes descargables (admin).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockReport godoc
// @Summary      Reporte de stock en PDF
// @Description  Lista todos los dulces con precio y cantidad, totales de unidades y valor, y resalta el stock bajo.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Router       /api/sweets/report [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.StockReportPDF(c.UserContext())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
