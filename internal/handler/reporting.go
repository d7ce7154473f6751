package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/showtime-booking/internal/repository"
)

// ReportingHandler serves aggregate sales figures.  Reports only count
// CONFIRMED reservations, so holds never inflate the numbers.
type ReportingHandler struct {
	Store *repository.Store
}

// NewReportingHandler constructs a ReportingHandler.
func NewReportingHandler(store *repository.Store) *ReportingHandler {
	if store == nil {
		panic("nil store passed to NewReportingHandler")
	}
	return &ReportingHandler{Store: store}
}

// ShowSales handles GET /v1/reports/shows and returns per-show sold
// seat counts and revenue.
func (h *ReportingHandler) ShowSales(c echo.Context) error {
	reports, err := h.Store.ShowSalesReports(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reports": reports})
}
