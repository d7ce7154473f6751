package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/showtime-booking/internal/model"
	"github.com/iliyamo/showtime-booking/internal/repository"
)

// CatalogHandler manages the catalog side of the system: screens with
// their seat layouts, and scheduled shows.  Catalog writes are rare
// and administrative; the reservation path only reads from here.
type CatalogHandler struct {
	Store *repository.Store
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(store *repository.Store) *CatalogHandler {
	if store == nil {
		panic("nil store passed to NewCatalogHandler")
	}
	return &CatalogHandler{Store: store}
}

// CreateScreen handles POST /v1/screens.  The body describes a grid of
// rows × seats_per_row; rows are labelled A, B, ... and every seat
// starts as STANDARD.  Rows named in premium_rows become PREMIUM and
// individual labels in accessible_seats (e.g. "A1") become
// ACCESSIBLE.  Screen and seats are created in one transaction.
func (h *CatalogHandler) CreateScreen(c echo.Context) error {
	var body struct {
		Name            string   `json:"name"`
		Rows            uint32   `json:"rows"`
		SeatsPerRow     uint32   `json:"seats_per_row"`
		PremiumRows     []string `json:"premium_rows"`
		AccessibleSeats []string `json:"accessible_seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if body.Rows == 0 || body.SeatsPerRow == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rows and seats_per_row must be positive"})
	}
	if body.Rows > 100 || body.SeatsPerRow > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rows and seats_per_row must be 100 or fewer"})
	}

	premium := make(map[string]struct{}, len(body.PremiumRows))
	for _, r := range body.PremiumRows {
		premium[r] = struct{}{}
	}
	accessible := make(map[string]struct{}, len(body.AccessibleSeats))
	for _, s := range body.AccessibleSeats {
		accessible[s] = struct{}{}
	}

	seats := make([]model.Seat, 0, int(body.Rows)*int(body.SeatsPerRow))
	for r := uint32(0); r < body.Rows; r++ {
		label := rowLabel(r)
		for n := uint32(1); n <= body.SeatsPerRow; n++ {
			seatType := model.SeatTypeStandard
			if _, ok := premium[label]; ok {
				seatType = model.SeatTypePremium
			}
			if _, ok := accessible[seatLabel(label, n)]; ok {
				seatType = model.SeatTypeAccessible
			}
			seats = append(seats, model.Seat{
				RowLabel:   label,
				SeatNumber: n,
				SeatType:   seatType,
			})
		}
	}

	screen := model.Screen{Name: body.Name}
	if err := h.Store.CreateScreenWithSeats(c.Request().Context(), &screen, seats); err != nil {
		if errors.Is(err, repository.ErrScreenExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "screen name already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"screen":     screen,
		"seat_count": len(seats),
	})
}

// ListScreens handles GET /v1/screens.
func (h *CatalogHandler) ListScreens(c echo.Context) error {
	screens, err := h.Store.ListScreens(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"screens": screens})
}

// ScreenSeats handles GET /v1/screens/:id/seats and returns the static
// seat layout of a screen ordered by row and number.
func (h *CatalogHandler) ScreenSeats(c echo.Context) error {
	screenID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screen id"})
	}
	if _, err := h.Store.GetScreen(c.Request().Context(), screenID); err != nil {
		if errors.Is(err, repository.ErrScreenNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	seats, err := h.Store.SeatsByScreen(c.Request().Context(), screenID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"seats": seats})
}

// CreateShow handles POST /v1/shows.  starts_at must be RFC3339 and in
// the future; a show overlapping an existing one on the same screen is
// rejected with 409.
func (h *CatalogHandler) CreateShow(c echo.Context) error {
	var body struct {
		ScreenID       uint64 `json:"screen_id"`
		Title          string `json:"title"`
		StartsAt       string `json:"starts_at"`
		DurationMin    uint32 `json:"duration_min"`
		BasePriceCents uint32 `json:"base_price_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ScreenID == 0 || body.Title == "" || body.DurationMin == 0 || body.BasePriceCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "screen_id, title, duration_min and base_price_cents are required"})
	}
	startsAt, err := time.Parse(time.RFC3339, body.StartsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be RFC3339"})
	}
	startsAt = startsAt.UTC()
	if !startsAt.After(time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be in the future"})
	}

	ctx := c.Request().Context()
	if _, err := h.Store.GetScreen(ctx, body.ScreenID); err != nil {
		if errors.Is(err, repository.ErrScreenNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	end := startsAt.Add(time.Duration(body.DurationMin) * time.Minute)
	overlaps, err := h.Store.FindOverlappingShows(ctx, body.ScreenID, startsAt, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(overlaps) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "screen already has a show in that time range"})
	}

	show := model.Show{
		ScreenID:       body.ScreenID,
		Title:          body.Title,
		StartsAt:       startsAt,
		DurationMin:    body.DurationMin,
		BasePriceCents: body.BasePriceCents,
	}
	if err := h.Store.CreateShow(ctx, &show); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"show": show})
}

// GetShow handles GET /v1/shows/:id.
func (h *CatalogHandler) GetShow(c echo.Context) error {
	showID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	show, err := h.Store.GetShow(c.Request().Context(), showID)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"show": show})
}

// ListScreenShows handles GET /v1/screens/:id/shows.
func (h *CatalogHandler) ListScreenShows(c echo.Context) error {
	screenID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screen id"})
	}
	if _, err := h.Store.GetScreen(c.Request().Context(), screenID); err != nil {
		if errors.Is(err, repository.ErrScreenNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	shows, err := h.Store.ListShowsByScreen(c.Request().Context(), screenID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// rowLabel converts a zero-based row index to its spreadsheet-style
// label: 0 is A, 25 is Z, 26 is AA.
func rowLabel(i uint32) string {
	label := ""
	n := i
	for {
		label = string(rune('A'+n%26)) + label
		if n < 26 {
			break
		}
		n = n/26 - 1
	}
	return label
}

// seatLabel joins a row label and seat number into the form "A1".
func seatLabel(row string, n uint32) string {
	return row + strconv.FormatUint(uint64(n), 10)
}
