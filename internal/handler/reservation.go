package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kjh/spacebook/internal/model"
	"github.com/kjh/spacebook/internal/service"
)

// ReservationHandler serves booking, cancellation, the caller's
// reservation list, and the public availability views of a space.
type ReservationHandler struct {
	Reservations *service.ReservationService
}

func NewReservationHandler(reservations *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Reservations: reservations}
}

type createReservationReq struct {
	SpaceID     uint64    `json:"space_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	PeopleCount int       `json:"people_count"`
	Purpose     string    `json:"purpose"`
}

// reservationView is the wire shape of a reservation.
type reservationView struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	SpaceID     uint64    `json:"space_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	PeopleCount int       `json:"people_count"`
	TotalPrice  int       `json:"total_price"`
	Purpose     string    `json:"purpose,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toReservationView(r model.Reservation) reservationView {
	return reservationView{
		ID:          r.ID,
		UserID:      r.UserID,
		SpaceID:     r.SpaceID,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		PeopleCount: r.PeopleCount,
		TotalPrice:  r.TotalPrice,
		Purpose:     r.Purpose,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type reservationPage struct {
	Reservations []reservationView `json:"reservations"`
	Total        int               `json:"total"`
	Page         int               `json:"page"`
	Size         int               `json:"size"`
}

// Create books a space for the caller.
// POST /api/v1/reservations
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}
	if req.SpaceID == 0 || req.StartTime.IsZero() || req.EndTime.IsZero() {
		return respondFail(c, http.StatusBadRequest, "space_id, start_time and end_time are required")
	}
	if req.PeopleCount < 1 {
		return respondFail(c, http.StatusBadRequest, "people_count must be at least 1")
	}
	res, err := h.Reservations.Create(c.Request().Context(), userID, req.SpaceID,
		req.StartTime, req.EndTime, req.PeopleCount, req.Purpose)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusCreated, toReservationView(res))
}

// Cancel cancels the caller's reservation.
// PATCH /api/v1/reservations/:id/cancel
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}
	reservationID, err := pathID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid reservation id")
	}
	res, err := h.Reservations.Cancel(c.Request().Context(), userID, reservationID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, toReservationView(res))
}

// Get returns one of the caller's reservations.
// GET /api/v1/reservations/:id
func (h *ReservationHandler) Get(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}
	reservationID, err := pathID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid reservation id")
	}
	res, err := h.Reservations.Get(c.Request().Context(), userID, reservationID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, toReservationView(res))
}

// ListMine pages the caller's reservations, newest first.
// GET /api/v1/reservations/my?page=&size=
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}
	page, size := pageParams(c)
	list, total, err := h.Reservations.ListMine(c.Request().Context(), userID, page, size)
	if err != nil {
		return respondError(c, err)
	}
	out := reservationPage{
		Reservations: make([]reservationView, 0, len(list)),
		Total:        total,
		Page:         page,
		Size:         size,
	}
	for _, r := range list {
		out.Reservations = append(out.Reservations, toReservationView(r))
	}
	return respondOK(c, http.StatusOK, out)
}

// ReservedTimes lists the occupied hour ranges of a space for one day.
// GET /api/v1/spaces/:id/reserved-times?date=2026-09-01
func (h *ReservationHandler) ReservedTimes(c echo.Context) error {
	spaceID, err := pathID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid space id")
	}
	day, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	times, err := h.Reservations.ReservedTimes(c.Request().Context(), spaceID, day)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{"date": c.QueryParam("date"), "reserved_times": times})
}

// CheckAvailability answers whether a slot is currently free.
// GET /api/v1/spaces/:id/availability?start_time=...&end_time=...
func (h *ReservationHandler) CheckAvailability(c echo.Context) error {
	spaceID, err := pathID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid space id")
	}
	start, err := time.Parse(time.RFC3339, c.QueryParam("start_time"))
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "start_time must be RFC3339")
	}
	end, err := time.Parse(time.RFC3339, c.QueryParam("end_time"))
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "end_time must be RFC3339")
	}
	if !end.After(start) {
		return respondFail(c, http.StatusBadRequest, "end_time must be after start_time")
	}
	free, err := h.Reservations.CheckAvailability(c.Request().Context(), spaceID, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, echo.Map{"available": free})
}
