package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kjh/spacebook/internal/model"
	"github.com/kjh/spacebook/internal/repository"
	"github.com/kjh/spacebook/internal/service"
)

// SpaceHandler serves the catalog: public search and detail, plus the
// admin-only listing management.
type SpaceHandler struct {
	Spaces *service.SpaceService
}

func NewSpaceHandler(spaces *service.SpaceService) *SpaceHandler {
	return &SpaceHandler{Spaces: spaces}
}

type spaceReq struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	SpaceType    string `json:"space_type"`
	PricePerHour int    `json:"price_per_hour"`
	Location     string `json:"location"`
	Capacity     int    `json:"capacity"`
	SpaceStatus  string `json:"space_status"`
}

// spaceView is the wire shape of a listing.
type spaceView struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	SpaceType    string    `json:"space_type"`
	PricePerHour int       `json:"price_per_hour"`
	Location     string    `json:"location"`
	Capacity     int       `json:"capacity"`
	SpaceStatus  string    `json:"space_status"`
	OwnerID      uint64    `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toSpaceView(s model.Space) spaceView {
	return spaceView{
		ID:           s.ID,
		Name:         s.Name,
		Description:  s.Description,
		ImageURL:     s.ImageURL,
		SpaceType:    s.SpaceType,
		PricePerHour: s.PricePerHour,
		Location:     s.Location,
		Capacity:     s.Capacity,
		SpaceStatus:  s.SpaceStatus,
		OwnerID:      s.OwnerID,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toSpaceViews(spaces []model.Space) []spaceView {
	out := make([]spaceView, 0, len(spaces))
	for _, s := range spaces {
		out = append(out, toSpaceView(s))
	}
	return out
}

func (r spaceReq) toInput() service.SpaceInput {
	return service.SpaceInput{
		Name:         strings.TrimSpace(r.Name),
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		SpaceType:    strings.ToUpper(strings.TrimSpace(r.SpaceType)),
		PricePerHour: r.PricePerHour,
		Location:     strings.TrimSpace(r.Location),
		Capacity:     r.Capacity,
		SpaceStatus:  strings.ToUpper(strings.TrimSpace(r.SpaceStatus)),
	}
}

type spacePage struct {
	Spaces []spaceView `json:"spaces"`
	Total  int         `json:"total"`
	Page   int         `json:"page"`
	Size   int         `json:"size"`
}

// Create registers a new listing owned by the calling admin.
// POST /api/v1/spaces
func (h *SpaceHandler) Create(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req spaceReq
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}
	in := req.toInput()
	if in.Name == "" || in.Location == "" {
		return respondFail(c, http.StatusBadRequest, "name and location are required")
	}
	s, err := h.Spaces.Create(c.Request().Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusCreated, toSpaceView(s))
}

// Update replaces a listing's mutable fields.
// PATCH /api/v1/spaces/:id
func (h *SpaceHandler) Update(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}
	spaceID, err := pathID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid space id")
	}
	var req spaceReq
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}
	s, err := h.Spaces.Update(c.Request().Context(), userID, spaceID, req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, toSpaceView(s))
}

// Delete soft-deletes a listing.
// DELETE /api/v1/spaces/:id
func (h *SpaceHandler) Delete(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}
	spaceID, err := pathID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid space id")
	}
	if err := h.Spaces.Delete(c.Request().Context(), userID, spaceID); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "space deleted")
}

// List searches OPEN listings with optional filters.
// GET /api/v1/spaces?location=&space_type=&min_price=&max_price=&capacity=&page=&size=
func (h *SpaceHandler) List(c echo.Context) error {
	var f repository.SearchFilter
	if v := strings.TrimSpace(c.QueryParam("location")); v != "" {
		f.Location = &v
	}
	if v := strings.ToUpper(strings.TrimSpace(c.QueryParam("space_type"))); v != "" {
		f.SpaceType = &v
	}
	var badParam bool
	intParam := func(name string) *int {
		v := c.QueryParam(name)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			badParam = true
			return nil
		}
		return &n
	}
	f.MinPrice = intParam("min_price")
	f.MaxPrice = intParam("max_price")
	f.Capacity = intParam("capacity")
	if badParam {
		return respondFail(c, http.StatusBadRequest, "numeric filter expected")
	}

	page, size := pageParams(c)
	spaces, total, err := h.Spaces.Search(c.Request().Context(), f, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, spacePage{Spaces: toSpaceViews(spaces), Total: total, Page: page, Size: size})
}

// Detail returns one listing.
// GET /api/v1/spaces/:id
func (h *SpaceHandler) Detail(c echo.Context) error {
	spaceID, err := pathID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid space id")
	}
	s, err := h.Spaces.Detail(c.Request().Context(), spaceID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, toSpaceView(s))
}

// Mine lists the calling admin's own listings.
// GET /api/v1/spaces/me
func (h *SpaceHandler) Mine(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}
	page, size := pageParams(c)
	spaces, total, err := h.Spaces.MySpaces(c.Request().Context(), userID, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, spacePage{Spaces: toSpaceViews(spaces), Total: total, Page: page, Size: size})
}
