package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kjh/spacebook/internal/service"
)

// RecommendHandler serves the natural-language space search.
type RecommendHandler struct {
	Recommendations *service.RecommendationService
}

func NewRecommendHandler(rec *service.RecommendationService) *RecommendHandler {
	return &RecommendHandler{Recommendations: rec}
}

type recommendReq struct {
	Query string `json:"query"`
}

type recommendResp struct {
	Condition service.SearchCondition `json:"condition"`
	Spaces    []spaceView             `json:"spaces"`
}

// Recommend extracts a search filter from a free-text query and
// returns the matching OPEN spaces.
// POST /api/v1/recommendations
func (h *RecommendHandler) Recommend(c echo.Context) error {
	var req recommendReq
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" || len(req.Query) > 500 {
		return respondFail(c, http.StatusBadRequest, "query must be 1-500 characters")
	}
	cond, spaces, err := h.Recommendations.Recommend(c.Request().Context(), req.Query)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, recommendResp{Condition: cond, Spaces: toSpaceViews(spaces)})
}
