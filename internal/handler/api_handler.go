package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"toiletfinder/internal/errors"
	"toiletfinder/internal/middleware"
	"toiletfinder/internal/model"
	"toiletfinder/internal/service"
)

// APIHandler serves the JSON toilet endpoints.
type APIHandler struct {
	toiletService service.ToiletService
	queryService  service.QueryService
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(toiletService service.ToiletService, queryService service.QueryService) *APIHandler {
	return &APIHandler{toiletService: toiletService, queryService: queryService}
}

// ToiletListResponse wraps the toilet list.
type ToiletListResponse struct {
	Toilets []model.ToiletSummary `json:"toilets"`
}

// CreateToiletRequest represents a new toilet submission.
type CreateToiletRequest struct {
	Latitude       *float64 `json:"latitude" validate:"required"`
	Longitude      *float64 `json:"longitude" validate:"required"`
	Description    string   `json:"description"`
	Accessible     bool     `json:"accessible"`
	HasToiletPaper bool     `json:"has_toilet_paper"`
	Cleanliness    int      `json:"cleanliness"`
}

// CreateReviewRequest represents a new review submission.
type CreateReviewRequest struct {
	Accessible     bool   `json:"accessible"`
	HasToiletPaper bool   `json:"has_toilet_paper"`
	Cleanliness    int    `json:"cleanliness"`
	Comment        string `json:"comment"`
}

// ListToilets godoc
// @Summary List toilets
// @Description Every toilet with consensus accessibility, paper availability and median cleanliness.
// @Tags toilets
// @Produce json
// @Success 200 {object} ToiletListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /toilets [get]
func (h *APIHandler) ListToilets(c echo.Context) error {
	toilets, err := h.queryService.ListToilets(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, ToiletListResponse{Toilets: toilets})
}

// GetToilet godoc
// @Summary Get toilet details
// @Description One toilet with consensus values and its reviews in submission order.
// @Tags toilets
// @Produce json
// @Param id path int true "Toilet ID"
// @Success 200 {object} model.ToiletDetail
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /toilet/{id} [get]
func (h *APIHandler) GetToilet(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		return apiError(errors.ErrUnauthenticated)
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return apiError(errors.ErrToiletNotFound)
	}

	detail, err := h.queryService.GetToilet(c.Request().Context(), actor, id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateToilet godoc
// @Summary Add a toilet
// @Tags toilets
// @Accept json
// @Produce json
// @Param request body CreateToiletRequest true "Toilet data"
// @Success 201 {object} model.Toilet
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /toilets [post]
func (h *APIHandler) CreateToilet(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		return apiError(errors.ErrUnauthenticated)
	}

	var req CreateToiletRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	toilet, err := h.toiletService.AddToilet(c.Request().Context(), actor, service.AddToiletInput{
		Latitude:       strconv.FormatFloat(*req.Latitude, 'f', -1, 64),
		Longitude:      strconv.FormatFloat(*req.Longitude, 'f', -1, 64),
		Description:    req.Description,
		Accessible:     req.Accessible,
		HasToiletPaper: req.HasToiletPaper,
		Cleanliness:    strconv.Itoa(req.Cleanliness),
	})
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, toilet)
}

// CreateReview godoc
// @Summary Review a toilet
// @Tags toilets
// @Accept json
// @Produce json
// @Param id path int true "Toilet ID"
// @Param request body CreateReviewRequest true "Review data"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /toilet/{id}/reviews [post]
func (h *APIHandler) CreateReview(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		return apiError(errors.ErrUnauthenticated)
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return apiError(errors.ErrToiletNotFound)
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	review, err := h.toiletService.AddReview(c.Request().Context(), actor, service.AddReviewInput{
		ToiletID:       id,
		Accessible:     req.Accessible,
		HasToiletPaper: req.HasToiletPaper,
		Cleanliness:    strconv.Itoa(req.Cleanliness),
		Comment:        req.Comment,
	})
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, review)
}
