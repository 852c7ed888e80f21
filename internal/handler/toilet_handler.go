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

// ToiletHandler serves the browser pages: the main listing and the add forms.
type ToiletHandler struct {
	toiletService service.ToiletService
	queryService  service.QueryService
	cookies       *CookieManager
}

// NewToiletHandler creates a new toilet handler.
func NewToiletHandler(toiletService service.ToiletService, queryService service.QueryService, cookies *CookieManager) *ToiletHandler {
	return &ToiletHandler{
		toiletService: toiletService,
		queryService:  queryService,
		cookies:       cookies,
	}
}

// AddToiletForm is the add toilet form. Checkboxes are read separately.
type AddToiletForm struct {
	Latitude    string `form:"latitude"`
	Longitude   string `form:"longitude"`
	Description string `form:"description"`
	Cleanliness string `form:"cleanliness"`
}

// AddReviewForm is the review form. Checkboxes are read separately.
type AddReviewForm struct {
	Cleanliness string `form:"cleanliness"`
	Comment     string `form:"comment"`
}

// MainResponse stands in for the rendered main page.
type MainResponse struct {
	User    string                `json:"user"`
	Flash   string                `json:"flash,omitempty"`
	Toilets []model.ToiletSummary `json:"toilets"`
}

// Main lists every toilet for a signed-in user.
func (h *ToiletHandler) Main(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		return h.requireLogin(c)
	}

	toilets, err := h.queryService.ListToilets(c.Request().Context(), actor)
	if err != nil {
		return apiError(err)
	}

	return c.JSON(http.StatusOK, MainResponse{
		User:    actor.Username,
		Flash:   h.cookies.PopFlash(c),
		Toilets: toilets,
	})
}

// AddToilet handles the add toilet form.
func (h *ToiletHandler) AddToilet(c echo.Context) error {
	var form AddToiletForm
	if err := c.Bind(&form); err != nil {
		return badRequest("invalid request body")
	}

	_, err := h.toiletService.AddToilet(c.Request().Context(), middleware.ActorFrom(c), service.AddToiletInput{
		Latitude:       form.Latitude,
		Longitude:      form.Longitude,
		Description:    form.Description,
		Accessible:     hasField(c, "accessible"),
		HasToiletPaper: hasField(c, "has_toilet_paper"),
		Cleanliness:    form.Cleanliness,
	})
	if err != nil {
		return h.formError(c, err, "An error occurred while adding the toilet")
	}

	h.cookies.Flash(c, "Toilet added successfully!")
	return c.Redirect(http.StatusFound, "/main")
}

// AddReview handles the review form for one toilet.
func (h *ToiletHandler) AddReview(c echo.Context) error {
	toiletID, err := parseID(c.Param("toilet_id"))
	if err != nil {
		return h.formError(c, errors.ErrToiletNotFound, "")
	}

	var form AddReviewForm
	if err := c.Bind(&form); err != nil {
		return badRequest("invalid request body")
	}

	_, err = h.toiletService.AddReview(c.Request().Context(), middleware.ActorFrom(c), service.AddReviewInput{
		ToiletID:       toiletID,
		Accessible:     hasField(c, "accessible"),
		HasToiletPaper: hasField(c, "has_toilet_paper"),
		Cleanliness:    form.Cleanliness,
		Comment:        form.Comment,
	})
	if err != nil {
		return h.formError(c, err, "An error occurred while submitting the review")
	}

	h.cookies.Flash(c, "Review submitted successfully!")
	return c.Redirect(http.StatusFound, "/main")
}

func (h *ToiletHandler) requireLogin(c echo.Context) error {
	h.cookies.Flash(c, "Please log in first")
	return c.Redirect(http.StatusFound, "/login")
}

// formError flashes a message for err and sends the browser back to the main page.
func (h *ToiletHandler) formError(c echo.Context, err error, internalMessage string) error {
	switch errors.KindOf(err) {
	case errors.KindAuth:
		return h.requireLogin(c)
	case errors.KindValidation:
		h.cookies.Flash(c, "Invalid input: "+err.Error())
	case errors.KindInternal:
		h.cookies.Flash(c, internalMessage)
	default:
		h.cookies.Flash(c, err.Error())
	}
	return c.Redirect(http.StatusFound, "/main")
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
