package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"agrotrack/entities"
	cultureSvc "agrotrack/pkg/culture/service"
	hsvc "agrotrack/pkg/harvest/service"
	"agrotrack/pkg/middleware"
)

type httpCtrl struct{ s hsvc.Service }

func New(s hsvc.Service) *httpCtrl { return &httpCtrl{s: s} }

func (h *httpCtrl) Register(g *echo.Group) {
	g.POST("/cultures/:id/harvests", h.create)
	g.GET("/cultures/:id/harvests", h.list)
	g.PATCH("/harvests/:id", h.patch)
}

type createReq struct {
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	QuantityKg   float64  `json:"quantityKg" validate:"gte=0"`
	QualityGrade string   `json:"qualityGrade" validate:"omitempty,oneof=A B C"`
	PricePerKg   *float64 `json:"pricePerKg" validate:"omitempty,gte=0"`
	NetAmount    *float64 `json:"netAmount"`
	Buyer        string   `json:"buyer"`
	Notes        string   `json:"notes"`
}

func (h *httpCtrl) create(c echo.Context) error {
	cultureID, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid culture id"})
	}
	var in createReq
	if ok, err := middleware.BindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.s.Create(c.Request().Context(), uint(cultureID), &entities.Harvest{
		Date:         in.Date,
		QuantityKg:   in.QuantityKg,
		QualityGrade: in.QualityGrade,
		PricePerKg:   in.PricePerKg,
		NetAmount:    in.NetAmount,
		Buyer:        in.Buyer,
		Notes:        in.Notes,
	})
	if err != nil {
		return replyErr(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *httpCtrl) list(c echo.Context) error {
	cultureID, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid culture id"})
	}
	from, err := parseDateParam(c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from"})
	}
	to, err := parseDateParam(c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to"})
	}
	list, err := h.s.ListByCulture(c.Request().Context(), uint(cultureID), from, to)
	if err != nil {
		return replyErr(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *httpCtrl) patch(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in hsvc.HarvestPatch
	if ok, err := middleware.BindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.s.UpdatePartial(c.Request().Context(), uint(id), in)
	if err != nil {
		return replyErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func replyErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, cultureSvc.ErrCultureNotFound), errors.Is(err, hsvc.ErrHarvestNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, hsvc.ErrDateRequired), errors.Is(err, hsvc.ErrInvalidDate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}

func parseDateParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
