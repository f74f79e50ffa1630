package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrotrack/entities"
	"agrotrack/pkg/field/service"
	"agrotrack/pkg/lifecycle"
	"agrotrack/pkg/middleware"
)

type FieldCtrl struct{ svc service.FieldService }

func New(svc service.FieldService) *FieldCtrl { return &FieldCtrl{svc} }

type fieldReq struct {
	Name     string  `json:"name" validate:"required,max=120"`
	Location string  `json:"location" validate:"max=200"`
	AreaHa   float64 `json:"areaHa" validate:"gte=0"`
	SoilType string  `json:"soilType" validate:"soil_type"`
	Notes    string  `json:"notes"`
}

func (r fieldReq) toEntity() *entities.Field {
	soil, _ := lifecycle.ParseSoilType(r.SoilType)
	return &entities.Field{
		Name:     r.Name,
		Location: r.Location,
		AreaHa:   r.AreaHa,
		SoilType: soil,
		Notes:    r.Notes,
	}
}

func (h *FieldCtrl) Create(c echo.Context) error {
	var req fieldReq
	if ok, err := middleware.BindAndValidate(c, &req); !ok {
		return err
	}
	f, err := h.svc.CreateField(req.toEntity())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FieldCtrl) List(c echo.Context) error {
	list, err := h.svc.ListFields()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FieldCtrl) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	f, err := h.svc.GetFieldByID(id)
	if err != nil {
		return replyErr(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req fieldReq
	if ok, err := middleware.BindAndValidate(c, &req); !ok {
		return err
	}
	f, err := h.svc.UpdateField(id, req.toEntity())
	if err != nil {
		return replyErr(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.svc.DeleteField(id); err != nil {
		return replyErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func replyErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrFieldNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrFieldInUse):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}
