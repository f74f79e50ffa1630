package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"agrotrack/entities"
	"agrotrack/pkg/culture/repository"
	"agrotrack/pkg/culture/service"
	"agrotrack/pkg/lifecycle"
	"agrotrack/pkg/middleware"
	"agrotrack/pkg/progress"
)

const dateLayout = "2006-01-02"

type CultureCtrl struct {
	svc service.CultureService
	loc *time.Location
}

// New builds the controller. Date-only inputs are read as midnight in loc.
func New(svc service.CultureService, loc *time.Location) *CultureCtrl {
	if loc == nil {
		loc = time.UTC
	}
	return &CultureCtrl{svc: svc, loc: loc}
}

type cultureReq struct {
	FieldID              uint    `json:"fieldId" validate:"required"`
	Name                 string  `json:"name" validate:"required,max=120"`
	Variety              string  `json:"variety" validate:"max=120"`
	SurfaceArea          float64 `json:"surfaceArea" validate:"gt=0"`
	PlantedDate          string  `json:"plantedDate" validate:"required"`
	EstimatedHarvestDate string  `json:"estimatedHarvestDate"`
	Health               int     `json:"health"`
	IrrigationLevel      int     `json:"irrigationLevel"`
	SoilType             string  `json:"soilType" validate:"required,soil_type"`
	Status               string  `json:"status"`
	Notes                string  `json:"notes"`
}

type statusReq struct {
	Status string `json:"status"`
}

type listQuery struct {
	FieldID string `query:"fieldId"`
	Status  string `query:"status" validate:"culture_status"`
}

// progressView leaves daysUntilHarvest out once the culture is harvested.
type progressView struct {
	Status                lifecycle.Status `json:"status"`
	StatusLabel           string           `json:"statusLabel"`
	BadgeClass            string           `json:"badgeClass"`
	DaysUntilHarvest      *int             `json:"daysUntilHarvest,omitempty"`
	GrowthProgressPercent int              `json:"growthProgressPercent"`
	GrowthStage           progress.Stage   `json:"growthStage"`
}

type cultureView struct {
	*entities.Culture
	Progress progressView `json:"progress"`
}

func (h *CultureCtrl) view(c *entities.Culture) cultureView {
	return cultureView{Culture: c, Progress: h.progressOf(c)}
}

func (h *CultureCtrl) progressOf(c *entities.Culture) progressView {
	p := h.svc.Progress(c)
	meta, _ := lifecycle.Describe(c.Status)
	v := progressView{
		Status:                c.Status,
		StatusLabel:           c.Status.Label(lifecycle.Feminine),
		BadgeClass:            meta.BadgeClass,
		GrowthProgressPercent: p.GrowthProgressPercent,
		GrowthStage:           p.GrowthStage,
	}
	if c.Status != lifecycle.StatusHarvested {
		days := p.DaysUntilHarvest
		v.DaysUntilHarvest = &days
	}
	return v
}

func (h *CultureCtrl) parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, h.loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// toEntity converts the request; status is handled by the caller.
func (h *CultureCtrl) toEntity(req cultureReq) (*entities.Culture, error) {
	planted, err := h.parseDate(req.PlantedDate)
	if err != nil {
		return nil, errors.New("invalid plantedDate")
	}
	var harvest time.Time
	if req.EstimatedHarvestDate != "" {
		if harvest, err = h.parseDate(req.EstimatedHarvestDate); err != nil {
			return nil, errors.New("invalid estimatedHarvestDate")
		}
	}
	soil, _ := lifecycle.ParseSoilType(req.SoilType)
	return &entities.Culture{
		FieldID:              req.FieldID,
		Name:                 req.Name,
		Variety:              req.Variety,
		SurfaceArea:          req.SurfaceArea,
		PlantedDate:          planted,
		EstimatedHarvestDate: harvest,
		Health:               req.Health,
		IrrigationLevel:      req.IrrigationLevel,
		SoilType:             soil,
		Notes:                req.Notes,
	}, nil
}

func (h *CultureCtrl) Create(c echo.Context) error {
	return h.create(c, 0)
}

func (h *CultureCtrl) CreateInField(c echo.Context) error {
	fieldID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid field id"})
	}
	return h.create(c, fieldID)
}

// create takes the field from the path when fieldID is set, otherwise from
// the body.
func (h *CultureCtrl) create(c echo.Context, fieldID uint) error {
	var req cultureReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if fieldID != 0 {
		req.FieldID = fieldID
	}
	if ok, err := middleware.ValidateRequest(c, &req); !ok {
		return err
	}
	in, err := h.toEntity(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	in.Status = lifecycle.InitialStatus
	if req.Status != "" {
		st, err := lifecycle.ParseStatus(req.Status)
		if err != nil {
			return invalidStatus(c, req.Status)
		}
		in.Status = st
	}
	out, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return replyErr(c, err)
	}
	return c.JSON(http.StatusCreated, h.view(out))
}

func (h *CultureCtrl) List(c echo.Context) error {
	var q listQuery
	if ok, err := middleware.BindAndValidate(c, &q); !ok {
		return err
	}
	var f repository.Filter
	if q.FieldID != "" {
		id, err := strconv.ParseUint(q.FieldID, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fieldId"})
		}
		fid := uint(id)
		f.FieldID = &fid
	}
	if q.Status != "" {
		st, _ := lifecycle.ParseStatus(q.Status)
		f.Status = &st
	}
	list, err := h.svc.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	out := make([]cultureView, 0, len(list))
	for i := range list {
		out = append(out, h.view(&list[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CultureCtrl) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cult, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return replyErr(c, err)
	}
	return c.JSON(http.StatusOK, h.view(cult))
}

func (h *CultureCtrl) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req cultureReq
	if ok, err := middleware.BindAndValidate(c, &req); !ok {
		return err
	}
	in, err := h.toEntity(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	out, err := h.svc.Replace(c.Request().Context(), id, in, req.Status)
	if errors.Is(err, lifecycle.ErrInvalidStatus) {
		return invalidStatus(c, req.Status)
	}
	if err != nil {
		return replyErr(c, err)
	}
	return c.JSON(http.StatusOK, h.view(out))
}

func (h *CultureCtrl) ChangeStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	out, err := h.svc.ChangeStatus(c.Request().Context(), id, req.Status)
	if errors.Is(err, lifecycle.ErrInvalidStatus) {
		return invalidStatus(c, req.Status)
	}
	if err != nil {
		return replyErr(c, err)
	}
	return c.JSON(http.StatusOK, h.view(out))
}

func (h *CultureCtrl) Progress(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cult, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return replyErr(c, err)
	}
	return c.JSON(http.StatusOK, h.progressOf(cult))
}

func (h *CultureCtrl) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return replyErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Statuses serves the vocabulary with its display metadata.
func (h *CultureCtrl) Statuses(c echo.Context) error {
	return c.JSON(http.StatusOK, lifecycle.Catalog())
}

func invalidStatus(c echo.Context, raw string) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid status: " + raw})
}

func replyErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrCultureNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrFieldNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrHarvestDateRequired):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}
