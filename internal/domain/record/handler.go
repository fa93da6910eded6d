package record

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinica/clinica/pkg/pagination"
)

const visitDateLayout = "2006-01-02"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/patients/:id/records", h.ListByPatient)
	g.POST("/patients/:id/records", h.Create)
	g.GET("/records/:id", h.Get)
	g.PUT("/records/:id", h.Update)
	g.DELETE("/records/:id", h.Delete)
}

// recordInput is the request shape for create and update. The visit
// date travels as a plain YYYY-MM-DD string.
type recordInput struct {
	VisitDate string `json:"visit_date"`
	FullName  string `json:"full_name"`
	DNI       string `json:"dni"`
	Reason    string `json:"reason"`
	Condition string `json:"condition"`
	History   string `json:"history"`
	Comments  string `json:"comments"`
}

func (in *recordInput) parseVisitDate() (time.Time, error) {
	return time.Parse(visitDateLayout, in.VisitDate)
}

func (h *Handler) Create(c echo.Context) error {
	var in recordInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	visitDate, err := in.parseVisitDate()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "visit_date must be YYYY-MM-DD")
	}
	rec := &ClinicalRecord{
		PatientID: c.Param("id"),
		VisitDate: visitDate,
		FullName:  in.FullName,
		DNI:       in.DNI,
		Reason:    in.Reason,
		Condition: in.Condition,
		History:   in.History,
		Comments:  in.Comments,
	}
	if err := h.svc.Create(c.Request().Context(), rec); err != nil {
		if errors.Is(err, ErrPatientUnknown) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) Get(c echo.Context) error {
	rec, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "clinical record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	page := pagination.PageFromContext(c)
	records, total, w, err := h.svc.ListByPatient(c.Request().Context(), c.Param("id"), page)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if records == nil {
		records = []*ClinicalRecord{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(records, total, page, w))
}

func (h *Handler) Update(c echo.Context) error {
	var in recordInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	visitDate, err := in.parseVisitDate()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "visit_date must be YYYY-MM-DD")
	}
	rec := &ClinicalRecord{
		ID:        c.Param("id"),
		VisitDate: visitDate,
		Reason:    in.Reason,
		Condition: in.Condition,
		History:   in.History,
		Comments:  in.Comments,
	}
	if err := h.svc.Update(c.Request().Context(), rec); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
