package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"smartcalda/entities"
	hsvc "smartcalda/pkg/history/service"
	"smartcalda/pkg/report"
)

type httpCtrl struct {
	s        hsvc.Service
	renderer report.Renderer
}

func New(s hsvc.Service, renderer report.Renderer) *httpCtrl {
	return &httpCtrl{s: s, renderer: renderer}
}

func (h *httpCtrl) Register(e *echo.Echo) {
	e.GET("/history", h.list)
	e.GET("/history/:id", h.get)
	e.GET("/history/:id/pdf", h.pdf)
}

func (h *httpCtrl) list(c echo.Context) error {
	reports, err := h.s.List()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, reports)
}

func (h *httpCtrl) get(c echo.Context) error {
	r, ok := h.find(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, r)
}

func (h *httpCtrl) pdf(c echo.Context) error {
	r, ok := h.find(c)
	if !ok {
		return nil
	}
	doc := report.BuildDocument(r.Summaries)
	pdf, err := h.renderer.Render(c.Request().Context(), doc)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "falha ao gerar PDF: " + err.Error()})
	}
	name := report.FileName(r.Summaries)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// find loads the report from the path id, writing the error response itself
// when the lookup fails.
func (h *httpCtrl) find(c echo.Context) (*entities.Report, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		return nil, false
	}
	r, err := h.s.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "relatório não encontrado"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return nil, false
	}
	return r, true
}
