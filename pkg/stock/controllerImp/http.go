package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartcalda/pkg/session"
	"smartcalda/pkg/stock"
)

type httpCtrl struct{ mgr *session.Manager }

func New(mgr *session.Manager) *httpCtrl { return &httpCtrl{mgr: mgr} }

func (h *httpCtrl) Register(e *echo.Echo) {
	e.GET("/stock", h.list)
	e.GET("/stock/search", h.search)
}

type itemView struct {
	stock.Item
	Level stock.Level `json:"level"`
}

func views(items []stock.Item) []itemView {
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, itemView{Item: it, Level: stock.LevelOf(it)})
	}
	return out
}

func (h *httpCtrl) list(c echo.Context) error {
	ledger := h.mgr.Ledger()
	items := views(ledger.Items())

	critical, low := 0, 0
	for _, v := range items {
		switch v.Level {
		case stock.LevelCritical:
			critical++
		case stock.LevelLow:
			low++
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":    items,
		"total":    len(items),
		"critical": critical,
		"low":      low,
	})
}

func (h *httpCtrl) search(c echo.Context) error {
	ledger := h.mgr.Ledger()
	return c.JSON(http.StatusOK, views(ledger.Search(c.QueryParam("q"))))
}
