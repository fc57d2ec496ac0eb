package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"smartcalda/pkg/session"
	"smartcalda/pkg/sheet"
	"smartcalda/pkg/stock"
)

// httpCtrl ingests the two spreadsheets the engine runs on: the plot
// registration dataset and the stock ledger. Each accepts a multipart
// upload or a configured remote URL.
type httpCtrl struct {
	mgr        *session.Manager
	datasetURL string
	stockURL   string
}

func New(mgr *session.Manager, datasetURL, stockURL string) *httpCtrl {
	return &httpCtrl{mgr: mgr, datasetURL: datasetURL, stockURL: stockURL}
}

func (h *httpCtrl) Register(e *echo.Echo) {
	e.POST("/datasets", h.uploadDataset)
	e.POST("/datasets/sync", h.syncDataset)
	e.POST("/stock", h.uploadStock)
	e.POST("/stock/sync", h.syncStock)
}

func (h *httpCtrl) uploadDataset(c echo.Context) error {
	rows, ok := h.readUpload(c)
	if !ok {
		return nil
	}
	h.mgr.SetDataset(rows)
	log.Info().Int("rows", len(rows)).Msg("dataset imported")
	return c.JSON(http.StatusOK, echo.Map{"rows": len(rows)})
}

func (h *httpCtrl) syncDataset(c echo.Context) error {
	if h.datasetURL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "DATASET_URL não configurada"})
	}
	rows, err := sheet.Fetch(c.Request().Context(), h.datasetURL)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	h.mgr.SetDataset(rows)
	log.Info().Int("rows", len(rows)).Msg("dataset synced")
	return c.JSON(http.StatusOK, echo.Map{"rows": len(rows)})
}

func (h *httpCtrl) uploadStock(c echo.Context) error {
	rows, ok := h.readUpload(c)
	if !ok {
		return nil
	}
	ledger := stock.ParseLedger(rows)
	h.mgr.SetLedger(ledger)
	log.Info().Int("items", ledger.Len()).Msg("stock imported")
	return c.JSON(http.StatusOK, echo.Map{"items": ledger.Len()})
}

func (h *httpCtrl) syncStock(c echo.Context) error {
	if h.stockURL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "STOCK_URL não configurada"})
	}
	rows, err := sheet.Fetch(c.Request().Context(), h.stockURL)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	ledger := stock.ParseLedger(rows)
	h.mgr.SetLedger(ledger)
	log.Info().Int("items", ledger.Len()).Msg("stock synced")
	return c.JSON(http.StatusOK, echo.Map{"items": ledger.Len()})
}

// readUpload parses the "file" part of a multipart request into rows,
// writing the error response itself on failure.
func (h *httpCtrl) readUpload(c echo.Context) ([]sheet.Row, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "envie o arquivo no campo 'file'"})
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		return nil, false
	}
	defer f.Close()

	rows, err := sheet.LoadWorkbook(f, fh.Filename)
	if err != nil {
		_ = c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		return nil, false
	}
	return rows, true
}
