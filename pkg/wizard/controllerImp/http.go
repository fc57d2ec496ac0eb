package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"smartcalda/entities"
	hsvc "smartcalda/pkg/history/service"
	"smartcalda/pkg/mailer"
	"smartcalda/pkg/report"
	"smartcalda/pkg/session"
	"smartcalda/pkg/stock"
	"smartcalda/pkg/wizard"
)

// httpCtrl drives one wizard run per session id. Every mutation returns the
// fresh snapshot so clients never track state themselves.
type httpCtrl struct {
	mgr     *session.Manager
	history hsvc.Service
	sender  mailer.Sender
	mailTo  string
}

func New(mgr *session.Manager, history hsvc.Service, sender mailer.Sender, mailTo string) *httpCtrl {
	return &httpCtrl{mgr: mgr, history: history, sender: sender, mailTo: mailTo}
}

func (h *httpCtrl) Register(e *echo.Echo) {
	e.POST("/sessions", h.create)
	e.GET("/sessions/:id", h.get)

	g := e.Group("/sessions/:id")
	g.POST("/search", h.search)
	g.POST("/plots/select-all", h.selectAll)
	g.POST("/plots/:plot/toggle", h.toggle)
	g.POST("/plots/:plot/edit", h.beginEdit)
	g.POST("/plots/:plot/edit/save", h.saveEdit)
	g.POST("/plots/:plot/edit/cancel", h.cancelEdit)
	g.DELETE("/plots/:plot/override", h.clearOverride)
	g.POST("/factor", h.setFactor)
	g.POST("/inputs", h.addInput)
	g.DELETE("/inputs/:input", h.removeInput)
	g.PUT("/operational", h.setOperational)
	g.GET("/cost-centers", h.costCenters)
	g.POST("/advance", h.advance)
	g.POST("/back", h.back)
	g.POST("/queue", h.queue)
	g.POST("/queue/same-mixture", h.queueSameMixture)
	g.POST("/finalize", h.finalize)
}

func (h *httpCtrl) create(c echo.Context) error {
	s, err := h.mgr.Create()
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s.Snapshot())
}

func (h *httpCtrl) get(c echo.Context) error {
	return h.with(c, func(s *wizard.Session) error {
		return c.JSON(http.StatusOK, s.Snapshot())
	})
}

func (h *httpCtrl) search(c echo.Context) error {
	var req struct {
		Sector string `json:"sector"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "json inválido"})
	}
	return h.with(c, func(s *wizard.Session) error {
		if err := s.Search(req.Sector); err != nil {
			var nf *wizard.SectorNotFoundError
			if errors.As(err, &nf) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, s.Snapshot())
	})
}

func (h *httpCtrl) toggle(c echo.Context) error {
	return h.with(c, func(s *wizard.Session) error {
		s.TogglePlot(c.Param("plot"))
		return c.JSON(http.StatusOK, s.Snapshot())
	})
}

func (h *httpCtrl) selectAll(c echo.Context) error {
	return h.with(c, func(s *wizard.Session) error {
		s.SelectAll()
		return c.JSON(http.StatusOK, s.Snapshot())
	})
}

func (h *httpCtrl) beginEdit(c echo.Context) error {
	return h.with(c, func(s *wizard.Session) error {
		if !s.BeginEdit(c.Param("plot")) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "talhão não encontrado"})
		}
		return c.JSON(http.StatusOK, s.Snapshot())
	})
}

func (h *httpCtrl) saveEdit(c echo.Context) error {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "json inválido"})
	}
	return h.with(c, func(s *wizard.Session) error {
		s.SaveEdit(req.Value)
		return c.JSON(http.StatusOK, s.Snapshot())
	})
}

func (h *httpCtrl) cancelEdit(c echo.Context) error {
	return h.with(c, func(s *wizard.Session) error {
		s.CancelEdit()
		return c.JSON(http.StatusOK, s.Snapshot())
	})
}

func (h *httpCtrl) clearOverride(c echo.Context) error {
	return h.with(c, func(s *wizard.Session) error {
		s.ClearOverride(c.Param("plot"))
		return c.JSON(http.StatusOK, s.Snapshot())
	})
}

func (h *httpCtrl) setFactor(c echo.Context) error {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "json inválido"})
	}
	return h.with(c, func(s *wizard.Session) error {
		s.SetFactor(req.Value)
		return c.JSON(http.StatusOK, s.Snapshot())
	})
}

func (h *httpCtrl) addInput(c echo.Context) error {
	var req struct {
		Name string  `json:"name"`
		Dose float64 `json:"dose"`
		Unit string  `json:"unit"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "json inválido"})
	}
	return h.with(c, func(s *wizard.Session) error {
		in, err := s.AddInput(req.Name, req.Dose, req.Unit)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		// Advisory only: an insufficient balance never blocks the product.
		resp := echo.Map{"input": in, "state": s.Snapshot()}
		if it, ok := h.mgr.Ledger().Find(in.Name); ok {
			resp["stock"] = stock.StatusFor(in.Dose, s.TotalSelectedArea(), it)
		}
		return c.JSON(http.StatusCreated, resp)
	})
}

func (h *httpCtrl) removeInput(c echo.Context) error {
	return h.with(c, func(s *wizard.Session) error {
		if !s.RemoveInput(c.Param("input")) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "produto não encontrado"})
		}
		return c.JSON(http.StatusOK, s.Snapshot())
	})
}

func (h *httpCtrl) setOperational(c echo.Context) error {
	var req wizard.Operational
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "json inválido"})
	}
	return h.with(c, func(s *wizard.Session) error {
		s.SetOperational(req)
		return c.JSON(http.StatusOK, s.Snapshot())
	})
}

func (h *httpCtrl) costCenters(c echo.Context) error {
	return c.JSON(http.StatusOK, wizard.CostCenters)
}

func (h *httpCtrl) advance(c echo.Context) error {
	return h.with(c, func(s *wizard.Session) error {
		if err := s.Advance(); err != nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, s.Snapshot())
	})
}

func (h *httpCtrl) back(c echo.Context) error {
	return h.with(c, func(s *wizard.Session) error {
		s.Back()
		return c.JSON(http.StatusOK, s.Snapshot())
	})
}

func (h *httpCtrl) queue(c echo.Context) error {
	return h.with(c, func(s *wizard.Session) error {
		if err := requireReview(s); err != nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		sum := s.AddToQueue()
		return c.JSON(http.StatusOK, echo.Map{"queued": sum, "state": s.Snapshot()})
	})
}

func (h *httpCtrl) queueSameMixture(c echo.Context) error {
	return h.with(c, func(s *wizard.Session) error {
		if err := requireReview(s); err != nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		sum := s.AddSameMixture()
		return c.JSON(http.StatusOK, echo.Map{"queued": sum, "state": s.Snapshot()})
	})
}

type finalizeReq struct {
	EmailTo      string `json:"emailTo"`
	EmailSubject string `json:"emailSubject"`
	EmailBody    string `json:"emailBody"`
	SkipEmail    bool   `json:"skipEmail"`
}

// finalize closes the run: the queue plus the sector in progress become one
// history entry, the email boundary is invoked, the session is discarded.
// A failed send downgrades to a warning; the report is already persisted.
func (h *httpCtrl) finalize(c echo.Context) error {
	id := c.Param("id")
	var req finalizeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "json inválido"})
	}

	var summaries []entities.RecommendationSummary
	err := h.mgr.Do(id, func(s *wizard.Session) error {
		if err := requireReview(s); err != nil {
			return err
		}
		summaries = s.Finalize()
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}

	sent := false
	var mailErr string
	if !req.SkipEmail {
		sub := mailer.Submission{
			Summaries:    summaries,
			EmailTo:      req.EmailTo,
			EmailSubject: req.EmailSubject,
			EmailBody:    req.EmailBody,
		}
		if sub.EmailTo == "" {
			sub.EmailTo = h.mailTo
		}
		if sub.EmailSubject == "" || sub.EmailBody == "" {
			subject, body := mailer.DefaultEnvelope(summaries)
			if sub.EmailSubject == "" {
				sub.EmailSubject = subject
			}
			if sub.EmailBody == "" {
				sub.EmailBody = body
			}
		}
		if err := h.sender.Send(c.Request().Context(), sub); err != nil {
			mailErr = err.Error()
			log.Warn().Err(err).Str("session", id).Msg("email submission failed")
		} else {
			sent = true
		}
	}

	r, err := h.history.Save(summaries, sent)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	h.mgr.Drop(id)

	resp := echo.Map{
		"report":    r,
		"fileName":  report.FileName(summaries),
		"emailSent": sent,
	}
	if mailErr != "" {
		resp["emailError"] = mailErr
	}
	return c.JSON(http.StatusOK, resp)
}

// requireReview gates the terminal actions on the review step.
func requireReview(s *wizard.Session) error {
	if s.Step() != wizard.StepReview {
		return wizard.ErrWrongStep
	}
	return nil
}

func (h *httpCtrl) with(c echo.Context, fn func(*wizard.Session) error) error {
	err := h.mgr.Do(c.Param("id"), fn)
	if errors.Is(err, session.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return err
}
