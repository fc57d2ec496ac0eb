package main

import (
	"context"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"smartcalda/config"
	"smartcalda/database"
	"smartcalda/router"

	healthCtrlImp "smartcalda/pkg/health/controllerImp"
	histCtrlImp "smartcalda/pkg/history/controllerImp"
	histSvc "smartcalda/pkg/history/service"
	importCtrlImp "smartcalda/pkg/importer/controllerImp"
	"smartcalda/pkg/mailer"
	"smartcalda/pkg/report"
	"smartcalda/pkg/session"
	"smartcalda/pkg/sheet"
	"smartcalda/pkg/stock"
	stockCtrlImp "smartcalda/pkg/stock/controllerImp"
	wizardCtrlImp "smartcalda/pkg/wizard/controllerImp"
)

func setupLogging(debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func main() {
	cfg := config.Load()
	setupLogging(cfg.Debug)

	db := database.OpenSQLite(cfg.DBPath)

	mgr := session.NewManager()
	preload(mgr, cfg)

	// Mail boundary: mock fallback keeps finalize working offline.
	var sender mailer.Sender
	if cfg.MailFuncURL != "" {
		sender = mailer.NewHTTP(cfg.MailFuncURL)
	} else {
		log.Warn().Msg("MAIL_FUNC_URL not set, email submissions are recorded only")
		sender = mailer.NewMock()
	}

	renderer := report.NewChromiumRenderer(cfg.ChromePath)
	history := histSvc.New(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	r := router.New(
		e,
		importCtrlImp.New(mgr, cfg.DatasetURL, cfg.StockURL),
		wizardCtrlImp.New(mgr, history, sender, cfg.MailToDefault),
		stockCtrlImp.New(mgr),
		histCtrlImp.New(history, renderer),
		healthCtrlImp.NewHealthCtrl(db, mgr),
	)

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// preload pulls the configured remote spreadsheets at boot. Failures are
// warnings: the upload endpoints remain available either way.
func preload(mgr *session.Manager, cfg config.AppConfig) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if cfg.DatasetURL != "" {
		rows, err := sheet.Fetch(ctx, cfg.DatasetURL)
		if err != nil {
			log.Warn().Err(err).Msg("dataset preload failed")
		} else {
			mgr.SetDataset(rows)
			log.Info().Int("rows", len(rows)).Msg("dataset preloaded")
		}
	}
	if cfg.StockURL != "" {
		rows, err := sheet.Fetch(ctx, cfg.StockURL)
		if err != nil {
			log.Warn().Err(err).Msg("stock preload failed")
		} else {
			ledger := stock.ParseLedger(rows)
			mgr.SetLedger(ledger)
			log.Info().Int("items", ledger.Len()).Msg("stock preloaded")
		}
	}
}
