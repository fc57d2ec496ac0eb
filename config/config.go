package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type AppConfig struct {
	Port          string
	DBPath        string
	DatasetURL    string
	StockURL      string
	MailFuncURL   string
	MailToDefault string
	ChromePath    string
	Debug         bool
}

func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:          get("PORT", "8080"),
		DBPath:        get("DB_PATH", "smartcalda.db"),
		DatasetURL:    get("DATASET_URL", ""),
		StockURL:      get("STOCK_URL", ""),
		MailFuncURL:   get("MAIL_FUNC_URL", ""),
		MailToDefault: get("MAIL_TO_DEFAULT", "Samuel.franco11@hotmail.com"),
		ChromePath:    get("CHROME_PATH", ""),
		Debug:         get("DEBUG", "false") == "true",
	}
	log.Info().
		Str("port", cfg.Port).
		Str("db", cfg.DBPath).
		Bool("dataset_url", cfg.DatasetURL != "").
		Bool("stock_url", cfg.StockURL != "").
		Bool("mail_func", cfg.MailFuncURL != "").
		Msg("config loaded")
	return cfg
}
