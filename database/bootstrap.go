package database

import (
	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"smartcalda/entities"
)

// OpenSQLite opens the history database and migrates the schema. The driver
// is CGO-free; the file is created on first run.
func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("open sqlite")
	}
	if err := db.AutoMigrate(&entities.Report{}); err != nil {
		log.Fatal().Err(err).Msg("automigrate")
	}
	return db
}
