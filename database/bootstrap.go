package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"vita/entities"
)

func OpenSQLite(path string) *gorm.DB {
	// TranslateError so duplicate-key violations surface as gorm.ErrDuplicatedKey;
	// the version repository depends on that to detect collisions.
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.User{},
		&entities.PlanVersion{},
		&entities.CheckIn{},
		&entities.KBDocument{},
		&entities.KBChunk{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	return db
}
