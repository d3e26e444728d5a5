package app

import (
	"flag"

	"gorm.io/gorm"
)

func HandleProgramArgs(db *gorm.DB) (exit bool, err error) {
	importSource := flag.String("importFrom", "",
		"path to a JSON datastore file of the legacy dashboard (db.json)")
	flag.Parse()

	if *importSource != "" {
		err = importFromLegacyStore(db, *importSource)
		exit = true
	}

	return
}
