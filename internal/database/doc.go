// Package database opens the SQLite file that backs the persistent
// key-value store.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── settings/        # Key-value rows implementing storage.Store
//
// # Usage
//
//	db, err := database.NewDatabase("./lexiclient.db")
//	store := settings.NewRepository(db.DB)
//	err = store.Set("languages", `[{"lang_code":"en"}]`)
package database
