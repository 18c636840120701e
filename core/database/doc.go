// Package database opens the relational database used by the database
// document backend.
//
// Connect supports MySQL for deployments and SQLite for local runs and tests.
// The inspector reads table columns back so the backend can verify its schema
// after migration.
//
//	db, err := database.Connect(cfg.Database)
//	missing, err := database.MissingColumns(db, "controller_documents", "key", "data")
package database
