// Package config loads the controller cleaner configuration.
//
// Values come from environment variables, optionally seeded from a .env file.
// Every key has a default declared on its struct tag, and nested keys map to
// upper case variables joined by underscores (store.backend -> STORE_BACKEND).
//
// # Sections
//
//   - Server: HTTP port and API key
//   - Log: level and encoding
//   - Store: document backend (file, bucket, database, redis) and its layout
//   - Storage: S3/MinIO credentials and bucket for the bucket backend
//   - Database: connection for the database backend
//   - Redis: connection for the redis backend
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Store.Backend)
package config
