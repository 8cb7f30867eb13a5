// Package config provides configuration management for dex-ingest.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application
// settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, upload cap)
//   - Database: MySQL connection details for parsed-row persistence
//   - Storage: S3/MinIO credentials and bucket for the raw-file archive
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
