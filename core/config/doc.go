// Package config provides configuration management for the election results tool.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file loaded with godotenv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP API settings (port, API key)
//   - Feed: upstream feed URLs, election date, retries and the detail worker count
//   - Data: CSV output directory and console row limit
//   - Storage: S3/MinIO credentials, bucket and key prefix of the archive
//   - Log: Logging level and format
//   - Database: sqlite file or MySQL connection details
//
// Every key can be set through the environment as SECTION_KEY, e.g. FEED_ELECTION_DATE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Feed.ElectionDate)
package config
