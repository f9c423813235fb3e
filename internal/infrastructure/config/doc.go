// Package config provides runtime configuration for the tccm binary.
//
// Runtime settings tune how tccm runs (where files live, timeouts, log
// output). They are loaded from environment variables with defaults and are
// distinct from the persisted registry settings (origin, user, email) managed
// by the config command.
//
// Configuration Sections:
//   - Paths: persisted config location, archive staging directory
//   - HTTP: request timeout, user agent, rate limit
//   - Archive: archive format and ignore file name
//   - Logging: log level and output format
//   - Metrics: prometheus textfile output
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	client := httpclient.NewClient(httpclient.Options{Timeout: cfg.HTTP.Timeout})
//
// Environment Variables:
//   - TCCM_CONFIG_FILE, TCCM_TEMP_DIR
//   - TCCM_HTTP_TIMEOUT, TCCM_HTTP_USER_AGENT, TCCM_HTTP_RATE_LIMIT
//   - TCCM_ARCHIVE_FORMAT, TCCM_ARCHIVE_IGNORE_FILE
//   - TCCM_LOG_LEVEL, TCCM_LOG_DEV
//   - TCCM_METRICS_FILE
package config
