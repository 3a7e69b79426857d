// Package config provides the configuration of the rrcodec tool.
//
// Configuration is organized into sections:
//   - Encoding: compression of Arrow payloads and encoder concurrency
//   - Logging: level and format of the zap logger
//   - Metrics: the optional Prometheus endpoint
//   - Tracing: OpenTelemetry span export
//
// Load layers a YAML file and RERUN_* environment variables over the
// defaults of NewDefault:
//
//	cfg, err := config.Load("rrcodec.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Any key can be overridden from the environment by upper-casing its path
// and joining it with underscores:
//
//	RERUN_ENCODING_COMPRESSION=zstd RERUN_LOGGING_LEVEL=debug rrcodec encode ...
package config
