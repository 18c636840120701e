// Package logger builds the zap logger shared by the commands, the HTTP
// feature and the scan pipeline.
//
// Level "debug" selects zap's development configuration; any other level uses
// the production configuration at that level. Format "console" switches to a
// colored human readable encoder, anything else logs JSON.
//
// WithRayID attaches the request's ray_id to a logger so every line written
// while serving a request can be correlated.
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
