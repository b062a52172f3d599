// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production). The sync commands default to console encoding
// so progress reads naturally in a terminal; json encoding is available for
// scheduled/headless runs.
//
// # Run Correlation
//
// Every sync run is assigned a run id by the orchestrator. The WithRun helper
// attaches it to the logger so all log entries belonging to one run can be
// correlated after the fact.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Sync started")
//
//	l := logger.WithRun(log, runID)
//	l.Error("Create failed", zap.Error(err))
package logger
