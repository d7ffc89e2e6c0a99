// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order settlement.
//
// # Available Jobs
//
// 1. StaleOrderCancellationJob - Periodically cancels pending orders whose
// payment never arrived within the allowed age.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(cancelStaleOrdersHandler, maxAge, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The cancellation job logs failures and keeps running; a failed sweep only
// delays cancellation until the next tick.
package jobs
