// Package jobs provides scheduled background tasks built on github.com/robfig/cron/v3.
//
// The core never starts background work on its own. Jobs are inbound adapters
// that call public commands, and each one is enabled through configuration.
//
// # Available Jobs
//
// PendingOrderExpiryJob cancels pending orders whose start time has passed
// without a confirmed payment. It calls ExpireOverdueOrdersCommand, which
// cancels through the same compare-and-set as CancelOrder, so a payment that
// confirms the order concurrently always wins or loses cleanly.
//
// # Usage
//
//	expiry := jobs.NewPendingOrderExpiryJob(handler, "@every 1m", 100, logger)
//	manager := jobs.NewJobManager(logger, expiry)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// A pass that is still running when the next tick fires is skipped.
package jobs
