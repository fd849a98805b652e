// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are built on github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes events written to the outbox table by command handlers
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, relayCmd, "*/5 * * * * *", logger)
//	jobManager := jobs.NewJobManager(relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the same events are picked up by the next run. Overlapping runs
// are skipped.
package jobs
