// Package jobs provides the scheduled background work of the delivery
// engine, built on github.com/robfig/cron/v3.
//
// AssignmentJob runs an assignment round every five seconds: the oldest
// pending delivery is bound to an available rider under the resolver role.
// An empty queue or a busy fleet is an expected outcome and is logged at
// debug only; a lost race against a concurrent admin assignment surfaces as
// a version conflict and is simply retried on the next round.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(eng, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal(err)
//	}
//	defer jobManager.StopAll()
package jobs
