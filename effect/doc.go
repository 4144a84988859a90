// Package effect is a small host for autotrack: a Scheduler that receives
// the runtime's revalidation requests and re-runs side effects whose
// dependencies changed.
//
//	s := effect.NewScheduler()
//	count := formula.NewCell(s.Runtime(), 0)
//	stop := s.Effect("log", func() error {
//	    log.Println(count.Read())
//	    return nil
//	})
//	defer stop()
//
//	count.Write(1) // logs 1
//
// Writes flush immediately unless they happen inside a batch, a flush or
// any open frame, untracked ones included; those are picked up by the next
// Flush or EndBatch.
package effect
