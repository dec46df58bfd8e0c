package syncer

import (
	"context"
	"log"
	"time"
)

const (
	queueDepth   = 64
	maxAttempts  = 3
	baseDelay    = 500 * time.Millisecond
	mirrorPerTry = 10 * time.Second
)

// mirrorJob is one remote write to attempt with bounded retries.
type mirrorJob struct {
	desc string
	run  func(ctx context.Context) error
}

// enqueue hands a job to the mirror worker without blocking. A full
// queue drops the job: the entry is already in the local cache, so a
// lost mirror only delays remote convergence until the next pull.
func (co *Coordinator) enqueue(j mirrorJob) {
	select {
	case <-co.stopCh:
		log.Printf("syncer: mirror stopped, dropping %s", j.desc)
	case co.jobs <- j:
	default:
		log.Printf("syncer: mirror queue full, dropping %s", j.desc)
	}
}

func (co *Coordinator) runMirror() {
	defer close(co.done)
	for {
		select {
		case <-co.stopCh:
			return
		case j := <-co.jobs:
			co.attempt(j)
		}
	}
}

// attempt runs a job with exponential backoff. Exhausted jobs are
// logged and dropped.
func (co *Coordinator) attempt(j mirrorJob) {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			delay := baseDelay << (i - 1)
			select {
			case <-co.stopCh:
				return
			case <-time.After(delay):
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), mirrorPerTry)
		err := j.run(ctx)
		cancel()
		if err == nil {
			return
		}
		lastErr = err
	}
	log.Printf("syncer: mirror %s failed after %d attempts: %v", j.desc, maxAttempts, lastErr)
}
