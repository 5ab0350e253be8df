package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/skinsight/skinfeed/internal/feed"
	"github.com/skinsight/skinfeed/internal/mailer"
)

// runBudget bounds a whole scheduled run: four sequential adapter calls
// plus two snapshot writes fit comfortably.
const runBudget = 5 * time.Minute

type Scheduler struct {
	cron *cron.Cron
	agg  *feed.Aggregator
	mail *mailer.Mailer
}

// New schedules the daily aggregation+digest job. SkipIfStillRunning
// guarantees runs never overlap, so two processes can't race on the same
// date-keyed snapshot.
func New(spec string, agg *feed.Aggregator, mail *mailer.Mailer) (*Scheduler, error) {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	s := &Scheduler{cron: c, agg: agg, mail: mail}
	if _, err := c.AddFunc(spec, func() { s.runOnce(true) }); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// Refresh the snapshot shortly after boot so the first page view has
	// data, but without mailing the digest off-schedule.
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() { s.runOnce(false) })
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runOnce(sendDigest bool) {
	log.Println("start aggregation run...")
	ctx, cancel := context.WithTimeout(context.Background(), runBudget)
	defer cancel()

	posts, err := s.agg.Run(ctx)
	if err != nil {
		// A failed snapshot write fails the run loudly; the next cron
		// cycle retries.
		log.Printf("aggregation run failed: %v", err)
		return
	}
	log.Printf("aggregation run done, %d posts published", len(posts))

	if sendDigest && s.mail != nil {
		if err := s.mail.Send(posts); err != nil {
			log.Printf("digest email failed: %v", err)
		}
	}
}
