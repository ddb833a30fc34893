package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/foamtrack/foamtrack-backend/internal/entries/repository"
	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic maintenance over the entry store.
type Scheduler struct {
	repo *repository.ProjectRepository
}

func NewScheduler(repo *repository.ProjectRepository) *Scheduler {
	return &Scheduler{repo: repo}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// (12:00 AM)
	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.logStoreStats()
	})

	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (store stats nightly at 12:00AM)")
	c.Start()
}

// logStoreStats scans every project record and logs aggregate counts.
func (s *Scheduler) logStoreStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	projects, err := s.repo.Projects(ctx)
	if err != nil {
		log.Printf("Store stats scan failed: %v", err)
		return
	}

	total := 0
	for _, p := range projects {
		rec, err := s.repo.Read(ctx, p)
		if err != nil {
			log.Printf("Store stats read failed for %q: %v", p, err)
			continue
		}
		total += len(rec.Entries)
	}

	log.Printf("Store stats: projects=%d entries=%d", len(projects), total)
}
