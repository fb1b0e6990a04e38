package notification

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/eventful-api/eventful-backend/config"
	"github.com/eventful-api/eventful-backend/utils"
)

// Scheduler drives the periodic reminder sweep. Exactly one sweep runs
// at a time: if a tick fires while the previous sweep is still going,
// that tick is skipped.
type Scheduler struct {
	svc      Service
	interval time.Duration

	mu sync.Mutex
}

func NewScheduler(svc Service, interval time.Duration) *Scheduler {
	return &Scheduler{svc: svc, interval: interval}
}

// Start runs one sweep immediately, then sweeps on a fixed interval
// until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		s.runSweep(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("reminder scheduler stopped")
				return
			case <-ticker.C:
				s.runSweep(ctx)
			}
		}
	}()
}

func (s *Scheduler) runSweep(ctx context.Context) {
	if !s.mu.TryLock() {
		log.Println("⚠️ previous reminder sweep still running, skipping tick")
		return
	}
	defer s.mu.Unlock()

	sent, failed, err := s.svc.SendDueReminders(ctx)
	if err != nil {
		log.Printf("⚠️ reminder sweep ended early: %v (sent=%d failed=%d)", err, sent, failed)
		return
	}
	if sent > 0 || failed > 0 {
		log.Printf("reminder sweep done: sent=%d failed=%d", sent, failed)
	}
}

// StartKafkaConsumer consumes enrollment messages and delivers the
// confirmation emails. It returns immediately; the loop stops when ctx
// is cancelled.
func StartKafkaConsumer(ctx context.Context, cfg *config.Config, svc Service) {
	reader := utils.NewKafkaReader(cfg)

	go func() {
		defer reader.Close()
		log.Printf("✅ Kafka consumer started (topic: %s)", cfg.KafkaEnrollmentsTopic)

		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					log.Println("kafka consumer stopped")
					return
				}
				log.Printf("⚠️ kafka read failed: %v", err)
				continue
			}

			var msg EnrollmentMessage
			if err := json.Unmarshal(m.Value, &msg); err != nil {
				log.Printf("⚠️ skipping malformed enrollment message: %v", err)
				continue
			}

			if err := svc.HandleEnrollmentMessage(ctx, msg); err != nil {
				log.Printf("⚠️ enrollment confirmation for %s failed: %v", msg.EnrollmentID, err)
			}
		}
	}()
}
