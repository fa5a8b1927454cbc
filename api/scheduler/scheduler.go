package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/Dipto6969/Police-Positive/databases"
)

// Scheduler runs the background maintenance jobs
type Scheduler struct {
	cron    *cron.Cron
	alertDB databases.AlertDatabase
}

// New creates a scheduler over the alert store
func New(alertDB databases.AlertDatabase) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		alertDB: alertDB,
	}
}

// Start registers the cron jobs and starts the scheduler
func (s *Scheduler) Start() error {
	// hourly sweep deactivating alerts past their expiry
	if _, err := s.cron.AddFunc("0 * * * *", s.expireAlerts); err != nil {
		return err
	}

	s.cron.Start()
	zap.S().Infow("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop halts the scheduler, waiting for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("scheduler stopped")
}

func (s *Scheduler) expireAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	modified, err := s.alertDB.UpdateMany(ctx,
		bson.M{"isActive": true, "expiresAt": bson.M{"$ne": nil, "$lt": now}},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": now}},
	)
	if err != nil {
		zap.S().Errorw("failed to expire alerts", "error", err)
		return
	}
	if modified > 0 {
		zap.S().Infow("expired alerts deactivated", "count", modified)
	}
}
