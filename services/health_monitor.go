package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DatabaseUp      = "up"
	DatabaseDown    = "down"
	DatabaseUnknown = "unknown"

	pingTimeout = 5 * time.Second
)

// HealthMonitor pings the database on a cron schedule and remembers the
// latest result for the health endpoint.
type HealthMonitor struct {
	db       *gorm.DB
	schedule string
	cron     *cron.Cron

	mu        sync.RWMutex
	status    string
	checkedAt time.Time
}

func NewHealthMonitor(db *gorm.DB, schedule string) *HealthMonitor {
	return &HealthMonitor{
		db:       db,
		schedule: schedule,
		status:   DatabaseUnknown,
	}
}

func (h *HealthMonitor) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(h.schedule, func() {
		h.Check(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule health check %q: %w", h.schedule, err)
	}

	h.Check(context.Background())
	c.Start()
	h.cron = c

	log.WithField("schedule", h.schedule).Info("Health monitor started")
	return nil
}

// Stop waits for a running check to finish.
func (h *HealthMonitor) Stop() {
	if h.cron == nil {
		return
	}
	<-h.cron.Stop().Done()
}

// Check pings the database once and records the outcome.
func (h *HealthMonitor) Check(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := DatabaseUp
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status = DatabaseDown
		log.WithError(err).Warn("database health check failed")
	}

	h.mu.Lock()
	if h.status != status {
		log.WithField("database", status).Info("database status changed")
	}
	h.status = status
	h.checkedAt = time.Now()
	h.mu.Unlock()

	return status
}

func (h *HealthMonitor) Status() (string, time.Time) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status, h.checkedAt
}
