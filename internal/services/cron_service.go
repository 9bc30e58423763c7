package services

import (
	"fmt"
	"log"
	"time"
)

// IdleSweeper drops per-profile state untouched since cutoff and reports
// how many entries it removed.
type IdleSweeper interface {
	SweepIdle(cutoff time.Time) int
}

// CronService periodically evicts idle checkout and recovery flows so the
// in-memory maps do not grow with every profile ever seen.
type CronService struct {
	ticker   *time.Ticker
	stopChan chan bool
	interval time.Duration
	maxIdle  time.Duration
	sweepers []IdleSweeper
	now      func() time.Time
}

func NewCronService(interval, maxIdle time.Duration, sweepers ...IdleSweeper) *CronService {
	return &CronService{
		stopChan: make(chan bool),
		interval: interval,
		maxIdle:  maxIdle,
		sweepers: sweepers,
		now:      time.Now,
	}
}

func (s *CronService) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", s.interval)
	}
	s.ticker = time.NewTicker(s.interval)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.SweepOnce()
			case <-s.stopChan:
				return
			}
		}
	}()

	log.Printf("Cron service started - evicting flows idle for %s every %s", s.maxIdle, s.interval)

	return nil
}

func (s *CronService) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// SweepOnce runs every sweeper with the current cutoff.
func (s *CronService) SweepOnce() int {
	cutoff := s.now().Add(-s.maxIdle)
	removed := 0
	for _, sweeper := range s.sweepers {
		removed += sweeper.SweepIdle(cutoff)
	}
	if removed > 0 {
		log.Printf("Evicted %d idle flows", removed)
	}
	return removed
}
