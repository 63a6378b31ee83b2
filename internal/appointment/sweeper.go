package appointment

import (
	"context"
	"fmt"
	"log"
)

// The two sweep jobs are pure deletions and idempotent: re-running either
// against unchanged data finds nothing further to delete. A run that fails
// partway leaves stale rows for the next run to catch.

// ExpireDoctorBookings deletes every booking whose slot ended more than the
// grace period ago.
func (s *Service) ExpireDoctorBookings(ctx context.Context) (int64, error) {
	cutoff := s.localNow().Add(-s.gracePeriod)

	n, err := s.repo.DeleteExpiredDoctorBookings(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired bookings: %w", err)
	}
	if n > 0 {
		log.Printf("expired %d doctor bookings", n)
	}
	return n, nil
}

// ExpireDoctorSlots deletes every slot dated before today, plus today's
// slots that ended more than the grace period before the current
// time-of-day. Attached bookings go with them via the FK cascade.
func (s *Service) ExpireDoctorSlots(ctx context.Context) (int64, error) {
	now := s.localNow()
	cutoffClock := now.Add(-s.gracePeriod)
	cutoff := TimeOfDay{Hour: cutoffClock.Hour(), Minute: cutoffClock.Minute()}

	n, err := s.repo.DeleteExpiredDoctorSlots(ctx, s.today(), cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired slots: %w", err)
	}
	if n > 0 {
		log.Printf("expired %d doctor slots", n)
	}
	return n, nil
}
