package service

import (
	"context"
	"fmt"
	"log"

	"smartparking/internal/db"
	"smartparking/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// EndExpiredReservations finds booked reservations whose paid window is over
// and marks them ended, freeing their spots.
func (s *JobService) EndExpiredReservations(ctx context.Context) error {
	ids, err := s.Repo.GetBookedIDsPastWindow(ctx)
	if err != nil {
		return fmt.Errorf("cron job: failed to get reservations past their window: %w", err)
	}

	if len(ids) == 0 {
		return nil
	}

	log.Printf("Cron Job: Found %d reservations to mark as '%s'. IDs: %v", len(ids), db.StatusEnded, ids)

	if err := s.Repo.UpdateStatuses(ctx, ids, db.StatusEnded); err != nil {
		return fmt.Errorf("cron job: failed to update reservation statuses: %w", err)
	}
	return nil
}
