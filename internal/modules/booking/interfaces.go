package booking

import (
	"context"

	"peluqueria/internal/domain"
	"peluqueria/internal/repository"
)

// ReservationRepository is the store surface the booking workflow
// needs: the atomic claim and a fresh read for availability.
type ReservationRepository interface {
	CreateIfFree(ctx context.Context, r *domain.Reservation) error
	List(ctx context.Context, f repository.Filter) ([]domain.Reservation, error)
}
