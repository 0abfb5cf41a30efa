package admin

import (
	"context"

	"peluqueria/internal/domain"
	"peluqueria/internal/repository"
)

// ReservationRepository is the store surface staff actions need.
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f repository.Filter) ([]domain.Reservation, error)
}

type tokenIssuer interface {
	GenerateToken(username, role string) (string, error)
}
