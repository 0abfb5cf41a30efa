package admin

import (
	"context"
	"errors"
	"strings"

	"peluqueria/internal/domain"
	"peluqueria/internal/notify"
	"peluqueria/internal/repository"
	"peluqueria/internal/schedule"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single staff account, configured rather than
// stored.
type Credentials struct {
	Username     string
	PasswordHash string
}

type Service struct {
	reservations ReservationRepository
	notifs       notify.Sender
	jwt          tokenIssuer
	creds        Credentials
	log          *zap.Logger
}

func NewService(
	reservations ReservationRepository,
	notifs notify.Sender,
	jwt tokenIssuer,
	creds Credentials,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		reservations: reservations,
		notifs:       notifs,
		jwt:          jwt,
		creds:        creds,
		log:          log,
	}
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username != s.creds.Username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwt.GenerateToken(username, "admin")
}

// ToggleConfirm flips a reservation between pending and confirmed.
// The reverse direction exists so staff can undo a mistaken
// confirmation; only pending -> confirmed notifies the customer.
func (s *Service) ToggleConfirm(ctx context.Context, id string) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	next := domain.ReservationConfirmed
	if r.Status == domain.ReservationConfirmed {
		next = domain.ReservationPending
	}

	if err := s.reservations.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.Status = next

	if next == domain.ReservationConfirmed && s.notifs != nil {
		if err := s.notifs.Send(ctx, notify.PayloadFor(r, notify.KindConfirmed)); err != nil {
			s.log.Warn("confirmed notification failed",
				zap.String("reservation_id", r.ID), zap.Error(err))
		}
	}

	return r, nil
}

// Remove hard-deletes a reservation from either status, freeing its
// slot immediately. A removed id stays gone: every later operation on
// it reports ErrNotFound.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.reservations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// List returns reservations ordered by (date, slot), optionally
// bounded to a date range.
func (s *Service) List(ctx context.Context, from, to string) ([]domain.Reservation, error) {
	f := repository.Filter{}
	var err error
	if strings.TrimSpace(from) != "" {
		if f.From, err = schedule.NormalizeDate(from); err != nil {
			return nil, ErrValidation
		}
	}
	if strings.TrimSpace(to) != "" {
		if f.To, err = schedule.NormalizeDate(to); err != nil {
			return nil, ErrValidation
		}
	}
	return s.reservations.List(ctx, f)
}

// WhatsAppLink exposes the outbound deep link so the dashboard can
// open the confirmation chat.
func (s *Service) WhatsAppLink(r *domain.Reservation, kind notify.Kind) string {
	if s.notifs == nil {
		return ""
	}
	return s.notifs.Link(notify.PayloadFor(r, kind))
}
