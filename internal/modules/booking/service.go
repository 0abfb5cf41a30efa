package booking

import (
	"context"
	"errors"
	"strings"

	"peluqueria/internal/domain"
	"peluqueria/internal/notify"
	"peluqueria/internal/repository"
	"peluqueria/internal/schedule"

	"go.uber.org/zap"
)

type Service struct {
	reservations ReservationRepository
	catalog      *schedule.Catalog
	notifs       notify.Sender
	log          *zap.Logger
}

func NewService(
	reservations ReservationRepository,
	catalog *schedule.Catalog,
	notifs notify.Sender,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		reservations: reservations,
		catalog:      catalog,
		notifs:       notifs,
		log:          log,
	}
}

// CreateReservation claims (date, slot) for a customer. Any
// availability the caller showed the user was advisory; the only
// authoritative check is the atomic insert here. On a lost race the
// caller gets ErrSlotTaken and must let the user pick again — the
// engine never substitutes another slot.
func (s *Service) CreateReservation(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" {
		return nil, ErrValidation
	}

	service := domain.ServiceType(strings.TrimSpace(req.Service))
	if !service.Valid() {
		return nil, ErrValidation
	}

	date, err := schedule.NormalizeDate(req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	slot, err := schedule.NormalizeSlot(req.Slot)
	if err != nil {
		return nil, ErrValidation
	}

	// Closed day, past day, or a slot the client made up.
	if !s.catalog.ContainsSlot(date, slot) {
		return nil, ErrValidation
	}

	r := &domain.Reservation{
		Name:    name,
		Phone:   phone,
		Email:   strings.TrimSpace(req.Email),
		Date:    date,
		Slot:    slot,
		Service: service,
		Comment: strings.TrimSpace(req.Comment),
		Status:  domain.ReservationPending,
	}

	if err := s.reservations.CreateIfFree(ctx, r); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	// Fire and forget: the reservation is already durable, a failed
	// notification must not undo it.
	if s.notifs != nil {
		if err := s.notifs.Send(ctx, notify.PayloadFor(r, notify.KindCreated)); err != nil {
			s.log.Warn("created notification failed",
				zap.String("reservation_id", r.ID), zap.Error(err))
		}
	}

	return r, nil
}

// Availability returns every catalog slot for date with its occupancy,
// from a fresh store read. Closed and past dates yield an empty list.
func (s *Service) Availability(ctx context.Context, rawDate string) ([]SlotAvailability, error) {
	date, err := schedule.NormalizeDate(rawDate)
	if err != nil {
		return nil, ErrValidation
	}

	slots := s.catalog.SlotsFor(date)
	if len(slots) == 0 {
		return []SlotAvailability{}, nil
	}

	rows, err := s.reservations.List(ctx, repository.Filter{From: date, To: date})
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(rows))
	for _, r := range rows {
		taken[r.Slot] = true
	}

	out := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		out = append(out, SlotAvailability{Slot: slot, Free: !taken[slot]})
	}
	return out, nil
}

// WhatsAppLink returns the outbound deep link for a reservation so the
// presentation layer can open it after booking.
func (s *Service) WhatsAppLink(r *domain.Reservation, kind notify.Kind) string {
	if s.notifs == nil {
		return ""
	}
	return s.notifs.Link(notify.PayloadFor(r, kind))
}
