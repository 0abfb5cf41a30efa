package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"peluqueria/internal/domain"

	"go.uber.org/zap"
)

type Kind string

const (
	KindCreated   Kind = "created"
	KindConfirmed Kind = "confirmed"
)

// Payload is the structured notification handed to the outbound
// channel. The engine only builds it; composing and actually sending a
// human-readable message is the collaborator's job.
type Payload struct {
	CustomerName    string
	CustomerContact string
	Email           string
	Date            string
	Slot            string
	Service         string
	Comment         string
	Kind            Kind
}

// PayloadFor builds the notification payload for a reservation.
func PayloadFor(r *domain.Reservation, kind Kind) Payload {
	return Payload{
		CustomerName:    r.Name,
		CustomerContact: r.Phone,
		Email:           r.Email,
		Date:            r.Date,
		Slot:            r.Slot,
		Service:         r.Service.Label(),
		Comment:         r.Comment,
		Kind:            kind,
	}
}

// Sender delivers reservation notifications. Failures are the sender's
// problem: booking and lifecycle commits never roll back on them.
type Sender interface {
	Send(ctx context.Context, p Payload) error
	Link(p Payload) string
}

// WhatsAppSender composes wa.me deep links. A "created" notice goes to
// the salon phone, a "confirmed" notice to the customer's. Delivery
// happens when somebody opens the link, so Send only logs it.
type WhatsAppSender struct {
	salonPhone string
	log        *zap.Logger
}

func NewWhatsAppSender(salonPhone string, log *zap.Logger) *WhatsAppSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &WhatsAppSender{salonPhone: salonPhone, log: log}
}

func (s *WhatsAppSender) Send(ctx context.Context, p Payload) error {
	s.log.Info("whatsapp notification prepared",
		zap.String("kind", string(p.Kind)),
		zap.String("date", p.Date),
		zap.String("slot", p.Slot),
		zap.String("url", s.Link(p)))
	return nil
}

// Link builds the wa.me deep link for the payload.
func (s *WhatsAppSender) Link(p Payload) string {
	phone := s.salonPhone
	text := createdMessage(p)
	if p.Kind == KindConfirmed {
		phone = p.CustomerContact
		text = confirmedMessage(p)
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", sanitizePhone(phone), url.QueryEscape(text))
}

func createdMessage(p Payload) string {
	comment := p.Comment
	if comment == "" {
		comment = "Ninguno"
	}
	return fmt.Sprintf(`*NUEVO TURNO RESERVADO*

*Cliente:* %s
*Telefono:* %s
*Email:* %s
*Fecha:* %s
*Hora:* %s
*Servicio:* %s
*Comentarios:* %s

Confirma la disponibilidad!`,
		p.CustomerName, p.CustomerContact, p.Email, p.Date, p.Slot, p.Service, comment)
}

func confirmedMessage(p Payload) string {
	return fmt.Sprintf(`Hola %s! Tu turno ha sido confirmado:

*Fecha:* %s
*Hora:* %s
*Servicio:* %s

Te esperamos!`,
		p.CustomerName, p.Date, p.Slot, p.Service)
}

func sanitizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
