package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"peluqueria/internal/domain"
	"peluqueria/internal/events"
	"peluqueria/internal/schedule"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrSlotTaken means the (date, slot) pair was already occupied at
	// commit time.
	ErrSlotTaken = errors.New("slot already taken")
	ErrNotFound  = errors.New("reservation not found")
)

// Filter narrows List to a date range. Empty bounds are open.
type Filter struct {
	From string
	To   string
}

type ReservationRepository struct {
	db     *gorm.DB
	events events.Publisher
}

func NewReservationRepository(db *gorm.DB, publisher events.Publisher) *ReservationRepository {
	return &ReservationRepository{db: db, events: publisher}
}

type reservationModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Phone     string    `gorm:"column:phone"`
	Email     string    `gorm:"column:email"`
	Date      string    `gorm:"column:date;uniqueIndex:idx_reservations_date_slot"`
	Slot      string    `gorm:"column:slot;uniqueIndex:idx_reservations_date_slot"`
	Service   string    `gorm:"column:service"`
	Comment   *string   `gorm:"column:comment"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (reservationModel) TableName() string { return "reservations" }

// Migrate creates the reservations table and its unique (date, slot)
// index.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&reservationModel{})
}

func toDomainReservation(m reservationModel) *domain.Reservation {
	var comment string
	if m.Comment != nil {
		comment = *m.Comment
	}

	return &domain.Reservation{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		Email:     m.Email,
		Date:      m.Date,
		Slot:      m.Slot,
		Service:   domain.ServiceType(m.Service),
		Comment:   comment,
		Status:    domain.ReservationStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	var comment *string
	if r.Comment != "" {
		v := r.Comment
		comment = &v
	}

	return reservationModel{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Date:      r.Date,
		Slot:      r.Slot,
		Service:   string(r.Service),
		Comment:   comment,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

// CreateIfFree atomically claims (date, slot) for r. The live-row check
// and insert run inside one transaction, and the unique index on
// (date, slot) closes the remaining race window: two concurrent calls
// for the same pair yield one inserted row and one ErrSlotTaken, never
// two rows and never a partial write.
func (repo *ReservationRepository) CreateIfFree(ctx context.Context, r *domain.Reservation) error {
	m := toReservationModel(r)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = string(domain.ReservationPending)
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	var err error
	m.Date, err = schedule.NormalizeDate(m.Date)
	if err != nil {
		return err
	}
	m.Slot, err = schedule.NormalizeSlot(m.Slot)
	if err != nil {
		return err
	}

	err = repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&reservationModel{}).
			Where("date = ? AND slot = ?", m.Date, m.Slot).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrSlotTaken
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlotTaken
		}
		return err
	}

	*r = *toDomainReservation(m)
	repo.publish(events.Event{Kind: events.KindCreated, ID: m.ID, Date: m.Date, Slot: m.Slot})
	return nil
}

func (repo *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var m reservationModel
	tx := repo.db.WithContext(ctx).First(&m, "id = ?", id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

// UpdateStatus moves a reservation between pending and confirmed and
// emits the matching change event.
func (repo *ReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	var m reservationModel
	if err := repo.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	tx := repo.db.WithContext(ctx).Model(&reservationModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}

	kind := events.KindUnconfirmed
	if status == domain.ReservationConfirmed {
		kind = events.KindConfirmed
	}
	repo.publish(events.Event{Kind: kind, ID: id, Date: m.Date, Slot: m.Slot})
	return nil
}

// Delete hard-deletes a reservation, freeing its (date, slot) pair.
func (repo *ReservationRepository) Delete(ctx context.Context, id string) error {
	var m reservationModel
	if err := repo.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	tx := repo.db.WithContext(ctx).Delete(&reservationModel{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}

	repo.publish(events.Event{Kind: events.KindDeleted, ID: id, Date: m.Date, Slot: m.Slot})
	return nil
}

// List returns reservations in (date asc, slot asc) order. Canonical
// date and slot forms make that a plain composite ordering.
func (repo *ReservationRepository) List(ctx context.Context, f Filter) ([]domain.Reservation, error) {
	q := repo.db.WithContext(ctx).Model(&reservationModel{})
	if f.From != "" {
		q = q.Where("date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("date <= ?", f.To)
	}

	var rows []reservationModel
	if err := q.Order("date ASC, slot ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

func (repo *ReservationRepository) publish(e events.Event) {
	if repo.events != nil {
		repo.events.Publish(e)
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// modernc sqlite reports constraint violations by message only
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
