// Seeds a handful of demo reservations into the configured database so
// the dashboard has something to show during local development.
package main

import (
	"context"
	"log"
	"time"

	"peluqueria/internal/config"
	"peluqueria/internal/database"
	"peluqueria/internal/domain"
	"peluqueria/internal/repository"
	"peluqueria/internal/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	repo := repository.NewReservationRepository(db, nil)
	catalog := schedule.NewCatalog()

	// First upcoming open day.
	day := time.Now().AddDate(0, 0, 1)
	for day.Weekday() == schedule.ClosedWeekday {
		day = day.AddDate(0, 0, 1)
	}
	date := day.Format(schedule.DateLayout)

	slots := catalog.SlotsFor(date)
	if len(slots) < 3 {
		log.Fatalf("no bookable slots on %s", date)
	}

	demos := []domain.Reservation{
		{Name: "Maria Lopez", Phone: "+54 9 11 5555-0001", Email: "maria@example.com",
			Date: date, Slot: slots[0], Service: domain.ServiceHaircut, Comment: "Flequillo corto"},
		{Name: "Carla Gomez", Phone: "+54 9 11 5555-0002",
			Date: date, Slot: slots[1], Service: domain.ServiceColoring},
		{Name: "Lucia Fernandez", Phone: "+54 9 11 5555-0003",
			Date: date, Slot: slots[2], Service: domain.ServiceHaircut, Status: domain.ReservationConfirmed},
	}

	ctx := context.Background()
	for i := range demos {
		if err := repo.CreateIfFree(ctx, &demos[i]); err != nil {
			log.Printf("skip %s %s: %v", demos[i].Date, demos[i].Slot, err)
			continue
		}
		log.Printf("seeded %s %s (%s)", demos[i].Date, demos[i].Slot, demos[i].Name)
	}
}
