package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"coworking/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// BookingOverlapConstraint is the exclusion constraint that rejects
// overlapping active bookings on PostgreSQL. The booking service matches
// this name when translating constraint violations.
const BookingOverlapConstraint = "idx_no_overlapping_bookings"

// Migrate applies the schema for all entities. On PostgreSQL it additionally
// installs the no-overlap exclusion constraint on bookings; SQLite has no
// equivalent, there the transactional re-check in the booking repository is
// the only guard.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.ManagerProfile{},
		&domain.RefreshToken{},
		&domain.CoworkingCenter{},
		&domain.Floor{},
		&domain.Workstation{},
		&domain.InventoryItem{},
		&domain.Discount{},
		&domain.Booking{},
		&domain.Payment{},
	)
	if err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return createBookingOverlapConstraint(db)
	}
	return nil
}

// createBookingOverlapConstraint makes double-booking impossible under
// concurrent inserts: two transactions can both pass the repository's
// re-check under READ COMMITTED, the gist constraint rejects the second
// at commit.
func createBookingOverlapConstraint(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}

	var cnt int64
	err := db.Raw("SELECT count(*) FROM pg_constraint WHERE conname = ?", BookingOverlapConstraint).
		Scan(&cnt).Error
	if err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}

	return db.Exec(`ALTER TABLE bookings ADD CONSTRAINT ` + BookingOverlapConstraint + `
		EXCLUDE USING gist (workstation_id WITH =, tsrange(start_time, end_time) WITH &&)
		WHERE (status = 'active')`).Error
}
