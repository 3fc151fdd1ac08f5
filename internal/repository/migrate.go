package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every table this package
// owns. The row models are private, so migration lives here too.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&studentProfileModel{},
		&listingModel{},
		&landlordProfileModel{},
		&reservationModel{},
		&paymentModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return createNoDoubleBookingConstraint(db)
	}
	return nil
}

// createNoDoubleBookingConstraint installs the DB-level overlap guard on
// reservations. gorm's migrator cannot express an EXCLUDE constraint, so
// the DDL runs by hand; reservationRepository.CreateIfAvailable and
// UpdateDatesIfAvailable map its 23P01 violation to the conflict error.
func createNoDoubleBookingConstraint(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}

	var cnt int64
	err := db.Raw("SELECT count(*) FROM pg_constraint WHERE conname = ?", "idx_no_double_booking").
		Scan(&cnt).Error
	if err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}

	return db.Exec(`ALTER TABLE reservations
		ADD CONSTRAINT idx_no_double_booking
		EXCLUDE USING gist (
			listing_id WITH =,
			tsrange(start_date, end_date) WITH &&
		)
		WHERE (status IN ('pending', 'accepted'))`).Error
}
