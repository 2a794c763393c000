package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"coworking/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestMigrate_EnforcesUniqueEmail(t *testing.T) {
	db := testDB(t)

	first := domain.User{Email: "dup@example.com", PasswordHash: "h", Role: domain.RoleClient, Name: "First"}
	require.NoError(t, db.Create(&first).Error)

	second := domain.User{Email: "dup@example.com", PasswordHash: "h", Role: domain.RoleClient, Name: "Second"}
	assert.Error(t, db.Create(&second).Error)
}

func TestMigrate_OnePaymentPerBooking(t *testing.T) {
	db := testDB(t)

	first := domain.Payment{BookingID: 7, FinalPrice: 1000, Status: domain.PaymentPaid}
	require.NoError(t, db.Create(&first).Error)

	second := domain.Payment{BookingID: 7, FinalPrice: 1000, Status: domain.PaymentPaid}
	assert.Error(t, db.Create(&second).Error)
}
