package postgres

import (
	"database/sql"
	"fmt"

	"fulfillment/internal/adapters/out/postgres/combinationrepo"
	"fulfillment/internal/adapters/out/postgres/couponrepo"
	"fulfillment/internal/adapters/out/postgres/customerrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/outboxrepo"
	"fulfillment/internal/adapters/out/postgres/settingsrepo"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Models lists every table owned by the fulfillment core.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&customerrepo.CustomerDTO{},
		&couponrepo.CouponDTO{},
		&couponrepo.CouponUsageDTO{},
		&combinationrepo.CombinationDTO{},
		&settingsrepo.ApprovalSettingsDTO{},
		&outboxrepo.NotificationDTO{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// MakeConnectionString builds a libpq keyword/value DSN, accepted by both lib/pq
// and the GORM postgres driver.
func MakeConnectionString(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		host, port, user, password, dbName, sslMode)
}

// CreateDatabaseIfNotExists connects to the server's maintenance database and
// creates dbName when it is missing.
func CreateDatabaseIfNotExists(host, port, user, password, dbName, sslMode string) error {
	db, err := sql.Open("postgres", MakeConnectionString(host, port, user, password, "postgres", sslMode))
	if err != nil {
		return fmt.Errorf("open maintenance connection: %w", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow(`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database %s: %w", dbName, err)
	}
	if exists {
		return nil
	}

	if _, err = db.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName)); err != nil {
		return fmt.Errorf("create database %s: %w", dbName, err)
	}
	return nil
}
