package config

import (
	"os"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"foodshare-api/models"
)

var DB *gorm.DB

// Default campus coordinates, used for restaurant profiles created at
// registration and as the fallback caller location in offer discovery.
const (
	CampusLat = 41.0082
	CampusLng = 28.9784
)

const adminEmail = "admin@foodshare.com"

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB connects to postgres when DATABASE_URL is set, otherwise to a local
// sqlite file, then migrates the schema and seeds the admin account.
func InitDB() {
	var dialector gorm.Dialector
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(GetEnv("SQLITE_PATH", "foodshare.db"))
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	seedAdmin()

	logrus.Info("database connected and migrated")
}

// Migrate applies the full schema to the given connection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RestaurantProfile{},
		&models.Offer{},
		&models.Claim{},
		&models.Leaderboard{},
		&models.Notification{},
	)
}

// seedAdmin creates the single admin account on first boot.
func seedAdmin() {
	var count int64
	DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(GetEnv("ADMIN_PASSWORD", "foodshare-admin")), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("failed to hash admin password: %v", err)
	}

	admin := models.User{
		Name:               "Administrator",
		Email:              adminEmail,
		PasswordHash:       string(hash),
		Role:               models.RoleAdmin,
		VerificationStatus: models.VerificationVerified,
	}
	if err := DB.Create(&admin).Error; err != nil {
		logrus.Fatalf("failed to seed admin user: %v", err)
	}
	logrus.WithField("email", adminEmail).Info("seeded admin account")
}
