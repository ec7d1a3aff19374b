package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/freetocompute/mindboard/config/configkey"
	"github.com/freetocompute/mindboard/pkg/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// CreateDatabase opens the database named by the configuration and migrates it.
func CreateDatabase() (*gorm.DB, error) {
	driver := viper.GetString(configkey.DatabaseDriver)
	switch driver {
	case DriverSQLite:
		return CreateDatabaseWithDialector(sqlite.Open(viper.GetString(configkey.DatabasePath)))
	case DriverPostgres, "":
		return CreateDatabaseWithDialector(postgres.Open(getDSN()))
	}
	return nil, fmt.Errorf("unknown database driver %q", driver)
}

func CreateDatabaseWithDialector(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		logrus.Error(err)
		return nil, err
	}

	if err := Migrate(db); err != nil {
		logrus.Error(err)
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AdminAccount{},
		&models.UserAccount{},
		&models.SignupRequest{},
		&models.VerifiedGmail{},
		&models.PasswordResetToken{},
		&models.Session{},
		&models.Message{},
		&models.PublicMessage{},
		&models.Reaction{},
		&models.Comment{},
	)
}

func CheckDBForErrorOrNoRows(db *gorm.DB) (*gorm.DB, bool) {
	if db.Error != nil {
		logrus.Error(db.Error)
		return db, false
	} else if db.RowsAffected == 0 {
		logrus.Trace("no rows found")
		return db, false
	}

	return db, true
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func getDSN() string {
	if url := viper.GetString(configkey.DatabaseURL); url != "" {
		return url
	}

	database := viper.GetString(configkey.DatabaseDatabase)
	password := viper.GetString(configkey.DatabasePassword)
	sslMode := viper.GetString(configkey.DatabaseSSLMode)
	timezone := viper.GetString(configkey.DatabaseTimezone)
	host := viper.GetString(configkey.DatabaseHost)
	username := viper.GetString(configkey.DatabaseUsername)
	port := viper.GetInt(configkey.DatabasePort)

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		host, username, password, database, port, sslMode, timezone)

	return dsn
}
