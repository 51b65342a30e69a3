package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"lodge-backend/models"
	"lodge-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}
	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}
	pass, _ := u.User.Password()

	q := u.Query()
	for key, def := range map[string]string{"charset": "utf8mb4", "parseTime": "True", "loc": "UTC"} {
		if q.Get(key) == "" {
			q.Set(key, def)
		}
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", u.User.Username(), pass, u.Hostname(), port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		utils.EnvOrDefault("DB_USER", "root"),
		utils.EnvOrDefault("DB_PASS", ""),
		utils.EnvOrDefault("DB_HOST", "127.0.0.1"),
		utils.EnvOrDefault("DB_PORT", "3306"),
		utils.EnvOrDefault("DB_NAME", "lodge_db"),
	), nil
}

func dialector(driver string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		dsn, err := resolveMySQLDSN()
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
				utils.EnvOrDefault("DB_HOST", "127.0.0.1"),
				utils.EnvOrDefault("DB_USER", "postgres"),
				utils.EnvOrDefault("DB_PASS", ""),
				utils.EnvOrDefault("DB_NAME", "lodge_db"),
				utils.EnvOrDefault("DB_PORT", "5432"),
			)
		}
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(utils.EnvOrDefault("SQLITE_PATH", "lodge.db")), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

// ConnectDatabase opens the configured database, migrates it and seeds defaults.
func ConnectDatabase(cfg Config) (*gorm.DB, error) {
	d, err := dialector(cfg.DBDriver)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == "sqlite" {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := SeedDatabase(db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs AutoMigrate in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AdminUser{},
		&models.LodgeSetting{},
		&models.Room{},
		&models.Booking{},
		&models.Guest{},
		&models.RemovalReason{},
		&models.GalleryImage{},
	)
}

// SeedDatabase inserts the default manager, the lodge skins and sample rooms. Safe to rerun.
func SeedDatabase(db *gorm.DB, cfg Config) error {
	var adminCount int64
	if err := db.Model(&models.AdminUser{}).Count(&adminCount).Error; err != nil {
		return fmt.Errorf("count admin users: %w", err)
	}
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash default manager password: %w", err)
		}
		manager := models.AdminUser{Username: cfg.AdminUsername, Password: string(hash), Role: models.RoleManager}
		if err := db.Create(&manager).Error; err != nil {
			return fmt.Errorf("create default manager: %w", err)
		}
		log.Printf("Default manager %q seeded", manager.Username)
	}

	for skin, preset := range models.LodgeSkins {
		var count int64
		db.Model(&models.LodgeSetting{}).Where("skin = ?", skin).Count(&count)
		if count > 0 {
			continue
		}
		setting := preset
		if err := db.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed lodge setting %s: %v", skin, err)
		}
	}

	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{Name: "Standard Room", Description: "Cosy room with a double bed, fan and private bathroom.", Price: 200, MaxGuests: 2, Quantity: 4, Available: true},
			{Name: "Deluxe Room", Description: "Air-conditioned room with a queen bed, TV and Wi-Fi.", Price: 350, MaxGuests: 2, Quantity: 3, Available: true},
			{Name: "Family Suite", Description: "Two-bedroom suite with a lounge for families.", Price: 600, MaxGuests: 4, Quantity: 1, Available: true},
		}
		if err := db.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}

	return nil
}
