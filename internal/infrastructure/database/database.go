package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"adsmanager/internal/domain/account"
	"adsmanager/internal/domain/campaign"
	"adsmanager/internal/domain/user"
)

// Options selects and configures the database backend.
type Options struct {
	Driver   string // sqlite or postgres
	Path     string // sqlite file path
	URL      string // postgres DSN
	LogLevel string // silent, error, warn, info
}

// DB holds the database connection
type DB struct {
	*gorm.DB
	sqlDB  *sql.DB
	driver string
}

// New creates a new database connection
func New(opts Options) (*DB, error) {
	var (
		sqlDB     *sql.DB
		dialector gorm.Dialector
		err       error
	)

	switch opts.Driver {
	case "", "sqlite":
		sqlDB, err = openSQLite(opts.Path)
		if err != nil {
			return nil, err
		}
		dialector = sqlite.New(sqlite.Config{DriverName: "sqlite3", Conn: sqlDB})
		opts.Driver = "sqlite"
	case "postgres":
		cfg, err := pgx.ParseConfig(opts.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse database url: %w", err)
		}
		sqlDB = stdlib.OpenDB(*cfg)
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		dialector = postgres.New(postgres.Config{Conn: sqlDB})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger(opts.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{DB: gdb, sqlDB: sqlDB, driver: opts.Driver}, nil
}

func openSQLite(dbPath string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func newLogger(level string) logger.Interface {
	lvl := logger.Warn
	switch strings.ToLower(level) {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	return logger.New(
		log.New(os.Stdout, "[DB] ", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  lvl,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// GetType returns the driver name backing the connection.
func (db *DB) GetType() string {
	return db.driver
}

// Migrate creates or updates the users, managed accounts and campaigns tables.
// Parents are migrated first so the cascading foreign keys can be declared.
func (db *DB) Migrate() error {
	if err := db.AutoMigrate(&user.User{}, &account.ManagedAccount{}, &campaign.Campaign{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.sqlDB.Close()
}
