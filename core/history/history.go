package history

import (
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Attempt is one recorded launch attempt, terminal state included.
type Attempt struct {
	ID           uint   `gorm:"primaryKey"`
	AttemptID    string `gorm:"size:36;index"`
	Nickname     string `gorm:"size:20"`
	ServerIP     string `gorm:"size:255"`
	ServerPort   int
	ServerNumber *int
	Succeeded    bool
	Message      string `gorm:"size:512"`
	PID          *int
	CreatedAt    time.Time
}

// Connect establishes the history database connection.
// This is an optional connection, so callers should handle the error gracefully.
func Connect(cfg Config) (*gorm.DB, error) {
	// Suppress GORM logging; connection problems surface as a single warning
	// in the main logger instead.
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		// Special characters in the password must be URL encoded for the DSN.
		userInfo := url.UserPassword(cfg.User, cfg.Password).String()
		dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			userInfo, cfg.Host, cfg.Port, cfg.Name)
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported history driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := db.AutoMigrate(&Attempt{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}

	return db, nil
}

// Store records launch attempts. A nil Store is valid and records nothing,
// matching the optional nature of the connection.
type Store struct {
	db *gorm.DB
}

// NewStore creates a history store over an established connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Record appends one attempt. Failures are returned for the caller to log;
// they never affect the launch outcome.
func (s *Store) Record(a Attempt) error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.db.Create(&a).Error; err != nil {
		return fmt.Errorf("record launch attempt: %w", err)
	}
	return nil
}

// Recent returns up to limit attempts, newest first.
func (s *Store) Recent(limit int) ([]Attempt, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var out []Attempt
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("query launch history: %w", err)
	}
	return out, nil
}
