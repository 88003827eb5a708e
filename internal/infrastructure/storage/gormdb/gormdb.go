// Package gormdb - ORM-хранилище на gorm с драйвером MySQL.
// DSN должен содержать parseTime=True, иначе время не сканируется.
package gormdb

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type userModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Identity     string    `gorm:"type:varchar(128);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null;default:''"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

type noteModel struct {
	UserID   uint      `gorm:"primaryKey;autoIncrement:false"`
	ID       string    `gorm:"primaryKey;type:varchar(191)"`
	Title    string    `gorm:"type:text;not null"`
	Body     string    `gorm:"type:text;not null"`
	Position int       `gorm:"not null;index"`
	User     userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (noteModel) TableName() string { return "notes" }

type sessionModel struct {
	SessionKey string    `gorm:"primaryKey;type:char(64)"`
	Data       string    `gorm:"type:text;not null"`
	ExpiresAt  time.Time `gorm:"index;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (sessionModel) TableName() string { return "sessions" }

type Storage struct {
	db *gorm.DB
}

func New(ctx context.Context, dsn string) (*Storage, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	s := &Storage{db: db}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Migrate создает или обновляет схему через AutoMigrate
func (s *Storage) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&userModel{}, &noteModel{}, &sessionModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (s *Storage) DB() *gorm.DB {
	return s.db
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
