package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrExpired        = errors.New("session expired")
	ErrNotFound       = errors.New("session not found")
)

// Session - серверная запись сессии. Key - sha256 от идентификатора из cookie,
// сам идентификатор в хранилище не попадает.
type Session struct {
	Key       string    `json:"key"`
	UserID    int       `json:"user_id"`
	Identity  string    `json:"identity"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Payload - то, что сессия знает о владельце
type Payload struct {
	UserID   int    `json:"user_id"`
	Identity string `json:"identity"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Data сериализует полезную нагрузку для колонки data
func (s Session) Data() ([]byte, error) {
	return json.Marshal(Payload{UserID: s.UserID, Identity: s.Identity})
}

// SetData разбирает колонку data
func (s *Session) SetData(data []byte) error {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode session data: %w", err)
	}
	s.UserID, s.Identity = p.UserID, p.Identity
	return nil
}
