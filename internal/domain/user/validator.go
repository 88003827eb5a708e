package user

import (
	"fmt"
	"unicode"
)

const (
	MinIdentityLen = 1
	MaxIdentityLen = 128
	MinPasswordLen = 8
	// bcrypt игнорирует все после 72 байт
	MaxPasswordLen = 72
)

// Validator - интерфейс для валидации пользовательских данных
type Validator interface {
	ValidateRegister(identity, password string) error
	ValidateIdentity(identity string) error
	ValidatePassword(password string) error
}

type PasswordValidator struct {
	requireSpecialChar bool
	requireDigit       bool
	requireUpper       bool
	requireLower       bool
}

// NewPasswordValidator создает валидатор; strict включает требования к классам символов
func NewPasswordValidator(strict bool) *PasswordValidator {
	return &PasswordValidator{
		requireSpecialChar: strict,
		requireDigit:       strict,
		requireUpper:       strict,
		requireLower:       strict,
	}
}

// ValidateRegister валидирует данные для регистрации
func (v *PasswordValidator) ValidateRegister(identity, password string) error {
	if err := v.ValidateIdentity(identity); err != nil {
		return fmt.Errorf("identity validation failed: %w", err)
	}

	if err := v.ValidatePassword(password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}

	return nil
}

// ValidateIdentity валидирует идентификатор (UID провайдера или имя пользователя)
func (v *PasswordValidator) ValidateIdentity(identity string) error {
	if len(identity) < MinIdentityLen {
		return fmt.Errorf("identity is required")
	}

	if len(identity) > MaxIdentityLen {
		return fmt.Errorf("identity must be at most %d characters", MaxIdentityLen)
	}

	for _, r := range identity {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' && r != '@' && r != ':' {
			return fmt.Errorf("identity can only contain letters, digits, '_', '-', '.', '@', ':'")
		}
	}

	return nil
}

// ValidatePassword валидирует пароль
func (v *PasswordValidator) ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordLen)
	}

	hasLower := false
	hasUpper := false
	hasDigit := false
	hasSpecial := false

	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if v.requireLower && !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	if v.requireUpper && !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	if v.requireDigit && !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}

	if v.requireSpecialChar && !hasSpecial {
		return fmt.Errorf("password must contain at least one special character")
	}

	return nil
}
