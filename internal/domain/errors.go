package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken         = errors.New("bu e-posta adresi zaten kayıtlı")
	ErrInvalidCredentials = errors.New("geçersiz e-posta veya şifre")
	ErrUserNotFound       = errors.New("kullanıcı bulunamadı")
	ErrCurrentPassword    = errors.New("mevcut şifre hatalı")
)

// PersistenceError, veri erişim katmanındaki her alt seviye hatayı
// operasyon adıyla sarar. Asıl neden Unwrap ile korunur; HTTP katmanı
// bu nedeni asla dışarı sızdırmaz.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
