package service

import (
	"golang.org/x/crypto/bcrypt"

	"fitplan/internal/domain"
)

// DefaultHashCost kayıt ve şifre değiştirme akışlarında kullanılan bcrypt
// maliyeti. Daha yüksek maliyet = çağrı başına daha fazla CPU; kaba kuvvet
// saldırılarına karşı bilinçli bir takas.
const DefaultHashCost = 10

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) domain.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h *BcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
