package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrOwnerNameEmpty     = errors.New("owner name cannot be empty")
)

const DefaultOwnerName = "owner"

// Owner is the single account allowed to read the ledger over the API.
type Owner struct {
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}

func NewOwner(name, passwordHash string) (*Owner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrOwnerNameEmpty
	}
	return &Owner{
		Name:         name,
		PasswordHash: passwordHash,
	}, nil
}

func HashPassword(plainPassword string) (string, error) {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), 12)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (o *Owner) SetPassword(plainPassword string) error {
	hash, err := HashPassword(plainPassword)
	if err != nil {
		return err
	}
	o.PasswordHash = hash
	return nil
}

func (o *Owner) CheckPassword(plainPassword string) error {
	if o.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(plainPassword)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
