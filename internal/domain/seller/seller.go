package seller

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("seller: not found")
	ErrInvalidName     = errors.New("seller: name is required")
	ErrInvalidPhone    = errors.New("seller: phone must contain digits only")
	ErrPasswordTooWeak = errors.New("seller: password must be at least 4 characters")
	ErrPhoneTaken      = errors.New("seller: phone already registered")
	ErrPasswordTaken   = errors.New("seller: password already registered")
	ErrPasswordBound   = errors.New("seller: password bound to another actor")
	ErrAlreadyBound    = errors.New("seller: actor binding already set")
)

const MinPasswordLen = 4

// Seller is a field seller created by the admin. The access password is a
// plaintext shared secret, unique across sellers. ActorID is empty until the
// seller logs in for the first time; once set it never changes.
type Seller struct {
	ID           string
	Name         string
	Neighborhood string
	Phone        string
	Password     string
	ActorID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func New(id, name, neighborhood, phone, password string) (*Seller, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if !DigitsOnly(phone) {
		return nil, ErrInvalidPhone
	}
	if len(password) < MinPasswordLen {
		return nil, ErrPasswordTooWeak
	}

	now := time.Now().UTC()
	return &Seller{
		ID:           id,
		Name:         name,
		Neighborhood: neighborhood,
		Phone:        phone,
		Password:     password,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Bind attaches the seller to an actor identity. The binding is permanent:
// rebinding to a different actor fails, rebinding to the same actor is a no-op.
func (s *Seller) Bind(actorID string) error {
	if s.ActorID == actorID {
		return nil
	}
	if s.ActorID != "" {
		return ErrAlreadyBound
	}
	s.ActorID = actorID
	s.touch()
	return nil
}

func (s *Seller) Bound() bool { return s.ActorID != "" }

func (s *Seller) Clone() *Seller {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (s *Seller) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// DigitsOnly reports whether the string is non-empty and all ASCII digits.
func DigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
