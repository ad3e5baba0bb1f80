package profile

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role represents a marketplace role.
type Role string

const (
	RoleLandlord Role = "LANDLORD"
	RoleTenant   Role = "TENANT"
	RoleBuyer    Role = "BUYER"
	RoleSeller   Role = "SELLER"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalid       = errors.New("invalid profile")
)

// Profile is a marketplace user. Sales holds the ids of sales the profile
// takes part in, as buyer or seller.
type Profile struct {
	ID           int64       `json:"-"`
	ProfileID    uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	Sales        []uuid.UUID `json:"sales"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// IsLandlord reports whether agreement listings should filter by seller.
func (p *Profile) IsLandlord() bool {
	return p.Role == RoleLandlord
}

// HasSale reports whether saleID is in the profile's back-reference set.
func (p *Profile) HasSale(saleID uuid.UUID) bool {
	for _, id := range p.Sales {
		if id == saleID {
			return true
		}
	}
	return false
}

func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

var usernamePattern = regexp.MustCompile(`^[a-z][a-z0-9._-]{2,30}[a-z0-9]$`)

func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalid)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username must be 4-32 chars, start with a letter, and contain only letters, digits, '.', '_' or '-'", ErrInvalid)
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalid)
	}
	return nil
}

func ValidateRole(role Role) error {
	switch role {
	case RoleLandlord, RoleTenant, RoleBuyer, RoleSeller:
		return nil
	default:
		return fmt.Errorf("%w: unknown role", ErrInvalid)
	}
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hash string, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
