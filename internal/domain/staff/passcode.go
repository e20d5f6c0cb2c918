package staff

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/shopledger/backend/internal/domain/shared"
)

// Passcode length bounds
const (
	MinPasscodeLength = 4
	MaxPasscodeLength = 32
)

// DefaultPasscodeCost is the bcrypt cost used when none is configured
const DefaultPasscodeCost = 10

// PasscodeHasher hashes and verifies staff passcodes with bcrypt
type PasscodeHasher struct {
	cost int
}

// NewPasscodeHasher creates a hasher; out-of-range costs fall back to the default
func NewPasscodeHasher(cost int) PasscodeHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultPasscodeCost
	}
	return PasscodeHasher{cost: cost}
}

// Cost returns the bcrypt cost in use
func (h PasscodeHasher) Cost() int {
	return h.cost
}

// Hash validates and hashes a passcode
func (h PasscodeHasher) Hash(passcode string) (string, error) {
	if err := ValidatePasscode(passcode); err != nil {
		return "", err
	}
	cost := h.cost
	if cost == 0 {
		cost = DefaultPasscodeCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Matches reports whether the passcode is exactly the one behind hash
func (h PasscodeHasher) Matches(hash, passcode string) bool {
	if hash == "" || passcode == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}

// ValidatePasscode checks the passcode format
func ValidatePasscode(passcode string) error {
	if len(passcode) < MinPasscodeLength || len(passcode) > MaxPasscodeLength {
		return shared.NewValidationError("INVALID_PASSCODE", "Passcode must be between 4 and 32 characters")
	}
	for _, r := range passcode {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return shared.NewValidationError("INVALID_PASSCODE", "Passcode cannot contain whitespace or control characters")
		}
	}
	return nil
}
