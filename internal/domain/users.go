package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tlvflow/tlvflow/internal/security"
)

// AccountType splits riders into amateur (bike-only) and pro (any
// vehicle, subject to a valid license) accounts.
type AccountType int

const (
	AccountTypeAmateur AccountType = iota
	AccountTypePro
)

var accountTypeNames = [...]string{"amateur", "pro"}

func (a AccountType) String() string {
	if a < 0 || int(a) >= len(accountTypeNames) {
		return fmt.Sprintf("AccountType(%d)", int(a))
	}
	return accountTypeNames[a]
}

func ParseAccountType(name string) (AccountType, error) {
	for i, candidate := range accountTypeNames {
		if candidate == name {
			return AccountType(i), nil
		}
	}
	return 0, fmt.Errorf("%s is not a valid AccountType", name)
}

func (a AccountType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccountType) UnmarshalText(text []byte) (err error) {
	*a, err = ParseAccountType(string(text))
	return
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Lifecycle rule violations surfaced by StartRide/EndRide.
var (
	ErrActiveRide   = errors.New("user already has an active ride")
	ErrNoActiveRide = errors.New("user has no active ride to end")
	ErrRideMismatch = errors.New("ride mismatch: cannot end a different ride")
)

// User is a registered rider. LicenseNumber and LicenseExpiry are only
// set for pro accounts. A user holds at most one active ride at a time.
type User struct {
	UserID          string
	Name            string
	Email           string
	PasswordHash    string
	PaymentMethodID string
	Account         AccountType
	LicenseNumber   string
	LicenseExpiry   time.Time

	rideHistory []*Ride
	currentRide *Ride
}

type NewUserParams struct {
	UserID          string
	Name            string
	Email           string
	PasswordHash    string
	PaymentMethodID string
	Account         AccountType
	LicenseNumber   string
	LicenseExpiry   time.Time
}

// NewUser validates and normalizes every field. Email is trimmed and
// lower-cased; name and payment method ID are trimmed. The password hash
// must already be in the encoded PBKDF2 format.
func NewUser(params NewUserParams) (*User, error) {
	if strings.TrimSpace(params.UserID) == "" {
		return nil, errors.New("user_id must be a non-empty string")
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, errors.New("name must be a non-empty string")
	}
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if !emailPattern.MatchString(email) {
		return nil, errors.New("email must be a valid email address")
	}
	if !security.ValidEncodedHash(params.PasswordHash) {
		return nil, errors.New("password_hash has an invalid format")
	}
	paymentMethodID := strings.TrimSpace(params.PaymentMethodID)
	if paymentMethodID == "" {
		return nil, errors.New("payment_method_id must be a non-empty string")
	}

	user := &User{
		UserID:          params.UserID,
		Name:            name,
		Email:           email,
		PasswordHash:    params.PasswordHash,
		PaymentMethodID: paymentMethodID,
		Account:         params.Account,
	}

	if params.Account == AccountTypePro {
		licenseNumber := strings.TrimSpace(params.LicenseNumber)
		if licenseNumber == "" {
			return nil, errors.New("license_number is required for pro users")
		}
		if params.LicenseExpiry.IsZero() {
			return nil, errors.New("license_expiry is required for pro users")
		}
		user.LicenseNumber = licenseNumber
		user.LicenseExpiry = params.LicenseExpiry
	}

	return user, nil
}

type RegisterParams struct {
	UserID          string // generated when empty
	Name            string
	Email           string
	Password        string
	PaymentMethodID string
	Account         AccountType
	LicenseNumber   string
	LicenseExpiry   time.Time
}

// Register is the factory behind the registration flow: derives the
// password hash and generates a user ID (hex-encoded UUID) when one is
// not supplied.
func Register(params RegisterParams) (*User, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}
	userID := params.UserID
	if userID == "" {
		userID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return NewUser(NewUserParams{
		UserID:          userID,
		Name:            params.Name,
		Email:           params.Email,
		PasswordHash:    passwordHash,
		PaymentMethodID: params.PaymentMethodID,
		Account:         params.Account,
		LicenseNumber:   params.LicenseNumber,
		LicenseExpiry:   params.LicenseExpiry,
	})
}

// Login verifies the password against the stored hash. A malformed
// stored hash verifies false, it never panics or escapes as an error.
func (u *User) Login(password string) bool {
	return security.VerifyPassword(password, u.PasswordHash)
}

// StartRide marks a ride active. A user cannot be on more than one
// active ride.
func (u *User) StartRide(ride *Ride) error {
	if u.currentRide != nil {
		return ErrActiveRide
	}
	u.currentRide = ride
	return nil
}

// EndRide finalizes the active ride and appends it to history. The given
// ride must be the very ride that is active (pointer identity, not field
// equality).
func (u *User) EndRide(ride *Ride) error {
	if u.currentRide == nil {
		return ErrNoActiveRide
	}
	if ride != u.currentRide {
		return ErrRideMismatch
	}
	u.rideHistory = append(u.rideHistory, ride)
	u.currentRide = nil
	return nil
}

func (u *User) CurrentRide() *Ride {
	return u.currentRide
}

// RideHistory returns a snapshot copy of the append-only history.
func (u *User) RideHistory() []*Ride {
	history := make([]*Ride, len(u.rideHistory))
	copy(history, u.rideHistory)
	return history
}

// CanRent applies the rental permission rule: amateurs may only rent
// non-electric vehicles, pros may rent anything while their license is
// valid at the given time.
func (u *User) CanRent(vehicle *Vehicle, at time.Time) bool {
	if u.Account == AccountTypePro {
		return u.ValidateLicense(at)
	}
	return !vehicle.IsElectric()
}

// ValidateLicense reports whether the license is unexpired at the given
// time. Both sides are normalized to UTC before comparison; a zero time
// means "now".
func (u *User) ValidateLicense(at time.Time) bool {
	if u.Account != AccountTypePro {
		return false
	}
	if at.IsZero() {
		at = time.Now()
	}
	return !u.LicenseExpiry.UTC().Before(at.UTC())
}

// ReportVehicleIssue builds the report payload handed to the service
// layer. Optional fields are included only when non-empty.
func (u *User) ReportVehicleIssue(rideID, vehicleID, imageURL, description string) (VehicleReport, error) {
	return NewVehicleReport(rideID, vehicleID, imageURL, description)
}
