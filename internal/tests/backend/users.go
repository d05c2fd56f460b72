package backend

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrWrongOldPassword = errors.New("current password is incorrect")
)

// Account is a stored user plus its authentication material. TokenEpoch is
// compared against the epoch claim in access tokens; bumping it revokes
// every token minted before the bump.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	Role         domain.Role
	PhoneNumber  string
	ProfileImage string
	Address      string
	TokenEpoch   int64
}

// Profile returns the wire-facing view of the account.
func (a *Account) Profile() *domain.UserProfile {
	return &domain.UserProfile{
		ID:           a.ID,
		Email:        a.Email,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Role:         a.Role,
		PhoneNumber:  a.PhoneNumber,
		ProfileImage: a.ProfileImage,
		Address:      a.Address,
	}
}

// UserStore is an in-memory account repository.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]*Account
	byEmail map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]*Account),
		byEmail: make(map[string]string),
	}
}

func (s *UserStore) Create(reg *domain.Registration) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[reg.Email]; taken {
		return nil, ErrEmailTaken
	}

	acc := &Account{
		ID:           uuid.New().String(),
		Email:        reg.Email,
		PasswordHash: hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Role:         reg.Role,
		PhoneNumber:  reg.PhoneNumber,
		Address:      reg.Address,
	}
	s.byID[acc.ID] = acc
	s.byEmail[acc.Email] = acc.ID
	return acc, nil
}

func (s *UserStore) Authenticate(email, password string) (*Account, error) {
	s.mu.RLock()
	id, ok := s.byEmail[email]
	var acc *Account
	if ok {
		acc = s.byID[id]
	}
	s.mu.RUnlock()

	if acc == nil {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return acc, nil
}

func (s *UserStore) Get(id string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return acc, nil
}

// UpdateProfile applies the known fields from patch and returns exactly the
// fields that were applied.
func (s *UserStore) UpdateProfile(id string, patch map[string]any) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	echoed := make(map[string]any)
	for field, raw := range patch {
		value, isString := raw.(string)
		if !isString {
			continue
		}
		switch field {
		case "firstName":
			acc.FirstName = value
		case "lastName":
			acc.LastName = value
		case "phoneNumber":
			acc.PhoneNumber = value
		case "profileImage":
			acc.ProfileImage = value
		case "address":
			acc.Address = value
		default:
			continue
		}
		echoed[field] = value
	}
	return echoed, nil
}

// ChangePassword verifies the current password, stores the new hash and
// bumps the token epoch so outstanding access tokens stop working.
func (s *UserStore) ChangePassword(id, currentPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(currentPassword)); err != nil {
		return ErrWrongOldPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	acc.PasswordHash = hash
	acc.TokenEpoch++
	return nil
}

// BumpEpoch revokes every outstanding access token for the user.
func (s *UserStore) BumpEpoch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	acc.TokenEpoch++
	return nil
}

func (s *UserStore) Epoch(id string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.byID[id]
	if !ok {
		return 0, ErrUserNotFound
	}
	return acc.TokenEpoch, nil
}
