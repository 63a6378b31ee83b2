package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongPassword      = errors.New("current password does not match")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

type Service struct {
	repo      Repository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(repo Repository, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

type RegisterParams struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	IDNumber  string
	Role      string
	Password  string
}

// Register creates a staff account. The role string is parsed strictly so a
// typo cannot produce an ungated account.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*User, error) {
	role, err := ParseRole(p.Role)
	if err != nil {
		return nil, err
	}
	if p.Username == "" || p.IDNumber == "" {
		return nil, errors.New("username and id number are required")
	}
	if len(p.Password) < 8 {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Username:     p.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		IDNumber:     p.IDNumber,
		Role:         role,
		PasswordHash: string(hash),
	}

	created, err := s.repo.CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Authenticate checks credentials and returns the user plus a signed token.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, string, error) {
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := IssueToken(s.jwtSecret, s.tokenTTL, u)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

type ProfileUpdate struct {
	FirstName           string
	LastName            string
	Email               string
	ProfilePicture      *string
	ClearProfilePicture bool
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, p ProfileUpdate) (*User, error) {
	current, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	picture := current.ProfilePicture
	if p.ClearProfilePicture {
		picture = nil
	} else if p.ProfilePicture != nil {
		picture = p.ProfilePicture
	}

	return s.repo.UpdateProfile(ctx, userID, p.FirstName, p.LastName, p.Email, picture)
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)) != nil {
		return ErrWrongPassword
	}
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

func (s *Service) ListDoctors(ctx context.Context) ([]User, error) {
	return s.repo.ListByRole(ctx, RoleDoctor)
}

func (s *Service) VerifyToken(raw string) (int64, Role, error) {
	return ParseToken(s.jwtSecret, raw)
}
