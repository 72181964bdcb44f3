package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/skybook/internal/auth"
	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 5

var ErrBadCredentials = fmt.Errorf("%w: no active account found with the given credentials", domain.ErrUnauthorized)

type UserUseCase interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Token(ctx context.Context, email, password string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Verify(ctx context.Context, token string) error
	Me(ctx context.Context, identity domain.Identity) (*domain.User, error)
	UpdateMe(ctx context.Context, identity domain.Identity, input UpdateInput) (*domain.User, error)
}

// UpdateInput carries profile changes; nil fields are left as they are.
type UpdateInput struct {
	Email    *string
	Password *string
}

type Tokens interface {
	Issue(user domain.User) (*auth.TokenPair, error)
	Refresh(refreshToken string) (string, error)
	Parse(tokenString, tokenType string) (*auth.Claims, error)
}

type UserService struct {
	users  repository.UserRepository
	tokens Tokens
	cost   int
}

func NewUserService(users repository.UserRepository, tokens Tokens) *UserService {
	return &UserService{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// normalizeEmail lowercases the domain part only.
func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	local, host, ok := strings.Cut(email, "@")
	if !ok {
		return email
	}
	return local + "@" + strings.ToLower(host)
}

func (s *UserService) hash(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", domain.NewValidationError("password", fmt.Sprintf("Ensure this field has at least %d characters.", minPasswordLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *UserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Email: normalizeEmail(email), PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Token(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return s.tokens.Issue(*user)
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	access, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return access, nil
}

// Verify accepts any valid token, access or refresh.
func (s *UserService) Verify(ctx context.Context, token string) error {
	if _, err := s.tokens.Parse(token, auth.TokenAccess); err == nil {
		return nil
	}
	if _, err := s.tokens.Parse(token, auth.TokenRefresh); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return nil
}

func (s *UserService) Me(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return s.users.GetByID(ctx, identity.UserID)
}

func (s *UserService) UpdateMe(ctx context.Context, identity domain.Identity, input UpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
	}
	if input.Password != nil {
		if user.PasswordHash, err = s.hash(*input.Password); err != nil {
			return nil, err
		}
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

var _ UserUseCase = (*UserService)(nil)
