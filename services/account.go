package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-foodorder/models"
	"go-foodorder/repository"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ProfileInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AccountService handles registration, login and profile edits
type AccountService struct {
	Users    repository.UserRepository
	Tokens   TokenManager
	Now      func() time.Time
	validate *validator.Validate
}

func NewAccountService(users repository.UserRepository, tokens TokenManager) *AccountService {
	return &AccountService{Users: users, Tokens: tokens, Now: time.Now, validate: newValidator()}
}

// Register creates a customer account. Admin rights are never granted here.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}

	_, err := s.Users.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, validationError("user with this email already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, internal(err)
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internal(err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		Address:      strings.TrimSpace(in.Address),
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    s.Now().UTC(),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validationError("user with this email already exists")
		}
		return nil, internal(err)
	}

	return s.authResult(user)
}

// Login fails with Unauthenticated for an unknown email or a wrong password
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}

	user, err := s.Users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(KindUnauthenticated, "invalid login credentials")
	}
	if err != nil {
		return nil, internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, NewError(KindUnauthenticated, "invalid login credentials")
	}

	return s.authResult(user)
}

// Profile reloads the user so the response reflects stored state
func (s *AccountService) Profile(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errUnauthenticated
	}
	current, err := s.Users.FindByID(ctx, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("user")
	}
	if err != nil {
		return nil, internal(err)
	}
	return current, nil
}

// UpdateProfile changes name, address and phone. An empty name keeps the current one.
func (s *AccountService) UpdateProfile(ctx context.Context, user *models.User, in ProfileInput) (*models.User, error) {
	if user == nil {
		return nil, errUnauthenticated
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = user.Name
	}

	updated, err := s.Users.UpdateProfile(ctx, user.ID, name, strings.TrimSpace(in.Address), strings.TrimSpace(in.Phone))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("user")
	}
	if err != nil {
		return nil, internal(err)
	}
	return updated, nil
}

// SeedAdmin creates an admin account, or promotes the existing account with that email
func (s *AccountService) SeedAdmin(ctx context.Context, name, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, validationError("admin email and password are required")
	}

	existing, err := s.Users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if !existing.IsAdmin {
			if err := s.Users.SetAdmin(ctx, existing.ID, true); err != nil {
				return nil, internal(err)
			}
			existing.IsAdmin = true
		}
		return existing, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, internal(err)
	}

	if strings.TrimSpace(name) == "" {
		name = "Admin"
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internal(err)
	}
	admin := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsAdmin:      true,
		CreatedAt:    s.Now().UTC(),
	}
	if err := s.Users.Create(ctx, admin); err != nil {
		return nil, internal(err)
	}
	return admin, nil
}

func (s *AccountService) authResult(user *models.User) (*AuthResult, error) {
	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, internal(err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
