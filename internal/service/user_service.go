package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tasktracker/internal/model"
)

const minPasswordLength = 6

// UserStore persists user accounts. Lookups return nil, nil when nothing matches.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type UserService struct {
	users    UserStore
	validate *validator.Validate
	hashCost int
}

func NewUserService(users UserStore) *UserService {
	return &UserService{
		users:    users,
		validate: validator.New(),
		hashCost: bcrypt.DefaultCost,
	}
}

// Register creates an account. The email is stored trimmed and lowercased,
// the password as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	password := strings.TrimSpace(in.Password)

	if name == "" {
		return nil, invalid("name", "is required")
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, invalid("email", "is not a valid address")
	}
	if len(password) < minPasswordLength {
		return nil, invalid("password", "must be at least %d characters", minPasswordLength)
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return nil, invalid("password", "must contain an uppercase letter")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:             uuid.New(),
		Email:          email,
		Name:           name,
		HashedPassword: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, invalid("credentials", "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, invalid("email", "is required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
