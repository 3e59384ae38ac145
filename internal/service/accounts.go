package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/safar/pantry-pickup/internal/auth"
	"github.com/safar/pantry-pickup/internal/database"
	"github.com/safar/pantry-pickup/internal/logger"
	"github.com/safar/pantry-pickup/internal/metrics"
	"github.com/safar/pantry-pickup/internal/models"
	"github.com/safar/pantry-pickup/internal/store"
)

type CreateAccountInput struct {
	FullName string
	Email    string
	Password string
	Role     models.Role
}

type AccountService struct {
	db      *sql.DB
	hasher  *auth.Hasher
	metrics *metrics.Metrics

	// compared against when the email is unknown so both failure paths cost
	// one bcrypt comparison
	dummyHash string
}

func NewAccountService(db *sql.DB, hasher *auth.Hasher, m *metrics.Metrics) (*AccountService, error) {
	dummy, err := hasher.Hash("pantry-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AccountService{db: db, hasher: hasher, metrics: m, dummyHash: dummy}, nil
}

// NormalizeEmail is the case-insensitive form under which emails are stored
// and looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AccountService) CreateAccount(ctx context.Context, in CreateAccountInput) (*models.Account, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := NormalizeEmail(in.Email)

	if fullName == "" {
		return nil, invalid("fullName", "is required")
	}
	if email == "" {
		return nil, invalid("email", "is required")
	}
	if in.Password == "" {
		return nil, invalid("password", "is required")
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return nil, invalid("password", fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes))
	}
	if !in.Role.Valid() {
		return nil, invalid("role", "must be customer or vendor")
	}

	_, err := store.GetUserByEmail(ctx, s.db, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, database.ErrUserNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := store.CreateUser(ctx, s.db, fullName, email, hash, in.Role)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.metrics.AccountsCreated.WithLabelValues(string(user.Role)).Inc()
	logger.FromContext(ctx).Info("account created", "user_id", user.ID, "role", user.Role)

	account := user.Account()
	return &account, nil
}

func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	user, err := store.GetUserByEmail(ctx, s.db, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			s.hasher.Compare(s.dummyHash, password)
			s.metrics.FailedLogins.Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		s.metrics.FailedLogins.Inc()
		return nil, ErrInvalidCredentials
	}

	account := user.Account()
	return &account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	user, err := store.GetUser(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	account := user.Account()
	return &account, nil
}
