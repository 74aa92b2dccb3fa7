// Package identity issues and verifies bearer credentials and manages the
// account lifecycle: registration, login, profile, and password reset.
package identity

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/models"
	"github.com/everestpress/printshop-api/internal/notify"
	"github.com/everestpress/printshop-api/internal/validators"
)

// bcryptCost is deliberately above the library default; offline brute force
// against a leaked hash has to stay expensive.
const bcryptCost = 12

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// UsedTokenStore remembers consumed reset-token ids for the remaining life
// of the token, making each reset token single-use.
type UsedTokenStore interface {
	// MarkUsed records jti and reports whether this was its first use.
	MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error)
	// Unmark releases a jti whose reset did not complete, so the token
	// stays valid for a retry.
	Unmark(ctx context.Context, jti string) error
}

type Service struct {
	users    UserRepository
	tokens   *TokenIssuer
	used     UsedTokenStore
	notifier notify.Notifier
	log      zerolog.Logger

	// DNS lookups in tests are a liability; swappable for that reason only.
	checkEmailDomain func(string) bool
}

func NewService(users UserRepository, tokens *TokenIssuer, used UsedTokenStore, notifier notify.Notifier, log zerolog.Logger) *Service {
	return &Service{
		users:            users,
		tokens:           tokens,
		used:             used,
		notifier:         notifier,
		log:              log,
		checkEmailDomain: validators.IsEmailDomainValid,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	email = NormalizeEmail(email)

	if !s.checkEmailDomain(email) {
		return nil, "", httperr.Validation("invalid_email_domain", "The email domain does not appear to be valid.")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", httperr.Conflict("email_already_registered", "An account with this email already exists.")
	} else if !httperr.IsKind(err, httperr.KindNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		Role:         models.RoleCustomer,
	}

	// The unique index is the last line of defence against a concurrent
	// registration with the same address; the repository maps that to a
	// Conflict as well.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("new user registered")
	return user, token, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	email = NormalizeEmail(email)

	// One generic failure for both unknown address and wrong password.
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, "", httperr.Unauthenticated("invalid_credentials", "Invalid email or password.")
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", httperr.Unauthenticated("invalid_credentials", "Invalid email or password.")
	}

	token, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return user, token, nil
}

func (s *Service) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, name, email *string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil && *name != "" {
		user.Name = *name
	}
	if email != nil && *email != "" {
		user.Email = NormalizeEmail(*email)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RequestPasswordReset issues a reset token and mails it to the account.
// An unknown address is not an error: the response must not reveal whether
// an account exists. A mail-delivery failure, however, is surfaced, since
// the caller would otherwise wait forever for a message that never left.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil
		}
		return err
	}

	token, jti, err := s.tokens.IssueReset(user.ID)
	if err != nil {
		return err
	}

	if err := s.notifier.Send(ctx, notify.PasswordReset(user.Email, user.Name, token)); err != nil {
		return httperr.Upstream("reset_email_failed", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("jti", jti).Msg("password reset issued")
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, jti, remaining, err := s.tokens.VerifyReset(token)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		// The subject account is gone; the token no longer refers to anyone.
		return httperr.Validation("invalid_token", "Invalid or expired reset token.")
	}

	if remaining <= 0 {
		remaining = time.Minute
	}
	first, err := s.used.MarkUsed(ctx, jti, remaining)
	if err != nil {
		return httperr.Upstream("reset_state_unavailable", err)
	}
	if !first {
		return httperr.Validation("invalid_token", "Invalid or expired reset token.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hashed)
	if err := s.users.Update(ctx, user); err != nil {
		// The token is spent only by a successful reset; release the
		// marker so the user can retry with the same link.
		if unmarkErr := s.used.Unmark(ctx, jti); unmarkErr != nil {
			s.log.Error().Err(unmarkErr).Str("jti", jti).Msg("could not release reset-token marker")
		}
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}
