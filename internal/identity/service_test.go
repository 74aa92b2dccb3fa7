package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/models"
	"github.com/everestpress/printshop-api/internal/notify"
)

type stubUserRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[string]*models.User),
	}
}

func cloneUser(u *models.User) *models.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return httperr.Conflict("email_already_registered", "An account with this email already exists.")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.byEmail[user.Email] = cloneUser(user)
	r.byID[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, httperr.NotFound("user_not_found", "User not found.")
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, httperr.NotFound("user_not_found", "User not found.")
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *models.User) error {
	r.byID[user.ID] = cloneUser(user)
	r.byEmail[user.Email] = cloneUser(user)
	return nil
}

type stubUsedTokens struct {
	used map[string]bool
}

func newStubUsedTokens() *stubUsedTokens {
	return &stubUsedTokens{used: make(map[string]bool)}
}

func (s *stubUsedTokens) MarkUsed(_ context.Context, jti string, _ time.Duration) (bool, error) {
	if s.used[jti] {
		return false, nil
	}
	s.used[jti] = true
	return true, nil
}

func (s *stubUsedTokens) Unmark(_ context.Context, jti string) error {
	delete(s.used, jti)
	return nil
}

// failingUpdateRepo makes Update fail until the switch is flipped.
type failingUpdateRepo struct {
	*stubUserRepo
	failUpdate bool
}

func (r *failingUpdateRepo) Update(ctx context.Context, user *models.User) error {
	if r.failUpdate {
		return errors.New("store unavailable")
	}
	return r.stubUserRepo.Update(ctx, user)
}

type stubNotifier struct {
	sent []notify.Message
	fail bool
}

func (n *stubNotifier) Send(_ context.Context, msg notify.Message) error {
	if n.fail {
		return errors.New("smtp unreachable")
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *stubNotifier) NotifyAdmins(_ context.Context, msg notify.Message) error {
	return n.Send(context.Background(), msg)
}

func newTestService(repo *stubUserRepo, used UsedTokenStore, notifier notify.Notifier) *Service {
	svc := NewService(repo, NewTokenIssuer("test-secret", time.Hour, time.Hour), used, notifier, zerolog.Nop())
	svc.checkEmailDomain = func(string) bool { return true }
	return svc
}

func TestService_Register(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubUsedTokens(), &stubNotifier{})

	user, token, err := svc.Register(context.Background(), "  Alice@Example.COM ", "s3cretpass", "Alice")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != models.RoleCustomer {
		t.Fatalf("expected CUSTOMER role, got %q", user.Role)
	}
	if user.PasswordHash == "s3cretpass" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cretpass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	sub, err := svc.tokens.VerifyAccess(token)
	if err != nil || sub != user.ID {
		t.Fatalf("issued token does not verify to the new user: sub=%q err=%v", sub, err)
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubUsedTokens(), &stubNotifier{})

	if _, _, err := svc.Register(context.Background(), "bob@example.com", "password1", "Bob"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, _, err := svc.Register(context.Background(), "BOB@example.com", "password2", "Bob Again")
	if !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestService_Register_BadEmailDomain(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubUsedTokens(), &stubNotifier{})
	svc.checkEmailDomain = func(string) bool { return false }

	_, _, err := svc.Register(context.Background(), "x@invalid.test", "password1", "X")
	if !httperr.IsCode(err, "invalid_email_domain") {
		t.Fatalf("expected invalid_email_domain, got %v", err)
	}
}

func TestService_Authenticate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubUsedTokens(), &stubNotifier{})

	registered, _, err := svc.Register(context.Background(), "carol@example.com", "password1", "Carol")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, token, err := svc.Authenticate(context.Background(), "carol@example.com", "password1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("authenticated a different user: %q vs %q", user.ID, registered.ID)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
}

func TestService_Authenticate_GenericFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubUsedTokens(), &stubNotifier{})

	if _, _, err := svc.Register(context.Background(), "dave@example.com", "password1", "Dave"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Unknown address and wrong password must be indistinguishable.
	_, _, errUnknown := svc.Authenticate(context.Background(), "nobody@example.com", "password1")
	_, _, errWrongPw := svc.Authenticate(context.Background(), "dave@example.com", "wrong")

	if !httperr.IsCode(errUnknown, "invalid_credentials") {
		t.Fatalf("unknown email: expected invalid_credentials, got %v", errUnknown)
	}
	if !httperr.IsCode(errWrongPw, "invalid_credentials") {
		t.Fatalf("wrong password: expected invalid_credentials, got %v", errWrongPw)
	}
}

func TestService_RequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	repo := newStubUserRepo()
	notifier := &stubNotifier{}
	svc := newTestService(repo, newStubUsedTokens(), notifier)

	if err := svc.RequestPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("expected silence for unknown email, got %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("no mail should go out for unknown email, sent %d", len(notifier.sent))
	}
}

func TestService_RequestPasswordReset_MailFailureSurfaces(t *testing.T) {
	repo := newStubUserRepo()
	notifier := &stubNotifier{fail: true}
	svc := newTestService(repo, newStubUsedTokens(), notifier)

	if _, _, err := svc.Register(context.Background(), "erin@example.com", "password1", "Erin"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	err := svc.RequestPasswordReset(context.Background(), "erin@example.com")
	if !httperr.IsCode(err, "reset_email_failed") {
		t.Fatalf("expected reset_email_failed, got %v", err)
	}
}

func TestService_ResetPassword_SingleUse(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubUsedTokens(), &stubNotifier{})

	user, _, err := svc.Register(context.Background(), "frank@example.com", "oldpassword", "Frank")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, _, err := svc.tokens.IssueReset(user.ID)
	if err != nil {
		t.Fatalf("IssueReset: %v", err)
	}

	if err := svc.ResetPassword(context.Background(), token, "newpassword1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	// Old password dead, new one live.
	if _, _, err := svc.Authenticate(context.Background(), "frank@example.com", "oldpassword"); err == nil {
		t.Fatal("old password still accepted")
	}
	if _, _, err := svc.Authenticate(context.Background(), "frank@example.com", "newpassword1"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	// Second use of the same token must fail.
	err = svc.ResetPassword(context.Background(), token, "anotherpassword")
	if !httperr.IsCode(err, "invalid_token") {
		t.Fatalf("expected invalid_token on reuse, got %v", err)
	}
}

func TestService_ResetPassword_FailedUpdateKeepsTokenValid(t *testing.T) {
	inner := newStubUserRepo()
	repo := &failingUpdateRepo{stubUserRepo: inner, failUpdate: true}
	svc := newTestService(inner, newStubUsedTokens(), &stubNotifier{})
	svc.users = repo

	user, _, err := svc.Register(context.Background(), "grace@example.com", "oldpassword", "Grace")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, _, err := svc.tokens.IssueReset(user.ID)
	if err != nil {
		t.Fatalf("IssueReset: %v", err)
	}

	if err := svc.ResetPassword(context.Background(), token, "newpassword1"); err == nil {
		t.Fatal("expected failure while the store is down")
	}

	// The marker was released; the same link works once the store is back.
	repo.failUpdate = false
	if err := svc.ResetPassword(context.Background(), token, "newpassword1"); err != nil {
		t.Fatalf("retry after store recovery: %v", err)
	}
	if _, _, err := svc.Authenticate(context.Background(), "grace@example.com", "newpassword1"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestService_ResetPassword_GarbageToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, newStubUsedTokens(), &stubNotifier{})

	err := svc.ResetPassword(context.Background(), "not-a-jwt", "newpassword1")
	if !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
