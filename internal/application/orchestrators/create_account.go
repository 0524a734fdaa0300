package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clubhouse/internal/domain/account"
	"clubhouse/internal/domain/member"
)

// AccountStoreForCreate defines the store interface needed by CreateAccount.
type AccountStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// MemberStoreForCreate defines the member store interface needed by CreateAccount.
type MemberStoreForCreate interface {
	Save(ctx context.Context, m member.Member) error
}

// CreateAccountInput carries input for the create account orchestrator.
type CreateAccountInput struct {
	Email    string
	Password string
	Role     string
	Name     string
	Team     string
	Position string
	Number   int
	Course   string
}

// CreateAccountResult carries the created account and member IDs.
type CreateAccountResult struct {
	AccountID string
	MemberID  string
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	AccountStore AccountStoreForCreate
	MemberStore  MemberStoreForCreate
	GenerateID   func() string
	Now          func() time.Time
}

// ErrEmailTaken is returned when the email already belongs to an account.
var ErrEmailTaken = errors.New("an account with this email already exists")

// ExecuteCreateAccount creates an account and its linked member profile.
// PRE: Email, Password, Role and Name are non-empty; password meets the minimum length
// POST: Account and member are persisted; the member references the account
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (CreateAccountResult, error) {
	if input.Email == "" {
		return CreateAccountResult{}, errors.New("email is required")
	}
	if input.Name == "" {
		return CreateAccountResult{}, errors.New("name is required")
	}

	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return CreateAccountResult{}, ErrEmailTaken
	}

	acct := account.Account{
		ID:        deps.GenerateID(),
		Email:     input.Email,
		Role:      input.Role,
		CreatedAt: deps.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return CreateAccountResult{}, err
	}
	if err := acct.Validate(); err != nil {
		return CreateAccountResult{}, err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return CreateAccountResult{}, fmt.Errorf("failed to save account: %w", err)
	}

	m := member.Member{
		ID:        deps.GenerateID(),
		AccountID: acct.ID,
		Name:      input.Name,
		Team:      input.Team,
		Position:  input.Position,
		Number:    input.Number,
		Course:    input.Course,
	}
	if err := m.Validate(); err != nil {
		return CreateAccountResult{}, err
	}
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return CreateAccountResult{}, fmt.Errorf("failed to save member: %w", err)
	}

	slog.Info("auth_event", "event", "account_created", "email", input.Email, "role", acct.Role)

	return CreateAccountResult{AccountID: acct.ID, MemberID: m.ID}, nil
}
