package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clubhouse/internal/domain/account"
	"clubhouse/internal/domain/chat"
	"clubhouse/internal/domain/member"

	"github.com/google/uuid"
)

// SeedDeps holds stores needed for initial seeding.
type SeedDeps struct {
	AccountStore seedAccountStore
	MemberStore  seedMemberStore
	ChatStore    seedChatStore
}

type seedAccountStore interface {
	Save(ctx context.Context, a account.Account) error
	GetByEmail(ctx context.Context, email string) (account.Account, error)
}

type seedMemberStore interface {
	Save(ctx context.Context, m member.Member) error
}

type seedChatStore interface {
	SaveRoom(ctx context.Context, r chat.Room) error
	ListRooms(ctx context.Context) ([]chat.Room, error)
}

// seedAccountDef defines a single account to seed.
type seedAccountDef struct {
	Email      string
	Password   string
	Role       string
	MemberName string
}

// seedAccounts returns the accounts created on first boot.
func seedAccounts() []seedAccountDef {
	return []seedAccountDef{
		{
			Email:      "admin@clubhouse.local",
			Password:   "Clubhouse+admin!",
			Role:       account.RoleAdmin,
			MemberName: "", // admin doesn't need a member record
		},
		{
			Email:      "coach@clubhouse.local",
			Password:   "Clubhouse+coach!",
			Role:       account.RoleCoach,
			MemberName: "コーチ",
		},
	}
}

// seedRooms returns the chat rooms created on first boot.
func seedRooms() []chat.Room {
	return []chat.Room{
		{Name: "全体連絡", Category: chat.CategoryContact},
		{Name: "Aチーム", Category: chat.CategoryTeam},
	}
}

// ExecuteSeed creates the initial accounts and chat rooms on an empty
// database. It is idempotent — accounts are skipped when the email
// already exists and rooms are only seeded into an empty room list.
// PRE: Database is migrated
// POST: Seed accounts exist with their roles; default rooms exist
func ExecuteSeed(ctx context.Context, deps SeedDeps) error {
	for _, def := range seedAccounts() {
		if _, err := deps.AccountStore.GetByEmail(ctx, def.Email); err == nil {
			continue
		}

		acct := account.Account{
			ID:        uuid.NewString(),
			Email:     def.Email,
			Role:      def.Role,
			CreatedAt: time.Now(),
		}
		if err := acct.SetPassword(def.Password); err != nil {
			return fmt.Errorf("failed to hash seed password for %s: %w", def.Email, err)
		}
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", def.Email, err)
		}

		if def.MemberName != "" {
			m := member.Member{
				ID:        uuid.NewString(),
				AccountID: acct.ID,
				Name:      def.MemberName,
			}
			if err := deps.MemberStore.Save(ctx, m); err != nil {
				return fmt.Errorf("failed to seed member for %s: %w", def.Email, err)
			}
		}

		slog.Info("seed_event", "event", "account_seeded", "email", def.Email, "role", def.Role)
	}

	rooms, err := deps.ChatStore.ListRooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}
	if len(rooms) == 0 {
		for _, room := range seedRooms() {
			room.ID = uuid.NewString()
			room.CreatedAt = time.Now()
			if err := deps.ChatStore.SaveRoom(ctx, room); err != nil {
				return fmt.Errorf("failed to seed room %s: %w", room.Name, err)
			}
			slog.Info("seed_event", "event", "room_seeded", "name", room.Name)
		}
	}

	return nil
}
