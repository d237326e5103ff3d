package user

import (
	"context"
	"testing"

	"github.com/utavu/auth-backend/internal/data/repos/testutil"
	types "github.com/utavu/auth-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserRepo(db, testutil.Logger(t))

	u := &types.User{
		Email:        "userrepo@example.com",
		Name:         "A",
		GoogleSub:    "sub1",
		SessionToken: "tok",
	}
	if _, err := repo.Create(ctx, tx, []*types.User{u}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if rows, err := repo.GetByEmails(ctx, tx, []string{u.Email}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByEmails: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByIDs(ctx, tx, nil); err != nil || len(rows) != 0 {
		t.Fatalf("GetByIDs(empty): err=%v len=%d", err, len(rows))
	}
	if exists, err := repo.EmailExists(ctx, tx, u.Email); err != nil || !exists {
		t.Fatalf("EmailExists: err=%v exists=%v", err, exists)
	}
	if exists, err := repo.EmailExists(ctx, tx, "nobody@example.com"); err != nil || exists {
		t.Fatalf("EmailExists(absent): err=%v exists=%v", err, exists)
	}
}

func TestUserRepoCreateIfAbsent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserRepo(db, testutil.Logger(t))

	first := &types.User{
		Email:        "upsert@example.com",
		Name:         "A",
		GoogleSub:    "sub1",
		SessionToken: "tok-1",
	}
	got, created, err := repo.CreateIfAbsent(ctx, tx, first)
	if err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}
	if !created {
		t.Fatal("first insert should report created=true")
	}
	if got.Email != first.Email {
		t.Fatalf("returned email = %q", got.Email)
	}

	second := &types.User{
		Email:        "upsert@example.com",
		Name:         "B",
		GoogleSub:    "sub2",
		SessionToken: "tok-2",
	}
	existing, created, err := repo.CreateIfAbsent(ctx, tx, second)
	if err != nil {
		t.Fatalf("CreateIfAbsent(duplicate): %v", err)
	}
	if created {
		t.Fatal("duplicate insert should report created=false")
	}
	if existing.Name != "A" || existing.GoogleSub != "sub1" {
		t.Fatalf("existing row = %+v, want the first writer's values", existing)
	}

	rows, err := repo.GetByEmails(ctx, tx, []string{"upsert@example.com"})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByEmails after duplicate: err=%v len=%d", err, len(rows))
	}
}
