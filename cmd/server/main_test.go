package main

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"user-service/internal/domain"
	"user-service/internal/repository"
)

type seedRepo struct {
	users  []domain.User
	nextID int64
}

func (r *seedRepo) Init(ctx context.Context) error { return nil }

func (r *seedRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return nil, repository.ErrNotFound
}

func (r *seedRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, repository.ErrNotFound
}

func (r *seedRepo) List(ctx context.Context, filter repository.ListFilter) ([]domain.User, error) {
	if len(r.users) == 0 {
		return nil, nil
	}
	limit := filter.Limit
	if limit > len(r.users) {
		limit = len(r.users)
	}
	return r.users[:limit], nil
}

func (r *seedRepo) Insert(ctx context.Context, user *domain.User) (int64, error) {
	r.nextID++
	user.ID = r.nextID
	r.users = append(r.users, *user)
	return user.ID, nil
}

func (r *seedRepo) Save(ctx context.Context, user *domain.User) error { return nil }

type stubHasher struct{}

func (stubHasher) Hash(plaintext string) (string, error) {
	return "digest$" + plaintext, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSeedUsersBootstrapsEmptyStore(t *testing.T) {
	repo := &seedRepo{}

	if err := seedUsers(context.Background(), repo, stubHasher{}, quietLogger()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(repo.users) != 3 {
		t.Fatalf("seeded %d users, want 3", len(repo.users))
	}

	roles := map[string]bool{}
	for _, user := range repo.users {
		roles[user.Role] = true
		if !user.IsActive {
			t.Fatalf("seed user %q not active", user.Email)
		}
		if user.LastLogin == nil {
			t.Fatalf("seed user %q has no lastLogin", user.Email)
		}
		if user.CreatedAt.IsZero() {
			t.Fatalf("seed user %q has no createdAt", user.Email)
		}
		if user.PasswordHash == "" || user.PasswordHash == "changeme-"+user.Email {
			t.Fatalf("seed user %q stored without a digest", user.Email)
		}
	}
	for _, role := range []string{"Customer", "Admin", "Premium"} {
		if !roles[role] {
			t.Fatalf("missing seed role %s", role)
		}
	}
}

func TestSeedUsersSkipsPopulatedStore(t *testing.T) {
	repo := &seedRepo{}
	if _, err := repo.Insert(context.Background(), &domain.User{Email: "existing@example.com", LastName: "User"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := seedUsers(context.Background(), repo, stubHasher{}, quietLogger()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("populated store was reseeded: %d users", len(repo.users))
	}
}
