package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/remostars/club-standings/internal/domain/club"
)

func TestClubRepository_RejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewClubRepository(SeedClubs())

	err := repo.Create(ctx, club.Club{ID: "dup", Name: "remo stars"})
	if !errors.Is(err, club.ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}

	if err := repo.Update(ctx, club.Club{ID: ClubIDRemoStars, Name: "Remo Stars", LogoURL: "/new.png"}); err != nil {
		t.Fatalf("update own name should succeed: %v", err)
	}
	got, ok, _ := repo.GetByID(ctx, ClubIDRemoStars)
	if !ok || got.LogoURL != "/new.png" {
		t.Fatalf("unexpected club after update: %+v", got)
	}
}

func TestClubRepository_UpdateUnknownClub(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewClubRepository(SeedClubs())
	before, _ := repo.List(ctx)

	err := repo.Update(ctx, club.Club{ID: "ghost", Name: "Ghost FC"})
	if !errors.Is(err, club.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, ok, _ := repo.GetByID(ctx, "ghost"); ok {
		t.Fatal("update must not create a club")
	}
	if after, _ := repo.List(ctx); len(after) != len(before) {
		t.Fatalf("expected %d clubs, got %d", len(before), len(after))
	}
}
