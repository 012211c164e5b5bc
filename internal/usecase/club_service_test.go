package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/remostars/club-standings/internal/domain/club"
	clubmock "github.com/remostars/club-standings/internal/mocks/domain/club"
	resultmock "github.com/remostars/club-standings/internal/mocks/domain/result"
	"github.com/stretchr/testify/mock"
)

func TestClubService_ListClubsSortsByName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := clubmock.NewRepository(t)
	resultRepo := resultmock.NewRepository(t)
	service := NewClubService(clubRepo, resultRepo, newSequenceIDGenerator("club"), nil)

	clubRepo.On("List", ctx).Return([]club.Club{
		{ID: "c-3", Name: "Rivers United"},
		{ID: "c-1", Name: "Enyimba"},
		{ID: "c-2", Name: "Kano Pillars"},
	}, nil).Once()

	got, err := service.ListClubs(ctx)
	if err != nil {
		t.Fatalf("list clubs: %v", err)
	}
	want := []string{"Enyimba", "Kano Pillars", "Rivers United"}
	for i, item := range got {
		if item.Name != want[i] {
			t.Fatalf("unexpected order at %d: got=%s want=%s", i, item.Name, want[i])
		}
	}
}

func TestClubService_GetClubNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := clubmock.NewRepository(t)
	service := NewClubService(clubRepo, resultmock.NewRepository(t), newSequenceIDGenerator("club"), nil)

	clubRepo.On("GetByID", ctx, "missing").Return(club.Club{}, false, nil).Once()

	_, err := service.GetClub(ctx, " missing ")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = service.GetClub(ctx, "  ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
}

func TestClubService_RegisterClub(t *testing.T) {
	t.Parallel()

	t.Run("stores trimmed club", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		clubRepo := clubmock.NewRepository(t)
		service := NewClubService(clubRepo, resultmock.NewRepository(t), newSequenceIDGenerator("club"), nil)

		want := club.Club{ID: "club-1", Name: "Remo Stars", LogoURL: "/logos/remo.png"}
		clubRepo.On("Create", ctx, want).Return(nil).Once()

		got, err := service.RegisterClub(ctx, RegisterClubInput{Name: "  Remo Stars ", LogoURL: " /logos/remo.png"})
		if err != nil {
			t.Fatalf("register club: %v", err)
		}
		if got != want {
			t.Fatalf("unexpected club: %+v", got)
		}
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		clubRepo := clubmock.NewRepository(t)
		service := NewClubService(clubRepo, resultmock.NewRepository(t), newSequenceIDGenerator("club"), nil)

		clubRepo.On("Create", ctx, mock.AnythingOfType("club.Club")).Return(club.ErrNameTaken).Once()

		_, err := service.RegisterClub(ctx, RegisterClubInput{Name: "Remo Stars"})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("blank name is rejected before storage", func(t *testing.T) {
		t.Parallel()

		service := NewClubService(clubmock.NewRepository(t), resultmock.NewRepository(t), newSequenceIDGenerator("club"), nil)

		_, err := service.RegisterClub(context.Background(), RegisterClubInput{Name: "   "})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("id generation failure", func(t *testing.T) {
		t.Parallel()

		service := NewClubService(clubmock.NewRepository(t), resultmock.NewRepository(t), failingIDGenerator{}, nil)

		if _, err := service.RegisterClub(context.Background(), RegisterClubInput{Name: "Remo Stars"}); err == nil {
			t.Fatalf("expected id generation error")
		}
	})
}

func TestClubService_UpdateClub(t *testing.T) {
	t.Parallel()

	current := club.Club{ID: "remo", Name: "Remo Stars", LogoURL: "/old.png"}

	t.Run("logo change is always allowed", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		clubRepo := clubmock.NewRepository(t)
		resultRepo := resultmock.NewRepository(t)
		service := NewClubService(clubRepo, resultRepo, newSequenceIDGenerator("club"), nil)

		want := club.Club{ID: "remo", Name: "Remo Stars", LogoURL: "/new.png"}
		clubRepo.On("GetByID", ctx, "remo").Return(current, true, nil).Once()
		clubRepo.On("Update", ctx, want).Return(nil).Once()

		got, err := service.UpdateClub(ctx, "remo", UpdateClubInput{LogoURL: "/new.png"})
		if err != nil {
			t.Fatalf("update club: %v", err)
		}
		if got != want {
			t.Fatalf("unexpected club: %+v", got)
		}
	})

	t.Run("rename is blocked while results reference the club", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		clubRepo := clubmock.NewRepository(t)
		resultRepo := resultmock.NewRepository(t)
		service := NewClubService(clubRepo, resultRepo, newSequenceIDGenerator("club"), nil)

		clubRepo.On("GetByID", ctx, "remo").Return(current, true, nil).Once()
		resultRepo.On("CountByClub", ctx, "remo").Return(2, nil).Once()

		_, err := service.UpdateClub(ctx, "remo", UpdateClubInput{Name: "Remo Stars FC", LogoURL: "/old.png"})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("club removed from the store before the write", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		clubRepo := clubmock.NewRepository(t)
		resultRepo := resultmock.NewRepository(t)
		service := NewClubService(clubRepo, resultRepo, newSequenceIDGenerator("club"), nil)

		clubRepo.On("GetByID", ctx, "remo").Return(current, true, nil).Once()
		clubRepo.On("Update", ctx, mock.AnythingOfType("club.Club")).Return(club.ErrNotFound).Once()

		_, err := service.UpdateClub(ctx, "remo", UpdateClubInput{LogoURL: "/new.png"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rename is allowed without results", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		clubRepo := clubmock.NewRepository(t)
		resultRepo := resultmock.NewRepository(t)
		service := NewClubService(clubRepo, resultRepo, newSequenceIDGenerator("club"), nil)

		want := club.Club{ID: "remo", Name: "Remo Stars FC", LogoURL: "/old.png"}
		clubRepo.On("GetByID", ctx, "remo").Return(current, true, nil).Once()
		resultRepo.On("CountByClub", ctx, "remo").Return(0, nil).Once()
		clubRepo.On("Update", ctx, want).Return(nil).Once()

		if _, err := service.UpdateClub(ctx, "remo", UpdateClubInput{Name: "Remo Stars FC", LogoURL: "/old.png"}); err != nil {
			t.Fatalf("update club: %v", err)
		}
	})
}
