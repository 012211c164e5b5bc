package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/remostars/club-standings/internal/domain/club"
	"github.com/remostars/club-standings/internal/domain/result"
	idgen "github.com/remostars/club-standings/internal/platform/id"
	"github.com/remostars/club-standings/internal/platform/logging"
)

type RegisterClubInput struct {
	Name    string
	LogoURL string
}

type UpdateClubInput struct {
	Name    string
	LogoURL string
}

type ClubService struct {
	clubRepo   club.Repository
	resultRepo result.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
}

func NewClubService(
	clubRepo club.Repository,
	resultRepo result.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ClubService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ClubService{
		clubRepo:   clubRepo,
		resultRepo: resultRepo,
		idGen:      idGen,
		logger:     logger.Named("club"),
	}
}

func (s *ClubService) ListClubs(ctx context.Context) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ListClubs")
	defer span.End()

	items, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	slices.SortFunc(items, func(a, b club.Club) int {
		return strings.Compare(a.Name, b.Name)
	})
	return items, nil
}

func (s *ClubService) GetClub(ctx context.Context, clubID string) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.GetClub")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return club.Club{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	item, exists, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return club.Club{}, fmt.Errorf("get club: %w", err)
	}
	if !exists {
		return club.Club{}, fmt.Errorf("%w: club=%s", ErrNotFound, clubID)
	}

	return item, nil
}

func (s *ClubService) RegisterClub(ctx context.Context, input RegisterClubInput) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.RegisterClub")
	defer span.End()

	clubID, err := s.idGen.NewID()
	if err != nil {
		return club.Club{}, fmt.Errorf("generate club id: %w", err)
	}

	item := club.Club{
		ID:      clubID,
		Name:    strings.TrimSpace(input.Name),
		LogoURL: strings.TrimSpace(input.LogoURL),
	}
	if err := item.Validate(); err != nil {
		return club.Club{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.clubRepo.Create(ctx, item); err != nil {
		if errors.Is(err, club.ErrNameTaken) {
			return club.Club{}, fmt.Errorf("%w: club name %q already registered", ErrConflict, item.Name)
		}
		return club.Club{}, fmt.Errorf("create club: %w", err)
	}

	s.logger.InfoContext(ctx, "club registered", "club_id", item.ID, "name", item.Name)
	return item, nil
}

// UpdateClub changes display attributes. The name identifies the club on
// recorded results, so it can only change while no result references the club.
func (s *ClubService) UpdateClub(ctx context.Context, clubID string, input UpdateClubInput) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.UpdateClub")
	defer span.End()

	current, err := s.GetClub(ctx, clubID)
	if err != nil {
		return club.Club{}, err
	}

	next := current
	next.LogoURL = strings.TrimSpace(input.LogoURL)
	if name := strings.TrimSpace(input.Name); name != "" {
		next.Name = name
	}
	if err := next.Validate(); err != nil {
		return club.Club{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if next.Name != current.Name {
		referenced, err := s.resultRepo.CountByClub(ctx, current.ID)
		if err != nil {
			return club.Club{}, fmt.Errorf("count results by club: %w", err)
		}
		if referenced > 0 {
			return club.Club{}, fmt.Errorf("%w: club %s is referenced by %d result(s) and cannot be renamed", ErrConflict, current.ID, referenced)
		}
	}

	if err := s.clubRepo.Update(ctx, next); err != nil {
		if errors.Is(err, club.ErrNameTaken) {
			return club.Club{}, fmt.Errorf("%w: club name %q already registered", ErrConflict, next.Name)
		}
		if errors.Is(err, club.ErrNotFound) {
			return club.Club{}, fmt.Errorf("%w: club=%s", ErrNotFound, next.ID)
		}
		return club.Club{}, fmt.Errorf("update club: %w", err)
	}

	s.logger.InfoContext(ctx, "club updated", "club_id", next.ID, "name", next.Name)
	return next, nil
}
