package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/remostars/club-standings/internal/domain/club"
	qb "github.com/remostars/club-standings/internal/platform/querybuilder"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select("*").From("clubs").
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromRow(row))
	}
	return out, nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(qb.Eq("public_id", clubID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build select club by id query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("select club by id: %w", err)
	}
	return clubFromRow(row), true, nil
}

func (r *ClubRepository) Create(ctx context.Context, item club.Club) error {
	query, args, err := qb.InsertRow("clubs", clubInsertModel{
		PublicID: item.ID,
		Name:     item.Name,
		LogoURL:  item.LogoURL,
	})
	if err != nil {
		return fmt.Errorf("build insert club query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, clubNameConstraint) {
			return club.ErrNameTaken
		}
		return fmt.Errorf("insert club: %w", err)
	}
	return nil
}

func (r *ClubRepository) Update(ctx context.Context, item club.Club) error {
	query, args, err := qb.Update("clubs").
		Set("name", item.Name).
		Set("logo_url", item.LogoURL).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update club query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, clubNameConstraint) {
			return club.ErrNameTaken
		}
		return fmt.Errorf("update club: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated club rows: %w", err)
	}
	if affected == 0 {
		return club.ErrNotFound
	}
	return nil
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{
		ID:      row.PublicID,
		Name:    row.Name,
		LogoURL: row.LogoURL,
	}
}
