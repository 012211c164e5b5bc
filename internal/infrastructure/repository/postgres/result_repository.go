package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/remostars/club-standings/internal/domain/result"
	qb "github.com/remostars/club-standings/internal/platform/querybuilder"
)

// ResultRepository keeps the result log in match_results. The bigserial id
// doubles as the insertion sequence used to break date ties.
type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) List(ctx context.Context, filter result.Filter) ([]result.MatchResult, error) {
	builder := qb.Select("*").From("match_results").
		OrderBy("match_date DESC", "id")
	if !filter.PlayedBefore.IsZero() {
		builder.Where(qb.Lte("match_date", filter.PlayedBefore))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match results query: %w", err)
	}

	var rows []matchResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match results: %w", err)
	}

	out := make([]result.MatchResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchResultFromRow(row))
	}
	return out, nil
}

func (r *ResultRepository) GetByID(ctx context.Context, resultID string) (result.MatchResult, bool, error) {
	query, args, err := qb.Select("*").From("match_results").
		Where(qb.Eq("public_id", resultID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return result.MatchResult{}, false, fmt.Errorf("build select match result by id query: %w", err)
	}

	var row matchResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.MatchResult{}, false, nil
		}
		return result.MatchResult{}, false, fmt.Errorf("select match result by id: %w", err)
	}
	return matchResultFromRow(row), true, nil
}

// Create inserts every item in one statement inside a transaction.
func (r *ResultRepository) Create(ctx context.Context, items ...result.MatchResult) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]matchResultInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, matchResultInsertModel{
			PublicID:   item.ID,
			MatchType:  item.MatchType,
			HomeClubID: item.HomeClubID,
			AwayClubID: item.AwayClubID,
			HomeScore:  item.HomeScore,
			AwayScore:  item.AwayScore,
			MatchDate:  item.MatchDate.UTC(),
			Venue:      item.Venue,
		})
	}

	query, args, err := qb.InsertRows("match_results", models)
	if err != nil {
		return fmt.Errorf("build insert match results query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert match results tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("insert match results: duplicate result id: %w", err)
		}
		return fmt.Errorf("insert match results: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert match results tx: %w", err)
	}
	return nil
}

func (r *ResultRepository) Delete(ctx context.Context, resultID string) (bool, error) {
	query, args, err := qb.DeleteFrom("match_results").
		Where(qb.Eq("public_id", resultID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete match result query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete match result: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ResultRepository) CountByClub(ctx context.Context, clubID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("match_results").
		Where(qb.Or(
			qb.Eq("home_club_public_id", clubID),
			qb.Eq("away_club_public_id", clubID),
		)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count match results by club query: %w", err)
	}

	var count sql.NullInt64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count match results by club: %w", err)
	}
	return int(count.Int64), nil
}

func matchResultFromRow(row matchResultTableModel) result.MatchResult {
	return result.MatchResult{
		ID:         row.PublicID,
		Seq:        row.ID,
		MatchType:  row.MatchType,
		HomeClubID: row.HomeClubID,
		AwayClubID: row.AwayClubID,
		HomeScore:  row.HomeScore,
		AwayScore:  row.AwayScore,
		MatchDate:  row.MatchDate.UTC(),
		Venue:      row.Venue,
	}
}
