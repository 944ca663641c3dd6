package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"newsdesk/app/feed"
)

var _ ArticleRepository = (*PostgresArticleRepository)(nil)

// PostgresArticleRepository handles database operations for articles.
type PostgresArticleRepository struct {
	db          *DB
	mapCategory feed.Mapper
	events      EventPublisher
}

func NewArticleRepository(db *DB, mapCategory feed.Mapper, events EventPublisher) *PostgresArticleRepository {
	return &PostgresArticleRepository{
		db:          db,
		mapCategory: mapCategory,
		events:      events,
	}
}

const articleColumns = `id, link, COALESCE(title, ''), COALESCE(description, ''), COALESCE(image, ''),
	category, pub_date, published, pinned, is_generated, COALESCE(generated_text, ''),
	generated_at, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(s scanner) (*Article, error) {
	var article Article
	var category string

	err := s.Scan(
		&article.ID, &article.Link, &article.Title, &article.Description, &article.Image,
		&category, &article.PubDate, &article.Published, &article.Pinned, &article.IsGenerated,
		&article.GeneratedText, &article.GeneratedAt, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.Category = feed.Category(category)
	return &article, nil
}

// UpsertArticle creates or refreshes the article keyed by the item's link.
// Only the RSS-owned columns are written on conflict; editorial state
// (published, pinned, generation fields) is left exactly as the admin set
// it. xmax = 0 distinguishes a fresh insert from a conflict update.
func (r *PostgresArticleRepository) UpsertArticle(item feed.Item) (int64, bool, error) {
	var id int64
	var isNew bool

	err := r.db.QueryRow(`
		INSERT INTO articles (link, title, description, image, category, pub_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (link) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			image = EXCLUDED.image,
			category = EXCLUDED.category,
			pub_date = EXCLUDED.pub_date,
			updated_at = NOW()
		RETURNING id, (xmax = 0) AS is_new
	`, item.Link, item.Title, item.Description, nullString(item.Image),
		string(r.mapCategory(item.SourceCategory)), item.PublishedAt).Scan(&id, &isNew)

	if err != nil {
		return 0, false, fmt.Errorf("failed to upsert article %s: %w", item.Link, err)
	}

	return id, isNew, nil
}

// GetArticle retrieves an article by its id.
func (r *PostgresArticleRepository) GetArticle(id int64) (*Article, error) {
	row := r.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)

	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article %d: %w", id, err)
	}

	return article, nil
}

// UpdateArticle applies a partial update. Pin requests are routed through
// the same guarded path as SetPinned so the pin invariants hold no matter
// which admin surface the request came from.
func (r *PostgresArticleRepository) UpdateArticle(id int64, update ArticleUpdate) (*Article, error) {
	var pinned *Article
	if update.Pinned != nil {
		article, err := r.SetPinned(id, *update.Pinned)
		if err != nil {
			return nil, err
		}
		pinned = article
		update.Pinned = nil
	}

	set, args := buildUpdateClauses(update)
	if len(set) == 0 {
		if pinned != nil {
			return pinned, nil
		}
		return r.GetArticle(id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE articles SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args), articleColumns)

	article, err := scanArticle(r.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update article %d: %w", id, err)
	}

	r.events.PublishUpdated(*article)

	return article, nil
}

// SetPinned toggles the pin flag under the pin policy: only generated
// articles can be pinned, and at most MaxPinnedArticles may be pinned at
// once. The cap is enforced inside a single conditional UPDATE so two
// concurrent pin requests cannot both slip under the limit.
func (r *PostgresArticleRepository) SetPinned(id int64, pinned bool) (*Article, error) {
	article, err := r.GetArticle(id)
	if err != nil {
		return nil, err
	}

	if pinned && !article.IsGenerated {
		return nil, ErrPinNotGenerated
	}

	if article.Pinned == pinned {
		return article, nil
	}

	if pinned {
		row := r.db.QueryRow(`
			UPDATE articles
			SET pinned = TRUE, updated_at = NOW()
			WHERE id = $1
			  AND (SELECT COUNT(*) FROM articles WHERE pinned = TRUE AND id <> $1) < $2
			RETURNING `+articleColumns, id, MaxPinnedArticles)

		updated, err := scanArticle(row)
		if err == sql.ErrNoRows {
			return nil, ErrPinLimitExceeded
		}
		if err != nil {
			return nil, fmt.Errorf("failed to pin article %d: %w", id, err)
		}

		r.events.PublishPinChanged(*updated)
		return updated, nil
	}

	row := r.db.QueryRow(`
		UPDATE articles
		SET pinned = FALSE, updated_at = NOW()
		WHERE id = $1
		RETURNING `+articleColumns, id)

	updated, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unpin article %d: %w", id, err)
	}

	r.events.PublishPinChanged(*updated)
	return updated, nil
}

// DeleteArticle removes an article permanently.
func (r *PostgresArticleRepository) DeleteArticle(id int64) error {
	result, err := r.db.Exec(`DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete article %d: %w", id, err)
	}
	if affected == 0 {
		return &NotFoundError{ID: id}
	}

	r.events.PublishDeleted([]int64{id})
	return nil
}

// DeleteArticles removes a batch of articles permanently. Ids that do not
// exist are ignored.
func (r *PostgresArticleRepository) DeleteArticles(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	if _, err := r.db.Exec(`DELETE FROM articles WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to delete %d articles: %w", len(ids), err)
	}

	r.events.PublishDeleted(ids)
	return nil
}

// ListArticles returns a filtered, paginated listing and the total count of
// matching articles.
func (r *PostgresArticleRepository) ListArticles(opts ListOptions) ([]Article, int, error) {
	if opts.Category != "" {
		opts.Category = string(r.mapCategory(opts.Category))
	}

	where, args := buildListFilters(opts)

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM articles"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	query := "SELECT " + articleColumns + " FROM articles" + where + buildListOrder(opts)
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, *article)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, total, nil
}

// ListPinned returns pinned, published articles, most recent first.
func (r *PostgresArticleRepository) ListPinned(limit int) ([]Article, error) {
	rows, err := r.db.Query(`
		SELECT `+articleColumns+`
		FROM articles
		WHERE pinned = TRUE AND published = TRUE
		ORDER BY pub_date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pinned articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, *article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

// GetStats returns aggregate counts over the article table.
func (r *PostgresArticleRepository) GetStats() (*ArticleStats, error) {
	var stats ArticleStats

	err := r.db.QueryRow(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN published THEN 1 ELSE 0 END), 0) AS published,
			COALESCE(SUM(CASE WHEN is_generated THEN 1 ELSE 0 END), 0) AS generated,
			COALESCE(SUM(CASE WHEN pinned THEN 1 ELSE 0 END), 0) AS pinned
		FROM articles
	`).Scan(&stats.Total, &stats.Published, &stats.Generated, &stats.Pinned)

	if err != nil {
		return nil, fmt.Errorf("failed to get article stats: %w", err)
	}

	return &stats, nil
}

// buildUpdateClauses turns the non-nil fields of an update into SET
// clauses with positional parameters starting at $1.
func buildUpdateClauses(update ArticleUpdate) ([]string, []interface{}) {
	var set []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Published != nil {
		add("published", *update.Published)
	}
	if update.GeneratedText != nil {
		add("generated_text", *update.GeneratedText)
	}
	if update.IsGenerated != nil {
		add("is_generated", *update.IsGenerated)
	}
	if update.GeneratedAt != nil {
		add("generated_at", *update.GeneratedAt)
	}

	return set, args
}

// buildListFilters turns list options into a WHERE clause with positional
// parameters starting at $1. Category must already be resolved through the
// category mapper.
func buildListFilters(opts ListOptions) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if opts.Category != "" {
		args = append(args, opts.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if opts.Published != nil {
		args = append(args, *opts.Published)
		clauses = append(clauses, fmt.Sprintf("published = $%d", len(args)))
	}
	if opts.IsGenerated != nil {
		args = append(args, *opts.IsGenerated)
		clauses = append(clauses, fmt.Sprintf("is_generated = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func buildListOrder(opts ListOptions) string {
	direction := "DESC"
	if opts.SortAsc {
		direction = "ASC"
	}
	if opts.PinnedFirst {
		return " ORDER BY pinned DESC, pub_date " + direction
	}
	return " ORDER BY pub_date " + direction
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
