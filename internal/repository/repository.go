// Package repository implements the link store on postgres.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/avasilev/go-shortlinks/internal/storage"
)

const schema = `
	CREATE TABLE IF NOT EXISTS short_links (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id TEXT NOT NULL DEFAULT '',
		long_url TEXT NOT NULL,
		code TEXT NOT NULL,
		custom_alias TEXT,
		clicks BIGINT NOT NULL DEFAULT 0,
		expires_at TIMESTAMPTZ,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE UNIQUE INDEX IF NOT EXISTS short_links_code_idx ON short_links (code);
	CREATE UNIQUE INDEX IF NOT EXISTS short_links_alias_idx ON short_links (custom_alias) WHERE custom_alias IS NOT NULL;
	CREATE INDEX IF NOT EXISTS short_links_user_idx ON short_links (user_id);

	CREATE TABLE IF NOT EXISTS link_clicks (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		short_link_id UUID NOT NULL REFERENCES short_links (id) ON DELETE CASCADE,
		ip_address TEXT,
		user_agent TEXT,
		referer TEXT,
		country TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS link_clicks_link_idx ON link_clicks (short_link_id);
	CREATE INDEX IF NOT EXISTS link_clicks_created_idx ON link_clicks (created_at);
`

// InitDB opens the database, verifies connectivity and creates the schema.
func InitDB(dsn string, logger *zap.Logger) *sql.DB {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	if _, err := db.Exec(schema); err != nil {
		logger.Fatal("cannot create schema", zap.Error(err))
	}

	return db
}

// LinkRepository is the postgres-backed storage.Store.
type LinkRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func CreateLinkRepository(db *sql.DB, logger *zap.Logger) *LinkRepository {
	return &LinkRepository{db: db, logger: logger}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Insert claims the code (and alias) and stores the link in one statement.
// The guarded SELECT refuses a code colliding with an existing alias and
// vice versa; the unique indexes are the backstop for concurrent inserts.
func (r *LinkRepository) Insert(ctx context.Context, rec storage.LinkRecord) (*storage.LinkRecord, error) {
	alias := sql.NullString{String: rec.CustomAlias, Valid: rec.CustomAlias != ""}
	expires := sql.NullTime{}
	if rec.ExpiresAt != nil {
		expires = sql.NullTime{Time: *rec.ExpiresAt, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO short_links (user_id, long_url, code, custom_alias, expires_at, is_active)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE NOT EXISTS (
			SELECT 1 FROM short_links
			WHERE code = $3 OR custom_alias = $3
			   OR ($4::text IS NOT NULL AND (code = $4 OR custom_alias = $4))
		)
		RETURNING id, created_at, updated_at;`,
		rec.UserID, rec.LongURL, rec.Code, alias, expires, rec.IsActive,
	)

	stored := rec
	stored.Clicks = 0
	err := row.Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
		return nil, storage.ErrConflict
	}
	if err != nil {
		r.logger.Error("insert link", zap.Error(err))
		return nil, err
	}

	return &stored, nil
}

func (r *LinkRepository) scanLink(row *sql.Row) (*storage.LinkRecord, error) {
	var rec storage.LinkRecord
	var alias sql.NullString
	var expires sql.NullTime

	err := row.Scan(&rec.ID, &rec.UserID, &rec.LongURL, &rec.Code, &alias,
		&rec.Clicks, &expires, &rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rec.CustomAlias = alias.String
	if expires.Valid {
		t := expires.Time
		rec.ExpiresAt = &t
	}
	return &rec, nil
}

func (r *LinkRepository) FindByCode(ctx context.Context, code string) (*storage.LinkRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, long_url, code, custom_alias, clicks, expires_at, is_active, created_at, updated_at
		FROM short_links WHERE code = $1 OR custom_alias = $1;`, code)

	return r.scanLink(row)
}

func (r *LinkRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM short_links WHERE code = $1 OR custom_alias = $1);`, code,
	).Scan(&exists)
	return exists, err
}

func (r *LinkRepository) FindByUserID(ctx context.Context, userID string) ([]storage.LinkRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, long_url, code, custom_alias, clicks, expires_at, is_active, created_at, updated_at
		FROM short_links WHERE user_id = $1 ORDER BY created_at DESC;`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]storage.LinkRecord, 0)
	for rows.Next() {
		var rec storage.LinkRecord
		var alias sql.NullString
		var expires sql.NullTime

		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.LongURL, &rec.Code, &alias,
			&rec.Clicks, &expires, &rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.CustomAlias = alias.String
		if expires.Valid {
			t := expires.Time
			rec.ExpiresAt = &t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// RecordClick inserts the event and bumps the counter in one transaction.
// The increment is done in SQL so concurrent visits never lose updates.
func (r *LinkRepository) RecordClick(ctx context.Context, linkID string, c storage.ClickRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	nullable := func(s string) sql.NullString {
		return sql.NullString{String: s, Valid: s != ""}
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO link_clicks (short_link_id, ip_address, user_agent, referer, country)
		VALUES ($1, $2, $3, $4, $5);`,
		linkID, nullable(c.IPAddress), nullable(c.UserAgent), nullable(c.Referer), nullable(c.Country),
	); err != nil {
		tx.Rollback()
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE short_links SET clicks = clicks + 1, updated_at = now() WHERE id = $1;`, linkID,
	); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *LinkRepository) SetActive(ctx context.Context, code string, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE short_links SET is_active = $2, updated_at = now()
		WHERE code = $1 OR custom_alias = $1;`, code, active)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *LinkRepository) DeactivateBatch(ctx context.Context, codes []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, code := range codes {
		if _, err = tx.ExecContext(ctx, `
			UPDATE short_links SET is_active = FALSE, updated_at = now()
			WHERE code = $1 OR custom_alias = $1;`, code,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *LinkRepository) CountByBucket(ctx context.Context, linkID string, b storage.Bucket, from, to *time.Time) ([]storage.BucketCount, error) {
	nullTime := func(t *time.Time) sql.NullTime {
		if t == nil {
			return sql.NullTime{}
		}
		return sql.NullTime{Time: *t, Valid: true}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT date_trunc($2, created_at) AS bucket, count(*), count(DISTINCT ip_address)
		FROM link_clicks
		WHERE short_link_id = $1
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at <= $4)
		GROUP BY bucket ORDER BY bucket DESC;`,
		linkID, string(b), nullTime(from), nullTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]storage.BucketCount, 0)
	for rows.Next() {
		var bc storage.BucketCount
		if err := rows.Scan(&bc.Bucket, &bc.Clicks, &bc.Visitors); err != nil {
			return nil, err
		}
		out = append(out, bc)
	}
	return out, rows.Err()
}

func (r *LinkRepository) topBy(ctx context.Context, query, linkID string, n int) ([]storage.KeyCount, error) {
	rows, err := r.db.QueryContext(ctx, query, linkID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]storage.KeyCount, 0)
	for rows.Next() {
		var kc storage.KeyCount
		if err := rows.Scan(&kc.Key, &kc.Clicks); err != nil {
			return nil, err
		}
		out = append(out, kc)
	}
	return out, rows.Err()
}

func (r *LinkRepository) TopCountries(ctx context.Context, linkID string, n int) ([]storage.KeyCount, error) {
	return r.topBy(ctx, `
		SELECT country, count(*) AS clicks FROM link_clicks
		WHERE short_link_id = $1 AND country IS NOT NULL AND country <> ''
		GROUP BY country ORDER BY clicks DESC, country ASC LIMIT $2;`, linkID, n)
}

func (r *LinkRepository) TopReferers(ctx context.Context, linkID string, n int) ([]storage.KeyCount, error) {
	return r.topBy(ctx, `
		SELECT referer, count(*) AS clicks FROM link_clicks
		WHERE short_link_id = $1 AND referer IS NOT NULL AND referer <> ''
		GROUP BY referer ORDER BY clicks DESC, referer ASC LIMIT $2;`, linkID, n)
}

func (r *LinkRepository) ClicksByHourOfDay(ctx context.Context, linkID string) ([]storage.HourCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT EXTRACT(HOUR FROM created_at)::int AS hour, count(*) AS clicks
		FROM link_clicks WHERE short_link_id = $1
		GROUP BY hour ORDER BY clicks DESC, hour ASC;`, linkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]storage.HourCount, 0)
	for rows.Next() {
		var hc storage.HourCount
		if err := rows.Scan(&hc.Hour, &hc.Clicks); err != nil {
			return nil, err
		}
		out = append(out, hc)
	}
	return out, rows.Err()
}

func (r *LinkRepository) CountClicksSince(ctx context.Context, linkID string, since time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM link_clicks WHERE short_link_id = $1 AND created_at >= $2;`,
		linkID, since,
	).Scan(&n)
	return n, err
}

func (r *LinkRepository) ClickEvents(ctx context.Context, linkID string, limit, offset int) ([]storage.ClickRecord, error) {
	if limit <= 0 {
		limit = 1000
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, short_link_id, ip_address, user_agent, referer, country, created_at
		FROM link_clicks WHERE short_link_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3;`, linkID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]storage.ClickRecord, 0)
	for rows.Next() {
		var c storage.ClickRecord
		var ip, ua, ref, country sql.NullString

		if err := rows.Scan(&c.ID, &c.LinkID, &ip, &ua, &ref, &country, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.IPAddress = ip.String
		c.UserAgent = ua.String
		c.Referer = ref.String
		c.Country = country.String
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *LinkRepository) Totals(ctx context.Context) (storage.Totals, error) {
	var t storage.Totals
	err := r.db.QueryRowContext(ctx, `
		SELECT (SELECT count(*) FROM short_links), (SELECT count(*) FROM link_clicks);`,
	).Scan(&t.Links, &t.Clicks)
	return t, err
}

func (r *LinkRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM short_links WHERE expires_at IS NOT NULL AND expires_at < $1;`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *LinkRepository) DeleteClicksBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM link_clicks WHERE created_at < $1;`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *LinkRepository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
