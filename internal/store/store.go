// Package store persists discovered videos and daily reports in an embedded
// sqlite database. Videos are write-once keyed records; reports are
// replace-in-place keyed by calendar date.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/jonesrussell/vidwatch/internal/domain"
	"github.com/jonesrussell/vidwatch/internal/logger"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

const schema = `
CREATE TABLE IF NOT EXISTS videos (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	tags            TEXT NOT NULL DEFAULT '[]',
	channel_id      TEXT NOT NULL DEFAULT '',
	channel_name    TEXT NOT NULL DEFAULT '',
	published_at    TIMESTAMP NOT NULL,
	view_count      INTEGER NOT NULL DEFAULT 0,
	like_count      INTEGER NOT NULL DEFAULT 0,
	comment_count   INTEGER NOT NULL DEFAULT 0,
	url             TEXT NOT NULL DEFAULT '',
	thumbnail_url   TEXT NOT NULL DEFAULT '',
	discovered_at   TIMESTAMP NOT NULL,
	categories      TEXT NOT NULL DEFAULT '[]',
	relevance_score INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_videos_discovered_at ON videos(discovered_at);
CREATE INDEX IF NOT EXISTS idx_videos_relevance_score ON videos(relevance_score);

CREATE TABLE IF NOT EXISTS daily_reports (
	date         TEXT PRIMARY KEY,
	payload      TEXT NOT NULL,
	generated_at TIMESTAMP NOT NULL
);
`

// Store is the keyed record store for videos and daily reports.
type Store struct {
	db     *sqlx.DB
	logger logger.Logger
}

// Open opens (creating if necessary) the sqlite database at path and ensures
// the schema exists. The connection pool is capped at one connection so
// concurrent PutIfAbsent calls serialize inside the driver instead of
// failing with SQLITE_BUSY.
func Open(path string, log logger.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &domain.StoreError{Op: "open", Err: err}
		}
	}

	db, err := sqlx.Connect("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, &domain.StoreError{Op: "open", Err: err}
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &domain.StoreError{Op: "migrate", Err: err}
	}

	log.Info("record store opened", logger.String("path", path))
	return &Store{db: db, logger: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// videoRow is the flat sqlite representation of a domain.Video. Tags and
// categories are stored as JSON arrays.
type videoRow struct {
	ID             string    `db:"id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	Tags           string    `db:"tags"`
	ChannelID      string    `db:"channel_id"`
	ChannelName    string    `db:"channel_name"`
	PublishedAt    time.Time `db:"published_at"`
	ViewCount      int64     `db:"view_count"`
	LikeCount      int64     `db:"like_count"`
	CommentCount   int64     `db:"comment_count"`
	URL            string    `db:"url"`
	ThumbnailURL   string    `db:"thumbnail_url"`
	DiscoveredAt   time.Time `db:"discovered_at"`
	Categories     string    `db:"categories"`
	RelevanceScore int       `db:"relevance_score"`
}

func toRow(v *domain.Video) (*videoRow, error) {
	tags, err := json.Marshal(emptyIfNil(v.Tags))
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	categories, err := json.Marshal(emptyIfNil(v.Categories))
	if err != nil {
		return nil, fmt.Errorf("marshal categories: %w", err)
	}
	return &videoRow{
		ID:             v.ID,
		Title:          v.Title,
		Description:    v.Description,
		Tags:           string(tags),
		ChannelID:      v.ChannelID,
		ChannelName:    v.ChannelName,
		PublishedAt:    v.PublishedAt.UTC(),
		ViewCount:      v.ViewCount,
		LikeCount:      v.LikeCount,
		CommentCount:   v.CommentCount,
		URL:            v.URL,
		ThumbnailURL:   v.ThumbnailURL,
		DiscoveredAt:   v.DiscoveredAt.UTC(),
		Categories:     string(categories),
		RelevanceScore: v.RelevanceScore,
	}, nil
}

func (r *videoRow) toDomain() (*domain.Video, error) {
	v := &domain.Video{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		ChannelID:      r.ChannelID,
		ChannelName:    r.ChannelName,
		PublishedAt:    r.PublishedAt,
		ViewCount:      r.ViewCount,
		LikeCount:      r.LikeCount,
		CommentCount:   r.CommentCount,
		URL:            r.URL,
		ThumbnailURL:   r.ThumbnailURL,
		DiscoveredAt:   r.DiscoveredAt,
		RelevanceScore: r.RelevanceScore,
	}
	if err := json.Unmarshal([]byte(r.Tags), &v.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags for %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.Categories), &v.Categories); err != nil {
		return nil, fmt.Errorf("unmarshal categories for %s: %w", r.ID, err)
	}
	return v, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Exists reports whether a video with the given id is already stored.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM videos WHERE id = ?`, id)
	if err != nil {
		return false, &domain.StoreError{Op: "exists", Err: err}
	}
	return n > 0, nil
}

// PutIfAbsent stores the video only if no record with its id exists and
// reports whether a write occurred. The insert is atomic: two concurrent
// calls with the same id result in exactly one stored record, and the loser
// observes stored=false.
func (s *Store) PutIfAbsent(ctx context.Context, v *domain.Video) (bool, error) {
	row, err := toRow(v)
	if err != nil {
		return false, &domain.StoreError{Op: "put", Err: err}
	}

	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO videos (
			id, title, description, tags, channel_id, channel_name,
			published_at, view_count, like_count, comment_count,
			url, thumbnail_url, discovered_at, categories, relevance_score
		) VALUES (
			:id, :title, :description, :tags, :channel_id, :channel_name,
			:published_at, :view_count, :like_count, :comment_count,
			:url, :thumbnail_url, :discovered_at, :categories, :relevance_score
		)
		ON CONFLICT(id) DO NOTHING
	`, row)
	if err != nil {
		return false, &domain.StoreError{Op: "put", Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, &domain.StoreError{Op: "put", Err: err}
	}
	return affected > 0, nil
}

// Get retrieves a single video by id. Returns ErrNotFound if absent.
func (s *Store) Get(ctx context.Context, id string) (*domain.Video, error) {
	var row videoRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM videos WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &domain.StoreError{Op: "get", Err: err}
	}
	return row.toDomain()
}

// Query returns videos matching the filter, sorted by relevance score
// descending, then discovery time descending, then id for determinism.
func (s *Store) Query(ctx context.Context, filter domain.VideoFilter) ([]*domain.Video, error) {
	where, args := buildQueryWhere(filter)

	query := `SELECT * FROM videos WHERE 1=1` + where +
		` ORDER BY relevance_score DESC, discovered_at DESC, id ASC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	var rows []videoRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, &domain.StoreError{Op: "query", Err: err}
	}
	return rowsToDomain(rows)
}

func buildQueryWhere(filter domain.VideoFilter) (string, []any) {
	var clauses []string
	var args []any

	if filter.Category != "" {
		// Categories are stored as a JSON array of strings.
		clauses = append(clauses, `categories LIKE ?`)
		args = append(args, `%"`+filter.Category+`"%`)
	}
	if filter.MinScore > 0 {
		clauses = append(clauses, `relevance_score >= ?`)
		args = append(args, filter.MinScore)
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		clauses = append(clauses,
			`(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(channel_name) LIKE ?)`)
		args = append(args, needle, needle, needle)
	}
	if filter.LookbackDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -filter.LookbackDays)
		clauses = append(clauses, `discovered_at >= ?`)
		args = append(args, cutoff)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " AND " + strings.Join(clauses, " AND "), args
}

// AllForDate returns the videos whose discovered_at falls on the given
// calendar date (UTC, formatted YYYY-MM-DD).
func (s *Store) AllForDate(ctx context.Context, date string) ([]*domain.Video, error) {
	var rows []videoRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT * FROM videos
		WHERE date(discovered_at) = ?
		ORDER BY relevance_score DESC, discovered_at DESC, id ASC
	`, date)
	if err != nil {
		return nil, &domain.StoreError{Op: "all_for_date", Err: err}
	}
	return rowsToDomain(rows)
}

func rowsToDomain(rows []videoRow) ([]*domain.Video, error) {
	videos := make([]*domain.Video, 0, len(rows))
	for i := range rows {
		v, err := rows[i].toDomain()
		if err != nil {
			return nil, &domain.StoreError{Op: "decode", Err: err}
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// SaveDailyReport stores the report for its date, replacing any previous
// report for that date.
func (s *Store) SaveDailyReport(ctx context.Context, report *domain.DailyReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return &domain.StoreError{Op: "save_report", Err: err}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO daily_reports (date, payload, generated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			payload = excluded.payload,
			generated_at = excluded.generated_at
	`, report.Date, string(payload), report.GeneratedAt.UTC())
	if err != nil {
		return &domain.StoreError{Op: "save_report", Err: err}
	}
	return nil
}

// DailyReport retrieves the report for the given date. Returns ErrNotFound
// if no report has been generated for that date.
func (s *Store) DailyReport(ctx context.Context, date string) (*domain.DailyReport, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload, `SELECT payload FROM daily_reports WHERE date = ?`, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &domain.StoreError{Op: "get_report", Err: err}
	}

	var report domain.DailyReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, &domain.StoreError{Op: "get_report", Err: err}
	}
	return &report, nil
}

// ListDailyReports returns all stored reports, newest date first.
func (s *Store) ListDailyReports(ctx context.Context) ([]*domain.DailyReport, error) {
	var payloads []string
	err := s.db.SelectContext(ctx, &payloads, `SELECT payload FROM daily_reports ORDER BY date DESC`)
	if err != nil {
		return nil, &domain.StoreError{Op: "list_reports", Err: err}
	}

	reports := make([]*domain.DailyReport, 0, len(payloads))
	for _, p := range payloads {
		var report domain.DailyReport
		if err := json.Unmarshal([]byte(p), &report); err != nil {
			return nil, &domain.StoreError{Op: "list_reports", Err: err}
		}
		reports = append(reports, &report)
	}
	return reports, nil
}
