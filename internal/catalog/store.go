package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tubemap/internal/config"
)

// Store is the primary structured store backed by SQLite. It owns the places
// table and the processed-video idempotency ledger.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the primary database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// UpsertPlace inserts or fully overwrites the row keyed by the entity's
// external place id. Last write wins.
func (s *Store) UpsertPlace(ctx context.Context, entity *PlaceEntity) error {
	if entity == nil {
		return errors.New("entity is nil")
	}
	if strings.TrimSpace(entity.KakaoPlaceID) == "" {
		return errors.New("entity is missing its place id")
	}
	entity.UpdatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO places (
            kakao_place_id, name, name_official, category, address, road_address,
            lat, lng, phone, channel_title, media_label, video_id, video_url,
            published_at, description, best_comment, best_comment_like_count,
            image_state, image_url, image_type, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(kakao_place_id) DO UPDATE SET
            name = excluded.name,
            name_official = excluded.name_official,
            category = excluded.category,
            address = excluded.address,
            road_address = excluded.road_address,
            lat = excluded.lat,
            lng = excluded.lng,
            phone = excluded.phone,
            channel_title = excluded.channel_title,
            media_label = excluded.media_label,
            video_id = excluded.video_id,
            video_url = excluded.video_url,
            published_at = excluded.published_at,
            description = excluded.description,
            best_comment = excluded.best_comment,
            best_comment_like_count = excluded.best_comment_like_count,
            image_state = excluded.image_state,
            image_url = excluded.image_url,
            image_type = excluded.image_type,
            updated_at = excluded.updated_at`,
		entity.KakaoPlaceID,
		entity.Name,
		nullableString(entity.NameOfficial),
		nullableString(entity.Category),
		nullableString(entity.Address),
		nullableString(entity.RoadAddress),
		entity.Lat,
		entity.Lng,
		nullableString(entity.Phone),
		nullableString(entity.ChannelTitle),
		nullableString(entity.MediaLabel),
		nullableString(entity.VideoID),
		nullableString(entity.VideoURL),
		nullableTime(entity.PublishedAt),
		nullableString(entity.Description),
		nullableString(entity.BestComment),
		entity.BestCommentLikes,
		string(entity.ImageState),
		nullableString(entity.ImageURL),
		nullableString(entity.ImageType),
		entity.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert place: %w", err)
	}
	return nil
}

// GetPlace fetches one place by its external id, or nil when absent.
func (s *Store) GetPlace(ctx context.Context, kakaoPlaceID string) (*PlaceEntity, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+placeColumns+` FROM places WHERE kakao_place_id = ?`, kakaoPlaceID)
	entity, err := scanPlace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get place: %w", err)
	}
	return entity, nil
}

// ListPlaces returns all places ordered by most recent update.
func (s *Store) ListPlaces(ctx context.Context) ([]*PlaceEntity, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+placeColumns+` FROM places ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	defer rows.Close()

	var entities []*PlaceEntity
	for rows.Next() {
		entity, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

// PlaceKeys returns the set of place ids currently in the primary store.
func (s *Store) PlaceKeys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kakao_place_id FROM places`)
	if err != nil {
		return nil, fmt.Errorf("list place keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys[key] = struct{}{}
	}
	return keys, rows.Err()
}

// DeletePlaces removes the rows for the supplied place ids and reports how
// many rows were deleted.
func (s *Store) DeletePlaces(ctx context.Context, keys []string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	placeholders := makePlaceholders(len(keys))
	args := make([]any, len(keys))
	for i, key := range keys {
		args[i] = key
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM places WHERE kakao_place_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("delete places: %w", err)
	}
	return res.RowsAffected()
}

// GetProcessed fetches the ledger entry for a video, or nil when the video has
// never been attempted.
func (s *Store) GetProcessed(ctx context.Context, videoID string) (*ProcessedRecord, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT video_id, status, fail_reason, created_at, updated_at FROM processed_videos WHERE video_id = ?`,
		videoID,
	)
	record, err := scanProcessed(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get processed record: %w", err)
	}
	return record, nil
}

// RecordProcessed writes the ledger entry for a video, overwriting any
// earlier skipped/failed attempt.
func (s *Store) RecordProcessed(ctx context.Context, record *ProcessedRecord) error {
	if record == nil {
		return errors.New("record is nil")
	}
	if strings.TrimSpace(record.VideoID) == "" {
		return errors.New("record is missing its video id")
	}
	now := time.Now().UTC()
	record.UpdatedAt = now
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO processed_videos (video_id, status, fail_reason, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(video_id) DO UPDATE SET
            status = excluded.status,
            fail_reason = excluded.fail_reason,
            updated_at = excluded.updated_at`,
		record.VideoID,
		string(record.Status),
		nullableString(record.FailReason),
		record.CreatedAt.Format(time.RFC3339Nano),
		record.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record processed video: %w", err)
	}
	return nil
}

// RecentProcessed returns the most recently updated ledger entries.
func (s *Store) RecentProcessed(ctx context.Context, limit int) ([]*ProcessedRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT video_id, status, fail_reason, created_at, updated_at
        FROM processed_videos ORDER BY updated_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent processed records: %w", err)
	}
	defer rows.Close()

	var records []*ProcessedRecord
	for rows.Next() {
		record, err := scanProcessed(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// LedgerStats returns ledger counts grouped by status.
func (s *Store) LedgerStats(ctx context.Context) (LedgerSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM processed_videos GROUP BY status`)
	if err != nil {
		return LedgerSummary{}, fmt.Errorf("ledger stats: %w", err)
	}
	defer rows.Close()

	var summary LedgerSummary
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return LedgerSummary{}, err
		}
		summary.Total += count
		switch ProcessedStatus(status) {
		case StatusProcessed:
			summary.Processed += count
		case StatusSkipped:
			summary.Skipped += count
		case StatusFailed:
			summary.Failed += count
		}
	}
	return summary, rows.Err()
}

const placeColumns = "kakao_place_id, name, name_official, category, address, road_address, lat, lng, phone, channel_title, media_label, video_id, video_url, published_at, description, best_comment, best_comment_like_count, image_state, image_url, image_type, updated_at"

func scanPlace(scanner interface{ Scan(dest ...any) error }) (*PlaceEntity, error) {
	var (
		placeID      string
		name         string
		nameOfficial sql.NullString
		category     sql.NullString
		address      sql.NullString
		roadAddress  sql.NullString
		lat          float64
		lng          float64
		phone        sql.NullString
		channelTitle sql.NullString
		mediaLabel   sql.NullString
		videoID      sql.NullString
		videoURL     sql.NullString
		publishedRaw sql.NullString
		description  sql.NullString
		bestComment  sql.NullString
		bestLikes    int
		imageState   string
		imageURL     sql.NullString
		imageType    sql.NullString
		updatedRaw   string
	)

	if err := scanner.Scan(
		&placeID,
		&name,
		&nameOfficial,
		&category,
		&address,
		&roadAddress,
		&lat,
		&lng,
		&phone,
		&channelTitle,
		&mediaLabel,
		&videoID,
		&videoURL,
		&publishedRaw,
		&description,
		&bestComment,
		&bestLikes,
		&imageState,
		&imageURL,
		&imageType,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	entity := &PlaceEntity{
		KakaoPlaceID:     placeID,
		Name:             name,
		NameOfficial:     nameOfficial.String,
		Category:         category.String,
		Address:          address.String,
		RoadAddress:      roadAddress.String,
		Lat:              lat,
		Lng:              lng,
		Phone:            phone.String,
		ChannelTitle:     channelTitle.String,
		MediaLabel:       mediaLabel.String,
		VideoID:          videoID.String,
		VideoURL:         videoURL.String,
		Description:      description.String,
		BestComment:      bestComment.String,
		BestCommentLikes: bestLikes,
		ImageState:       ImageState(imageState),
		ImageURL:         imageURL.String,
		ImageType:        imageType.String,
	}
	if publishedRaw.Valid {
		if published, err := parseTimeString(publishedRaw.String); err == nil {
			entity.PublishedAt = published
		}
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		entity.UpdatedAt = updated
	}
	return entity, nil
}

func scanProcessed(scanner interface{ Scan(dest ...any) error }) (*ProcessedRecord, error) {
	var (
		videoID    string
		status     string
		failReason sql.NullString
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(&videoID, &status, &failReason, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	parsed, ok := ParseProcessedStatus(status)
	if !ok {
		return nil, fmt.Errorf("unknown processed status %q for video %s", status, videoID)
	}
	record := &ProcessedRecord{
		VideoID:    videoID,
		Status:     parsed,
		FailReason: failReason.String,
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		record.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		record.UpdatedAt = updated
	}
	return record, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
