package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"jobindex/internal/config"
)

// Store manages job document persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Stored is one persisted document row.
type Stored struct {
	ID        string
	Type      string
	Workflow  string
	Body      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open initializes or connects to the document database and verifies the
// schema.
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
	if err := store.initSchema(context.Background()); err != nil {
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

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// envelope extracts only the columns the store indexes on; the rest of the
// document stays opaque.
type envelope struct {
	ID       string `json:"_id"`
	Type     string `json:"type"`
	Workflow string `json:"workflow"`
}

// Put inserts or replaces one document from its raw JSON form. Documents
// without an "_id" field are assigned a fresh UUID, which is also the
// returned identifier.
func (s *Store) Put(ctx context.Context, body []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Errorf("decode document envelope: %w", err)
	}
	id := env.ID
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO documents (doc_id, doc_type, workflow, body, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT (doc_id) DO UPDATE SET
             doc_type = excluded.doc_type,
             workflow = excluded.workflow,
             body = excluded.body,
             updated_at = excluded.updated_at`,
		id,
		env.Type,
		nullableString(env.Workflow),
		string(body),
		now,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}
	return id, nil
}

// GetByID fetches a document by identifier. A missing document returns nil
// without error.
func (s *Store) GetByID(ctx context.Context, id string) (*Stored, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE doc_id = ?`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// List returns documents ordered by creation time, optionally filtered by
// document type.
func (s *Store) List(ctx context.Context, docType string) ([]*Stored, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if docType == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY created_at, doc_id`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE doc_type = ? ORDER BY created_at, doc_id`, docType)
	}
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*Stored
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// ForEach streams every document to fn in creation order. Iteration stops at
// the first error fn returns.
func (s *Store) ForEach(ctx context.Context, fn func(*Stored) error) error {
	rows, err := s.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY created_at, doc_id`)
	if err != nil {
		return fmt.Errorf("iterate documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Count returns the total number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

// Stats returns a count of documents grouped by type tag.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc_type, COUNT(1) FROM documents GROUP BY doc_type`)
	if err != nil {
		return nil, fmt.Errorf("document stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var docType string
		var count int
		if err := rows.Scan(&docType, &count); err != nil {
			return nil, err
		}
		stats[docType] = count
	}
	return stats, rows.Err()
}

// Remove deletes a document by identifier.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE doc_id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Clear removes all documents from the store.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	if err != nil {
		return 0, fmt.Errorf("clear documents: %w", err)
	}
	return res.RowsAffected()
}

const documentColumns = "doc_id, doc_type, workflow, body, created_at, updated_at"

func scanDocument(scanner interface{ Scan(dest ...any) error }) (*Stored, error) {
	var (
		id         string
		docType    string
		workflow   sql.NullString
		body       string
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(&id, &docType, &workflow, &body, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	doc := &Stored{
		ID:       id,
		Type:     docType,
		Workflow: workflow.String,
		Body:     []byte(body),
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		doc.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		doc.UpdatedAt = updated
	}
	return doc, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
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
