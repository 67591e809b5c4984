package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/folio-labs/folio-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// Store is a unified SQLite-based storage that provides access to the
// document and group store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.folio/data/library.db.
//
// Documents left in indexing by an unclean shutdown are reset to
// pending here, so an interrupted session resumes cleanly.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".folio", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// Open database with WAL mode for better concurrency. Foreign keys
	// go in the DSN so every pooled connection enables them; the
	// detach-on-delete rule depends on that.
	db, err := sql.Open("sqlite",
		dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	// Recover documents interrupted by an unclean shutdown
	if n, err := s.DocumentStore().ResetStale(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("resetting stale documents: %w", err)
	} else if n > 0 {
		logger.Info("Reset %d interrupted documents to pending", n)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// GroupStore returns a GroupStore interface backed by this store.
func (s *Store) GroupStore() driven.GroupStore {
	return &groupStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = `id, path, title, page_count, indexed_text, status,
	failure_reason, is_read, date_added, group_id`

// Insert adds a new document row in its initial pending state.
func (s *documentStore) Insert(ctx context.Context, doc *domain.Document) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, path, title, page_count, indexed_text, status,
			failure_reason, is_read, date_added, group_id)
		VALUES (?, ?, ?, ?, NULL, ?, NULL, ?, ?, ?)
	`, doc.ID, doc.Path, doc.Title, doc.PageCount, string(doc.Status),
		doc.Read, doc.DateAdded.UTC(), nullString(doc.GroupID))

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("inserting %s: %w", doc.Path, domain.ErrDuplicatePath)
		}
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// GetByPath retrieves a document by its absolute path.
func (s *documentStore) GetByPath(ctx context.Context, path string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE path = ?`, path)
	return scanDocument(row)
}

// List returns all documents.
func (s *documentStore) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// ListByStatus returns documents in the given index status.
func (s *documentStore) ListByStatus(ctx context.Context, status domain.IndexStatus) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE status = ?`, string(status))
	if err != nil {
		return nil, fmt.Errorf("querying documents by status: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// SetStatus updates the index status. A missing row is a no-op: the
// document may have been removed concurrently.
func (s *documentStore) SetStatus(ctx context.Context, id string, status domain.IndexStatus) error {
	_, err := s.store.db.ExecContext(ctx, `
		UPDATE documents SET status = ?, failure_reason = NULL WHERE id = ?
	`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}
	return nil
}

// SetIndexResult records a successful extraction. No-op if the row was
// deleted while the extraction ran.
func (s *documentStore) SetIndexResult(ctx context.Context, id string, res domain.Extraction) error {
	_, err := s.store.db.ExecContext(ctx, `
		UPDATE documents
		SET status = ?, indexed_text = ?, page_count = ?, failure_reason = NULL
		WHERE id = ?
	`, string(domain.StatusIndexed), res.Text, res.PageCount, id)
	if err != nil {
		return fmt.Errorf("recording index result: %w", err)
	}
	return nil
}

// SetFailure records a failed extraction. No-op if the row was deleted.
func (s *documentStore) SetFailure(ctx context.Context, id, reason string) error {
	_, err := s.store.db.ExecContext(ctx, `
		UPDATE documents SET status = ?, failure_reason = ? WHERE id = ?
	`, string(domain.StatusFailed), reason, id)
	if err != nil {
		return fmt.Errorf("recording failure: %w", err)
	}
	return nil
}

// SetRead updates the read flag.
func (s *documentStore) SetRead(ctx context.Context, id string, read bool) error {
	return s.updateOne(ctx, "marking read",
		"UPDATE documents SET is_read = ? WHERE id = ?", read, id)
}

// Rename updates the display title.
func (s *documentStore) Rename(ctx context.Context, id, title string) error {
	return s.updateOne(ctx, "renaming document",
		"UPDATE documents SET title = ? WHERE id = ?", title, id)
}

// AssignGroup sets the document's group, or detaches it when groupID
// is empty.
func (s *documentStore) AssignGroup(ctx context.Context, id, groupID string) error {
	return s.updateOne(ctx, "assigning group",
		"UPDATE documents SET group_id = ? WHERE id = ?", nullString(groupID), id)
}

// Delete removes a document.
func (s *documentStore) Delete(ctx context.Context, id string) error {
	return s.updateOne(ctx, "deleting document",
		"DELETE FROM documents WHERE id = ?", id)
}

// ResetStale returns documents stuck in indexing to pending.
func (s *documentStore) ResetStale(ctx context.Context) (int, error) {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE documents SET status = ?, failure_reason = NULL WHERE status = ?
	`, string(domain.StatusPending), string(domain.StatusIndexing))
	if err != nil {
		return 0, fmt.Errorf("resetting stale documents: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting reset documents: %w", err)
	}
	return int(n), nil
}

// Ping verifies the database is reachable.
func (s *documentStore) Ping(ctx context.Context) error {
	if err := s.store.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

// updateOne executes a mutation that must touch exactly one row and
// maps zero affected rows to domain.ErrNotFound.
func (s *documentStore) updateOne(ctx context.Context, op, query string, args ...any) error {
	res, err := s.store.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Group Store ====================

// groupStore implements driven.GroupStore.
type groupStore struct {
	store *Store
}

var _ driven.GroupStore = (*groupStore)(nil)

// Create adds a new group.
func (s *groupStore) Create(ctx context.Context, group *domain.Group) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO groups (id, name, color, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, group.ID, group.Name, group.Color, group.Description, group.CreatedAt.UTC())

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("creating group %q: %w", group.Name, domain.ErrDuplicateName)
		}
		return fmt.Errorf("creating group: %w", err)
	}
	return nil
}

// Get retrieves a group by ID.
func (s *groupStore) Get(ctx context.Context, id string) (*domain.Group, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, color, description, created_at FROM groups WHERE id = ?
	`, id)

	var group domain.Group
	var createdAt sql.NullTime
	if err := row.Scan(&group.ID, &group.Name, &group.Color, &group.Description, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning group: %w", err)
	}
	if createdAt.Valid {
		group.CreatedAt = createdAt.Time
	}
	return &group, nil
}

// List returns all groups ordered by name.
func (s *groupStore) List(ctx context.Context) ([]domain.Group, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, color, description, created_at FROM groups ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.Group //nolint:prealloc // size unknown from query
	for rows.Next() {
		var group domain.Group
		var createdAt sql.NullTime
		if err := rows.Scan(&group.ID, &group.Name, &group.Color, &group.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		if createdAt.Valid {
			group.CreatedAt = createdAt.Time
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating groups: %w", err)
	}

	return groups, nil
}

// Rename updates the group name, enforcing uniqueness.
func (s *groupStore) Rename(ctx context.Context, id, name string) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE groups SET name = ? WHERE id = ?", name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("renaming group to %q: %w", name, domain.ErrDuplicateName)
		}
		return fmt.Errorf("renaming group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("renaming group: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Recolor updates the group colour.
func (s *groupStore) Recolor(ctx context.Context, id, color string) error {
	return s.updateOne(ctx, "recolouring group",
		"UPDATE groups SET color = ? WHERE id = ?", color, id)
}

// Redescribe updates the group description.
func (s *groupStore) Redescribe(ctx context.Context, id, description string) error {
	return s.updateOne(ctx, "redescribing group",
		"UPDATE groups SET description = ? WHERE id = ?", description, id)
}

// Delete removes a group. The ON DELETE SET NULL foreign key detaches
// member documents; no document row is touched otherwise.
func (s *groupStore) Delete(ctx context.Context, id string) error {
	return s.updateOne(ctx, "deleting group",
		"DELETE FROM groups WHERE id = ?", id)
}

func (s *groupStore) updateOne(ctx context.Context, op, query string, args ...any) error {
	res, err := s.store.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Helper Functions ====================

// nullString maps empty strings to NULL for nullable columns.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// isUniqueViolation detects SQLite unique constraint failures.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var status string
	var indexedText, failureReason, groupID sql.NullString
	var dateAdded sql.NullTime

	if err := row.Scan(&doc.ID, &doc.Path, &doc.Title, &doc.PageCount,
		&indexedText, &status, &failureReason, &doc.Read, &dateAdded, &groupID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	applyNullables(&doc, status, indexedText, failureReason, groupID, dateAdded)
	return &doc, nil
}

// scanDocuments scans all rows from a document query.
func scanDocuments(rows *sql.Rows) ([]domain.Document, error) {
	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		var status string
		var indexedText, failureReason, groupID sql.NullString
		var dateAdded sql.NullTime

		if err := rows.Scan(&doc.ID, &doc.Path, &doc.Title, &doc.PageCount,
			&indexedText, &status, &failureReason, &doc.Read, &dateAdded, &groupID); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		applyNullables(&doc, status, indexedText, failureReason, groupID, dateAdded)
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

func applyNullables(doc *domain.Document, status string,
	indexedText, failureReason, groupID sql.NullString, dateAdded sql.NullTime) {
	doc.Status = domain.IndexStatus(status)
	doc.IndexedText = indexedText.String
	doc.FailureReason = failureReason.String
	doc.GroupID = groupID.String
	if dateAdded.Valid {
		doc.DateAdded = dateAdded.Time
	}
}
