// Package sqlite is a local bill store: rows in SQLite, uploaded files on
// disk under a directory the app serves at FilesPath.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/angelofallars/billed/internal/bill"
	"github.com/angelofallars/billed/internal/store"
)

// FilesPath is the URL prefix under which uploaded files are served.
const FilesPath = "/files/"

var (
	_ store.Store = (*SQLiteStore)(nil)
	_ store.Bills = (*billsResource)(nil)
)

type SQLiteStore struct {
	db         *sql.DB
	uploadsDir string
}

// New opens the database at dbPath, creating parent directories, and runs
// migrations. Uploaded files are written below uploadsDir.
func New(dbPath, uploadsDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, uploadsDir: uploadsDir}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// UploadsDir is the directory to serve under FilesPath.
func (s *SQLiteStore) UploadsDir() string {
	return s.uploadsDir
}

func (s *SQLiteStore) Bills() store.Bills {
	return &billsResource{s: s}
}

type billsResource struct {
	s *SQLiteStore
}

const selectColumns = `id, email, type, name, amount, date, vat, pct, commentary,
	file_url, file_name, status, comment_admin`

func (b *billsResource) List(ctx context.Context) ([]bill.Bill, error) {
	rows, err := b.s.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM bills ORDER BY date DESC, created_at DESC",
	)
	if err != nil {
		return nil, internal(fmt.Errorf("failed to list bills: %w", err))
	}
	defer rows.Close()

	bills := []bill.Bill{}
	for rows.Next() {
		var (
			bl       bill.Bill
			fileURL  sql.NullString
			fileName sql.NullString
		)
		if err := rows.Scan(
			&bl.ID, &bl.Email, &bl.Type, &bl.Name, &bl.Amount, &bl.Date, &bl.VAT, &bl.Pct,
			&bl.Commentary, &fileURL, &fileName, &bl.Status, &bl.CommentAdmin,
		); err != nil {
			return nil, internal(fmt.Errorf("failed to scan bill: %w", err))
		}
		bl.FileURL = nullable(fileURL)
		bl.FileName = nullable(fileName)
		bills = append(bills, bl)
	}
	if err := rows.Err(); err != nil {
		return nil, internal(fmt.Errorf("failed to iterate bills: %w", err))
	}

	return bills, nil
}

func (b *billsResource) Create(ctx context.Context, req store.CreateRequest) (*store.Created, error) {
	if req.File.Content == nil {
		return nil, store.NewError(http.StatusBadRequest, store.ErrNoFile)
	}

	key := uuid.New().String()
	name := filepath.Base(req.File.Name)

	dir := filepath.Join(b.s.uploadsDir, key)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, internal(fmt.Errorf("failed to create upload directory: %w", err))
	}

	if err := writeFile(filepath.Join(dir, name), req.File.Content); err != nil {
		os.RemoveAll(dir)
		return nil, internal(err)
	}

	fileURL := FilesPath + path.Join(key, url.PathEscape(name))

	_, err := b.s.db.ExecContext(ctx,
		`INSERT INTO bills (id, email, file_url, file_name, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		key, req.Email, fileURL, name, bill.StatusPending, time.Now().UnixNano(),
	)
	if err != nil {
		os.RemoveAll(dir)
		return nil, internal(fmt.Errorf("failed to insert bill: %w", err))
	}

	return &store.Created{FileURL: fileURL, Key: key}, nil
}

func (b *billsResource) Update(ctx context.Context, key string, bl bill.Bill) (*bill.Bill, error) {
	if key == "" {
		return b.insert(ctx, bl)
	}

	res, err := b.s.db.ExecContext(ctx,
		`UPDATE bills SET email = ?, type = ?, name = ?, amount = ?, date = ?, vat = ?, pct = ?,
		commentary = ?, file_url = ?, file_name = ?, status = ?, comment_admin = ?
		WHERE id = ?`,
		bl.Email, bl.Type, bl.Name, bl.Amount, bl.Date, bl.VAT, bl.Pct,
		bl.Commentary, bl.FileURL, bl.FileName, bl.Status, bl.CommentAdmin,
		key,
	)
	if err != nil {
		return nil, internal(fmt.Errorf("failed to update bill: %w", err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, internal(fmt.Errorf("failed to update bill: %w", err))
	}
	if n == 0 {
		return nil, store.NewError(http.StatusNotFound, fmt.Errorf("%w: %s", store.ErrNotFound, key))
	}

	bl.ID = key
	return &bl, nil
}

func (b *billsResource) insert(ctx context.Context, bl bill.Bill) (*bill.Bill, error) {
	bl.ID = uuid.New().String()

	_, err := b.s.db.ExecContext(ctx,
		`INSERT INTO bills (id, email, type, name, amount, date, vat, pct, commentary,
		file_url, file_name, status, comment_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bl.ID, bl.Email, bl.Type, bl.Name, bl.Amount, bl.Date, bl.VAT, bl.Pct, bl.Commentary,
		bl.FileURL, bl.FileName, bl.Status, bl.CommentAdmin, time.Now().UnixNano(),
	)
	if err != nil {
		return nil, internal(fmt.Errorf("failed to insert bill: %w", err))
	}

	return &bl, nil
}

func writeFile(name string, content io.Reader) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}

	return f.Close()
}

func internal(err error) error {
	var se *store.Error
	if errors.As(err, &se) {
		return err
	}
	return store.NewError(http.StatusInternalServerError, err)
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
