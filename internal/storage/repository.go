// Package storage is the reference server's persistence layer: one SQLite
// table of transactions, id and createdAt assigned at insert and immutable
// afterwards.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"gagyebu/internal/core"
	"gagyebu/internal/log"
)

var ErrNotFound = errors.New("transaction not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const txColumns = "id, date, amount, description, payment_method, category, type, created_at"

// ListTransactions returns all records in insertion order, normalized to
// the canonical model. Rows written before the type column existed carry
// an empty type and a signed amount; normalization resolves them on read.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+txColumns+" FROM transactions ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, core.Normalize(tx))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

// GetTransaction fetches one record by id.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+txColumns+" FROM transactions WHERE id = ?", id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Normalize(tx), nil
}

// CreateTransaction inserts a new record with a fresh UUID and the current
// timestamp.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, d core.Draft) (core.Transaction, error) {
	tx := core.Transaction{
		ID:            uuid.NewString(),
		Date:          d.Date,
		Amount:        d.Amount,
		Description:   d.Description,
		PaymentMethod: d.PaymentMethod,
		Category:      d.Category,
		Type:          d.Type,
		CreatedAt:     time.Now().Format(time.RFC3339),
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO transactions ("+txColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		tx.ID, tx.Date, tx.Amount, tx.Description, tx.PaymentMethod, tx.Category, string(tx.Type), tx.CreatedAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		log.FieldID, tx.ID,
		log.FieldType, tx.Type,
		log.FieldAmount, tx.Amount,
		"date", tx.Date)

	return tx, nil
}

// UpdateTransaction replaces all editable fields of an existing record,
// keeping id and created_at.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, id string, d core.Draft) (core.Transaction, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET date = ?, amount = ?, description = ?, payment_method = ?, category = ?, type = ?
		 WHERE id = ?`,
		d.Date, d.Amount, d.Description, d.PaymentMethod, d.Category, string(d.Type), id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if n == 0 {
		return core.Transaction{}, ErrNotFound
	}
	return r.GetTransaction(ctx, id)
}

// DeleteTransaction removes a record by id.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var tx core.Transaction
	var typ string
	err := row.Scan(&tx.ID, &tx.Date, &tx.Amount, &tx.Description,
		&tx.PaymentMethod, &tx.Category, &typ, &tx.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, err
		}
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	tx.Type = core.TxType(typ)
	return tx, nil
}
