package task

import (
	"context"
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/amonks/ordoflow/internal/sqlitepool"
)

// TableName is the table holding tasks. The name is shared with databases
// written by earlier versions of the app.
const TableName = "todos"

const schema = `
CREATE TABLE IF NOT EXISTS todos (
  id INTEGER PRIMARY KEY NOT NULL,
  text TEXT NOT NULL,
  description TEXT,
  completed INTEGER DEFAULT 0 NOT NULL,
  date TEXT NOT NULL,
  priority TEXT NOT NULL,
  orderIndex INTEGER NOT NULL
);
`

// SQLiteOptions configures OpenSQLite.
type SQLiteOptions struct {
	// Path is the database file.
	Path string

	// PoolSize is the number of pooled connections. Zero uses the pool default.
	PoolSize int

	// Logger receives storage diagnostics. Nil discards them.
	Logger *slog.Logger
}

// SQLiteStore is the Storage backed by an SQLite file.
type SQLiteStore struct {
	pool   *sqlitepool.Pool
	logger *slog.Logger
}

var _ Storage = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database at opts.Path and
// initializes the schema.
func OpenSQLite(ctx context.Context, opts SQLiteOptions) (*SQLiteStore, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     opts.Path,
		PoolSize: opts.PoolSize,
		Logger:   logger,
	})
	if err != nil {
		return nil, storageError("open", err)
	}

	store := &SQLiteStore{pool: pool, logger: logger}
	if err := store.Initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the connection pool.
func (s *SQLiteStore) Close() error {
	return s.pool.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.pool.Path()
}

func (s *SQLiteStore) withConn(ctx context.Context, op string, fn func(conn *sqlite.Conn) error) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return storageError(op, err)
	}
	defer s.pool.Put(conn)

	if err := fn(conn); err != nil {
		s.logger.Error("storage operation failed", "op", op, "error", err)
		return storageError(op, err)
	}
	return nil
}

// Initialize creates the table and upgrades tables that predate orderIndex.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	return s.withConn(ctx, "initialize", func(conn *sqlite.Conn) (err error) {
		endTransaction, err := sqlitex.ImmediateTransaction(conn)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer endTransaction(&err)

		if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
		return migrateOrderIndex(conn, s.logger)
	})
}

// migrateOrderIndex adds the orderIndex column to tables created before
// user ordering existed. Those versions listed the newest task first, so
// the backfill keeps that order.
func migrateOrderIndex(conn *sqlite.Conn, logger *slog.Logger) error {
	hasOrderIndex := false
	err := sqlitex.ExecuteTransient(conn, "PRAGMA table_info(todos)", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			if stmt.ColumnText(1) == "orderIndex" {
				hasOrderIndex = true
			}
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("inspect table: %w", err)
	}
	if hasOrderIndex {
		return nil
	}

	logger.Info("adding orderIndex column to legacy task table")
	if err := sqlitex.ExecuteTransient(conn, "ALTER TABLE todos ADD COLUMN orderIndex INTEGER NOT NULL DEFAULT 0", nil); err != nil {
		return fmt.Errorf("add orderIndex column: %w", err)
	}
	const backfill = `
		UPDATE todos
		SET orderIndex = (SELECT COUNT(*) FROM todos AS newer WHERE newer.id > todos.id)
	`
	if err := sqlitex.ExecuteTransient(conn, backfill, nil); err != nil {
		return fmt.Errorf("backfill orderIndex: %w", err)
	}
	return nil
}

// FetchAll returns every task in display order.
func (s *SQLiteStore) FetchAll(ctx context.Context) ([]Task, error) {
	const q = `
		SELECT id, text, COALESCE(description, ''), completed, COALESCE(date, ''),
		       COALESCE(priority, ''), orderIndex
		FROM todos
		ORDER BY orderIndex ASC, id ASC
	`

	tasks := []Task{}
	err := s.withConn(ctx, "fetch all", func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, q, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				tasks = append(tasks, scanTask(stmt))
				return nil
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func scanTask(stmt *sqlite.Stmt) Task {
	priority := Priority(stmt.ColumnText(5))
	if !priority.IsValid() {
		priority = DefaultPriority
	}
	return Task{
		ID:          stmt.ColumnInt64(0),
		Text:        stmt.ColumnText(1),
		Description: stmt.ColumnText(2),
		Completed:   stmt.ColumnInt64(3) != 0,
		Date:        stmt.ColumnText(4),
		Priority:    priority,
		OrderIndex:  stmt.ColumnInt(6),
	}
}

// NextOrderIndex returns MAX(orderIndex)+1, or 0 for an empty table.
func (s *SQLiteStore) NextOrderIndex(ctx context.Context) (int, error) {
	next := 0
	err := s.withConn(ctx, "next order index", func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `SELECT COALESCE(MAX(orderIndex), -1) + 1 FROM todos`, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				next = stmt.ColumnInt(0)
				return nil
			},
		})
	})
	return next, err
}

// Insert stores a new, active task.
func (s *SQLiteStore) Insert(ctx context.Context, t NewTask) (int64, error) {
	const q = `
		INSERT INTO todos (text, description, completed, date, priority, orderIndex)
		VALUES (?, ?, 0, ?, ?, ?)
	`

	var id int64
	err := s.withConn(ctx, "insert", func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, q, &sqlitex.ExecOptions{
			Args: []any{t.Text, t.Description, t.Date, string(t.Priority), t.OrderIndex},
		})
		if err != nil {
			return err
		}
		id = conn.LastInsertRowID()
		return nil
	})
	return id, err
}

// Update rewrites the editable fields of one task.
func (s *SQLiteStore) Update(ctx context.Context, id int64, text, description string, priority Priority) error {
	const q = `UPDATE todos SET text = ?, description = ?, priority = ? WHERE id = ?`

	return s.withConn(ctx, "update", func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, q, &sqlitex.ExecOptions{
			Args: []any{text, description, string(priority), id},
		})
	})
}

// UpdateOrderIndexBatch applies all updates inside one IMMEDIATE transaction.
func (s *SQLiteStore) UpdateOrderIndexBatch(ctx context.Context, updates []OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return s.withConn(ctx, "update order", func(conn *sqlite.Conn) (err error) {
		endTransaction, err := sqlitex.ImmediateTransaction(conn)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer endTransaction(&err)

		for _, update := range updates {
			err = sqlitex.Execute(conn, `UPDATE todos SET orderIndex = ? WHERE id = ?`, &sqlitex.ExecOptions{
				Args: []any{update.OrderIndex, update.ID},
			})
			if err != nil {
				return fmt.Errorf("update task %d: %w", update.ID, err)
			}
		}
		return nil
	})
}

// SetCompleted sets the completion flag.
func (s *SQLiteStore) SetCompleted(ctx context.Context, id int64, completed bool) error {
	value := 0
	if completed {
		value = 1
	}

	return s.withConn(ctx, "set completed", func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `UPDATE todos SET completed = ? WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{value, id},
		})
	})
}

// Delete removes one task.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	return s.withConn(ctx, "delete", func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `DELETE FROM todos WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{id},
		})
	})
}

// DeleteCompleted removes every completed task. A single DELETE statement
// is atomic on its own.
func (s *SQLiteStore) DeleteCompleted(ctx context.Context) error {
	return s.withConn(ctx, "delete completed", func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `DELETE FROM todos WHERE completed = 1`, nil)
	})
}
