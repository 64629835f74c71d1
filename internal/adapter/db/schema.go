package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/config"
)

const mysqlTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
  seq BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
  id CHAR(36) NOT NULL,
  title VARCHAR(255) NOT NULL,
  description TEXT NOT NULL,
  status ENUM('To Do', 'In Progress', 'Done') NOT NULL DEFAULT 'To Do',
  bg_color VARCHAR(7) NOT NULL DEFAULT '#ffffff',
  due_date DATE NULL,
  details TEXT NOT NULL,
  created_at DATETIME(6) NOT NULL,
  updated_at DATETIME(6) NOT NULL,
  UNIQUE KEY uq_tasks_id (id),
  CONSTRAINT chk_tasks_title CHECK (CHAR_LENGTH(TRIM(title)) > 0)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
`

const sqliteTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL CHECK (length(trim(title)) > 0),
  description TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'To Do' CHECK (status IN ('To Do', 'In Progress', 'Done')),
  bg_color TEXT NOT NULL DEFAULT '#ffffff',
  due_date DATE NULL,
  details TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL
);
`

// EnsureSchema creates the tasks table for the connection's driver if it does not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	var ddl string
	switch db.DriverName() {
	case config.DriverMySQL:
		ddl = mysqlTasksTable
	case config.DriverSQLite:
		ddl = sqliteTasksTable
	default:
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}
	return nil
}
