package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// HandleDatabaseError wraps a database error, classifying constraint
// violations onto the application error taxonomy first.
func HandleDatabaseError(operation string, err error) error {
	if classified := classifyConstraintError(err); classified != nil {
		return classified
	}
	return fmt.Errorf("database operation failed: %s: %w", operation, err)
}

// Execute runs a statement and classifies any failure
func Execute(ctx context.Context, db *sql.DB, query string, args ...interface{}) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return HandleDatabaseError("execute query", err)
	}
	return nil
}

// QuerySingle executes a query that returns a single row and scans it.
// sql.ErrNoRows is passed through untouched so callers can decide
// whether absence is an error.
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), entityType string, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}

	return results, nil
}
