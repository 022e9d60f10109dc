package sqlite

import (
	"context"
	"database/sql"

	"timeflow/internal/errors"
)

// HandlePersistenceError converts database errors to structured app errors
func HandlePersistenceError(operation string, err error) error {
	return errors.NewPersistenceError(operation, err)
}

// ValidateRowsAffected checks if a database operation affected the expected number of rows
func ValidateRowsAffected(result sql.Result, entityType string, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandlePersistenceError("get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError(entityType, id)
	}
	return nil
}

// Execute executes a statement that is not expected to match existing rows
func Execute(ctx context.Context, db *sql.DB, query string, args ...interface{}) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return HandlePersistenceError("execute query", err)
	}
	return nil
}

// ExecuteWithRowsAffected executes a statement and validates that rows were affected
func ExecuteWithRowsAffected(ctx context.Context, db *sql.DB, query string, entityType string, id string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return HandlePersistenceError("execute query", err)
	}

	return ValidateRowsAffected(result, entityType, id)
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandlePersistenceError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandlePersistenceError("scan "+entityType, err)
	}

	return results, nil
}
