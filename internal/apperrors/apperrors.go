package apperrors

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

type AppError struct {
	Code    int
	Message string
	Err     error
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StorageError records which table and repository operation a failed query
// came from. Err is ErrNotFound when the row does not exist.
type StorageError struct {
	Table     string
	Operation string
	Err       error
}

func NewStorageError(table, operation string, err error) *StorageError {
	return &StorageError{
		Table:     table,
		Operation: operation,
		Err:       err,
	}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s (table %q): %v", e.Operation, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
