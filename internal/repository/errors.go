package repository

import "fmt"

// DuplicateBatchError is raised when attempting to save a batch with an existing ID
type DuplicateBatchError struct {
	BatchID string
	Message string
}

func (e *DuplicateBatchError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Batch with ID '%s' already exists", e.BatchID)
}

func NewDuplicateBatchError(batchID string, message string) *DuplicateBatchError {
	if message == "" {
		message = fmt.Sprintf("Batch with ID '%s' already exists", batchID)
	}
	return &DuplicateBatchError{
		BatchID: batchID,
		Message: message,
	}
}
