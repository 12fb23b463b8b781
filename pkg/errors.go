package disp

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks unusable run configuration: missing lists,
	// zero telescopes, inconsistent telescope masks.
	ErrConfiguration = errors.New("configuration error")
	// ErrTrainFractionTooSmall is returned when too few events remain for training.
	ErrTrainFractionTooSmall = errors.New("train fraction too small for this many events")
	// ErrTrainFractionTooLarge is returned when too few events remain for testing.
	ErrTrainFractionTooLarge = errors.New("train fraction too large for this many events")
	ErrUnknownTarget         = errors.New("unknown training target")
	// ErrMissingDataset is returned by LoadExisting when the dataset file or
	// the per-type table is absent.
	ErrMissingDataset = errors.New("training dataset not found")
	ErrInvalidRecID   = errors.New("invalid reconstruction method")
	ErrMisaligned     = errors.New("event streams are not aligned")
)

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrOpenTable represents an error when opening a table inside a file.
type ErrOpenTable struct {
	Filename  string
	TableName string
	Err       error
}

func (e *ErrOpenTable) Error() string {
	return fmt.Sprintf("error opening table %q in %q: %v", e.TableName, e.Filename, e.Err)
}

func (e *ErrOpenTable) Unwrap() error {
	return e.Err
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error {
	return e.Err
}
