package storage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingColumns    = errors.New("dataset is missing required columns")
	ErrUnsupportedSource = errors.New("unsupported dataset source")
	ErrUnknownProfile    = errors.New("unknown column profile")
	ErrEmptyDataset      = errors.New("dataset has no header row")
)

// SchemaError reports a dataset whose columns do not satisfy the selected
// profile. It is a fatal startup condition.
type SchemaError struct {
	Source  string
	Profile string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: source %q, profile %q: missing %s",
		ErrMissingColumns.Error(), e.Source, e.Profile, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrMissingColumns
}
