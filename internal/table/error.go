package table

import "errors"

// Error definitions for the table package.
var (
	ErrNoColumns       = errors.New("table has no columns")
	ErrRowWidth        = errors.New("row width does not match column count")
	ErrColumnLength    = errors.New("column length does not match row count")
	ErrDuplicateColumn = errors.New("column already exists")
	ErrNotRecordSet    = errors.New("json value is not a record set")
	ErrMalformedJSON   = errors.New("malformed json")
)
