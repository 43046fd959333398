package storage

import "errors"

const (
	FileMode0644 = 0o644
	FileMode0755 = 0o755
)

const (
	// TableExt is the extension of a table file inside the data directory.
	TableExt = ".tbl"

	nullToken  = "NULL"
	fieldSep   = '|'
	columnSep  = ","
	typeSep    = ":"
	escapeChar = '\\'
)

var (
	ErrBadFormat = errors.New("storage: malformed table file")
	ErrStorageIO = errors.New("storage: I/O error")
)
