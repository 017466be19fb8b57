package service

import "errors"

var (
	ErrDeedNotFound       = errors.New("deed not found")
	ErrNoFieldsExtracted  = errors.New("no fields could be extracted from the document")
	ErrDocumentUnreadable = errors.New("document could not be read")
)
