package service

import "errors"

var (
	ErrNoFile          = errors.New("no file provided")
	ErrEmptyFilename   = errors.New("no selected file")
	ErrNoText          = errors.New("no text found")
	ErrMissingFileName = errors.New("missing file_name parameter")
)
