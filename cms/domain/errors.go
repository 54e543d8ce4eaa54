package domain

import "errors"

var (
	// ErrInvalidImage marks an upload that is empty or cannot be decoded.
	ErrInvalidImage = errors.New("invalid image")
	// ErrUnsupportedSource marks a source the editor cannot load.
	ErrUnsupportedSource = errors.New("unsupported source")
	// ErrIncompleteCrop marks a save attempted before a crop was committed.
	ErrIncompleteCrop = errors.New("no crop region committed")
	// ErrProcessing marks a failure in any pipeline stage.
	ErrProcessing = errors.New("image processing failed")
	// ErrNotFound marks an operation on an unknown id.
	ErrNotFound = errors.New("not found")
	// ErrIO marks a registry or blob read/write failure.
	ErrIO = errors.New("storage failure")
)
