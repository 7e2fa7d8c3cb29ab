package port

import (
	"context"
	"io"
)

// UploadInput describes an object to store.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
}

// UploadOutput describes a stored object.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage defines the contract for archiving generated report files.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
}
