package export

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnknownHandle is returned when a handle was never acquired or is already released.
	ErrUnknownHandle = errors.New("unknown export handle")

	// ErrEmptyFilename is returned when Acquire is called without a filename.
	ErrEmptyFilename = errors.New("filename must not be empty")
)

// Handle identifies one acquired export.
type Handle struct {
	// ID is unique per acquisition.
	ID string `json:"handle"`
	// Filename is the name the document is delivered under.
	Filename string `json:"filename"`
	// Location is where the data can be fetched from: a file path or a download id.
	Location string `json:"location"`
	// Size is the number of bytes delivered.
	Size int `json:"size"`
}

// Sink is a delivery target for exported documents.
type Sink interface {
	// Acquire stores data under filename and returns a handle to it.
	Acquire(ctx context.Context, data []byte, filename string) (Handle, error)
	// Release frees whatever Acquire allocated.
	Release(ctx context.Context, handle Handle) error
}

// Deliver acquires data on sink, passes the handle to consume and always releases it.
// A release failure is joined with the consume error.
func Deliver(
	ctx context.Context,
	sink Sink,
	data []byte,
	filename string,
	consume func(Handle) error,
) (err error) {
	handle, err := sink.Acquire(ctx, data, filename)
	if err != nil {
		return fmt.Errorf("acquire %q: %w", filename, err)
	}

	defer func() {
		// The release must run even when ctx is already done.
		releaseErr := sink.Release(context.WithoutCancel(ctx), handle)
		if releaseErr != nil {
			err = errors.Join(err, fmt.Errorf("release %q: %w", filename, releaseErr))
		}
	}()

	if consume == nil {
		return nil
	}

	return consume(handle)
}
