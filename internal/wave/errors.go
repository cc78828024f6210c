package wave

import "errors"

var (
	// ErrSetup marks failures that prevent the frame loop from starting:
	// missing context, shader compile/link errors, buffer allocation, attribute lookup.
	ErrSetup = errors.New("renderer setup failed")

	// ErrUniformNotFound is returned by a Pipeline when a named uniform is absent.
	// The renderer tolerates it and skips the upload for that frame.
	ErrUniformNotFound = errors.New("uniform not found")

	// ErrStarted is returned by Start on a renderer that is running or cancelled.
	ErrStarted = errors.New("renderer already started")
)
