package export

import "context"

// Driver persists request documents into a host environment. The engine
// never decides where artifacts live or what they look like on disk;
// both are the Driver's concern.
//
// The existence checks let calling code decide collision policy (skip,
// overwrite, rename) before an export run. The engine itself never calls
// them.
type Driver interface {
	// Materialize persists one request document. Returning an error
	// marks the endpoint as failed; the export run continues.
	Materialize(ctx context.Context, req Request) error

	// DirExists reports whether a collection directory already exists
	// in the target environment.
	DirExists(path string) bool

	// FileExists reports whether an artifact already exists in the
	// target environment.
	FileExists(path string) bool
}
