package fastlog

import "os"

// Packer is a pluggable post-rotation transformer, typically a
// compressor, applied to a just-sealed snapshot file on the packer
// thread. Concrete implementations (zip, lz4, ...) are an external
// collaborator of this package; only the contract is specified here.
type Packer interface {
	// Pack consumes an opened, read-only handle to the snapshot at
	// path and produces whatever archival artifact it likes alongside
	// it. It returns true if the caller should delete the snapshot
	// (the packer has taken ownership of its contents, e.g. by
	// compressing them into a new file), false if the snapshot should
	// be left in place.
	Pack(f *os.File, path string) (removeSource bool, err error)

	// Name is an extension tag, e.g. "zip", used only for packers'
	// own naming conventions; this package never inspects it.
	Name() string

	// Retry is the number of additional attempts after the first
	// failure. 0 means "do not retry".
	Retry() int
}

// NoRetry is embeddable by Packer implementations that never want to
// retry, saving them a boilerplate method.
type NoRetry struct{}

// Retry always returns 0.
func (NoRetry) Retry() int { return 0 }
