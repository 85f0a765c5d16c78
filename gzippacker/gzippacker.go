// Package gzippacker is a reference fastlog.Packer built on
// compress/gzip, in the same spirit as the teacher package's own
// built-in gzip log rotation. Concrete compressors are an external
// collaborator of the core pipeline; this package exists as a ready
// default for callers who do not want to bring their own.
package gzippacker

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// Packer gzip-compresses a rotated snapshot into "<path>.gz" at the
// configured compression level, then tells the caller to remove the
// original snapshot.
type Packer struct {
	// Level is passed to gzip.NewWriterLevel; zero uses
	// gzip.DefaultCompression.
	Level int

	retries int
}

// New returns a Packer retrying up to retries additional times on
// failure.
func New(retries int) *Packer {
	return &Packer{retries: retries}
}

// Name returns the archival extension this packer produces.
func (Packer) Name() string { return "gz" }

// Retry returns the configured retry count.
func (p Packer) Retry() int { return p.retries }

// Pack writes path+".gz" from f's contents and reports that the
// source snapshot should be removed once that succeeds.
func (p Packer) Pack(f *os.File, path string) (bool, error) {
	dst := path + ".gz"
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return false, fmt.Errorf("gzippacker: create %s: %w", dst, err)
	}

	level := p.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}
	gw, err := gzip.NewWriterLevel(out, level)
	if err != nil {
		out.Close()
		return false, fmt.Errorf("gzippacker: new writer: %w", err)
	}

	if _, err := io.Copy(gw, f); err != nil {
		gw.Close()
		out.Close()
		os.Remove(dst)
		return false, fmt.Errorf("gzippacker: compress %s: %w", path, err)
	}
	if err := gw.Close(); err != nil {
		out.Close()
		os.Remove(dst)
		return false, fmt.Errorf("gzippacker: close gzip writer: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return false, fmt.Errorf("gzippacker: close %s: %w", dst, err)
	}
	return true, nil
}
