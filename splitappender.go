package fastlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/fx-kirin/fast-log/internal/queue"
)

// SplitFileAppender is the size-bounded, self-rotating file appender:
// it appends to a single temp.log until a size threshold (or an
// explicit Flush) triggers rotation into a timestamped snapshot, which
// is then handed off to a background packer goroutine along with the
// retention policy to apply.
//
// The sink worker is the appender's sole caller, so no locking is
// needed around its mutable fields - DoLog is never invoked
// concurrently with itself.
type SplitFileAppender struct {
	maxSplitBytes uint64
	dirPath       string
	file          *os.File
	tempBytes     uint64

	rolling RollingType
	packer  Packer
	packQ   *queue.Unbounded[*LogPack]
}

const tempLogName = "temp.log"

// NewSplitFileAppender constructs a split appender rooted at dirPath,
// which must be non-empty, end in "/", and not end in ".log". The
// directory is created if missing, and a background packer goroutine
// is started bound to a private queue.
func NewSplitFileAppender(dirPath string, maxSplitBytes uint64, rolling RollingType, packer Packer) (*SplitFileAppender, error) {
	if dirPath == "" || !strings.HasSuffix(dirPath, "/") || strings.HasSuffix(dirPath, ".log") {
		return nil, fmt.Errorf("fastlog: split appender dir_path must be non-empty, end in \"/\", e.g. %q", "logs/")
	}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return nil, &IoError{Path: dirPath, Cause: err}
	}

	tempPath := filepath.Join(dirPath, tempLogName)
	f, err := os.OpenFile(tempPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, &IoError{Path: tempPath, Cause: err}
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &IoError{Path: tempPath, Cause: err}
	}
	tempBytes := uint64(fi.Size())
	if _, err := f.Seek(int64(tempBytes), io.SeekStart); err != nil {
		f.Close()
		return nil, &IoError{Path: tempPath, Cause: err}
	}

	a := &SplitFileAppender{
		maxSplitBytes: maxSplitBytes,
		dirPath:       dirPath,
		file:          f,
		tempBytes:     tempBytes,
		rolling:       rolling,
		packer:        packer,
		packQ:         queue.New[*LogPack](),
	}
	go a.runPacker()
	return a, nil
}

// DoLog rotates when the record is a Flush or the size threshold has
// been reached, otherwise appends rec.Formatted. A call that rotates
// successfully writes nothing: when rotation is triggered by size, rec
// itself is not written. If the rotation copy fails, a size-triggered
// call writes rec to the current temp file instead.
func (a *SplitFileAppender) DoLog(rec *Record) error {
	if rec.Command == CommandFlush || a.tempBytes >= a.maxSplitBytes {
		if a.rotate() || rec.Command == CommandFlush {
			return nil
		}
	}

	n, err := a.file.WriteString(rec.Formatted)
	if err != nil {
		return &IoError{Path: a.file.Name(), Cause: err}
	}
	a.tempBytes += uint64(n)
	return nil
}

// rotate seals the current temp.log into a timestamped snapshot,
// enqueues it for packing, and resets temp.log to empty. If the copy
// fails, rotation is aborted and writing continues against the
// existing temp file - no data is ever lost, though the size
// threshold may be exceeded until the next opportunity. It reports
// whether the rotation took place.
func (a *SplitFileAppender) rotate() bool {
	tempPath := filepath.Join(a.dirPath, tempLogName)
	snapshotPath := a.nextSnapshotPath()

	if err := copyFile(tempPath, snapshotPath); err != nil {
		diagLogger().Warn("split appender: rotation copy failed; continuing on current temp file",
			zap.String("dir", a.dirPath), zap.Error(err))
		return false
	}

	a.packQ.Push(&LogPack{
		Dir:          a.dirPath,
		Rolling:      a.rolling,
		SnapshotPath: snapshotPath,
	})

	if err := a.file.Truncate(0); err != nil {
		diagLogger().Warn("split appender: truncate failed", zap.Error(err))
	}
	if _, err := a.file.Seek(0, io.SeekStart); err != nil {
		diagLogger().Warn("split appender: seek failed", zap.Error(err))
	}
	a.tempBytes = 0
	return true
}

// rotateSeq is a process-wide counter used as a suffix when the
// microsecond-stamped snapshot path already exists, i.e. when two
// rotations fall within the same microsecond.
var rotateSeq atomic.Uint64

func (a *SplitFileAppender) nextSnapshotPath() string {
	ts := time.Now().Local().Format(snapshotTimeLayout + ".000000")
	path := filepath.Join(a.dirPath, "temp"+ts+".log")
	if _, err := os.Stat(path); err == nil {
		n := rotateSeq.Add(1)
		path = filepath.Join(a.dirPath, fmt.Sprintf("temp%s-%d.log", ts, n))
	}
	return path
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// runPacker is the packer goroutine: receive one LogPack, prune old
// snapshots per its retention policy, then hand the fresh snapshot to
// the configured Packer, retrying up to Packer.Retry() additional
// times on failure. All failures here are logged out-of-band and
// swallowed - the snapshot is left on disk for manual recovery.
func (a *SplitFileAppender) runPacker() {
	for {
		pack, ok := a.packQ.Pop()
		if !ok {
			return
		}
		pack.Rolling.Apply(pack.Dir)
		a.pack(pack)
	}
}

func (a *SplitFileAppender) pack(pack *LogPack) {
	f, err := os.Open(pack.SnapshotPath)
	if err != nil {
		diagLogger().Warn("split appender: reopen snapshot for packing failed",
			zap.String("path", pack.SnapshotPath), zap.Error(err))
		return
	}
	defer f.Close()

	remove, err := a.packer.Pack(f, pack.SnapshotPath)
	attempts := 1
	for err != nil && attempts <= a.packer.Retry() {
		attempts++
		if _, serr := f.Seek(0, io.SeekStart); serr != nil {
			break
		}
		remove, err = a.packer.Pack(f, pack.SnapshotPath)
	}
	if err != nil {
		diagLogger().Warn("split appender: pack failed after retries",
			zap.String("path", pack.SnapshotPath), zap.Int("attempts", attempts), zap.Error(&PackerError{Cause: err}))
		return
	}

	if remove {
		if err := os.Remove(pack.SnapshotPath); err != nil {
			diagLogger().Warn("split appender: remove packed snapshot failed",
				zap.String("path", pack.SnapshotPath), zap.Error(err))
		}
	}
}
