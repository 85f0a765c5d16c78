package fastlog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// snapshotTimeLayout is the filename-embedded timestamp format,
// written with microsecond precision and parsed back (ignoring the
// fractional component) for retention decisions.
const snapshotTimeLayout = "2006_01_02T15_04_05"

// RollingKind discriminates a RollingType's retention strategy.
type RollingKind int

const (
	// KeepAll prunes nothing.
	KeepAll RollingKind = iota
	// KeepNum retains the N newest snapshots.
	KeepNum
	// KeepTime retains snapshots younger than a duration.
	KeepTime
)

// RollingType is the retention policy snapshot carried on every
// LogPack. Comparison among snapshots is always by the timestamp
// embedded in their filename.
type RollingType struct {
	Kind RollingKind
	N    int           // meaningful when Kind == KeepNum
	Age  time.Duration // meaningful when Kind == KeepTime
}

// All keeps every rotated snapshot forever.
func All() RollingType { return RollingType{Kind: KeepAll} }

// Keep retains the n newest rotated snapshots.
func Keep(n int) RollingType { return RollingType{Kind: KeepNum, N: n} }

// KeepFor retains rotated snapshots younger than d.
func KeepFor(d time.Duration) RollingType { return RollingType{Kind: KeepTime, Age: d} }

// LogPack is the packer's sole unit of work: a directory, the
// retention policy to apply there, and the just-rotated snapshot that
// is the packer's exclusive input.
type LogPack struct {
	Dir          string
	Rolling      RollingType
	SnapshotPath string
}

// snapshotCandidates lists directory entries that look like rotated
// snapshots: name starts with "temp", is not literally "temp.log".
// Sorted newest-first, since the embedded timestamp sorts
// lexicographically.
func snapshotCandidates(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if n == "temp.log" || !strings.HasPrefix(n, "temp") {
			continue
		}
		names = append(names, n)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names
}

// parseSnapshotTime extracts the embedded timestamp from a rotated
// snapshot's filename. Parsing fails silently (ok=false) on unknown
// formats; such entries are retained by KeepTime rather than pruned.
func parseSnapshotTime(name string) (t time.Time, ok bool) {
	if !strings.HasPrefix(name, "temp") {
		return time.Time{}, false
	}
	s := strings.TrimPrefix(name, "temp")
	s = strings.TrimSuffix(s, ".log")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	t, err := time.ParseInLocation(snapshotTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Apply enumerates dir's rotated snapshots and removes whichever ones
// the policy says to discard. Removal errors (e.g. a concurrent
// operator deleting the same file) are swallowed - retention is
// advisory, never a correctness requirement.
func (r RollingType) Apply(dir string) {
	switch r.Kind {
	case KeepNum:
		names := snapshotCandidates(dir)
		for i := r.N; i < len(names); i++ {
			_ = os.Remove(filepath.Join(dir, names[i]))
		}

	case KeepTime:
		names := snapshotCandidates(dir)
		cutoff := time.Now().Add(-r.Age)
		for _, n := range names {
			t, ok := parseSnapshotTime(n)
			if !ok {
				continue
			}
			if t.Before(cutoff) {
				_ = os.Remove(filepath.Join(dir, n))
			}
		}

	case KeepAll:
		// no-op
	}
}
