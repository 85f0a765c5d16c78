package fastlog

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Size is a byte count that unmarshals from the abstract KB/MB/GB
// units the spec describes; the appender itself only ever needs the
// plain byte count via uint64(Size).
type Size uint64

const (
	sizeKB Size = 1 << (10 * (iota + 1))
	sizeMB
	sizeGB
)

// ParseSize parses strings like "512KB", "10MB", "1GB", or a bare
// integer (bytes). It is case-insensitive and tolerates surrounding
// whitespace.
func ParseSize(s string) (Size, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)

	unit := Size(1)
	switch {
	case strings.HasSuffix(upper, "GB"):
		unit, s = sizeGB, s[:len(s)-2]
	case strings.HasSuffix(upper, "MB"):
		unit, s = sizeMB, s[:len(s)-2]
	case strings.HasSuffix(upper, "KB"):
		unit, s = sizeKB, s[:len(s)-2]
	case strings.HasSuffix(upper, "B"):
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("fastlog: invalid size %q: %w", s, err)
	}
	return Size(n) * unit, nil
}

// UnmarshalYAML lets Size fields appear as quoted strings ("10MB") in
// a YAML config document.
func (sz *Size) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseSize(s)
	if err != nil {
		return err
	}
	*sz = parsed
	return nil
}

// RollingSpec is RollingType's YAML-friendly counterpart: exactly one
// of Num or Age should be set, selecting KeepNum/KeepTime; neither set
// means KeepAll.
type RollingSpec struct {
	Num int           `yaml:"keep_num,omitempty"`
	Age time.Duration `yaml:"keep_age,omitempty"`
}

// Resolve converts the spec into the RollingType the split appender
// actually consumes.
func (r RollingSpec) Resolve() RollingType {
	switch {
	case r.Num > 0:
		return Keep(r.Num)
	case r.Age > 0:
		return KeepFor(r.Age)
	default:
		return All()
	}
}

// SplitLogConfig is a declarative, file-loadable description of an
// InitSplitLog call - the shape an application's own config file
// would typically embed under a "logging:" key.
type SplitLogConfig struct {
	Dir      string      `yaml:"dir"`
	MaxTemp  Size        `yaml:"max_temp_size"`
	Rolling  RollingSpec `yaml:"rolling"`
	Level    string      `yaml:"level"`
	Console  bool        `yaml:"console"`
}

// LoadSplitLogConfig reads and parses a YAML document at path into a
// SplitLogConfig.
func LoadSplitLogConfig(path string) (*SplitLogConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &IoError{Path: path, Cause: err}
	}
	var cfg SplitLogConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("fastlog: parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// ParseLevel maps a config-file level name onto a Level, matching the
// spec's five named priorities case-insensitively.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return Error, true
	case "WARN", "WARNING":
		return Warn, true
	case "INFO":
		return Info, true
	case "DEBUG":
		return Debug, true
	case "TRACE":
		return Trace, true
	default:
		return 0, false
	}
}
