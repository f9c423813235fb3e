package filesystem

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreMatcher decides which walked paths stay out of an archive
type IgnoreMatcher struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	glob    string
	dirOnly bool
	// basename patterns have no slash and match at any depth;
	// a leading slash anchors a pattern to the source root
	basename bool
}

// NewIgnoreMatcher compiles patterns; blank lines and # comments are skipped
func NewIgnoreMatcher(lines []string) (*IgnoreMatcher, error) {
	m := &IgnoreMatcher{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p := ignorePattern{}
		if strings.HasSuffix(line, "/") {
			p.dirOnly = true
			line = strings.TrimRight(line, "/")
		}
		anchored := strings.HasPrefix(line, "/")
		line = strings.TrimPrefix(line, "/")
		if line == "" {
			continue
		}
		if !doublestar.ValidatePattern(line) {
			return nil, fmt.Errorf("invalid ignore pattern %q", line)
		}
		p.glob = line
		p.basename = !anchored && !strings.Contains(line, "/")
		m.patterns = append(m.patterns, p)
	}
	return m, nil
}

// LoadIgnoreFile reads patterns from path; a missing file ignores nothing
func LoadIgnoreFile(path string) (*IgnoreMatcher, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &IgnoreMatcher{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewIgnoreMatcher(lines)
}

// Match reports whether rel (slash separated) is ignored
func (m *IgnoreMatcher) Match(rel string, isDir bool) bool {
	if m == nil {
		return false
	}
	for _, p := range m.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		if doublestar.MatchUnvalidated(p.glob, rel) {
			return true
		}
		if p.basename && doublestar.MatchUnvalidated(p.glob, path.Base(rel)) {
			return true
		}
	}
	return false
}

// Len returns the number of active patterns
func (m *IgnoreMatcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.patterns)
}
