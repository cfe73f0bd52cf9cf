package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ExpandPath expands environment variables and a leading ~ in a user
// supplied path. On Windows %VAR% references and ~\ are expanded as well.
// Paths that cannot be expanded are returned as far as expansion got.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = expandPercentVars(p)
	}

	rest, ok := homeRelative(p)
	if !ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}

// homeRelative reports whether p starts at the home directory and returns
// the remainder.
func homeRelative(p string) (string, bool) {
	switch {
	case p == "~":
		return "", true
	case strings.HasPrefix(p, "~/"):
		return p[2:], true
	case runtime.GOOS == "windows" && strings.HasPrefix(p, `~\`):
		return p[2:], true
	}
	return "", false
}

// expandPercentVars replaces %NAME% with the variable's value. Unknown
// names and a lone % are kept literally.
func expandPercentVars(p string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(p, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(p[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1
		name := p[start+1 : end]
		b.WriteString(p[:start])
		if val, ok := os.LookupEnv(name); ok && name != "" {
			b.WriteString(val)
			p = p[end+1:]
			continue
		}
		// keep the opening % and rescan from the closing one
		b.WriteString(p[start:end])
		p = p[end:]
	}
	b.WriteString(p)
	return b.String()
}
