package sdkbuild

import (
	"bufio"
	"bytes"
	"fmt"
	"go/format"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var defineRE = regexp.MustCompile(`^\s*#\s*define\s+([A-Za-z_][A-Za-z0-9_]*)\s+(.+?)\s*$`)

// Constant is one #define picked up from a header.
type Constant struct {
	Name  string
	Value string
}

// ScanConstants returns the #define lines of header whose name matches
// allow and whose value is an integer or string literal. A later definition
// of the same name replaces an earlier one.
func ScanConstants(header io.Reader, allow *Allowlist) ([]Constant, error) {
	seen := make(map[string]int)
	var out []Constant

	sc := bufio.NewScanner(header)
	for sc.Scan() {
		m := defineRE.FindStringSubmatch(sc.Text())
		if m == nil || !allow.Match(m[1]) {
			continue
		}
		value, ok := literal(m[2])
		if !ok {
			continue
		}
		if i, dup := seen[m[1]]; dup {
			out[i].Value = value
			continue
		}
		seen[m[1]] = len(out)
		out = append(out, Constant{Name: m[1], Value: value})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("sdkbuild: scan header: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// literal normalizes a C literal to Go syntax. Trailing comments,
// parentheses and integer suffixes are dropped.
func literal(v string) (string, bool) {
	if i := strings.Index(v, "//"); i >= 0 {
		v = v[:i]
	}
	if i := strings.Index(v, "/*"); i >= 0 {
		v = v[:i]
	}
	v = strings.TrimSpace(v)
	for len(v) > 1 && v[0] == '(' && v[len(v)-1] == ')' {
		v = strings.TrimSpace(v[1 : len(v)-1])
	}
	if s, err := strconv.Unquote(v); err == nil && v[0] == '"' {
		return strconv.Quote(s), true
	}
	v = strings.TrimRight(v, "uUlL")
	if _, err := strconv.ParseInt(v, 0, 64); err == nil {
		return v, true
	}
	if _, err := strconv.ParseUint(v, 0, 64); err == nil {
		return v, true
	}
	return "", false
}

// GenerateConstants renders a gofmt'd Go file in package pkg holding the
// header constants that match patterns.
func GenerateConstants(header io.Reader, patterns []string, pkg string) ([]byte, error) {
	allow, err := NewAllowlist(patterns)
	if err != nil {
		return nil, fmt.Errorf("sdkbuild: allowlist: %w", err)
	}
	consts, err := ScanConstants(header, allow)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by chip-build. DO NOT EDIT.\n\npackage %s\n\n", pkg)
	if len(consts) > 0 {
		buf.WriteString("const (\n")
		for _, c := range consts {
			fmt.Fprintf(&buf, "%s = %s\n", c.Name, c.Value)
		}
		buf.WriteString(")\n")
	}
	return format.Source(buf.Bytes())
}
