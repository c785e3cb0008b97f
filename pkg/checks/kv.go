package checks

import "strings"

// KV is one parsed key=value line, the key already split on dots.
type KV struct {
	Key   []string
	Value string
}

// SplitKV parses the key=value lines of a section.  Blank lines and lines
// without a "=" are skipped; values keep any "=" they contain.
func SplitKV(lines []string) []KV {
	out := make([]KV, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		out = append(out, KV{
			Key:   strings.Split(line[:idx], "."),
			Value: line[idx+1:],
		})
	}
	return out
}

// SplitLine splits one key=value line.  ok is false for blank or malformed
// lines; values keep any "=" they contain.
func SplitLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	idx := strings.Index(line, "=")
	if idx <= 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// TrimPercent strips a trailing "%" so percentage values parse as floats.
func TrimPercent(s string) string {
	return strings.TrimSuffix(s, "%")
}
