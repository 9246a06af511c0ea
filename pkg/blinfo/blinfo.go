// SPDX-License-Identifier: MPL-2.0

package blinfo

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// EntryFile is the add-on entry point Blender evaluates on installation.
const EntryFile = "__init__.py"

// ErrNotFound is returned when the source contains no bl_info assignment.
// Callers can check for it with errors.Is().
var ErrNotFound = errors.New("bl_info dictionary not found")

type (
	// Version is a semantic version triple as Blender stores it: (major, minor, patch).
	Version [3]int

	// Metadata is the parsed bl_info record. String fields not present in
	// the dict are left empty; Validate reports which ones are required.
	Metadata struct {
		// Name is the human-readable add-on name shown in preferences.
		Name string
		// Author is the add-on author string.
		Author string
		// Version is the add-on's semantic version triple.
		Version Version
		// Blender is the minimum supported host application version.
		Blender Version
		// Location describes where the add-on surfaces in the UI.
		Location string
		// Description is the one-line summary shown in preferences.
		Description string
		// Category is the add-on category Blender files it under.
		Category string
		// Support is the support level (e.g., "COMMUNITY", "OFFICIAL").
		Support string
		// Warning is an optional caution message shown in preferences.
		Warning string
		// DocURL is an optional link to documentation.
		DocURL string

		hasVersion bool
		hasBlender bool
	}
)

// String formats the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// IsZero reports whether the version is the zero triple.
func (v Version) IsZero() bool {
	return v == Version{}
}

// ParseFile reads path and parses the bl_info assignment from it.
func ParseFile(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	meta, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return meta, nil
}

// Parse extracts and parses the top-level bl_info dict from Python source.
func Parse(src []byte) (*Metadata, error) {
	body, err := extractDict(string(src))
	if err != nil {
		return nil, err
	}

	entries, err := parseEntries(body)
	if err != nil {
		return nil, fmt.Errorf("invalid bl_info: %w", err)
	}

	meta := &Metadata{}
	for key, value := range entries {
		switch key {
		case "name":
			meta.Name, err = wantString(key, value)
		case "author":
			meta.Author, err = wantString(key, value)
		case "version":
			meta.Version, err = wantVersion(key, value)
			meta.hasVersion = err == nil
		case "blender":
			meta.Blender, err = wantVersion(key, value)
			meta.hasBlender = err == nil
		case "location":
			meta.Location, err = wantString(key, value)
		case "description":
			meta.Description, err = wantString(key, value)
		case "category":
			meta.Category, err = wantString(key, value)
		case "support":
			meta.Support, err = wantString(key, value)
		case "warning":
			meta.Warning, err = wantString(key, value)
		case "doc_url", "wiki_url":
			meta.DocURL, err = wantString(key, value)
		default:
			// Unknown keys are tolerated; Blender ignores them too.
		}
		if err != nil {
			return nil, fmt.Errorf("invalid bl_info: %w", err)
		}
	}

	return meta, nil
}

// Validate checks the contract downstream installation tooling expects.
// It returns one message per missing or malformed field; an empty slice
// means the record is complete.
func (m *Metadata) Validate() []string {
	var problems []string

	if m.Name == "" {
		problems = append(problems, `missing required field "name"`)
	}
	if !m.hasVersion {
		problems = append(problems, `missing required field "version" (int triple)`)
	}
	if !m.hasBlender {
		problems = append(problems, `missing required field "blender" (minimum host version)`)
	}
	if m.Category == "" {
		problems = append(problems, `missing required field "category"`)
	}

	return problems
}

// Recommend reports fields that are not strictly required but that
// installation tooling and users expect to see in preferences.
func (m *Metadata) Recommend() []string {
	var hints []string

	if m.Author == "" {
		hints = append(hints, `missing recommended field "author"`)
	}
	if m.Location == "" {
		hints = append(hints, `missing recommended field "location"`)
	}
	if m.Description == "" {
		hints = append(hints, `missing recommended field "description"`)
	}

	return hints
}

func wantString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	return s, nil
}

func wantVersion(key string, v any) (Version, error) {
	tuple, ok := v.([]int)
	if !ok || len(tuple) == 0 || len(tuple) > 3 {
		return Version{}, fmt.Errorf("field %q must be a tuple of up to three integers", key)
	}
	var ver Version
	copy(ver[:], tuple)
	return ver, nil
}

// extractDict locates the bl_info assignment and returns the text between
// its balanced outer braces, with comments stripped.
func extractDict(src string) (string, error) {
	idx := findAssignment(src)
	if idx < 0 {
		return "", ErrNotFound
	}

	// Skip past "bl_info", whitespace, and the "=" that findAssignment
	// already matched.
	rest := src[idx+len("bl_info"):]
	rest = strings.TrimLeft(rest, " \t")
	rest = strings.TrimLeft(rest[1:], " \t\r\n")
	if !strings.HasPrefix(rest, "{") {
		return "", fmt.Errorf("bl_info must be assigned a dict literal")
	}

	depth := 0
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return rest[1:i], nil
			}
		case '#':
			// Comment runs to end of line.
			for i < len(rest) && rest[i] != '\n' {
				i++
			}
		case '"', '\'':
			end, err := skipString(rest, i)
			if err != nil {
				return "", err
			}
			i = end
		}
	}

	return "", fmt.Errorf("bl_info dict is not closed")
}

// findAssignment returns the offset of the top-level "bl_info =" token,
// i.e. one that starts a line. Occurrences inside strings or comments
// elsewhere in the file ("if 'bl_info' in content") must not match, and
// neither may longer identifiers sharing the prefix (bl_info_defaults);
// the scan keeps going past those.
func findAssignment(src string) int {
	offset := 0
	for _, line := range strings.SplitAfter(src, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if isAssignment(trimmed) {
			return offset + len(line) - len(trimmed)
		}
		offset += len(line)
	}
	return -1
}

// isAssignment reports whether the line starts with the exact token
// "bl_info" followed by "=".
func isAssignment(trimmed string) bool {
	rest, ok := strings.CutPrefix(trimmed, "bl_info")
	if !ok {
		return false
	}
	rest = strings.TrimLeft(rest, " \t")
	return strings.HasPrefix(rest, "=") && !strings.HasPrefix(rest, "==")
}

// skipString advances past the string literal starting at i and returns the
// index of its closing quote.
func skipString(s string, i int) (int, error) {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j, nil
		case '\n':
			return 0, fmt.Errorf("unterminated string literal in bl_info")
		}
	}
	return 0, fmt.Errorf("unterminated string literal in bl_info")
}

// parseEntries parses "key": value pairs from the dict body.
func parseEntries(body string) (map[string]any, error) {
	entries := make(map[string]any)
	p := &parser{src: body}

	for {
		p.skipSpace()
		if p.done() {
			return entries, nil
		}

		key, err := p.stringLiteral()
		if err != nil {
			return nil, err
		}

		p.skipSpace()
		if !p.consume(':') {
			return nil, fmt.Errorf("expected ':' after key %q", key)
		}

		p.skipSpace()
		value, err := p.value()
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", key, err)
		}
		entries[key] = value

		p.skipSpace()
		if !p.consume(',') && !p.done() {
			return nil, fmt.Errorf("expected ',' after value for key %q", key)
		}
	}
}

type parser struct {
	src string
	pos int
}

func (p *parser) done() bool {
	return p.pos >= len(p.src)
}

func (p *parser) skipSpace() {
	for !p.done() {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		case '#':
			for !p.done() && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *parser) consume(c byte) bool {
	if !p.done() && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) stringLiteral() (string, error) {
	if p.done() || (p.src[p.pos] != '"' && p.src[p.pos] != '\'') {
		return "", fmt.Errorf("expected string literal at offset %d", p.pos)
	}
	quote := p.src[p.pos]
	var sb strings.Builder
	for i := p.pos + 1; i < len(p.src); i++ {
		c := p.src[i]
		switch c {
		case '\\':
			if i+1 < len(p.src) {
				i++
				sb.WriteByte(unescape(p.src[i]))
			}
		case quote:
			p.pos = i + 1
			return sb.String(), nil
		case '\n':
			return "", fmt.Errorf("unterminated string literal")
		default:
			sb.WriteByte(c)
		}
	}
	return "", fmt.Errorf("unterminated string literal")
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}

// value parses a string, integer tuple, integer, or boolean.
func (p *parser) value() (any, error) {
	if p.done() {
		return nil, fmt.Errorf("unexpected end of dict")
	}

	switch c := p.src[p.pos]; {
	case c == '"' || c == '\'':
		return p.stringLiteral()
	case c == '(':
		return p.tuple()
	case c >= '0' && c <= '9' || c == '-':
		return p.integer()
	case strings.HasPrefix(p.src[p.pos:], "True"):
		p.pos += len("True")
		return true, nil
	case strings.HasPrefix(p.src[p.pos:], "False"):
		p.pos += len("False")
		return false, nil
	default:
		return nil, fmt.Errorf("unsupported literal at offset %d", p.pos)
	}
}

func (p *parser) tuple() ([]int, error) {
	p.pos++ // consume '('
	var elems []int
	for {
		p.skipSpace()
		if p.consume(')') {
			return elems, nil
		}
		n, err := p.integer()
		if err != nil {
			return nil, err
		}
		elems = append(elems, n)
		p.skipSpace()
		if p.consume(')') {
			return elems, nil
		}
		if !p.consume(',') {
			return nil, fmt.Errorf("expected ',' or ')' in tuple")
		}
	}
}

func (p *parser) integer() (int, error) {
	start := p.pos
	p.consume('-')
	for !p.done() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start || (p.src[start] == '-' && p.pos == start+1) {
		return 0, fmt.Errorf("expected integer at offset %d", start)
	}

	n := 0
	neg := p.src[start] == '-'
	digits := p.src[start:p.pos]
	if neg {
		digits = digits[1:]
	}
	for i := 0; i < len(digits); i++ {
		n = n*10 + int(digits[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}
