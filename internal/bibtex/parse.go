// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex reads and writes BibTeX catalogues. It keeps the order of
// entries and fields, expands @string and month macros, and carries the YAML
// front matter that static-site bibliographies put at the top of the file.
package bibtex

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibcheck/pkg/types"
)

// ErrSyntax is wrapped by every ParseError.
var ErrSyntax = errors.New("bibtex syntax error")

// ParseError reports malformed input with the line it was found on.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

// File is a parsed catalogue.
type File struct {
	// FrontMatter is the raw block between the leading "---" lines,
	// delimiters included, or empty when the file has none.
	FrontMatter string

	Records []types.Record
}

// Meta decodes the front matter. A file without front matter, or with an
// empty block, yields an empty map.
func (f *File) Meta() (map[string]any, error) {
	meta := map[string]any{}
	body := strings.TrimSpace(strings.Trim(strings.TrimSpace(f.FrontMatter), "-"))
	if body == "" {
		return meta, nil
	}
	if err := yaml.Unmarshal([]byte(body), &meta); err != nil {
		return nil, fmt.Errorf("decoding front matter: %w", err)
	}
	return meta, nil
}

// monthMacros are the predefined month strings, expanded to full names.
var monthMacros = map[string]string{
	"jan": "January", "feb": "February", "mar": "March", "apr": "April",
	"may": "May", "jun": "June", "jul": "July", "aug": "August",
	"sep": "September", "oct": "October", "nov": "November", "dec": "December",
}

// ReadFile parses the catalogue at path.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	file, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return file, nil
}

// Parse reads a catalogue. @comment and @preamble entries are skipped; text
// between entries is ignored.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibtex: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	file := &File{}
	front, rest, line := splitFrontMatter(string(data))
	file.FrontMatter = front

	p := &parser{src: rest, line: line, macros: make(map[string]string)}
	for k, v := range monthMacros {
		p.macros[k] = v
	}
	for {
		rec, ok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		file.Records = append(file.Records, rec)
	}
	return file, nil
}

// splitFrontMatter separates a leading "---" block from the body. It
// returns the line number the body starts on.
func splitFrontMatter(s string) (front, body string, line int) {
	if !strings.HasPrefix(s, "---") {
		return "", s, 1
	}
	first := strings.IndexByte(s, '\n')
	if first < 0 || strings.TrimSpace(s[:first]) != "---" {
		return "", s, 1
	}
	pos := first + 1
	for pos <= len(s) {
		end := strings.IndexByte(s[pos:], '\n')
		var ln string
		if end < 0 {
			ln = s[pos:]
		} else {
			ln = s[pos : pos+end]
		}
		if strings.TrimSpace(ln) == "---" {
			stop := len(s)
			if end >= 0 {
				stop = pos + end + 1
			}
			front = s[:stop]
			return front, s[stop:], 1 + strings.Count(front, "\n")
		}
		if end < 0 {
			break
		}
		pos += end + 1
	}
	return "", s, 1
}

type parser struct {
	src    string
	pos    int
	line   int
	macros map[string]string
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) advance() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
	}
	return c
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.advance()
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c >= 0x80:
		return true
	}
	return c == '_' || c == '-' || c == ':' || c == '.' || c == '+' || c == '/'
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() && isIdentByte(p.peek()) {
		p.advance()
	}
	return p.src[start:p.pos]
}

func closerFor(open byte) byte {
	if open == '(' {
		return ')'
	}
	return '}'
}

// next returns the next record. ok is false at end of input.
func (p *parser) next() (rec types.Record, ok bool, err error) {
	for {
		for !p.eof() && p.peek() != '@' {
			p.advance()
		}
		if p.eof() {
			return types.Record{}, false, nil
		}
		startLine := p.line
		p.advance()
		p.skipSpace()
		entryType := strings.ToLower(p.ident())
		if entryType == "" {
			return types.Record{}, false, p.errorf("missing entry type after '@'")
		}
		p.skipSpace()
		if p.eof() || (p.peek() != '{' && p.peek() != '(') {
			return types.Record{}, false, p.errorf("expected '{' after @%s", entryType)
		}
		open := p.advance()
		closer := closerFor(open)

		switch entryType {
		case "comment", "preamble":
			if err := p.skipBalanced(open, closer); err != nil {
				return types.Record{}, false, err
			}
			continue
		case "string":
			if err := p.parseString(closer); err != nil {
				return types.Record{}, false, err
			}
			continue
		}

		rec, err := p.parseEntry(entryType, closer, startLine)
		if err != nil {
			return types.Record{}, false, err
		}
		return rec, true, nil
	}
}

func (p *parser) skipBalanced(open, closer byte) error {
	depth := 1
	for !p.eof() {
		c := p.advance()
		switch c {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
	return p.errorf("unterminated entry")
}

func (p *parser) parseString(closer byte) error {
	p.skipSpace()
	name := strings.ToLower(p.ident())
	if name == "" {
		return p.errorf("@string without a name")
	}
	p.skipSpace()
	if p.eof() || p.peek() != '=' {
		return p.errorf("expected '=' in @string %s", name)
	}
	p.advance()
	value, err := p.parseValue(closer)
	if err != nil {
		return err
	}
	p.macros[name] = value
	p.skipSpace()
	if p.eof() || p.peek() != closer {
		return p.errorf("expected %q after @string %s", closer, name)
	}
	p.advance()
	return nil
}

func (p *parser) parseEntry(entryType string, closer byte, startLine int) (types.Record, error) {
	p.skipSpace()
	keyStart := p.pos
	for !p.eof() && p.peek() != ',' && p.peek() != closer && !isSpace(p.peek()) {
		p.advance()
	}
	key := p.src[keyStart:p.pos]
	if key == "" || strings.ContainsAny(key, "={}\"") {
		return types.Record{}, &ParseError{Line: startLine, Msg: fmt.Sprintf("@%s entry without a citation key", entryType)}
	}

	var fields []types.Field
	for {
		p.skipSpace()
		if p.eof() {
			return types.Record{}, &ParseError{Line: startLine, Msg: fmt.Sprintf("unterminated entry %s", key)}
		}
		switch p.peek() {
		case closer:
			p.advance()
			return types.NewRecord(key, entryType, fields...), nil
		case ',':
			p.advance()
			continue
		}

		name := strings.ToLower(p.ident())
		if name == "" {
			return types.Record{}, p.errorf("unexpected %q in entry %s", p.peek(), key)
		}
		p.skipSpace()
		if p.eof() || p.peek() != '=' {
			return types.Record{}, p.errorf("expected '=' after field %s in entry %s", name, key)
		}
		p.advance()
		value, err := p.parseValue(closer)
		if err != nil {
			return types.Record{}, err
		}
		fields = append(fields, types.Field{Name: name, Value: value})
	}
}

// parseValue reads one or more value pieces joined with '#'.
func (p *parser) parseValue(closer byte) (string, error) {
	var b strings.Builder
	for {
		p.skipSpace()
		if p.eof() {
			return "", p.errorf("unexpected end of input in value")
		}
		switch c := p.peek(); {
		case c == '{':
			p.advance()
			s, err := p.braced()
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case c == '"':
			p.advance()
			s, err := p.quoted()
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case isIdentByte(c):
			word := p.ident()
			if v, ok := p.macros[strings.ToLower(word)]; ok {
				b.WriteString(v)
			} else {
				b.WriteString(word)
			}
		default:
			return "", p.errorf("unexpected %q in value", c)
		}

		p.skipSpace()
		if !p.eof() && p.peek() == '#' {
			p.advance()
			continue
		}
		if !p.eof() && p.peek() != ',' && p.peek() != closer {
			return "", p.errorf("unexpected %q after value", p.peek())
		}
		return b.String(), nil
	}
}

// braced reads up to the matching '}', keeping inner braces.
func (p *parser) braced() (string, error) {
	start, line := p.pos, p.line
	depth := 1
	for !p.eof() {
		switch p.advance() {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return p.src[start : p.pos-1], nil
			}
		}
	}
	return "", &ParseError{Line: line, Msg: "unterminated '{'"}
}

// quoted reads up to the closing '"' at brace depth zero.
func (p *parser) quoted() (string, error) {
	start, line := p.pos, p.line
	depth := 0
	for !p.eof() {
		switch p.advance() {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				return p.src[start : p.pos-1], nil
			}
		}
	}
	return "", &ParseError{Line: line, Msg: "unterminated '\"'"}
}
