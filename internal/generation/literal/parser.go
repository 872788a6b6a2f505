package literal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

// assignmentPattern matches a leading "option =" or "const option =".
var assignmentPattern = regexp.MustCompile(`^(?:(?:const|let|var)\s+)?[A-Za-z_$][\w$.]*\s*=`)

type parser struct {
	src string
	pos int
}

// Parse reads a single object-literal document. It understands JSON plus
// unquoted keys, single-quoted strings, trailing commas, comments, gradient
// constructors and function values (which decode to nil). Nothing is executed.
func Parse(src string) (any, error) {
	p := &parser{src: src}
	p.skipSpace()
	p.skipAssignment()
	p.skipSpace()

	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() == ';' {
		p.pos++
		p.skipSpace()
	}
	if !p.eof() {
		return nil, p.errorf("unexpected %q after value", p.peekRune())
	}
	return v, nil
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekRune() rune {
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *parser) errorf(format string, args ...any) error {
	line, col := domain.PositionOf(p.src, p.pos)
	return &domain.ParseError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipAssignment() {
	m := assignmentPattern.FindString(p.src[p.pos:])
	if m == "" {
		return
	}
	next := p.pos + len(m)
	if next < len(p.src) && (p.src[next] == '=' || p.src[next] == '>') {
		return
	}
	p.pos = next
}

// skipSpace consumes whitespace and comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch c := p.src[p.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			p.pos++
		case strings.HasPrefix(p.src[p.pos:], "\ufeff"), strings.HasPrefix(p.src[p.pos:], "\u00a0"):
			_, size := utf8.DecodeRuneInString(p.src[p.pos:])
			p.pos += size
		case c == '/' && p.skipComment():
		default:
			return
		}
	}
}

func (p *parser) skipComment() bool {
	rest := p.src[p.pos:]
	switch {
	case strings.HasPrefix(rest, "//"):
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			p.pos += i + 1
		} else {
			p.pos = len(p.src)
		}
		return true
	case strings.HasPrefix(rest, "/*"):
		if i := strings.Index(rest[2:], "*/"); i >= 0 {
			p.pos += i + 4
		} else {
			p.pos = len(p.src)
		}
		return true
	}
	return false
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		if p.eof() {
			return p.errorf("expected %q, found end of input", c)
		}
		return p.errorf("expected %q, found %q", c, p.peekRune())
	}
	p.pos++
	return nil
}

func (p *parser) value() (any, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("unexpected end of input")
	}
	switch c := p.peek(); {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '"' || c == '\'' || c == '`':
		return p.str()
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.number()
	case c == '(':
		return nil, p.arrowFunction()
	case isIdentStart(c):
		return p.identValue()
	default:
		return nil, p.errorf("unexpected %q", p.peekRune())
	}
}

func (p *parser) object() (any, error) {
	p.pos++ // {
	out := map[string]any{}
	for {
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			return out, nil
		}
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() == '(' {
			// method shorthand: formatter(params) { ... }
			if err := p.skipGroup(); err != nil {
				return nil, err
			}
			if err := p.expectGroup('{'); err != nil {
				return nil, err
			}
			out[key] = nil
		} else {
			if err := p.expect(':'); err != nil {
				return nil, err
			}
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			out[key] = v
		}

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return out, nil
		default:
			if p.eof() {
				return nil, p.errorf("unterminated object")
			}
			return nil, p.errorf("expected ',' or '}', found %q", p.peekRune())
		}
	}
}

func (p *parser) key() (string, error) {
	switch c := p.peek(); {
	case c == '"' || c == '\'':
		v, err := p.str()
		if err != nil {
			return "", err
		}
		return v.(string), nil
	case isDigit(c):
		start := p.pos
		for !p.eof() && (isDigit(p.peek()) || p.peek() == '.') {
			p.pos++
		}
		return p.src[start:p.pos], nil
	case isIdentStart(c):
		return p.ident(), nil
	case p.eof():
		return "", p.errorf("unterminated object")
	default:
		return "", p.errorf("expected property name, found %q", p.peekRune())
	}
}

func (p *parser) array() (any, error) {
	p.pos++ // [
	out := []any{}
	for {
		p.skipSpace()
		if p.peek() == ']' {
			p.pos++
			return out, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return out, nil
		default:
			if p.eof() {
				return nil, p.errorf("unterminated array")
			}
			return nil, p.errorf("expected ',' or ']', found %q", p.peekRune())
		}
	}
}

func (p *parser) str() (any, error) {
	quote := p.src[p.pos]
	start := p.pos
	p.pos++
	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\':
			if err := p.escape(&b); err != nil {
				return nil, err
			}
		case c == '\n' && quote != '`':
			return nil, p.errorf("newline in string literal")
		case c == '$' && quote == '`' && strings.HasPrefix(p.src[p.pos:], "${"):
			return nil, p.errorf("template expressions are not supported")
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	p.pos = start
	return nil, p.errorf("unterminated string")
}

func (p *parser) escape(b *strings.Builder) error {
	p.pos++ // backslash
	if p.eof() {
		return p.errorf("unterminated string")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case '\n':
		// line continuation
	case 'x':
		r, err := p.hex(2)
		if err != nil {
			return err
		}
		b.WriteRune(r)
	case 'u':
		r, err := p.hex(4)
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) && strings.HasPrefix(p.src[p.pos:], `\u`) {
			p.pos += 2
			r2, err := p.hex(4)
			if err != nil {
				return err
			}
			r = utf16.DecodeRune(r, r2)
		}
		b.WriteRune(r)
	default:
		b.WriteByte(c)
	}
	return nil
}

func (p *parser) hex(n int) (rune, error) {
	if p.pos+n > len(p.src) {
		return 0, p.errorf("invalid escape sequence")
	}
	v, err := strconv.ParseUint(p.src[p.pos:p.pos+n], 16, 32)
	if err != nil {
		return 0, p.errorf("invalid escape sequence")
	}
	p.pos += n
	return rune(v), nil
}

func (p *parser) number() (any, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	rest := p.src[p.pos:]
	if len(rest) > 1 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'X') {
		p.pos += 2
		for !p.eof() && isHexDigit(p.peek()) {
			p.pos++
		}
		v, err := strconv.ParseInt(strings.TrimPrefix(p.src[start:p.pos], "+"), 0, 64)
		if err != nil {
			bad := p.src[start:p.pos]
			p.pos = start
			return nil, p.errorf("invalid number %q", bad)
		}
		return float64(v), nil
	}
	for !p.eof() {
		c := p.peek()
		if isDigit(c) || c == '.' || c == '_' {
			p.pos++
			continue
		}
		if c == 'e' || c == 'E' {
			p.pos++
			if s := p.peek(); s == '+' || s == '-' {
				p.pos++
			}
			continue
		}
		break
	}
	text := strings.ReplaceAll(strings.TrimPrefix(p.src[start:p.pos], "+"), "_", "")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		bad := p.src[start:p.pos]
		p.pos = start
		return nil, p.errorf("invalid number %q", bad)
	}
	return v, nil
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() && isIdentPart(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// dottedName reads a member expression such as echarts.graphic.LinearGradient.
func (p *parser) dottedName() string {
	var parts []string
	for {
		p.skipSpace()
		if !isIdentStart(p.peek()) {
			break
		}
		parts = append(parts, p.ident())
		p.skipSpace()
		if p.peek() != '.' {
			break
		}
		p.pos++
	}
	return strings.Join(parts, ".")
}

func (p *parser) identValue() (any, error) {
	start := p.pos
	word := p.ident()
	switch word {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null", "undefined":
		return nil, nil
	case "new":
		return p.constructor()
	case "function":
		return nil, p.function()
	}

	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], "=>") {
		p.pos += 2
		return nil, p.arrowBody()
	}
	p.pos = start
	return nil, p.errorf("unsupported expression %q", word)
}

func (p *parser) constructor() (any, error) {
	namePos := p.pos
	name := p.dottedName()
	args, err := p.arguments()
	if err != nil {
		return nil, err
	}
	short := name[strings.LastIndex(name, ".")+1:]
	g, ok := gradient(short, args)
	if !ok {
		p.pos = namePos
		return nil, p.errorf("unsupported constructor %q", name)
	}
	return g, nil
}

func (p *parser) arguments() ([]any, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var args []any
	for {
		p.skipSpace()
		if p.peek() == ')' {
			p.pos++
			return args, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return args, nil
		default:
			return nil, p.errorf("expected ',' or ')' in argument list")
		}
	}
}

// function skips "function name(args) { body }".
func (p *parser) function() error {
	p.skipSpace()
	if isIdentStart(p.peek()) {
		p.ident()
	}
	if err := p.expectGroup('('); err != nil {
		return err
	}
	return p.expectGroup('{')
}

// arrowFunction skips "(args) => body".
func (p *parser) arrowFunction() error {
	start := p.pos
	if err := p.skipGroup(); err != nil {
		return err
	}
	p.skipSpace()
	if !strings.HasPrefix(p.src[p.pos:], "=>") {
		p.pos = start
		return p.errorf("unexpected '('")
	}
	p.pos += 2
	return p.arrowBody()
}

func (p *parser) arrowBody() error {
	p.skipSpace()
	if p.peek() == '{' {
		return p.skipGroup()
	}
	return p.skipExpression()
}

func (p *parser) expectGroup(open byte) error {
	p.skipSpace()
	if p.peek() != open {
		return p.errorf("expected %q in function", open)
	}
	return p.skipGroup()
}

// skipGroup consumes a balanced (), [] or {} group starting at the opener.
func (p *parser) skipGroup() error {
	start := p.pos
	depth := 0
	for !p.eof() {
		switch c := p.src[p.pos]; c {
		case '"', '\'', '`':
			if err := p.skipString(); err != nil {
				return err
			}
			continue
		case '/':
			if p.skipComment() {
				continue
			}
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		}
		p.pos++
	}
	p.pos = start
	return p.errorf("unbalanced %q", p.src[start])
}

// skipExpression consumes an expression up to the next top-level separator.
func (p *parser) skipExpression() error {
	for !p.eof() {
		switch c := p.src[p.pos]; c {
		case ',', ')', ']', '}', ';':
			return nil
		case '"', '\'', '`':
			if err := p.skipString(); err != nil {
				return err
			}
		case '(', '[', '{':
			if err := p.skipGroup(); err != nil {
				return err
			}
		case '/':
			if !p.skipComment() {
				p.pos++
			}
		default:
			p.pos++
		}
	}
	return nil
}

func (p *parser) skipString() error {
	start := p.pos
	quote := p.src[p.pos]
	p.pos++
	for !p.eof() {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case quote:
			p.pos++
			return nil
		}
		p.pos++
	}
	p.pos = start
	return p.errorf("unterminated string")
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// isIdentStart treats any non-ASCII byte as part of an identifier so that
// keys written in other scripts need no quoting.
func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
