// Package lexer turns JavaScript source text into a token stream.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jslang/jslin/internal/ast"
)

// Comment is a line or block comment skipped by the scanner but retained for
// directive processing (e.g. inline rule suppression).
type Comment struct {
	Text  string // contents without the // or /* */ markers
	Block bool
	Pos   ast.Position
	End   ast.Position
}

// Lexer scans one source buffer. It is not safe for concurrent use.
type Lexer struct {
	input string
	pos   int // current byte offset
	line  int
	col   int

	prevType TokenType // drives the regex-vs-division decision

	Comments []Comment
}

// New returns a lexer over the given source.
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

func (l *Lexer) position() ast.Position {
	return ast.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

// NextToken scans and returns the next token, skipping whitespace and
// comments.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	start := l.position()
	if l.pos >= len(l.input) {
		return l.emit(EOF, "", start)
	}

	ch := l.peek()
	switch {
	case isIdentStart(rune(ch)) || ch >= utf8.RuneSelf:
		return l.scanIdentifier(start)
	case ch >= '0' && ch <= '9':
		return l.scanNumber(start)
	case ch == '.' && isDigit(l.peekAt(1)):
		return l.scanNumber(start)
	case ch == '"' || ch == '\'':
		return l.scanString(start)
	case ch == '`':
		return l.scanTemplate(start)
	case ch == '/' && l.regexAllowed():
		return l.scanRegex(start)
	}
	return l.scanOperator(start)
}

func (l *Lexer) emit(tt TokenType, lit string, start ast.Position) Token {
	l.prevType = tt
	return Token{Type: tt, Literal: lit, Pos: start, End: l.position()}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			l.advance()
		case ch == '/' && l.peekAt(1) == '/':
			start := l.position()
			l.advance()
			l.advance()
			from := l.pos
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
			l.Comments = append(l.Comments, Comment{
				Text: l.input[from:l.pos], Pos: start, End: l.position(),
			})
		case ch == '/' && l.peekAt(1) == '*':
			start := l.position()
			l.advance()
			l.advance()
			from := l.pos
			for l.pos < len(l.input) {
				if l.peek() == '*' && l.peekAt(1) == '/' {
					break
				}
				l.advance()
			}
			text := l.input[from:l.pos]
			if l.pos < len(l.input) {
				l.advance()
				l.advance()
			}
			l.Comments = append(l.Comments, Comment{
				Text: text, Block: true, Pos: start, End: l.position(),
			})
		default:
			return
		}
	}
}

// regexAllowed reports whether a / at the current position starts a regex
// literal rather than a division operator, based on the preceding token.
func (l *Lexer) regexAllowed() bool {
	switch l.prevType {
	case IDENT, NUMBER, BIGINT, STRING, TEMPLATE, REGEX,
		RPAREN, RBRACKET, RBRACE, THIS, SUPER, TRUE, FALSE, NULL, INC, DEC:
		return false
	}
	return true
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func (l *Lexer) scanIdentifier(start ast.Position) Token {
	from := l.pos
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !isIdentPart(r) {
			break
		}
		for i := 0; i < size; i++ {
			l.advance()
		}
	}
	lit := l.input[from:l.pos]
	return l.emit(LookupIdent(lit), lit, start)
}

func (l *Lexer) scanNumber(start ast.Position) Token {
	from := l.pos
	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X' ||
		l.peekAt(1) == 'o' || l.peekAt(1) == 'O' ||
		l.peekAt(1) == 'b' || l.peekAt(1) == 'B') {
		l.advance()
		l.advance()
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	} else {
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		if l.peek() == '.' {
			l.advance()
			for isDigit(l.peek()) || l.peek() == '_' {
				l.advance()
			}
		}
		if l.peek() == 'e' || l.peek() == 'E' {
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}
	lit := strings.ReplaceAll(l.input[from:l.pos], "_", "")
	if l.peek() == 'n' {
		l.advance()
		return l.emit(BIGINT, lit, start)
	}
	return l.emit(NUMBER, lit, start)
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func (l *Lexer) scanString(start ast.Position) Token {
	quote := l.advance()
	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == quote {
			l.advance()
			return l.emit(STRING, sb.String(), start)
		}
		if ch == '\n' {
			break // unterminated
		}
		if ch == '\\' {
			l.advance()
			if l.pos >= len(l.input) {
				break
			}
			sb.WriteString(l.scanEscape())
			continue
		}
		sb.WriteByte(l.advance())
	}
	return l.emit(ILLEGAL, sb.String(), start)
}

func (l *Lexer) scanEscape() string {
	ch := l.advance()
	switch ch {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		if !isDigit(l.peek()) {
			return "\x00"
		}
		return "0"
	case 'x':
		if isHexDigit(l.peek()) && isHexDigit(l.peekAt(1)) {
			v := hexVal(l.advance())*16 + hexVal(l.advance())
			return string(rune(v))
		}
		return "x"
	case 'u':
		return l.scanUnicodeEscape()
	case '\n':
		return "" // line continuation
	default:
		return string(ch)
	}
}

func (l *Lexer) scanUnicodeEscape() string {
	if l.peek() == '{' {
		l.advance()
		v := 0
		for isHexDigit(l.peek()) {
			v = v*16 + hexVal(l.advance())
		}
		if l.peek() == '}' {
			l.advance()
		}
		return string(rune(v))
	}
	v := 0
	for i := 0; i < 4 && isHexDigit(l.peek()); i++ {
		v = v*16 + hexVal(l.advance())
	}
	return string(rune(v))
}

func hexVal(ch byte) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	default:
		return int(ch-'A') + 10
	}
}

// scanTemplate captures the raw contents of a template literal, tracking
// ${ } nesting so interior braces and strings do not end the scan early.
// The parser splits the raw text into quasis and expressions.
func (l *Lexer) scanTemplate(start ast.Position) Token {
	l.advance() // opening backtick
	from := l.pos
	depth := 0
	for l.pos < len(l.input) {
		ch := l.peek()
		switch {
		case ch == '\\':
			l.advance()
			if l.pos < len(l.input) {
				l.advance()
			}
		case depth == 0 && ch == '`':
			lit := l.input[from:l.pos]
			l.advance()
			return l.emit(TEMPLATE, lit, start)
		case ch == '$' && l.peekAt(1) == '{':
			depth++
			l.advance()
			l.advance()
		case depth > 0 && ch == '{':
			depth++
			l.advance()
		case depth > 0 && ch == '}':
			depth--
			l.advance()
		case depth > 0 && (ch == '"' || ch == '\''):
			l.skipNestedString()
		default:
			l.advance()
		}
	}
	return l.emit(ILLEGAL, l.input[from:l.pos], start)
}

func (l *Lexer) skipNestedString() {
	quote := l.advance()
	for l.pos < len(l.input) {
		ch := l.advance()
		if ch == '\\' && l.pos < len(l.input) {
			l.advance()
			continue
		}
		if ch == quote || ch == '\n' {
			return
		}
	}
}

// scanRegex scans /pattern/flags. Literal is the full text including both
// slashes and the flags; the parser splits it apart.
func (l *Lexer) scanRegex(start ast.Position) Token {
	from := l.pos
	l.advance() // opening slash
	inClass := false
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == '\n' {
			return l.emit(ILLEGAL, l.input[from:l.pos], start)
		}
		if ch == '\\' {
			l.advance()
			if l.pos < len(l.input) {
				l.advance()
			}
			continue
		}
		if ch == '[' {
			inClass = true
		} else if ch == ']' {
			inClass = false
		} else if ch == '/' && !inClass {
			l.advance()
			for l.pos < len(l.input) && isIdentPart(rune(l.peek())) {
				l.advance()
			}
			return l.emit(REGEX, l.input[from:l.pos], start)
		}
		l.advance()
	}
	return l.emit(ILLEGAL, l.input[from:l.pos], start)
}

func (l *Lexer) scanOperator(start ast.Position) Token {
	if four := l.slice(4); four == ">>>=" {
		l.advanceN(4)
		return l.emit(URSHIFT_ASSIGN, four, start)
	}
	three := l.slice(3)
	switch three {
	case "===", "!==", "**=", ">>>", "...", "&&=", "||=", "??=", "<<=", ">>=":
		l.advanceN(3)
		return l.emit(TokenType(three), three, start)
	}
	two := l.slice(2)
	switch two {
	case "==", "!=", "<=", ">=", "&&", "||", "??", "=>", "++", "--",
		"+=", "-=", "*=", "/=", "%=", "**", "<<", ">>", "&=", "|=", "^=":
		l.advanceN(2)
		return l.emit(TokenType(two), two, start)
	case "?.":
		// ?.5 is a ternary with a numeric branch, not optional chaining
		if !isDigit(l.peekAt(2)) {
			l.advanceN(2)
			return l.emit(OPTIONAL, two, start)
		}
	}
	ch := l.advance()
	one := string(ch)
	switch ch {
	case '(', ')', '{', '}', '[', ']', ',', ';', ':', '.', '?',
		'=', '+', '-', '*', '/', '%', '!', '~', '&', '|', '^', '<', '>':
		return l.emit(TokenType(one), one, start)
	}
	return l.emit(ILLEGAL, one, start)
}

func (l *Lexer) slice(n int) string {
	if l.pos+n > len(l.input) {
		return ""
	}
	return l.input[l.pos : l.pos+n]
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}
