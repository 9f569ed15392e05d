package lexer

import "github.com/jslang/jslin/internal/ast"

// TokenType identifies the lexical class of a token.
type TokenType string

// Token is one lexical token with its source position.
type Token struct {
	Type    TokenType
	Literal string // lexeme text; for strings the cooked value, see lexer.go
	Pos     ast.Position
	End     ast.Position
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT    TokenType = "IDENT"
	NUMBER   TokenType = "NUMBER"
	BIGINT   TokenType = "BIGINT"
	STRING   TokenType = "STRING"
	TEMPLATE TokenType = "TEMPLATE" // raw contents between the backticks
	REGEX    TokenType = "REGEX"    // pattern and flags joined as /pat/flags

	// Punctuation
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	DOT       TokenType = "."
	SPREAD    TokenType = "..."
	ARROW     TokenType = "=>"
	QUESTION  TokenType = "?"
	OPTIONAL  TokenType = "?."

	// Operators
	ASSIGN          TokenType = "="
	PLUS            TokenType = "+"
	MINUS           TokenType = "-"
	ASTERISK        TokenType = "*"
	POWER           TokenType = "**"
	SLASH           TokenType = "/"
	PERCENT         TokenType = "%"
	BANG            TokenType = "!"
	TILDE           TokenType = "~"
	AMPERSAND       TokenType = "&"
	PIPE            TokenType = "|"
	CARET           TokenType = "^"
	LSHIFT          TokenType = "<<"
	RSHIFT          TokenType = ">>"
	URSHIFT         TokenType = ">>>"
	LT              TokenType = "<"
	GT              TokenType = ">"
	LE              TokenType = "<="
	GE              TokenType = ">="
	EQ              TokenType = "=="
	NOT_EQ          TokenType = "!="
	STRICT_EQ       TokenType = "==="
	STRICT_NOT_EQ   TokenType = "!=="
	LOGICAL_AND     TokenType = "&&"
	LOGICAL_OR      TokenType = "||"
	COALESCE        TokenType = "??"
	INC             TokenType = "++"
	DEC             TokenType = "--"
	PLUS_ASSIGN     TokenType = "+="
	MINUS_ASSIGN    TokenType = "-="
	ASTERISK_ASSIGN TokenType = "*="
	SLASH_ASSIGN    TokenType = "/="
	PERCENT_ASSIGN  TokenType = "%="
	POWER_ASSIGN    TokenType = "**="
	AND_ASSIGN      TokenType = "&&="
	OR_ASSIGN       TokenType = "||="
	COALESCE_ASSIGN TokenType = "??="
	LSHIFT_ASSIGN   TokenType = "<<="
	RSHIFT_ASSIGN   TokenType = ">>="
	URSHIFT_ASSIGN  TokenType = ">>>="
	BITAND_ASSIGN   TokenType = "&="
	BITOR_ASSIGN    TokenType = "|="
	BITXOR_ASSIGN   TokenType = "^="

	// Keywords
	VAR        TokenType = "VAR"
	LET        TokenType = "LET"
	CONST      TokenType = "CONST"
	FUNCTION   TokenType = "FUNCTION"
	RETURN     TokenType = "RETURN"
	IF         TokenType = "IF"
	ELSE       TokenType = "ELSE"
	WHILE      TokenType = "WHILE"
	DO         TokenType = "DO"
	FOR        TokenType = "FOR"
	BREAK      TokenType = "BREAK"
	CONTINUE   TokenType = "CONTINUE"
	THROW      TokenType = "THROW"
	NEW        TokenType = "NEW"
	CLASS      TokenType = "CLASS"
	EXTENDS    TokenType = "EXTENDS"
	STATIC     TokenType = "STATIC"
	GET        TokenType = "GET"
	SET        TokenType = "SET"
	THIS       TokenType = "THIS"
	SUPER      TokenType = "SUPER"
	TRUE       TokenType = "TRUE"
	FALSE      TokenType = "FALSE"
	NULL       TokenType = "NULL"
	TYPEOF     TokenType = "TYPEOF"
	VOID       TokenType = "VOID"
	DELETE     TokenType = "DELETE"
	IN         TokenType = "IN"
	INSTANCEOF TokenType = "INSTANCEOF"
)

var keywords = map[string]TokenType{
	"var":        VAR,
	"let":        LET,
	"const":      CONST,
	"function":   FUNCTION,
	"return":     RETURN,
	"if":         IF,
	"else":       ELSE,
	"while":      WHILE,
	"do":         DO,
	"for":        FOR,
	"break":      BREAK,
	"continue":   CONTINUE,
	"throw":      THROW,
	"new":        NEW,
	"class":      CLASS,
	"extends":    EXTENDS,
	"static":     STATIC,
	"get":        GET,
	"set":        SET,
	"this":       THIS,
	"super":      SUPER,
	"true":       TRUE,
	"false":      FALSE,
	"null":       NULL,
	"typeof":     TYPEOF,
	"void":       VOID,
	"delete":     DELETE,
	"in":         IN,
	"instanceof": INSTANCEOF,
}

// LookupIdent maps an identifier lexeme to its keyword token type, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether tt is a reserved word that may still appear as a
// property name after a dot or as an object literal key.
func IsKeyword(tt TokenType) bool {
	for _, kw := range keywords {
		if kw == tt {
			return true
		}
	}
	return false
}
