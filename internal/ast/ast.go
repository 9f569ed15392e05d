// Package ast defines the syntax tree the linter operates on. The node
// shapes follow the ESTree layout so rules written against other JavaScript
// tooling translate directly.
package ast

// Position is a point in the original source, 1-based for Line and Column.
type Position struct {
	Line   int
	Column int
	Offset int // 0-based byte offset
}

// Span is the source extent of a node. Every node embeds one.
type Span struct {
	Start Position
	End   Position
}

func (s Span) Pos() Position    { return s.Start }
func (s Span) EndPos() Position { return s.End }

// Node is implemented by every syntax tree node.
type Node interface {
	Pos() Position
	EndPos() Position
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// --- Expressions ---

type (
	// Identifier is a name in any expression or binding position.
	Identifier struct {
		Span
		Name string
	}

	// RegexData carries the two halves of a regular expression literal.
	// Flags are kept exactly as written; no reordering or deduplication.
	RegexData struct {
		Pattern string
		Flags   string
	}

	// Literal covers string, number, boolean and null literals, plus the
	// regex and bigint subkinds. At most one of Regex and BigInt is set;
	// when neither is, Value holds the plain literal value (string,
	// float64, bool, or nil for null).
	Literal struct {
		Span
		Value  any
		Raw    string
		Regex  *RegexData
		BigInt string // digit text without the trailing "n"
	}

	// TemplateLiteral is a backtick string. Quasis has one entry more than
	// Exprs; a template with no substitutions has a single quasi.
	TemplateLiteral struct {
		Span
		Quasis []string
		Exprs  []Expr
	}

	// ThisExpression is the `this` keyword.
	ThisExpression struct {
		Span
	}

	// Super is the `super` keyword in member or call position.
	Super struct {
		Span
	}

	// MemberExpression is `obj.prop` or `obj[expr]`. When Computed is
	// false, Property is always an *Identifier. Optional marks a `?.`
	// link; an expression containing one is wrapped in a ChainExpression.
	MemberExpression struct {
		Span
		Object   Expr
		Property Expr
		Computed bool
		Optional bool
	}

	// ChainExpression wraps the outermost member or call of an optional
	// chain, e.g. the whole of `a?.b.c`.
	ChainExpression struct {
		Span
		Expression Expr
	}

	CallExpression struct {
		Span
		Callee   Expr
		Args     []Expr
		Optional bool // a?.()
	}

	NewExpression struct {
		Span
		Callee Expr
		Args   []Expr
	}

	// UnaryExpression covers prefix operators: - + ! ~ typeof void delete.
	UnaryExpression struct {
		Span
		Operator string
		Operand  Expr
	}

	// UpdateExpression is ++ or -- in either position.
	UpdateExpression struct {
		Span
		Operator string
		Operand  Expr
		Prefix   bool
	}

	BinaryExpression struct {
		Span
		Operator string
		Left     Expr
		Right    Expr
	}

	// LogicalExpression is && || or ??.
	LogicalExpression struct {
		Span
		Operator string
		Left     Expr
		Right    Expr
	}

	ConditionalExpression struct {
		Span
		Test       Expr
		Consequent Expr
		Alternate  Expr
	}

	AssignmentExpression struct {
		Span
		Operator string // = += -= etc.
		Left     Expr
		Right    Expr
	}

	SequenceExpression struct {
		Span
		Exprs []Expr
	}

	ArrayExpression struct {
		Span
		Elements []Expr // nil entries are holes
	}

	ObjectExpression struct {
		Span
		Properties []*Property
	}

	// Property is one `key: value` entry of an object literal. Kind is
	// one of "init", "get" or "set". A spread entry has Spread set and
	// only Value populated.
	Property struct {
		Span
		Key       Expr
		Value     Expr
		Kind      string
		Computed  bool
		Shorthand bool
		Spread    bool
	}

	FunctionExpression struct {
		Span
		Name   *Identifier // nil when anonymous
		Params []Expr
		Body   *BlockStatement
	}

	ArrowFunctionExpression struct {
		Span
		Params []Expr
		Body   Node // *BlockStatement or Expr
	}

	ClassExpression struct {
		Span
		Name       *Identifier // nil when anonymous
		SuperClass Expr
		Body       []*MethodDefinition
	}

	// MethodDefinition is one class member. Kind is one of "constructor",
	// "method", "get" or "set".
	MethodDefinition struct {
		Span
		Key      Expr
		Value    *FunctionExpression
		Kind     string
		Computed bool
		Static   bool
	}

	SpreadElement struct {
		Span
		Argument Expr
	}
)

func (*Identifier) exprNode()              {}
func (*Literal) exprNode()                 {}
func (*TemplateLiteral) exprNode()         {}
func (*ThisExpression) exprNode()          {}
func (*Super) exprNode()                   {}
func (*MemberExpression) exprNode()        {}
func (*ChainExpression) exprNode()         {}
func (*CallExpression) exprNode()          {}
func (*NewExpression) exprNode()           {}
func (*UnaryExpression) exprNode()         {}
func (*UpdateExpression) exprNode()        {}
func (*BinaryExpression) exprNode()        {}
func (*LogicalExpression) exprNode()       {}
func (*ConditionalExpression) exprNode()   {}
func (*AssignmentExpression) exprNode()    {}
func (*SequenceExpression) exprNode()      {}
func (*ArrayExpression) exprNode()         {}
func (*ObjectExpression) exprNode()        {}
func (*FunctionExpression) exprNode()      {}
func (*ArrowFunctionExpression) exprNode() {}
func (*ClassExpression) exprNode()         {}
func (*SpreadElement) exprNode()           {}

// --- Statements ---

type (
	// Program is the root node of a parsed file.
	Program struct {
		Span
		Body []Stmt
	}

	ExpressionStatement struct {
		Span
		Expression Expr
	}

	// VariableDeclaration is one `var`, `let` or `const` statement.
	VariableDeclaration struct {
		Span
		Kind        string
		Declarators []*VariableDeclarator
	}

	VariableDeclarator struct {
		Span
		ID   Expr
		Init Expr // nil when absent
	}

	BlockStatement struct {
		Span
		Body []Stmt
	}

	IfStatement struct {
		Span
		Test       Expr
		Consequent Stmt
		Alternate  Stmt // nil, a Stmt, or another *IfStatement for else-if
	}

	WhileStatement struct {
		Span
		Test Expr
		Body Stmt
	}

	DoWhileStatement struct {
		Span
		Body Stmt
		Test Expr
	}

	ForStatement struct {
		Span
		Init   Node // *VariableDeclaration, Expr, or nil
		Test   Expr // nil when absent
		Update Expr // nil when absent
		Body   Stmt
	}

	// ForInStatement covers both for-in and for-of loops.
	ForInStatement struct {
		Span
		Left  Node // *VariableDeclaration or Expr
		Right Expr
		Body  Stmt
		Of    bool
	}

	ReturnStatement struct {
		Span
		Argument Expr // nil for bare return
	}

	BreakStatement struct {
		Span
	}

	ContinueStatement struct {
		Span
	}

	FunctionDeclaration struct {
		Span
		Name   *Identifier
		Params []Expr
		Body   *BlockStatement
	}

	ClassDeclaration struct {
		Span
		Name       *Identifier
		SuperClass Expr
		Body       []*MethodDefinition
	}

	ThrowStatement struct {
		Span
		Argument Expr
	}

	EmptyStatement struct {
		Span
	}
)

func (*Program) stmtNode()             {}
func (*ExpressionStatement) stmtNode() {}
func (*VariableDeclaration) stmtNode() {}
func (*BlockStatement) stmtNode()      {}
func (*IfStatement) stmtNode()         {}
func (*WhileStatement) stmtNode()      {}
func (*DoWhileStatement) stmtNode()    {}
func (*ForStatement) stmtNode()        {}
func (*ForInStatement) stmtNode()      {}
func (*ReturnStatement) stmtNode()     {}
func (*BreakStatement) stmtNode()      {}
func (*ContinueStatement) stmtNode()   {}
func (*FunctionDeclaration) stmtNode() {}
func (*ClassDeclaration) stmtNode()    {}
func (*ThrowStatement) stmtNode()      {}
func (*EmptyStatement) stmtNode()      {}
