package ast

// Inspect traverses the tree rooted at node in depth-first source order,
// calling fn for each node. If fn returns false the children of that node
// are skipped. Nil children are never reported.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	walkChildren(node, fn)
}

func inspectExprs(exprs []Expr, fn func(Node) bool) {
	for _, e := range exprs {
		if e != nil {
			Inspect(e, fn)
		}
	}
}

func inspectStmts(stmts []Stmt, fn func(Node) bool) {
	for _, s := range stmts {
		if s != nil {
			Inspect(s, fn)
		}
	}
}

func walkChildren(node Node, fn func(Node) bool) {
	switch n := node.(type) {
	case *Program:
		inspectStmts(n.Body, fn)
	case *ExpressionStatement:
		Inspect(n.Expression, fn)
	case *VariableDeclaration:
		for _, d := range n.Declarators {
			Inspect(d, fn)
		}
	case *VariableDeclarator:
		Inspect(n.ID, fn)
		if n.Init != nil {
			Inspect(n.Init, fn)
		}
	case *BlockStatement:
		inspectStmts(n.Body, fn)
	case *IfStatement:
		Inspect(n.Test, fn)
		Inspect(n.Consequent, fn)
		if n.Alternate != nil {
			Inspect(n.Alternate, fn)
		}
	case *WhileStatement:
		Inspect(n.Test, fn)
		Inspect(n.Body, fn)
	case *DoWhileStatement:
		Inspect(n.Body, fn)
		Inspect(n.Test, fn)
	case *ForStatement:
		if n.Init != nil {
			Inspect(n.Init, fn)
		}
		if n.Test != nil {
			Inspect(n.Test, fn)
		}
		if n.Update != nil {
			Inspect(n.Update, fn)
		}
		Inspect(n.Body, fn)
	case *ForInStatement:
		if n.Left != nil {
			Inspect(n.Left, fn)
		}
		Inspect(n.Right, fn)
		Inspect(n.Body, fn)
	case *ReturnStatement:
		if n.Argument != nil {
			Inspect(n.Argument, fn)
		}
	case *ThrowStatement:
		Inspect(n.Argument, fn)
	case *FunctionDeclaration:
		inspectExprs(n.Params, fn)
		Inspect(n.Body, fn)
	case *ClassDeclaration:
		if n.SuperClass != nil {
			Inspect(n.SuperClass, fn)
		}
		for _, m := range n.Body {
			Inspect(m, fn)
		}
	case *MethodDefinition:
		Inspect(n.Key, fn)
		if n.Value != nil {
			Inspect(n.Value, fn)
		}
	case *TemplateLiteral:
		inspectExprs(n.Exprs, fn)
	case *MemberExpression:
		Inspect(n.Object, fn)
		Inspect(n.Property, fn)
	case *ChainExpression:
		Inspect(n.Expression, fn)
	case *CallExpression:
		Inspect(n.Callee, fn)
		inspectExprs(n.Args, fn)
	case *NewExpression:
		Inspect(n.Callee, fn)
		inspectExprs(n.Args, fn)
	case *UnaryExpression:
		Inspect(n.Operand, fn)
	case *UpdateExpression:
		Inspect(n.Operand, fn)
	case *BinaryExpression:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *LogicalExpression:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *ConditionalExpression:
		Inspect(n.Test, fn)
		Inspect(n.Consequent, fn)
		Inspect(n.Alternate, fn)
	case *AssignmentExpression:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *SequenceExpression:
		inspectExprs(n.Exprs, fn)
	case *ArrayExpression:
		inspectExprs(n.Elements, fn)
	case *ObjectExpression:
		for _, p := range n.Properties {
			Inspect(p, fn)
		}
	case *Property:
		if n.Key != nil {
			Inspect(n.Key, fn)
		}
		if n.Value != nil {
			Inspect(n.Value, fn)
		}
	case *SpreadElement:
		Inspect(n.Argument, fn)
	case *FunctionExpression:
		inspectExprs(n.Params, fn)
		Inspect(n.Body, fn)
	case *ArrowFunctionExpression:
		inspectExprs(n.Params, fn)
		if n.Body != nil {
			Inspect(n.Body, fn)
		}
	case *ClassExpression:
		if n.SuperClass != nil {
			Inspect(n.SuperClass, fn)
		}
		for _, m := range n.Body {
			Inspect(m, fn)
		}
	}
}
