package jsast

// Parse tokenizes and parses content into a FileSnapshot.
//
// The parser is tolerant: it builds structural nodes for the constructs
// rules inspect (functions, classes, variable declarations, identifier
// uses, await expressions) and consumes everything else as opaque
// expression content. It fails only on lexical errors and unbalanced
// braces.
func Parse(path string, content []byte, variant Variant) (*FileSnapshot, error) {
	snap := NewFileSnapshot(path, content)
	snap.Variant = variant

	toks, err := tokenize(path, content)
	if err != nil {
		return nil, err
	}
	snap.Tokens = toks

	p := &parser{file: snap, toks: toks, variant: variant}
	p.pos = p.firstSignificant()

	root, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	snap.Root = root

	return snap, nil
}

type parser struct {
	file    *FileSnapshot
	toks    []Token
	pos     int
	variant Variant
}

// --- cursor -----------------------------------------------------------------

var eofToken = Token{Kind: TokEOF}

func (p *parser) firstSignificant() int {
	j := 0
	for j < len(p.toks) && p.toks[j].Kind == TokComment {
		j++
	}
	return j
}

// nextIdx returns the next significant token index after idx.
func (p *parser) nextIdx(idx int) int {
	j := idx + 1
	for j < len(p.toks) && p.toks[j].Kind == TokComment {
		j++
	}
	return j
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) cur() Token {
	if p.atEnd() {
		return eofToken
	}
	return p.toks[p.pos]
}

// peek returns the k-th significant token ahead of the cursor (peek(0) == cur).
func (p *parser) peek(k int) Token {
	idx := p.pos
	for ; k > 0 && idx < len(p.toks); k-- {
		idx = p.nextIdx(idx)
	}
	if idx >= len(p.toks) {
		return eofToken
	}
	return p.toks[idx]
}

// advance consumes the current token and returns its index.
func (p *parser) advance() int {
	idx := p.pos
	p.pos = p.nextIdx(p.pos)
	return idx
}

// lastConsumed returns the index of the most recently consumed significant
// token, for closing node spans.
func (p *parser) lastConsumed() int {
	j := p.pos - 1
	for j >= 0 && p.toks[j].Kind == TokComment {
		j--
	}
	if j < 0 {
		return 0
	}
	return j
}

// sameLine reports whether the tokens at the two indices start on the
// same source line. Used for minimal semicolon insertion.
func (p *parser) sameLine(a, b int) bool {
	if a < 0 || b < 0 || a >= len(p.toks) || b >= len(p.toks) {
		return true
	}
	la, _ := p.file.LineAt(p.toks[a].StartOffset)
	lb, _ := p.file.LineAt(p.toks[b].StartOffset)
	return la == lb
}

func (p *parser) newNode(kind NodeKind, firstToken int) *Node {
	return &Node{
		Kind:       kind,
		FirstToken: firstToken,
		LastToken:  firstToken,
		File:       p.file,
	}
}

func (p *parser) errAt(idx int, msg string) error {
	offset := len(p.file.Content)
	if idx < len(p.toks) {
		offset = p.toks[idx].StartOffset
	}
	return &ParseError{Path: p.file.Path, Offset: offset, Msg: msg}
}

// --- program and statements -------------------------------------------------

func (p *parser) parseProgram() (*Node, error) {
	root := p.newNode(NodeProgram, -1)
	root.LastToken = -1
	if len(p.toks) > 0 {
		root.FirstToken = 0
		root.LastToken = len(p.toks) - 1
	}

	for !p.atEnd() {
		if p.cur().IsPunct("}") {
			return nil, p.errAt(p.pos, "unbalanced braces")
		}
		if err := p.parseStatementInto(root); err != nil {
			return nil, err
		}
	}

	return root, nil
}

// parseStatementInto parses one statement and attaches any resulting
// nodes to parent.
func (p *parser) parseStatementInto(parent *Node) error {
	tok := p.cur()

	switch {
	case tok.Kind == TokEOF:
		return nil

	case tok.IsPunct(";"):
		p.advance()
		return nil

	case tok.IsPunct("{"):
		return p.parseBlock(parent)

	case tok.IsPunct("@"):
		p.skipDecorator()
		return nil

	case tok.IsKeyword("function"):
		_, err := p.parseFunctionFrom(parent, p.pos, false)
		return err

	case tok.IsIdent("async") && p.peek(1).IsKeyword("function"):
		start := p.pos
		p.advance() // async
		_, err := p.parseFunctionFrom(parent, start, true)
		return err

	case tok.IsKeyword("class"):
		return p.parseClass(parent)

	case tok.IsKeyword("var") || tok.IsKeyword("let") || tok.IsKeyword("const"):
		return p.parseVarStatement(parent, false)

	case tok.IsKeyword("import"):
		return p.parseImport(parent)

	case tok.IsKeyword("export"):
		return p.parseExport(parent)

	case tok.IsKeyword("if") || tok.IsKeyword("while"):
		p.advance()
		if p.cur().IsPunct("(") {
			p.advance()
			if err := p.parseExprUntil(parent, false); err != nil {
				return err
			}
			if p.cur().IsPunct(")") {
				p.advance()
			}
		}
		if err := p.parseStatementInto(parent); err != nil {
			return err
		}
		if p.cur().IsKeyword("else") {
			p.advance()
			return p.parseStatementInto(parent)
		}
		return nil

	case tok.IsKeyword("for"):
		return p.parseFor(parent)

	case tok.IsKeyword("do"):
		p.advance()
		if err := p.parseStatementInto(parent); err != nil {
			return err
		}
		if p.cur().IsKeyword("while") {
			p.advance()
			if p.cur().IsPunct("(") {
				p.advance()
				if err := p.parseExprUntil(parent, false); err != nil {
					return err
				}
				if p.cur().IsPunct(")") {
					p.advance()
				}
			}
		}
		return nil

	case tok.IsKeyword("switch"):
		return p.parseSwitch(parent)

	case tok.IsKeyword("try"):
		return p.parseTry(parent)

	case tok.IsKeyword("return") || tok.IsKeyword("throw"):
		stmtIdx := p.advance()
		if p.cur().IsPunct(";") {
			p.advance()
			return nil
		}
		if p.cur().IsPunct("}") || p.atEnd() || !p.sameLine(stmtIdx, p.pos) {
			return nil
		}
		if err := p.parseExprUntil(parent, false); err != nil {
			return err
		}
		if p.cur().IsPunct(";") {
			p.advance()
		}
		return nil

	case tok.IsKeyword("break") || tok.IsKeyword("continue"):
		stmtIdx := p.advance()
		if p.cur().Kind == TokIdent && p.sameLine(stmtIdx, p.pos) {
			p.advance() // label
		}
		if p.cur().IsPunct(";") {
			p.advance()
		}
		return nil

	case p.variant.IsTypeScript() && tok.IsIdent("type") && p.peek(1).Kind == TokIdent:
		p.skipTypeDecl()
		return nil

	case p.variant.IsTypeScript() && (tok.IsIdent("interface") || tok.IsIdent("enum")):
		return p.skipBracedDecl()

	case p.variant.IsTypeScript() && tok.IsIdent("declare"):
		p.skipTypeDecl()
		return nil

	case p.variant.IsTypeScript() && (tok.IsIdent("namespace") || tok.IsIdent("module")) && (p.peek(1).Kind == TokIdent || p.peek(1).Kind == TokString):
		p.advance() // namespace
		p.advance() // name
		if p.cur().IsPunct("{") {
			return p.parseBlock(parent)
		}
		return nil

	// Label: ident ':' at statement position.
	case tok.Kind == TokIdent && p.peek(1).IsPunct(":"):
		p.advance()
		p.advance()
		return p.parseStatementInto(parent)

	default:
		before := p.pos
		if err := p.parseExprUntil(parent, false); err != nil {
			return err
		}
		if p.cur().IsPunct(";") {
			p.advance()
		}
		// Guarantee progress on tokens the expression parser refuses.
		if p.pos == before {
			p.advance()
		}
		return nil
	}
}

// parseBlock parses a braced statement block that is not a function body.
func (p *parser) parseBlock(parent *Node) error {
	openIdx := p.pos
	node := p.newNode(NodeBlock, openIdx)
	parent.AppendChild(node)
	p.advance() // {

	if err := p.parseStatementsUntilBrace(node, openIdx); err != nil {
		return err
	}
	node.LastToken = p.lastConsumed()
	return nil
}

// parseStatementsUntilBrace parses statements into parent until the
// matching closing brace, which it consumes.
func (p *parser) parseStatementsUntilBrace(parent *Node, openIdx int) error {
	for {
		if p.atEnd() {
			return p.errAt(openIdx, "unbalanced braces")
		}
		if p.cur().IsPunct("}") {
			p.advance()
			return nil
		}
		if err := p.parseStatementInto(parent); err != nil {
			return err
		}
	}
}

func (p *parser) parseFor(parent *Node) error {
	p.advance() // for
	if p.cur().IsIdent("await") || p.cur().IsKeyword("await") {
		p.advance()
	}
	if !p.cur().IsPunct("(") {
		return p.parseStatementInto(parent)
	}
	p.advance() // (

	c := p.cur()
	if c.IsKeyword("var") || c.IsKeyword("let") || c.IsKeyword("const") {
		if err := p.parseVarStatement(parent, true); err != nil {
			return err
		}
	} else if !c.IsPunct(";") {
		if err := p.parseForInit(parent); err != nil {
			return err
		}
	}

	// for-of / for-in iterable.
	if p.cur().IsIdent("of") || p.cur().IsKeyword("in") {
		p.advance()
		if err := p.parseExprUntil(parent, false); err != nil {
			return err
		}
	}

	// Classic for: condition and update clauses.
	for p.cur().IsPunct(";") {
		p.advance()
		if p.cur().IsPunct(")") {
			break
		}
		if err := p.parseExprUntil(parent, false); err != nil {
			return err
		}
	}
	if p.cur().IsPunct(")") {
		p.advance()
	}

	return p.parseStatementInto(parent)
}

// parseForInit parses the first clause of a for-header that is not a
// declaration: either the assignment target of for-of/for-in, or the
// initializer expression of a classic for.
func (p *parser) parseForInit(parent *Node) error {
	tok := p.cur()

	// for (x of ...) / for (x in ...): x is a use of an existing binding.
	if tok.Kind == TokIdent && (p.peek(1).IsIdent("of") || p.peek(1).IsKeyword("in")) {
		node := p.newNode(NodeIdentifier, p.pos)
		node.Ident = &IdentAttrs{Name: tok.Text, Write: true}
		parent.AppendChild(node)
		p.advance()
		return nil
	}

	// for ([a, b] of ...) / for ({a} of ...): destructuring target.
	if tok.IsPunct("[") {
		if err := p.skipBalanced("[", "]"); err != nil {
			return err
		}
		if p.cur().IsIdent("of") || p.cur().IsKeyword("in") {
			return nil
		}
		// Fall through for classic-for expressions like for ([i] = x; ...).
	} else if tok.IsPunct("{") {
		return p.skipBalanced("{", "}")
	}

	return p.parseExprUntil(parent, false)
}

func (p *parser) parseSwitch(parent *Node) error {
	p.advance() // switch
	if p.cur().IsPunct("(") {
		p.advance()
		if err := p.parseExprUntil(parent, false); err != nil {
			return err
		}
		if p.cur().IsPunct(")") {
			p.advance()
		}
	}
	if !p.cur().IsPunct("{") {
		return nil
	}
	openIdx := p.advance() // {

	for {
		switch {
		case p.atEnd():
			return p.errAt(openIdx, "unbalanced braces")
		case p.cur().IsPunct("}"):
			p.advance()
			return nil
		case p.cur().IsKeyword("case"):
			p.advance()
			if err := p.parseExprUntil(parent, false); err != nil {
				return err
			}
			if p.cur().IsPunct(":") {
				p.advance()
			}
		case p.cur().IsKeyword("default"):
			p.advance()
			if p.cur().IsPunct(":") {
				p.advance()
			}
		default:
			if err := p.parseStatementInto(parent); err != nil {
				return err
			}
		}
	}
}

func (p *parser) parseTry(parent *Node) error {
	p.advance() // try
	if p.cur().IsPunct("{") {
		if err := p.parseBlock(parent); err != nil {
			return err
		}
	}
	if p.cur().IsKeyword("catch") {
		p.advance()
		// The catch binding introduces no tracked declaration.
		if p.cur().IsPunct("(") {
			if err := p.skipBalanced("(", ")"); err != nil {
				return err
			}
		}
		if p.cur().IsPunct("{") {
			if err := p.parseBlock(parent); err != nil {
				return err
			}
		}
	}
	if p.cur().IsKeyword("finally") {
		p.advance()
		if p.cur().IsPunct("{") {
			return p.parseBlock(parent)
		}
	}
	return nil
}

func (p *parser) parseImport(parent *Node) error {
	importIdx := p.advance() // import

	// Dynamic import used as an expression: import(...).
	if p.cur().IsPunct("(") {
		p.pos = importIdx
		if err := p.parseExprUntil(parent, false); err != nil {
			return err
		}
		if p.cur().IsPunct(";") {
			p.advance()
		}
		return nil
	}

	// Static import: consume through the module specifier.
	for !p.atEnd() {
		tok := p.cur()
		if tok.Kind == TokString {
			p.advance()
			break
		}
		if tok.IsPunct(";") {
			break
		}
		if tok.IsPunct("{") {
			if err := p.skipBalanced("{", "}"); err != nil {
				return err
			}
			continue
		}
		p.advance()
	}
	if p.cur().IsPunct(";") {
		p.advance()
	}
	return nil
}

func (p *parser) parseExport(parent *Node) error {
	p.advance() // export

	switch {
	case p.cur().IsPunct("{"):
		if err := p.skipBalanced("{", "}"); err != nil {
			return err
		}
		if p.cur().IsIdent("from") {
			p.advance()
			if p.cur().Kind == TokString {
				p.advance()
			}
		}
		if p.cur().IsPunct(";") {
			p.advance()
		}
		return nil

	case p.cur().IsPunct("*"):
		for !p.atEnd() && !p.cur().IsPunct(";") {
			if p.cur().Kind == TokString {
				p.advance()
				break
			}
			p.advance()
		}
		if p.cur().IsPunct(";") {
			p.advance()
		}
		return nil

	case p.cur().IsKeyword("default"):
		p.advance()
		return p.parseStatementInto(parent)

	default:
		return p.parseStatementInto(parent)
	}
}

// --- functions --------------------------------------------------------------

// parseFunctionFrom parses a function declaration or expression starting
// at the `function` keyword. start is the span start (the `async` token
// for async functions).
func (p *parser) parseFunctionFrom(parent *Node, start int, async bool) (*Node, error) {
	node := p.newNode(NodeFunction, start)
	node.Func = &FuncAttrs{Async: async}
	parent.AppendChild(node)

	p.advance() // function
	if p.cur().IsPunct("*") {
		node.Func.Generator = true
		p.advance()
	}
	if p.cur().Kind == TokIdent {
		node.Func.Name = p.cur().Text
		p.advance()
	}

	if err := p.parseParams(node); err != nil {
		return nil, err
	}
	p.skipReturnType()

	if p.cur().IsPunct("{") {
		openIdx := p.advance()
		if err := p.parseStatementsUntilBrace(node, openIdx); err != nil {
			return nil, err
		}
	}
	node.LastToken = p.lastConsumed()
	return node, nil
}

// parseArrowFrom parses an arrow function whose parameter list begins at
// the cursor. start is the span start (the `async` token for async arrows).
func (p *parser) parseArrowFrom(parent *Node, start int, async bool) (*Node, error) {
	node := p.newNode(NodeFunction, start)
	node.Func = &FuncAttrs{Async: async, Arrow: true}
	parent.AppendChild(node)

	if p.cur().IsPunct("(") {
		if err := p.parseParams(node); err != nil {
			return nil, err
		}
		p.skipReturnType()
	} else if p.cur().Kind == TokIdent {
		node.Func.Params = append(node.Func.Params, p.cur().Text)
		p.advance()
	}

	if p.cur().IsPunct("=>") {
		p.advance()
	}

	if p.cur().IsPunct("{") {
		openIdx := p.advance()
		if err := p.parseStatementsUntilBrace(node, openIdx); err != nil {
			return nil, err
		}
	} else {
		// Expression body.
		if err := p.parseExprUntil(node, true); err != nil {
			return nil, err
		}
	}
	node.LastToken = p.lastConsumed()
	return node, nil
}

// parseMethod parses a class or object-literal method whose name has
// already been consumed.
func (p *parser) parseMethod(parent *Node, start int, name string, async, generator bool) error {
	node := p.newNode(NodeFunction, start)
	node.Func = &FuncAttrs{Name: name, Async: async, Generator: generator, Method: true}
	parent.AppendChild(node)

	if err := p.parseParams(node); err != nil {
		return err
	}
	p.skipReturnType()

	if p.cur().IsPunct("{") {
		openIdx := p.advance()
		if err := p.parseStatementsUntilBrace(node, openIdx); err != nil {
			return err
		}
	}
	node.LastToken = p.lastConsumed()
	return nil
}

// parseParams parses a parenthesized parameter list into fn.Func.Params.
// Default-value expressions contribute identifier reads under fn.
func (p *parser) parseParams(fn *Node) error {
	if !p.cur().IsPunct("(") {
		return nil
	}
	openIdx := p.advance() // (

	for {
		tok := p.cur()
		switch {
		case p.atEnd():
			return p.errAt(openIdx, "unbalanced parameter list")

		case tok.IsPunct(")"):
			p.advance()
			return nil

		case tok.IsPunct(",") || tok.IsPunct("...") || tok.IsPunct("?"):
			p.advance()

		case tok.IsKeyword("this"):
			p.advance()
			if p.cur().IsPunct(":") {
				p.advance()
				p.skipTypeUntil(",", ")")
			}

		// TS constructor parameter modifiers.
		case tok.Kind == TokIdent && isParamModifier(tok.Text) && p.peek(1).Kind == TokIdent:
			p.advance()

		case tok.Kind == TokIdent:
			fn.Func.Params = append(fn.Func.Params, tok.Text)
			p.advance()
			if p.cur().IsPunct("?") {
				p.advance()
			}
			if p.cur().IsPunct(":") {
				p.advance()
				p.skipTypeUntil(",", ")", "=")
			}
			if p.cur().IsPunct("=") {
				p.advance()
				if err := p.parseExprUntil(fn, true); err != nil {
					return err
				}
			}

		case tok.IsPunct("{") || tok.IsPunct("["):
			if err := p.parsePattern(fn, func(name string) {
				fn.Func.Params = append(fn.Func.Params, name)
			}); err != nil {
				return err
			}
			if p.cur().IsPunct(":") {
				p.advance()
				p.skipTypeUntil(",", ")", "=")
			}
			if p.cur().IsPunct("=") {
				p.advance()
				if err := p.parseExprUntil(fn, true); err != nil {
					return err
				}
			}

		default:
			p.advance()
		}
	}
}

// skipReturnType consumes a `: Type` annotation between a parameter list
// and a function body or arrow.
func (p *parser) skipReturnType() {
	if p.cur().IsPunct(":") {
		p.advance()
		p.skipTypeUntil("{", "=>")
	}
}

func isParamModifier(text string) bool {
	switch text {
	case "public", "private", "protected", "readonly", "override":
		return true
	}
	return false
}

// parsePattern parses a destructuring pattern, invoking bind for each
// bound name. Default values contribute reads under owner.
func (p *parser) parsePattern(owner *Node, bind func(name string)) error {
	open := p.cur().Text
	close := "}"
	if open == "[" {
		close = "]"
	}
	openIdx := p.advance()

	for {
		tok := p.cur()
		switch {
		case p.atEnd():
			return p.errAt(openIdx, "unbalanced destructuring pattern")

		case tok.IsPunct(close):
			p.advance()
			return nil

		case tok.IsPunct(",") || tok.IsPunct("..."):
			p.advance()

		case tok.IsPunct("{") || tok.IsPunct("["):
			if err := p.parsePattern(owner, bind); err != nil {
				return err
			}

		case tok.Kind == TokIdent:
			if open == "{" && p.peek(1).IsPunct(":") {
				// Renaming: the key is not a binding, the value is.
				p.advance() // key
				p.advance() // :
				if p.cur().IsPunct("{") || p.cur().IsPunct("[") {
					if err := p.parsePattern(owner, bind); err != nil {
						return err
					}
				} else if p.cur().Kind == TokIdent {
					bind(p.cur().Text)
					p.advance()
				}
			} else {
				bind(tok.Text)
				p.advance()
			}
			if p.cur().IsPunct("=") {
				p.advance()
				if err := p.parseExprUntil(owner, true); err != nil {
					return err
				}
			}

		case tok.Kind == TokString || tok.Kind == TokNumber:
			// Non-identifier key: 'a-b': binding.
			p.advance()
			if p.cur().IsPunct(":") {
				p.advance()
				if p.cur().IsPunct("{") || p.cur().IsPunct("[") {
					if err := p.parsePattern(owner, bind); err != nil {
						return err
					}
				} else if p.cur().Kind == TokIdent {
					bind(p.cur().Text)
					p.advance()
				}
			}

		default:
			p.advance()
		}
	}
}

// --- classes ----------------------------------------------------------------

func (p *parser) parseClass(parent *Node) error {
	start := p.pos
	node := p.newNode(NodeClass, start)
	node.Class = &ClassAttrs{}
	parent.AppendChild(node)

	p.advance() // class
	if p.cur().Kind == TokIdent {
		node.Class.Name = p.cur().Text
		p.advance()
	}
	if p.variant.IsTypeScript() && p.cur().IsPunct("<") {
		p.skipTypeUntil("{")
	}
	if p.cur().IsKeyword("extends") {
		p.advance()
		if err := p.parseExtendsClause(node); err != nil {
			return err
		}
	}
	if p.cur().IsIdent("implements") {
		p.advance()
		p.skipTypeUntil("{")
	}
	if !p.cur().IsPunct("{") {
		node.LastToken = p.lastConsumed()
		return nil
	}
	openIdx := p.advance() // {

	if err := p.parseClassBody(node, openIdx); err != nil {
		return err
	}
	node.LastToken = p.lastConsumed()
	return nil
}

// parseExtendsClause parses the superclass expression: a dotted name,
// optionally generic, optionally a mixin call. It stops before the class
// body brace.
func (p *parser) parseExtendsClause(class *Node) error {
	if p.cur().Kind == TokIdent {
		node := p.newNode(NodeIdentifier, p.pos)
		node.Ident = &IdentAttrs{Name: p.cur().Text}
		class.AppendChild(node)
		p.advance()
	}
	for p.cur().IsPunct(".") {
		p.advance()
		if p.cur().Kind == TokIdent {
			p.advance()
		}
	}
	if p.variant.IsTypeScript() && p.cur().IsPunct("<") {
		p.skipAngles()
	}
	// Mixin factory call: class X extends withFoo(Base) { ... }.
	if p.cur().IsPunct("(") {
		p.advance()
		if err := p.parseExprList(class, ")"); err != nil {
			return err
		}
		if p.cur().IsPunct(")") {
			p.advance()
		}
	}
	return nil
}

func (p *parser) parseClassBody(class *Node, openIdx int) error {
	for {
		tok := p.cur()
		switch {
		case p.atEnd():
			return p.errAt(openIdx, "unbalanced braces")

		case tok.IsPunct("}"):
			p.advance()
			return nil

		case tok.IsPunct(";"):
			p.advance()

		case tok.IsPunct("@"):
			p.skipDecorator()

		case tok.IsKeyword("static") || tok.IsIdent("static"):
			p.advance()
			// static { ... } initialization block.
			if p.cur().IsPunct("{") {
				if err := p.parseBlock(class); err != nil {
					return err
				}
			}

		case tok.Kind == TokIdent && isMemberModifier(tok.Text) && !p.peek(1).IsPunct("(") && !p.peek(1).IsPunct("=") && !p.peek(1).IsPunct(":"):
			p.advance()

		default:
			if err := p.parseClassMember(class); err != nil {
				return err
			}
		}
	}
}

func isMemberModifier(text string) bool {
	switch text {
	case "public", "private", "protected", "readonly", "abstract", "override", "declare", "accessor":
		return true
	}
	return false
}

// parseClassMember parses a single method or field. Modifier tokens have
// already been consumed.
func (p *parser) parseClassMember(class *Node) error {
	start := p.pos
	async := false
	generator := false

	if p.cur().IsIdent("async") && !p.peek(1).IsPunct("(") && !p.peek(1).IsPunct("=") {
		async = true
		p.advance()
	}
	if p.cur().IsPunct("*") {
		generator = true
		p.advance()
	}
	if (p.cur().IsIdent("get") || p.cur().IsIdent("set")) && !p.peek(1).IsPunct("(") && !p.peek(1).IsPunct("=") {
		p.advance()
	}

	// Member name: identifier, keyword, string, number, or computed.
	name := ""
	switch {
	case p.cur().IsPunct("["):
		if err := p.skipBalanced("[", "]"); err != nil {
			return err
		}
	case p.cur().Kind == TokIdent || p.cur().Kind == TokKeyword ||
		p.cur().Kind == TokString || p.cur().Kind == TokNumber:
		name = p.cur().Text
		p.advance()
	default:
		// Unrecognized member shape: consume one token and move on.
		p.advance()
		return nil
	}

	if p.cur().IsPunct("?") || p.cur().IsPunct("!") {
		p.advance()
	}
	if p.variant.IsTypeScript() && p.cur().IsPunct("<") {
		p.skipTypeUntil("(")
	}

	switch {
	case p.cur().IsPunct("("):
		return p.parseMethod(class, start, name, async, generator)

	case p.cur().IsPunct(":"):
		p.advance()
		p.skipTypeUntil("=", ";", "}")
		if p.cur().IsPunct("=") {
			p.advance()
			if err := p.parseExprUntil(class, false); err != nil {
				return err
			}
		}
		if p.cur().IsPunct(";") {
			p.advance()
		}
		return nil

	case p.cur().IsPunct("="):
		p.advance()
		if err := p.parseExprUntil(class, false); err != nil {
			return err
		}
		if p.cur().IsPunct(";") {
			p.advance()
		}
		return nil

	default:
		// Bare field declaration.
		if p.cur().IsPunct(";") {
			p.advance()
		}
		return nil
	}
}

// --- variable statements ----------------------------------------------------

// parseVarStatement parses a var/let/const statement. In for-headers it
// stops before of/in and the closing paren.
func (p *parser) parseVarStatement(parent *Node, inForHeader bool) error {
	start := p.pos
	node := p.newNode(NodeVarStatement, start)
	node.Var = &VarAttrs{Keyword: p.cur().Text}
	parent.AppendChild(node)
	p.advance() // var | let | const

	for {
		tok := p.cur()
		switch {
		case p.atEnd(), tok.IsPunct(";"), tok.IsPunct(")"), tok.IsPunct("}"):
			if tok.IsPunct(";") && !inForHeader {
				p.advance()
			}
			node.LastToken = p.lastConsumed()
			return nil

		case inForHeader && (tok.IsIdent("of") || tok.IsKeyword("in")):
			node.LastToken = p.lastConsumed()
			return nil

		case tok.IsPunct(","):
			p.advance()

		case tok.Kind == TokIdent:
			decl := p.newNode(NodeDeclarator, p.pos)
			decl.Decl = &DeclAttrs{Name: tok.Text}
			node.AppendChild(decl)
			p.advance()

			if p.cur().IsPunct("!") {
				p.advance()
			}
			if p.cur().IsPunct(":") {
				p.advance()
				p.skipTypeUntil("=", ",", ";", ")")
			}
			if p.cur().IsPunct("=") {
				p.advance()
				if err := p.parseExprUntil(decl, true); err != nil {
					return err
				}
			}
			decl.LastToken = p.lastConsumed()

			// Semicolon insertion: a new line after a complete
			// declarator ends the statement.
			if !p.atEnd() && !p.cur().IsPunct(",") && !p.cur().IsPunct(";") &&
				!p.sameLine(p.lastConsumed(), p.pos) {
				node.LastToken = p.lastConsumed()
				return nil
			}

		case tok.IsPunct("{") || tok.IsPunct("["):
			if err := p.parsePattern(node, func(name string) {
				decl := p.newNode(NodeDeclarator, p.pos)
				decl.Decl = &DeclAttrs{Name: name}
				node.AppendChild(decl)
			}); err != nil {
				return err
			}
			if p.cur().IsPunct(":") {
				p.advance()
				p.skipTypeUntil("=", ",", ";", ")")
			}
			if p.cur().IsPunct("=") {
				p.advance()
				if err := p.parseExprUntil(node, true); err != nil {
					return err
				}
			}

		default:
			p.advance()
		}
	}
}

// --- expressions ------------------------------------------------------------

// parseExprUntil parses expression content, attaching identifier uses,
// await markers, and nested function/class/object structures to owner.
// It stops (without consuming) at `;` `)` `]` `}`, at `:` outside a
// ternary, at `,` when stopAtComma is set, and at statement boundaries
// implied by line breaks.
func (p *parser) parseExprUntil(owner *Node, stopAtComma bool) error {
	ternaryDepth := 0
	prevIdx := -1

	for {
		tok := p.cur()

		switch {
		case p.atEnd():
			return nil

		case tok.IsPunct(";") || tok.IsPunct(")") || tok.IsPunct("]") || tok.IsPunct("}"):
			return nil

		case tok.IsPunct(",") && stopAtComma:
			return nil

		case tok.IsPunct(":") && ternaryDepth == 0:
			return nil

		case tok.IsPunct("?"):
			ternaryDepth++
			p.advance()

		case tok.IsPunct(":"):
			ternaryDepth--
			p.advance()

		// Minimal semicolon insertion.
		case prevIdx >= 0 && !p.sameLine(prevIdx, p.pos) && p.endsExpr(prevIdx) && !p.continuesExpr(tok):
			return nil

		case tok.IsKeyword("function"):
			if _, err := p.parseFunctionFrom(owner, p.pos, false); err != nil {
				return err
			}

		case tok.IsIdent("async") && p.peek(1).IsKeyword("function"):
			start := p.pos
			p.advance()
			if _, err := p.parseFunctionFrom(owner, start, true); err != nil {
				return err
			}

		case tok.IsIdent("async") && (p.isArrowAhead(p.nextIdx(p.pos)) ||
			(p.peek(1).Kind == TokIdent && p.peek(2).IsPunct("=>"))):
			start := p.pos
			p.advance()
			if _, err := p.parseArrowFrom(owner, start, true); err != nil {
				return err
			}

		case tok.IsKeyword("class"):
			if err := p.parseClass(owner); err != nil {
				return err
			}

		case tok.IsKeyword("await"):
			await := p.newNode(NodeAwait, p.pos)
			owner.AppendChild(await)
			p.advance()

		case tok.IsKeyword("yield") || tok.IsKeyword("new") || tok.IsKeyword("delete") ||
			tok.IsKeyword("typeof") || tok.IsKeyword("void") || tok.IsKeyword("instanceof") ||
			tok.IsKeyword("in") || tok.IsKeyword("this") || tok.IsKeyword("super") ||
			tok.IsKeyword("true") || tok.IsKeyword("false") || tok.IsKeyword("null") ||
			tok.IsKeyword("import"):
			p.advance()

		case tok.IsPunct("(") && p.isArrowAhead(p.pos):
			if _, err := p.parseArrowFrom(owner, p.pos, false); err != nil {
				return err
			}

		case tok.IsPunct("("):
			p.advance()
			if err := p.parseExprUntil(owner, false); err != nil {
				return err
			}
			if p.cur().IsPunct(")") {
				p.advance()
			}

		case tok.IsPunct("["):
			p.advance()
			if err := p.parseExprList(owner, "]"); err != nil {
				return err
			}
			if p.cur().IsPunct("]") {
				p.advance()
			}

		case tok.IsPunct("{"):
			if err := p.parseObjectLiteral(owner); err != nil {
				return err
			}

		case tok.IsPunct("=>"):
			// Arrow whose parameter shape was not recognized; parse the
			// body so its content is still visited.
			if _, err := p.parseArrowFrom(owner, p.pos, false); err != nil {
				return err
			}

		case p.variant.IsTypeScript() && (tok.IsIdent("as") || tok.IsIdent("satisfies")):
			p.advance()
			p.skipTypeRef()

		case tok.Kind == TokIdent && p.peek(1).IsPunct("=>"):
			if _, err := p.parseArrowFrom(owner, p.pos, false); err != nil {
				return err
			}

		case tok.Kind == TokIdent:
			p.parseIdentUse(owner, prevIdx, ternaryDepth)

		default:
			p.advance()
		}

		prevIdx = p.lastConsumed()
	}
}

// parseExprList parses comma-separated expressions up to (not consuming)
// the given closing punctuation.
func (p *parser) parseExprList(owner *Node, close string) error {
	for {
		if p.atEnd() || p.cur().IsPunct(close) {
			return nil
		}
		if p.cur().IsPunct(",") {
			p.advance()
			continue
		}
		before := p.pos
		if err := p.parseExprUntil(owner, true); err != nil {
			return err
		}
		if p.pos == before {
			p.advance()
		}
	}
}

// parseIdentUse records an identifier occurrence as a read or write.
// Property accesses and object keys are skipped.
func (p *parser) parseIdentUse(owner *Node, prevIdx, ternaryDepth int) {
	// Property access: preceded by `.` or `?.`.
	if prevIdx >= 0 && (p.toks[prevIdx].IsPunct(".") || p.toks[prevIdx].IsPunct("?.")) {
		p.advance()
		return
	}

	next := p.peek(1)

	// Object key or label, outside a ternary.
	if next.IsPunct(":") && ternaryDepth == 0 {
		p.advance()
		return
	}

	node := p.newNode(NodeIdentifier, p.pos)
	node.Ident = &IdentAttrs{
		Name:  p.cur().Text,
		Write: next.IsPunct("="),
	}
	owner.AppendChild(node)
	p.advance()
}

// endsExpr reports whether the token at idx can terminate an expression.
func (p *parser) endsExpr(idx int) bool {
	tok := p.toks[idx]
	switch tok.Kind {
	case TokIdent, TokNumber, TokString, TokTemplate, TokRegex:
		return true
	case TokKeyword:
		switch tok.Text {
		case "this", "super", "true", "false", "null":
			return true
		}
		return false
	case TokPunct:
		switch tok.Text {
		case ")", "]", "}", "++", "--":
			return true
		}
		return false
	default:
		return false
	}
}

// continuesExpr reports whether a token on a new line continues the
// previous expression rather than starting a new statement.
func (p *parser) continuesExpr(tok Token) bool {
	switch tok.Kind {
	case TokPunct:
		switch tok.Text {
		case "{", "}", ";", "(", "[", "@":
			return false
		}
		return true
	case TokKeyword:
		return tok.Text == "in" || tok.Text == "instanceof"
	case TokIdent:
		return tok.Text == "as" || tok.Text == "satisfies"
	default:
		return false
	}
}

// parseObjectLiteral parses a braced object literal: shorthand properties
// are reads, keys are skipped, methods become function nodes.
func (p *parser) parseObjectLiteral(owner *Node) error {
	openIdx := p.advance() // {

	for {
		tok := p.cur()
		switch {
		case p.atEnd():
			return p.errAt(openIdx, "unbalanced braces")

		case tok.IsPunct("}"):
			p.advance()
			return nil

		case tok.IsPunct(","):
			p.advance()

		case tok.IsPunct("..."):
			p.advance()
			if err := p.parseExprUntil(owner, true); err != nil {
				return err
			}

		case tok.IsPunct("["):
			// Computed key.
			p.advance()
			if err := p.parseExprUntil(owner, false); err != nil {
				return err
			}
			if p.cur().IsPunct("]") {
				p.advance()
			}
			if p.cur().IsPunct(":") {
				p.advance()
				if err := p.parseExprUntil(owner, true); err != nil {
					return err
				}
			} else if p.cur().IsPunct("(") {
				if err := p.parseMethod(owner, p.pos, "", false, false); err != nil {
					return err
				}
			}

		case tok.IsIdent("async") && p.peek(1).Kind == TokIdent && p.peek(2).IsPunct("("):
			start := p.pos
			p.advance()
			name := p.cur().Text
			p.advance()
			if err := p.parseMethod(owner, start, name, true, false); err != nil {
				return err
			}

		case (tok.IsIdent("get") || tok.IsIdent("set")) && p.peek(1).Kind == TokIdent && p.peek(2).IsPunct("("):
			start := p.pos
			p.advance()
			name := p.cur().Text
			p.advance()
			if err := p.parseMethod(owner, start, name, false, false); err != nil {
				return err
			}

		case tok.IsPunct("*") && p.peek(1).Kind == TokIdent && p.peek(2).IsPunct("("):
			start := p.pos
			p.advance()
			name := p.cur().Text
			p.advance()
			if err := p.parseMethod(owner, start, name, false, true); err != nil {
				return err
			}

		case (tok.Kind == TokIdent || tok.Kind == TokString || tok.Kind == TokNumber || tok.Kind == TokKeyword):
			next := p.peek(1)
			switch {
			case next.IsPunct("("):
				// Shorthand method.
				start := p.pos
				name := tok.Text
				p.advance()
				if err := p.parseMethod(owner, start, name, false, false); err != nil {
					return err
				}
			case next.IsPunct(":"):
				p.advance() // key
				p.advance() // :
				if err := p.parseExprUntil(owner, true); err != nil {
					return err
				}
			case tok.Kind == TokIdent:
				// Shorthand property: a read of the identifier.
				node := p.newNode(NodeIdentifier, p.pos)
				node.Ident = &IdentAttrs{Name: tok.Text}
				owner.AppendChild(node)
				p.advance()
				if p.cur().IsPunct("=") {
					p.advance()
					if err := p.parseExprUntil(owner, true); err != nil {
						return err
					}
				}
			default:
				p.advance()
			}

		default:
			p.advance()
		}
	}
}

// isArrowAhead reports whether the paren group starting at openIdx is an
// arrow function parameter list: the matching `)` is followed by `=>`,
// optionally with a return type annotation between.
func (p *parser) isArrowAhead(openIdx int) bool {
	if openIdx >= len(p.toks) || !p.toks[openIdx].IsPunct("(") {
		return false
	}
	depth := 0
	idx := openIdx
	for idx < len(p.toks) {
		tok := p.toks[idx]
		switch {
		case tok.IsPunct("("):
			depth++
		case tok.IsPunct(")"):
			depth--
			if depth == 0 {
				after := p.nextIdx(idx)
				if after >= len(p.toks) {
					return false
				}
				if p.toks[after].IsPunct("=>") {
					return true
				}
				if p.toks[after].IsPunct(":") && p.variant.IsTypeScript() {
					return p.arrowFollowsType(after)
				}
				return false
			}
		}
		idx = p.nextIdx(idx)
	}
	return false
}

// arrowFollowsType scans past a return type annotation at colonIdx and
// reports whether `=>` follows at the same nesting depth.
func (p *parser) arrowFollowsType(colonIdx int) bool {
	depth := 0
	idx := p.nextIdx(colonIdx)
	for idx < len(p.toks) {
		tok := p.toks[idx]
		switch {
		case tok.IsPunct("(") || tok.IsPunct("[") || tok.IsPunct("{") || tok.IsPunct("<"):
			depth++
		case tok.IsPunct(")") || tok.IsPunct("]") || tok.IsPunct("}") || tok.IsPunct(">"):
			if depth == 0 {
				return false
			}
			depth--
		case depth == 0 && tok.IsPunct("=>"):
			return true
		case depth == 0 && (tok.IsPunct(";") || tok.IsPunct(",")):
			return false
		}
		idx = p.nextIdx(idx)
	}
	return false
}

// --- skipping helpers -------------------------------------------------------

// skipBalanced consumes a balanced group from the current opening token.
func (p *parser) skipBalanced(open, close string) error {
	openIdx := p.pos
	depth := 0
	for !p.atEnd() {
		tok := p.cur()
		if tok.IsPunct(open) {
			depth++
		} else if tok.IsPunct(close) {
			depth--
			if depth == 0 {
				p.advance()
				return nil
			}
		}
		p.advance()
	}
	return p.errAt(openIdx, "unbalanced "+open+close)
}

// skipDecorator consumes `@name.path(...)`.
func (p *parser) skipDecorator() {
	p.advance() // @
	for p.cur().Kind == TokIdent || p.cur().IsPunct(".") {
		p.advance()
	}
	if p.cur().IsPunct("(") {
		//nolint:errcheck // tolerated: an unbalanced decorator ends the file anyway
		p.skipBalanced("(", ")")
	}
}

// skipTypeUntil consumes type-annotation tokens until one of the stop
// punctuation tokens appears at zero bracket depth. The stop token is
// not consumed.
func (p *parser) skipTypeUntil(stops ...string) {
	depth := 0
	for !p.atEnd() {
		tok := p.cur()
		if depth == 0 && tok.Kind == TokPunct {
			for _, s := range stops {
				if tok.Text == s {
					return
				}
			}
			if tok.Text == ";" || tok.Text == ")" && !contains(stops, ")") {
				return
			}
		}
		switch {
		case tok.IsPunct("(") || tok.IsPunct("[") || tok.IsPunct("{") || tok.IsPunct("<"):
			depth++
		case tok.IsPunct(")") || tok.IsPunct("]") || tok.IsPunct("}"):
			if depth == 0 {
				return
			}
			depth--
		case tok.IsPunct(">"):
			if depth > 0 {
				depth--
			}
		case tok.IsPunct(">>"):
			depth -= 2
		case tok.IsPunct(">>>"):
			depth -= 3
		}
		if depth < 0 {
			return
		}
		p.advance()
	}
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// skipTypeRef consumes a type reference after `as`/`satisfies`: a dotted
// name with optional generics and array suffixes.
func (p *parser) skipTypeRef() {
	for p.cur().Kind == TokIdent || p.cur().IsPunct(".") ||
		p.cur().IsKeyword("typeof") || p.cur().Kind == TokString || p.cur().Kind == TokNumber {
		p.advance()
	}
	if p.cur().IsPunct("<") {
		p.skipAngles()
	}
	for p.cur().IsPunct("[") && p.peek(1).IsPunct("]") {
		p.advance()
		p.advance()
	}
}

// skipAngles consumes a balanced `<...>` group.
func (p *parser) skipAngles() {
	depth := 0
	for !p.atEnd() {
		tok := p.cur()
		switch {
		case tok.IsPunct("<"):
			depth++
		case tok.IsPunct(">"):
			depth--
		case tok.IsPunct(">>"):
			depth -= 2
		case tok.IsPunct(">>>"):
			depth -= 3
		}
		p.advance()
		if depth <= 0 {
			return
		}
	}
}

// skipTypeDecl consumes a `type X = ...` alias or `declare ...` statement
// through its terminating semicolon or statement boundary.
func (p *parser) skipTypeDecl() {
	startIdx := p.pos
	depth := 0
	prev := startIdx
	for !p.atEnd() {
		tok := p.cur()
		switch {
		case tok.IsPunct("(") || tok.IsPunct("[") || tok.IsPunct("{"):
			depth++
		case tok.IsPunct(")") || tok.IsPunct("]"):
			if depth == 0 {
				return
			}
			depth--
		case tok.IsPunct("}"):
			if depth == 0 {
				return
			}
			depth--
			// A closing brace at depth zero ends the declaration when
			// nothing joins it to the next line.
			if depth == 0 {
				idx := p.advance()
				if p.atEnd() || (!p.sameLine(idx, p.pos) && !p.continuesExpr(p.cur())) {
					return
				}
				prev = idx
				continue
			}
		case tok.IsPunct(";") && depth == 0:
			p.advance()
			return
		case depth == 0 && p.pos != startIdx && !p.sameLine(prev, p.pos) &&
			p.endsExpr(prev) && !p.continuesExpr(tok) && !p.typeJoins(prev):
			return
		}
		prev = p.advance()
	}
}

// typeJoins reports whether the token at idx joins a type expression to
// the following line.
func (p *parser) typeJoins(idx int) bool {
	tok := p.toks[idx]
	if tok.Kind != TokPunct {
		return false
	}
	switch tok.Text {
	case "=", "|", "&", "<", ",":
		return true
	}
	return false
}

// skipBracedDecl consumes `interface X ... { ... }` or `enum X { ... }`.
func (p *parser) skipBracedDecl() error {
	for !p.atEnd() && !p.cur().IsPunct("{") {
		p.advance()
	}
	if p.cur().IsPunct("{") {
		return p.skipBalanced("{", "}")
	}
	return nil
}
