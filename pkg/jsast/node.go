package jsast

// Variant selects the grammar variant a file is parsed with.
type Variant string

const (
	VariantJS  Variant = "js"
	VariantJSX Variant = "jsx"
	VariantTS  Variant = "ts"
	VariantTSX Variant = "tsx"
)

// IsTypeScript reports whether the variant carries type annotations.
func (v Variant) IsTypeScript() bool {
	return v == VariantTS || v == VariantTSX
}

// NodeKind identifies the type of an AST node.
type NodeKind uint8

const (
	// NodeProgram is the root node covering the whole file.
	NodeProgram NodeKind = iota

	// NodeFunction is any function form: declaration, expression, arrow,
	// or class method. Attributes live in FuncAttrs.
	NodeFunction

	// NodeClass is a class declaration or expression.
	NodeClass

	// NodeBlock is a braced statement block that is not a function body.
	NodeBlock

	// NodeVarStatement is a var/let/const statement holding declarators.
	NodeVarStatement

	// NodeDeclarator is a single name introduced by a variable statement.
	NodeDeclarator

	// NodeIdentifier is an identifier use site (read or write).
	NodeIdentifier

	// NodeAwait is an await expression.
	NodeAwait
)

// String returns the node kind name used in diagnostics and tests.
func (k NodeKind) String() string {
	switch k {
	case NodeProgram:
		return "Program"
	case NodeFunction:
		return "Function"
	case NodeClass:
		return "Class"
	case NodeBlock:
		return "Block"
	case NodeVarStatement:
		return "VarStatement"
	case NodeDeclarator:
		return "Declarator"
	case NodeIdentifier:
		return "Identifier"
	case NodeAwait:
		return "Await"
	default:
		return "Unknown"
	}
}

// Node is a single AST node. Children form a doubly linked list; token
// spans are stored as indices into the snapshot's token stream.
type Node struct {
	// Kind identifies the node type.
	Kind NodeKind

	// Parent is the enclosing node (nil for the root).
	Parent *Node

	// FirstChild and LastChild delimit the child list.
	FirstChild *Node
	LastChild  *Node

	// Prev and Next are siblings in the parent's child list.
	Prev *Node
	Next *Node

	// FirstToken and LastToken are inclusive indices into the snapshot's
	// token stream covering this node's source extent.
	FirstToken int
	LastToken  int

	// File is the snapshot this node belongs to.
	File *FileSnapshot

	// Exactly one of these is set, matching Kind; nil for kinds
	// that carry no attributes.
	Func  *FuncAttrs
	Class *ClassAttrs
	Var   *VarAttrs
	Decl  *DeclAttrs
	Ident *IdentAttrs
}

// FuncAttrs carries function-specific attributes.
type FuncAttrs struct {
	// Name is the declared name, or empty for anonymous forms.
	Name string

	// Async is true for async functions and async arrows.
	Async bool

	// Arrow is true for arrow functions.
	Arrow bool

	// Method is true for class methods and object-literal shorthand methods.
	Method bool

	// Generator is true for function* forms.
	Generator bool

	// Params are the parameter names in declaration order. Destructured
	// parameters contribute each bound name.
	Params []string
}

// ClassAttrs carries class-specific attributes.
type ClassAttrs struct {
	// Name is the declared name, or empty for class expressions.
	Name string
}

// VarAttrs carries variable-statement attributes.
type VarAttrs struct {
	// Keyword is "var", "let", or "const".
	Keyword string
}

// DeclAttrs carries declarator attributes.
type DeclAttrs struct {
	// Name is the bound identifier.
	Name string
}

// IdentAttrs carries identifier-use attributes.
type IdentAttrs struct {
	// Name is the identifier text.
	Name string

	// Write is true when the use is a plain assignment target rather
	// than a read.
	Write bool
}

// AppendChild adds child as the last child of n, fixing up all links.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	child.Prev = n.LastChild
	child.Next = nil

	if n.LastChild != nil {
		n.LastChild.Next = child
	} else {
		n.FirstChild = child
	}
	n.LastChild = child
}

// Children returns the node's children as a slice.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

// Name returns the declared name carried by the node, or empty when the
// node kind has none.
func (n *Node) Name() string {
	switch {
	case n.Func != nil:
		return n.Func.Name
	case n.Class != nil:
		return n.Class.Name
	case n.Decl != nil:
		return n.Decl.Name
	case n.Ident != nil:
		return n.Ident.Name
	}
	return ""
}
