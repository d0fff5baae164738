package syntax

// NodeKind represents the category of a syntax-tree node.
type NodeKind uint8

const (
	// NodeInvalid indicates an erroneous node.
	NodeInvalid NodeKind = iota
	// NodeSourceFile is the root node of a parsed file.
	NodeSourceFile
	// NodeError wraps tokens the parser could not place.
	NodeError

	// NodeFn represents a function item.
	NodeFn
	// NodeStruct represents a struct item.
	NodeStruct
	// NodeEnum represents an enum item.
	NodeEnum
	// NodeUnion represents a union item.
	NodeUnion
	// NodeTrait represents a trait item.
	NodeTrait
	// NodeImpl represents an impl item.
	NodeImpl
	// NodeModule represents a module item.
	NodeModule
	// NodeTypeAlias represents a type alias item.
	NodeTypeAlias
	// NodeConst represents a const item.
	NodeConst
	// NodeStatic represents a static item.
	NodeStatic
	// NodeUse represents a use item.
	NodeUse
	// NodeMacroRules represents a macro_rules! definition.
	NodeMacroRules
	// NodeMacroDef represents a 'macro name { ... }' definition.
	NodeMacroDef
	// NodeMacroCall represents a macro invocation 'path!(...)'.
	NodeMacroCall

	// NodeAttr represents an attribute, '#[...]' or '#![...]'.
	NodeAttr
	// NodeTokenTree represents a bracketed run of raw tokens (macro
	// arguments, macro definition bodies, attribute arguments).
	NodeTokenTree
	// NodeBlock represents a braced block.
	NodeBlock
	// NodeLetStmt represents a let statement.
	NodeLetStmt
	// NodePath represents a qualified path.
	NodePath
	// NodePathSegment represents one path segment.
	NodePathSegment
	// NodeParamList represents a function parameter list.
	NodeParamList
	// NodeParam represents a non-self function parameter.
	NodeParam
	// NodeSelfParam represents the self function parameter.
	NodeSelfParam

	// NodeName represents an identifier at a declaration site.
	NodeName
	// NodeNameRef represents an identifier at a use site.
	NodeNameRef
	// NodeLifetime represents a lifetime position.
	NodeLifetime
	// NodeLabel represents a loop label declaration.
	NodeLabel
)

// IsNameLike reports whether the node kind belongs to the closed name-like
// set: the only composite nodes that produce highlighting of their own.
func (k NodeKind) IsNameLike() bool {
	switch k {
	case NodeName, NodeNameRef, NodeLifetime, NodeLabel:
		return true
	default:
		return false
	}
}

// IsItem reports whether the node kind is a top-level item.
func (k NodeKind) IsItem() bool {
	switch k {
	case NodeFn, NodeStruct, NodeEnum, NodeUnion, NodeTrait, NodeImpl,
		NodeModule, NodeTypeAlias, NodeConst, NodeStatic, NodeUse,
		NodeMacroRules, NodeMacroDef, NodeMacroCall:
		return true
	default:
		return false
	}
}

// IsTypeDef reports whether the node kind can carry derive annotations.
func (k NodeKind) IsTypeDef() bool {
	switch k {
	case NodeStruct, NodeEnum, NodeUnion:
		return true
	default:
		return false
	}
}

// IsMacroDefinition reports whether the node kind defines a macro body that
// the macro-body automaton should scan.
func (k NodeKind) IsMacroDefinition() bool {
	return k == NodeMacroRules || k == NodeMacroDef
}

var nodeKindNames = [...]string{
	NodeInvalid:     "Invalid",
	NodeSourceFile:  "SourceFile",
	NodeError:       "Error",
	NodeFn:          "Fn",
	NodeStruct:      "Struct",
	NodeEnum:        "Enum",
	NodeUnion:       "Union",
	NodeTrait:       "Trait",
	NodeImpl:        "Impl",
	NodeModule:      "Module",
	NodeTypeAlias:   "TypeAlias",
	NodeConst:       "Const",
	NodeStatic:      "Static",
	NodeUse:         "Use",
	NodeMacroRules:  "MacroRules",
	NodeMacroDef:    "MacroDef",
	NodeMacroCall:   "MacroCall",
	NodeAttr:        "Attr",
	NodeTokenTree:   "TokenTree",
	NodeBlock:       "Block",
	NodeLetStmt:     "LetStmt",
	NodePath:        "Path",
	NodePathSegment: "PathSegment",
	NodeParamList:   "ParamList",
	NodeParam:       "Param",
	NodeSelfParam:   "SelfParam",
	NodeName:        "Name",
	NodeNameRef:     "NameRef",
	NodeLifetime:    "Lifetime",
	NodeLabel:       "Label",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return "Unknown"
}
