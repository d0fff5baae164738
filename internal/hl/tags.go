// Package hl assigns a semantic classification, a tag plus a set of
// modifiers, to every meaningful token and name in a parsed source file. It
// does not decide colors; mapping classifications to a concrete style is the
// consumer's job.
package hl

import "strings"

// Tag is the closed set of semantic categories. Every highlighted span
// carries exactly one tag.
type Tag uint8

const (
	// Items.
	TagFn Tag = iota
	TagMethod
	TagStruct
	TagEnum
	TagUnion
	TagTrait
	TagTypeAlias
	TagModule
	TagMacro
	TagAttrMacro
	TagDeriveMacro

	// Literals.
	TagBool
	TagChar
	TagNumber
	TagString
	TagEscape
	TagFormatSpec

	// Operators.
	TagOperator
	TagOpArith
	TagOpBitwise
	TagOpCompare
	TagOpLogical

	// Punctuation.
	TagPunct
	TagPunctBracket
	TagPunctColon
	TagPunctComma
	TagPunctDot
	TagPunctSemi
	TagPunctMacroBang

	// Everything else.
	TagKeyword
	TagComment
	TagLabel
	TagLifetime
	TagParam
	TagField
	TagSelfValue
	TagSelfType
	TagTypeParam
	TagConstParam
	TagUnresolved
	TagVariable
	TagEnumMember
	TagToolModule
	TagBuiltinType
	TagBuiltinAttr

	numTags
)

var tagNames = [numTags]string{
	TagFn:             "function",
	TagMethod:         "method",
	TagStruct:         "struct",
	TagEnum:           "enum",
	TagUnion:          "union",
	TagTrait:          "trait",
	TagTypeAlias:      "typeAlias",
	TagModule:         "module",
	TagMacro:          "macro",
	TagAttrMacro:      "attribute",
	TagDeriveMacro:    "derive",
	TagBool:           "boolean",
	TagChar:           "character",
	TagNumber:         "number",
	TagString:         "string",
	TagEscape:         "escapeSequence",
	TagFormatSpec:     "formatSpecifier",
	TagOperator:       "operator",
	TagOpArith:        "arithmetic",
	TagOpBitwise:      "bitwise",
	TagOpCompare:      "comparison",
	TagOpLogical:      "logical",
	TagPunct:          "punctuation",
	TagPunctBracket:   "bracket",
	TagPunctColon:     "colon",
	TagPunctComma:     "comma",
	TagPunctDot:       "dot",
	TagPunctSemi:      "semi",
	TagPunctMacroBang: "macroBang",
	TagKeyword:        "keyword",
	TagComment:        "comment",
	TagLabel:          "label",
	TagLifetime:       "lifetime",
	TagParam:          "parameter",
	TagField:          "field",
	TagSelfValue:      "selfKeyword",
	TagSelfType:       "selfTypeKeyword",
	TagTypeParam:      "typeParameter",
	TagConstParam:     "constParameter",
	TagUnresolved:     "unresolvedReference",
	TagVariable:       "variable",
	TagEnumMember:     "enumMember",
	TagToolModule:     "toolModule",
	TagBuiltinType:    "builtinType",
	TagBuiltinAttr:    "builtinAttribute",
}

func (t Tag) String() string {
	if t < numTags {
		return tagNames[t]
	}
	return "unknown"
}

// Tags lists every tag name in declaration order, for legends and themes.
func Tags() []string {
	out := make([]string, numTags)
	for i := range out {
		out[i] = Tag(i).String()
	}
	return out
}

// Modifier is one orthogonal boolean attribute of a highlighted span.
type Modifier uint8

const (
	ModDeclaration Modifier = iota
	ModMutable
	ModReference
	ModConsuming
	ModCallable
	ModConstant
	ModStatic
	ModPublic
	ModLibrary
	ModDefaultLibrary
	ModCrateRoot
	ModTraitItem
	ModUnsafe
	ModAsync
	ModControlFlow
	ModAttribute
	ModDocumentation
	ModInjected
	ModIntraDocLink

	numModifiers
)

var modifierNames = [numModifiers]string{
	ModDeclaration:    "declaration",
	ModMutable:        "mutable",
	ModReference:      "reference",
	ModConsuming:      "consuming",
	ModCallable:       "callable",
	ModConstant:       "constant",
	ModStatic:         "static",
	ModPublic:         "public",
	ModLibrary:        "library",
	ModDefaultLibrary: "defaultLibrary",
	ModCrateRoot:      "crateRoot",
	ModTraitItem:      "trait",
	ModUnsafe:         "unsafe",
	ModAsync:          "async",
	ModControlFlow:    "controlFlow",
	ModAttribute:      "attribute",
	ModDocumentation:  "documentation",
	ModInjected:       "injected",
	ModIntraDocLink:   "intraDocLink",
}

func (m Modifier) String() string {
	if m < numModifiers {
		return modifierNames[m]
	}
	return "unknown"
}

// Modifiers lists every modifier name in bit order, for legends and themes.
func Modifiers() []string {
	out := make([]string, numModifiers)
	for i := range out {
		out[i] = Modifier(i).String()
	}
	return out
}

// ModifierSet is a bit set of modifiers.
type ModifierSet uint32

// NewModifierSet builds a set from individual modifiers.
func NewModifierSet(mods ...Modifier) ModifierSet {
	var s ModifierSet
	for _, m := range mods {
		s |= 1 << m
	}
	return s
}

func (s ModifierSet) Has(m Modifier) bool { return s&(1<<m) != 0 }

// Union combines two sets. Adding modifiers never removes earlier ones.
func (s ModifierSet) Union(other ModifierSet) ModifierSet { return s | other }

func (s ModifierSet) String() string {
	if s == 0 {
		return ""
	}
	var parts []string
	for m := Modifier(0); m < numModifiers; m++ {
		if s.Has(m) {
			parts = append(parts, m.String())
		}
	}
	return strings.Join(parts, ".")
}

// Highlight is the atomic classification unit: one tag plus modifiers.
type Highlight struct {
	Tag  Tag
	Mods ModifierSet
}

// H is shorthand for a modifier-less highlight.
func H(tag Tag) Highlight { return Highlight{Tag: tag} }

// With returns the highlight with extra modifiers added.
func (h Highlight) With(mods ...Modifier) Highlight {
	h.Mods = h.Mods.Union(NewModifierSet(mods...))
	return h
}

func (h Highlight) String() string {
	mods := h.Mods.String()
	if mods == "" {
		return h.Tag.String()
	}
	return h.Tag.String() + "." + mods
}
