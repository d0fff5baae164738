package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Whitespace covers runs of spaces, tabs and newlines. The highlighter
	// skips these but the tree keeps them so spans stay gap-free.
	Whitespace
	// LineComment represents a '//' comment.
	LineComment
	// BlockComment represents a '/* */' comment.
	BlockComment
	// DocComment represents an outer documentation comment ('///' or '/** */').
	DocComment
	// InnerDocComment represents an inner documentation comment ('//!' or '/*! */').
	InnerDocComment

	// Ident represents an identifier token.
	Ident
	// LifetimeIdent represents a lifetime identifier such as 'a.
	LifetimeIdent

	// Keywords.
	KwAs       // as
	KwAsync    // async
	KwAwait    // await
	KwBreak    // break
	KwConst    // const
	KwContinue // continue
	KwCrate    // crate
	KwDyn      // dyn
	KwElse     // else
	KwEnum     // enum
	KwExtern   // extern
	KwFalse    // false
	KwFn       // fn
	KwFor      // for
	KwIf       // if
	KwImpl     // impl
	KwIn       // in
	KwLet      // let
	KwLoop     // loop
	KwMatch    // match
	KwMod      // mod
	KwMove     // move
	KwMut      // mut
	KwPub      // pub
	KwRef      // ref
	KwReturn   // return
	KwSelfValue // self
	KwSelfType // Self
	KwStatic   // static
	KwStruct   // struct
	KwSuper    // super
	KwTrait    // trait
	KwTrue     // true
	KwType     // type
	KwUnsafe   // unsafe
	KwUse      // use
	KwWhere    // where
	KwWhile    // while

	// Literals.
	IntNumber    // 42, 0xFF
	FloatNumber  // 1.5, 2e3
	CharLit      // 'x'
	StringLit    // "..."
	RawStringLit // r"...", r#"..."#

	// Operators and punctuation.
	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Caret      // ^
	Amp        // &
	Pipe       // |
	AndAnd     // &&
	OrOr       // ||
	Shl        // <<
	Shr        // >>
	PlusEq     // +=
	MinusEq    // -=
	StarEq     // *=
	SlashEq    // /=
	PercentEq  // %=
	CaretEq    // ^=
	AmpEq      // &=
	PipeEq     // |=
	ShlEq      // <<=
	ShrEq      // >>=
	Eq         // =
	EqEq       // ==
	Ne         // !=
	Lt         // <
	Gt         // >
	Le         // <=
	Ge         // >=
	Bang       // !
	At         // @
	Dot        // .
	DotDot     // ..
	DotDotDot  // ...
	DotDotEq   // ..=
	Comma      // ,
	Semi       // ;
	Colon      // :
	PathSep    // ::
	Arrow      // ->
	FatArrow   // =>
	Pound      // #
	Dollar     // $
	Question   // ?
	Underscore // _
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
)
