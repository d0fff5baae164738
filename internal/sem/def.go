package sem

type (
	// UnitID identifies a compilation unit known to the model.
	UnitID uint32
	// LocalID identifies one local binding declaration inside a body.
	// Distinct declarations get distinct IDs even when names collide.
	LocalID uint32
)

const (
	NoUnit  UnitID  = 0
	NoLocal LocalID = 0
)

func (id UnitID) IsValid() bool  { return id != NoUnit }
func (id LocalID) IsValid() bool { return id != NoLocal }

// DefKind is the kind of a resolved definition.
type DefKind uint8

const (
	DefUnknown DefKind = iota
	DefFunc
	DefMethod
	DefStruct
	DefEnum
	DefEnumMember
	DefUnion
	DefTrait
	DefTypeAlias
	DefModule
	DefBuiltinType
	DefLocal
	DefConst
	DefStatic
	DefParam
	DefSelfParam
	DefTypeParam
	DefConstParam
	DefLabel
	DefLifetime
	DefField
	DefMacro
	DefAttrMacro
	DefDeriveMacro
	DefBuiltinAttr
	DefToolModule
	DefSelfType
)

var defKindNames = [...]string{
	DefUnknown:     "Unknown",
	DefFunc:        "Func",
	DefMethod:      "Method",
	DefStruct:      "Struct",
	DefEnum:        "Enum",
	DefEnumMember:  "EnumMember",
	DefUnion:       "Union",
	DefTrait:       "Trait",
	DefTypeAlias:   "TypeAlias",
	DefModule:      "Module",
	DefBuiltinType: "BuiltinType",
	DefLocal:       "Local",
	DefConst:       "Const",
	DefStatic:      "Static",
	DefParam:       "Param",
	DefSelfParam:   "SelfParam",
	DefTypeParam:   "TypeParam",
	DefConstParam:  "ConstParam",
	DefLabel:       "Label",
	DefLifetime:    "Lifetime",
	DefField:       "Field",
	DefMacro:       "Macro",
	DefAttrMacro:   "AttrMacro",
	DefDeriveMacro: "DeriveMacro",
	DefBuiltinAttr: "BuiltinAttr",
	DefToolModule:  "ToolModule",
	DefSelfType:    "SelfType",
}

func (k DefKind) String() string {
	if int(k) < len(defKindNames) {
		return defKindNames[k]
	}
	return "Unknown"
}

// Definition is the model's answer for one resolved name. It carries exactly
// the metadata the tag/modifier policy needs; the model keeps everything else.
type Definition struct {
	Kind DefKind
	Name string

	// Unit is the compilation unit the definition originates from.
	Unit UnitID
	// UnitRoot marks modules that are the root of their compilation unit.
	UnitRoot bool
	// Local identifies the binding declaration for DefLocal definitions.
	Local LocalID

	Public    bool
	TraitItem bool
	Async     bool
	Unsafe    bool
	// Callable marks locals whose type implements a call-capability trait.
	Callable bool
	Mutable  bool
	// Reference marks by-reference locals and &self / &mut self parameters.
	Reference bool
	// Consuming marks locals consumed at this use site.
	Consuming bool
	// NoSelf marks associated functions without a self parameter.
	NoSelf bool
	// DeclarationSite marks occurrences that declare the entity. Name vs
	// name-reference nodes already encode this for identifiers; lifetimes
	// and labels use one node kind for both sites, so the model answers.
	DeclarationSite bool
}
