package ast

import (
	"stellar/internal/source"
)

type ItemKind uint8

const (
	ItemImport ItemKind = iota
	ItemFun
	ItemStruct
	ItemEnum
	ItemInterface
	ItemTypeAlias
)

func (k ItemKind) String() string {
	switch k {
	case ItemImport:
		return "Import"
	case ItemFun:
		return "Function"
	case ItemStruct:
		return "Struct"
	case ItemEnum:
		return "Enum"
	case ItemInterface:
		return "Interface"
	case ItemTypeAlias:
		return "TypeAlias"
	}
	return "Unknown"
}

// Item is a module-level declaration header. Name is zero for imports.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Vis     Visibility
	Doc     string
	HasDoc  bool
	Name    Ident
	Payload PayloadID
}

// GenericParam is `T`, `T: A + B` or `T: A = Default`.
type GenericParam struct {
	Name    Ident
	Bounds  []TypeID
	Default TypeID
}

// WherePredicate is one `T: A + B` entry of a where clause.
type WherePredicate struct {
	Type   TypeID
	Bounds []TypeID
}

type ImportItem struct {
	Path  Path
	Alias Ident // zero without `as`
}

type FunItem struct {
	Generics []GenericParam
	Params   []Param
	Return   TypeID
	Where    []WherePredicate
	// Body is an ExprBlock, or NoExprID for a declaration ending in `;`.
	Body ExprID
}

type FieldDecl struct {
	Vis    Visibility
	Doc    string
	HasDoc bool
	Name   Ident
	Type   TypeID
	Span   source.Span
}

type StructItem struct {
	Generics   []GenericParam
	Implements []TypeID
	Where      []WherePredicate
	Fields     []FieldDecl
	// Opaque is set for `struct Name;`.
	Opaque bool
}

type VariantKind uint8

const (
	VariantUnit VariantKind = iota
	VariantTuple
	VariantStruct
)

type EnumVariant struct {
	Kind   VariantKind
	Doc    string
	HasDoc bool
	Name   Ident
	Tuple  []TypeID
	Fields []FieldDecl
	Span   source.Span
}

type EnumItem struct {
	Generics []GenericParam
	Where    []WherePredicate
	Variants []EnumVariant
}

type InterfaceItem struct {
	Generics []GenericParam
	Supers   []TypeID
	Where    []WherePredicate
	// Methods are ItemFun items; they are not pushed into the module.
	Methods []ItemID
}

type TypeAliasItem struct {
	Generics []GenericParam
	// Value is NoTypeID for `type Name;`.
	Value TypeID
}

type Items struct {
	Arena      *Arena[Item]
	Imports    *Arena[ImportItem]
	Funs       *Arena[FunItem]
	Structs    *Arena[StructItem]
	Enums      *Arena[EnumItem]
	Interfaces *Arena[InterfaceItem]
	Aliases    *Arena[TypeAliasItem]
}

// NewItems creates per-kind arenas; imports and functions get the full hint,
// rarer kinds a fraction of it.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 7
	}
	small := capHint/4 + 1
	return &Items{
		Arena:      NewArena[Item](capHint),
		Imports:    NewArena[ImportItem](capHint),
		Funs:       NewArena[FunItem](capHint),
		Structs:    NewArena[StructItem](small),
		Enums:      NewArena[EnumItem](small),
		Interfaces: NewArena[InterfaceItem](small),
		Aliases:    NewArena[TypeAliasItem](small),
	}
}

func (i *Items) new(kind ItemKind, hdr Item, payload uint32) ItemID {
	hdr.Kind = kind
	hdr.Payload = PayloadID(payload)
	return ItemID(i.Arena.Allocate(hdr))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewImport(hdr Item, data ImportItem) ItemID {
	return i.new(ItemImport, hdr, i.Imports.Allocate(data))
}

func (i *Items) NewFun(hdr Item, data FunItem) ItemID {
	return i.new(ItemFun, hdr, i.Funs.Allocate(data))
}

func (i *Items) NewStruct(hdr Item, data StructItem) ItemID {
	return i.new(ItemStruct, hdr, i.Structs.Allocate(data))
}

func (i *Items) NewEnum(hdr Item, data EnumItem) ItemID {
	return i.new(ItemEnum, hdr, i.Enums.Allocate(data))
}

func (i *Items) NewInterface(hdr Item, data InterfaceItem) ItemID {
	return i.new(ItemInterface, hdr, i.Interfaces.Allocate(data))
}

func (i *Items) NewTypeAlias(hdr Item, data TypeAliasItem) ItemID {
	return i.new(ItemTypeAlias, hdr, i.Aliases.Allocate(data))
}

func (i *Items) Import(id ItemID) (*ImportItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemImport {
		return nil, false
	}
	return i.Imports.Get(uint32(item.Payload)), true
}

func (i *Items) Fun(id ItemID) (*FunItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFun {
		return nil, false
	}
	return i.Funs.Get(uint32(item.Payload)), true
}

func (i *Items) Struct(id ItemID) (*StructItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemStruct {
		return nil, false
	}
	return i.Structs.Get(uint32(item.Payload)), true
}

func (i *Items) Enum(id ItemID) (*EnumItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemEnum {
		return nil, false
	}
	return i.Enums.Get(uint32(item.Payload)), true
}

func (i *Items) Interface(id ItemID) (*InterfaceItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemInterface {
		return nil, false
	}
	return i.Interfaces.Get(uint32(item.Payload)), true
}

func (i *Items) TypeAlias(id ItemID) (*TypeAliasItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemTypeAlias {
		return nil, false
	}
	return i.Aliases.Get(uint32(item.Payload)), true
}
