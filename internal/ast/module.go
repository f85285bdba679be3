package ast

import "stellar/internal/source"

// Module is the tree of one source file.
type Module struct {
	File source.FileID
	Span source.Span
	// Doc holds the `//!` lines, joined with "\n"; HasDoc tells an empty
	// doc comment from a missing one.
	Doc    string
	HasDoc bool
	Items  []ItemID
}

type Modules struct {
	Arena *Arena[Module]
}

func NewModules(capHint uint) *Modules {
	return &Modules{
		Arena: NewArena[Module](capHint),
	}
}

func (m *Modules) New(file source.FileID, sp source.Span) ModuleID {
	return ModuleID(m.Arena.Allocate(Module{
		File:  file,
		Span:  sp,
		Items: make([]ItemID, 0),
	}))
}

func (m *Modules) Get(id ModuleID) *Module {
	return m.Arena.Get(uint32(id))
}
