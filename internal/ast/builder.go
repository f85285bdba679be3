package ast

type Hints struct{ Modules, Items, Stmts, Exprs, Types, Patterns uint }

// Builder owns every arena of one parse. It is not safe for concurrent use;
// parallel parses each get their own Builder.
type Builder struct {
	Modules  *Modules
	Items    *Items
	Stmts    *Stmts
	Exprs    *Exprs
	Types    *Types
	Patterns *Patterns
}

func NewBuilder(hints Hints) *Builder {
	if hints.Modules == 0 {
		hints.Modules = 1 << 3
	}
	if hints.Items == 0 {
		hints.Items = 1 << 7
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 7
	}
	if hints.Patterns == 0 {
		hints.Patterns = 1 << 6
	}
	return &Builder{
		Modules:  NewModules(hints.Modules),
		Items:    NewItems(hints.Items),
		Stmts:    NewStmts(hints.Stmts),
		Exprs:    NewExprs(hints.Exprs),
		Types:    NewTypes(hints.Types),
		Patterns: NewPatterns(hints.Patterns),
	}
}

func (b *Builder) PushItem(mod ModuleID, item ItemID) {
	m := b.Modules.Get(mod)
	m.Items = append(m.Items, item)
}
