package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"stellar/internal/ast"
	"stellar/internal/source"
)

// ASTNodeOutput is the format-neutral view of one tree node. The pretty,
// JSON and YAML printers all render this same structure.
type ASTNodeOutput struct {
	Type     string          `json:"type" yaml:"type"`
	Kind     string          `json:"kind,omitempty" yaml:"kind,omitempty"`
	Span     string          `json:"span" yaml:"span"`
	Text     string          `json:"text,omitempty" yaml:"text,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n *ASTNodeOutput) field(key string, v any) {
	if n.Fields == nil {
		n.Fields = make(map[string]any)
	}
	n.Fields[key] = v
}

func (n *ASTNodeOutput) add(role string, child ASTNodeOutput) {
	if role != "" {
		child.field("role", role)
	}
	n.Children = append(n.Children, child)
}

type treeBuilder struct {
	b  *ast.Builder
	in *source.Interner
}

// BuildASTOutput converts a parsed module into its output tree.
func BuildASTOutput(b *ast.Builder, in *source.Interner, mod ast.ModuleID) (ASTNodeOutput, error) {
	m := b.Modules.Get(mod)
	if m == nil {
		return ASTNodeOutput{}, fmt.Errorf("module %d not found", mod)
	}
	tb := treeBuilder{b: b, in: in}
	root := ASTNodeOutput{Type: "Module", Span: formatSpan(m.Span)}
	if m.HasDoc {
		root.field("doc", m.Doc)
	}
	for _, id := range m.Items {
		root.add("", tb.item(id))
	}
	return root, nil
}

// BuildExprOutput is BuildASTOutput for a standalone expression.
func BuildExprOutput(b *ast.Builder, in *source.Interner, id ast.ExprID) ASTNodeOutput {
	return treeBuilder{b: b, in: in}.expr(id)
}

func formatSpan(sp source.Span) string {
	return fmt.Sprintf("%d..%d", sp.Start, sp.End)
}

func (tb treeBuilder) name(id ast.Ident) string {
	if !id.IsValid() {
		return ""
	}
	s, ok := tb.in.Lookup(id.Name)
	if !ok {
		return fmt.Sprintf("<sym %d>", id.Name)
	}
	return s
}

func (tb treeBuilder) path(p ast.Path) string {
	parts := make([]string, len(p.Segments))
	for i, seg := range p.Segments {
		parts[i] = tb.name(seg)
	}
	return strings.Join(parts, ".")
}

func (tb treeBuilder) item(id ast.ItemID) ASTNodeOutput {
	it := tb.b.Items.Get(id)
	if it == nil {
		return ASTNodeOutput{Type: "Item", Kind: "<nil>"}
	}
	n := ASTNodeOutput{Type: "Item", Kind: it.Kind.String(), Span: formatSpan(it.Span), Text: tb.name(it.Name)}
	if it.Vis.Public {
		n.field("visibility", it.Vis.String())
	}
	if it.HasDoc {
		n.field("doc", it.Doc)
	}

	switch it.Kind {
	case ast.ItemImport:
		d, _ := tb.b.Items.Import(id)
		n.Text = tb.path(d.Path)
		if d.Alias.IsValid() {
			n.field("alias", tb.name(d.Alias))
		}
	case ast.ItemFun:
		d, _ := tb.b.Items.Fun(id)
		tb.generics(&n, d.Generics, d.Where)
		for _, p := range d.Params {
			n.add("param", tb.param(p))
		}
		tb.optType(&n, "return", d.Return)
		tb.optExpr(&n, "body", d.Body)
	case ast.ItemStruct:
		d, _ := tb.b.Items.Struct(id)
		tb.generics(&n, d.Generics, d.Where)
		for _, t := range d.Implements {
			n.add("implements", tb.typ(t))
		}
		if d.Opaque {
			n.field("opaque", true)
		}
		for _, f := range d.Fields {
			n.add("field", tb.fieldDecl(f))
		}
	case ast.ItemEnum:
		d, _ := tb.b.Items.Enum(id)
		tb.generics(&n, d.Generics, d.Where)
		for _, v := range d.Variants {
			vn := ASTNodeOutput{Type: "Variant", Kind: variantKind(v.Kind), Span: formatSpan(v.Span), Text: tb.name(v.Name)}
			if v.HasDoc {
				vn.field("doc", v.Doc)
			}
			for _, t := range v.Tuple {
				vn.add("", tb.typ(t))
			}
			for _, f := range v.Fields {
				vn.add("field", tb.fieldDecl(f))
			}
			n.add("", vn)
		}
	case ast.ItemInterface:
		d, _ := tb.b.Items.Interface(id)
		tb.generics(&n, d.Generics, d.Where)
		for _, t := range d.Supers {
			n.add("super", tb.typ(t))
		}
		for _, m := range d.Methods {
			n.add("method", tb.item(m))
		}
	case ast.ItemTypeAlias:
		d, _ := tb.b.Items.TypeAlias(id)
		tb.generics(&n, d.Generics, nil)
		tb.optType(&n, "value", d.Value)
	}
	return n
}

func variantKind(k ast.VariantKind) string {
	switch k {
	case ast.VariantTuple:
		return "Tuple"
	case ast.VariantStruct:
		return "Struct"
	default:
		return "Unit"
	}
}

func (tb treeBuilder) generics(n *ASTNodeOutput, gs []ast.GenericParam, where []ast.WherePredicate) {
	for _, g := range gs {
		gn := ASTNodeOutput{Type: "GenericParameter", Span: formatSpan(g.Name.Span), Text: tb.name(g.Name)}
		for _, b := range g.Bounds {
			gn.add("bound", tb.typ(b))
		}
		tb.optType(&gn, "default", g.Default)
		n.add("generic", gn)
	}
	for _, w := range where {
		wn := ASTNodeOutput{Type: "WherePredicate"}
		wt := tb.typ(w.Type)
		wn.Span = wt.Span
		wn.add("type", wt)
		for _, b := range w.Bounds {
			wn.add("bound", tb.typ(b))
		}
		n.add("where", wn)
	}
}

func (tb treeBuilder) param(p ast.Param) ASTNodeOutput {
	n := ASTNodeOutput{Type: "Parameter", Span: formatSpan(p.Span), Text: tb.name(p.Name)}
	tb.optType(&n, "type", p.Type)
	tb.optExpr(&n, "default", p.Default)
	return n
}

func (tb treeBuilder) fieldDecl(f ast.FieldDecl) ASTNodeOutput {
	n := ASTNodeOutput{Type: "Field", Span: formatSpan(f.Span), Text: tb.name(f.Name)}
	if f.Vis.Public {
		n.field("visibility", f.Vis.String())
	}
	if f.HasDoc {
		n.field("doc", f.Doc)
	}
	n.add("type", tb.typ(f.Type))
	return n
}

func (tb treeBuilder) optType(n *ASTNodeOutput, role string, id ast.TypeID) {
	if id.IsValid() {
		n.add(role, tb.typ(id))
	}
}

func (tb treeBuilder) optExpr(n *ASTNodeOutput, role string, id ast.ExprID) {
	if id.IsValid() {
		n.add(role, tb.expr(id))
	}
}

func (tb treeBuilder) optPattern(n *ASTNodeOutput, role string, id ast.PatternID) {
	if id.IsValid() {
		n.add(role, tb.pattern(id))
	}
}

func (tb treeBuilder) typ(id ast.TypeID) ASTNodeOutput {
	t := tb.b.Types.Get(id)
	if t == nil {
		return ASTNodeOutput{Type: "Type", Kind: "<nil>"}
	}
	n := ASTNodeOutput{Type: "Type", Kind: t.Kind.String(), Span: formatSpan(t.Span)}
	switch t.Kind {
	case ast.TypePath:
		d, _ := tb.b.Types.Path(id)
		n.Text = tb.path(d.Path)
		for _, a := range d.Args {
			n.add("argument", tb.typ(a))
		}
	case ast.TypeTuple, ast.TypeDyn:
		d, _ := tb.b.Types.List(id)
		for _, e := range d.Elems {
			n.add("", tb.typ(e))
		}
	case ast.TypeFun:
		d, _ := tb.b.Types.Fun(id)
		for _, p := range d.Params {
			n.add("parameter", tb.typ(p))
		}
		tb.optType(&n, "return", d.Return)
	}
	return n
}

func (tb treeBuilder) stmt(id ast.StmtID) ASTNodeOutput {
	s := tb.b.Stmts.Get(id)
	if s == nil {
		return ASTNodeOutput{Type: "Statement", Kind: "<nil>"}
	}
	n := ASTNodeOutput{Type: "Statement", Kind: s.Kind.String(), Span: formatSpan(s.Span)}
	if s.Kind == ast.StmtExpr && s.HasSemicolon {
		n.field("semicolon", true)
	}
	if let, ok := tb.b.Stmts.Let(id); ok {
		tb.optPattern(&n, "pattern", let.Pattern)
		tb.optType(&n, "type", let.Type)
	}
	tb.optExpr(&n, "", s.Expr)
	return n
}

func (tb treeBuilder) expr(id ast.ExprID) ASTNodeOutput {
	e := tb.b.Exprs.Get(id)
	if e == nil {
		return ASTNodeOutput{Type: "Expression", Kind: "<nil>"}
	}
	n := ASTNodeOutput{Type: "Expression", Kind: e.Kind.String(), Span: formatSpan(e.Span)}
	x := tb.b.Exprs

	switch e.Kind {
	case ast.ExprLit:
		d, _ := x.Literal(id)
		n.Text = d.Raw
		n.field("literal", d.Kind.String())
		if d.Overflow {
			n.field("overflow", true)
		}
	case ast.ExprIdent:
		d, _ := x.Ident(id)
		n.Text = tb.name(ast.Ident{Name: d.Name})
	case ast.ExprParen:
		d, _ := x.Paren(id)
		n.add("", tb.expr(d.Inner))
	case ast.ExprList, ast.ExprTuple:
		d, _ := x.Elems(id)
		for _, el := range d.Elems {
			n.add("", tb.expr(el))
		}
	case ast.ExprBlock:
		d, _ := x.Block(id)
		for _, s := range d.Stmts {
			n.add("", tb.stmt(s))
		}
		tb.optExpr(&n, "tail", d.Tail)
	case ast.ExprClosure:
		d, _ := x.Closure(id)
		for _, p := range d.Params {
			n.add("param", tb.param(p))
		}
		tb.optType(&n, "return", d.Return)
		n.add("body", tb.expr(d.Body))
	case ast.ExprIf:
		d, _ := x.If(id)
		for _, br := range d.Branches {
			n.add("condition", tb.expr(br.Cond))
			n.add("then", tb.expr(br.Body))
		}
		tb.optExpr(&n, "else", d.Else)
	case ast.ExprMatch:
		d, _ := x.Match(id)
		n.add("scrutinee", tb.expr(d.Scrutinee))
		for _, arm := range d.Arms {
			an := ASTNodeOutput{Type: "MatchArm", Span: formatSpan(arm.Span)}
			an.add("pattern", tb.pattern(arm.Pattern))
			an.add("body", tb.expr(arm.Body))
			n.add("", an)
		}
	case ast.ExprWhile:
		d, _ := x.While(id)
		n.add("condition", tb.expr(d.Cond))
		n.add("body", tb.expr(d.Body))
	case ast.ExprLoop:
		d, _ := x.Loop(id)
		n.add("body", tb.expr(d.Body))
	case ast.ExprPrefix, ast.ExprPostfix:
		d, _ := x.Unary(id)
		n.Text = d.Op.Lexeme()
		n.add("", tb.expr(d.Operand))
	case ast.ExprBinary:
		d, _ := x.Binary(id)
		n.Text = d.Op.Lexeme()
		n.add("left", tb.expr(d.Left))
		n.add("right", tb.expr(d.Right))
	case ast.ExprCall:
		d, _ := x.Call(id)
		n.add("callee", tb.expr(d.Callee))
		for _, a := range d.Args {
			n.add("argument", tb.expr(a))
		}
	case ast.ExprProperty:
		d, _ := x.Property(id)
		n.Text = tb.name(d.Name)
		n.add("", tb.expr(d.Left))
	case ast.ExprGenericArgs:
		d, _ := x.GenericArgs(id)
		n.add("", tb.expr(d.Left))
		for _, a := range d.Args {
			n.add("argument", tb.typ(a))
		}
	case ast.ExprCast:
		d, _ := x.Cast(id)
		n.add("", tb.expr(d.Value))
		n.add("type", tb.typ(d.Type))
	case ast.ExprStruct:
		d, _ := x.Struct(id)
		n.add("", tb.expr(d.Left))
		for _, f := range d.Fields {
			fn := ASTNodeOutput{Type: "StructField", Span: formatSpan(f.Name.Span), Text: tb.name(f.Name)}
			tb.optExpr(&fn, "", f.Value)
			n.add("", fn)
		}
	}
	return n
}

func (tb treeBuilder) pattern(id ast.PatternID) ASTNodeOutput {
	p := tb.b.Patterns.Get(id)
	if p == nil {
		return ASTNodeOutput{Type: "Pattern", Kind: "<nil>"}
	}
	n := ASTNodeOutput{Type: "Pattern", Kind: p.Kind.String(), Span: formatSpan(p.Span)}
	d := tb.b.Patterns.Payload(id)
	if d == nil {
		return n
	}
	switch p.Kind {
	case ast.PatLiteral:
		n.add("", tb.expr(d.Literal))
	case ast.PatIdent:
		n.Text = tb.name(d.Name)
		tb.optPattern(&n, "binding", d.Sub)
	case ast.PatPath, ast.PatTupleLike:
		n.Text = tb.path(d.Path)
	case ast.PatStruct:
		n.Text = tb.path(d.Path)
		if d.HasRest {
			n.field("rest", true)
		}
		for _, f := range d.Fields {
			fn := ASTNodeOutput{Type: "StructPatternField", Span: formatSpan(f.Name.Span), Text: tb.name(f.Name)}
			tb.optPattern(&fn, "", f.Pattern)
			n.add("", fn)
		}
	case ast.PatGroup:
		tb.optPattern(&n, "", d.Sub)
	}
	for _, el := range d.Elems {
		n.add("", tb.pattern(el))
	}
	return n
}

// FormatASTPretty prints the module as an indented tree.
func FormatASTPretty(w io.Writer, b *ast.Builder, in *source.Interner, mod ast.ModuleID) error {
	root, err := BuildASTOutput(b, in, mod)
	if err != nil {
		return err
	}
	return WriteTree(w, root)
}

// WriteTree renders any output node with box-drawing connectors.
func WriteTree(w io.Writer, root ASTNodeOutput) error {
	var sb strings.Builder
	sb.WriteString(nodeLabel(root))
	sb.WriteByte('\n')
	writeChildren(&sb, root.Children, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeChildren(sb *strings.Builder, children []ASTNodeOutput, prefix string) {
	for i, c := range children {
		last := i == len(children)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(nodeLabel(c))
		sb.WriteByte('\n')
		writeChildren(sb, c.Children, prefix+next)
	}
}

func nodeLabel(n ASTNodeOutput) string {
	var sb strings.Builder
	if role, ok := n.Fields["role"].(string); ok {
		sb.WriteString(role)
		sb.WriteString(": ")
	}
	sb.WriteString(n.Type)
	if n.Kind != "" {
		sb.WriteString(" ")
		sb.WriteString(n.Kind)
	}
	if n.Text != "" {
		fmt.Fprintf(&sb, " %q", n.Text)
	}
	for _, key := range []string{"visibility", "literal", "overflow", "opaque", "rest", "semicolon", "alias"} {
		if v, ok := n.Fields[key]; ok {
			fmt.Fprintf(&sb, " %s=%v", key, v)
		}
	}
	if n.Span != "" {
		fmt.Fprintf(&sb, " (span: %s)", n.Span)
	}
	return sb.String()
}

func FormatASTJSON(w io.Writer, b *ast.Builder, in *source.Interner, mod ast.ModuleID) error {
	root, err := BuildASTOutput(b, in, mod)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func FormatASTYAML(w io.Writer, b *ast.Builder, in *source.Interner, mod ast.ModuleID) error {
	root, err := BuildASTOutput(b, in, mod)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}
