package manifest

import "github.com/alecthomas/participle/v2/lexer"

// File is the root of a parsed .jwire manifest
type File struct {
	Pos   lexer.Position
	Decls []*Decl `parser:"@@*"`
}

// Decl is one top-level manifest declaration
type Decl struct {
	Component *ComponentDecl `parser:"@@"`
	Module    *ModuleDecl    `parser:"| @@"`
	Inject    *InjectDecl    `parser:"| @@"`
	Type      *TypeDecl      `parser:"| @@"`
}

// ComponentDecl declares a generated component and its entry points
type ComponentDecl struct {
	Pos     lexer.Position
	Name    string       `parser:"'component' @Ident"`
	Package string       `parser:"('in' @Ident (@'.' @Ident)*)?"`
	Entries []*EntryDecl `parser:"'{' @@* '}'"`
}

// EntryDecl declares one component entry-point accessor
type EntryDecl struct {
	Pos       lexer.Position
	Qualifier string    `parser:"'entry' ('@' @Ident)?"`
	Type      *TypeExpr `parser:"@@"`
	Name      string    `parser:"@Ident"`
}

// ModuleDecl declares a module grouping provider methods
type ModuleDecl struct {
	Pos      lexer.Position
	Name     string          `parser:"'module' @Ident"`
	Provides []*ProvidesDecl `parser:"'{' @@* '}'"`
}

// ProvidesDecl declares one provider method
type ProvidesDecl struct {
	Pos       lexer.Position
	Static    bool         `parser:"@'static'?"`
	Qualifier string       `parser:"'provides' ('@' @Ident)?"`
	Type      *TypeExpr    `parser:"@@"`
	Name      string       `parser:"@Ident"`
	Params    []*ParamDecl `parser:"'(' (@@ (',' @@)*)? ')'"`
	Nullable  bool         `parser:"@'nullable'?"`
}

// InjectDecl declares an injectable constructor, optionally with
// post-construction injection sites
type InjectDecl struct {
	Pos    lexer.Position
	Type   *TypeExpr    `parser:"'inject' @@"`
	Params []*ParamDecl `parser:"'(' (@@ (',' @@)*)? ')'"`
	Sites  []*SiteDecl  `parser:"('{' @@* '}')?"`
}

// SiteDecl is one field or method injection site
type SiteDecl struct {
	Field  *FieldSiteDecl  `parser:"@@"`
	Method *MethodSiteDecl `parser:"| @@"`
}

// FieldSiteDecl declares a field injection site
type FieldSiteDecl struct {
	Pos       lexer.Position
	Name      string    `parser:"'field' @Ident"`
	Qualifier string    `parser:"('@' @Ident)?"`
	Type      *TypeExpr `parser:"@@"`
}

// MethodSiteDecl declares a method injection site
type MethodSiteDecl struct {
	Pos    lexer.Position
	Name   string       `parser:"'method' @Ident"`
	Params []*ParamDecl `parser:"'(' (@@ (',' @@)*)? ')'"`
}

// ParamDecl is one formal parameter of a provider method, constructor, or
// method injection site
type ParamDecl struct {
	Pos       lexer.Position
	Qualifier string    `parser:"('@' @Ident)?"`
	Type      *TypeExpr `parser:"@@"`
	Name      string    `parser:"@Ident"`
}

// TypeExpr is a possibly-parameterized type reference
type TypeExpr struct {
	Name string      `parser:"@Ident"`
	Args []*TypeExpr `parser:"('<' @@ (',' @@)* '>')?"`
}

// TypeDecl declares visibility and package placement for a named type
type TypeDecl struct {
	Pos      lexer.Position
	Internal bool     `parser:"@'internal'?"`
	Name     string   `parser:"'type' @Ident"`
	Params   []string `parser:"('<' @Ident (',' @Ident)* '>')?"`
	Package  string   `parser:"('in' @Ident (@'.' @Ident)*)?"`
}
