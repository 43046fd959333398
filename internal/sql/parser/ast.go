package parser

// Statement is the root interface for all SQL statements.
type Statement interface {
	stmtNode()
}

// ----- CREATE TABLE -----
type ColumnDef struct {
	Name string
	Type string // "INT", "TEXT", "FLOAT" (upper-cased, not validated here)
}

type CreateTableStmt struct {
	TableName string
	Columns   []ColumnDef
}

func (*CreateTableStmt) stmtNode() {}

// ----- CREATE INDEX -----
type CreateIndexStmt struct {
	IndexName string // optional, informational only
	TableName string
	Column    string
}

func (*CreateIndexStmt) stmtNode() {}

// ----- INSERT -----
type InsertStmt struct {
	TableName string
	Values    []Expr
}

func (*InsertStmt) stmtNode() {}

// ----- SELECT -----
type SelectStmt struct {
	TableName string
	Columns   []string // empty means *
	Where     *WhereExpr
}

func (*SelectStmt) stmtNode() {}

// ----- UPDATE -----
type Assignment struct {
	Column string
	Value  Expr
}

type UpdateStmt struct {
	TableName string
	Set       Assignment
	Where     *WhereExpr
}

func (*UpdateStmt) stmtNode() {}

// ----- DELETE -----
type DeleteStmt struct {
	TableName string
	Where     *WhereExpr
}

func (*DeleteStmt) stmtNode() {}

// ----- Expressions -----
type Expr interface {
	exprNode()
}

// LiteralExpr holds int64, float64, string or nil (NULL).
type LiteralExpr struct {
	Value any
}

func (*LiteralExpr) exprNode() {}

// WhereExpr is "<Column> <Op> <Value>".
type WhereExpr struct {
	Column string
	Op     string // =, !=, <>, >, <, >=, <=
	Value  Expr
}
