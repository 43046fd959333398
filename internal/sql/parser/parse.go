package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax wraps every parse failure.
var ErrSyntax = errors.New("minisql: syntax error")

// Parse parses a single SQL statement into an AST. A trailing ';' is optional.
func Parse(sql string) (Statement, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, fmt.Errorf("%w: empty statement", ErrSyntax)
	}
	toks, err := lex(sql)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	p := &parser{toks: toks}
	stmt, err := p.statement()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return stmt, nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) isKeyword(kw string) bool {
	t := p.peek()
	return t.kind == tokKeyword && t.text == kw
}

func (p *parser) isSymbol(sym string) bool {
	t := p.peek()
	return t.kind == tokSymbol && t.text == sym
}

func (p *parser) expectKeyword(kw string) error {
	if !p.isKeyword(kw) {
		return fmt.Errorf("expected %s, got %s", kw, p.peek())
	}
	p.next()
	return nil
}

func (p *parser) expectSymbol(sym string) error {
	if !p.isSymbol(sym) {
		return fmt.Errorf("expected '%s', got %s", sym, p.peek())
	}
	p.next()
	return nil
}

// ident reads an identifier (table/column/index name).
func (p *parser) ident(what string) (string, error) {
	t := p.peek()
	if t.kind != tokIdent {
		return "", fmt.Errorf("expected %s name, got %s", what, t)
	}
	p.next()
	return t.text, nil
}

// end accepts an optional ';' and then requires end of input.
func (p *parser) end() error {
	if p.isSymbol(";") {
		p.next()
	}
	if t := p.peek(); t.kind != tokEOF {
		return fmt.Errorf("unexpected %s after statement", t)
	}
	return nil
}

func (p *parser) statement() (Statement, error) {
	t := p.peek()
	if t.kind != tokKeyword {
		return nil, fmt.Errorf("unsupported statement starting with %s", t)
	}

	var (
		stmt Statement
		err  error
	)
	switch t.text {
	case "CREATE":
		p.next()
		switch {
		case p.isKeyword("TABLE"):
			stmt, err = p.createTable()
		case p.isKeyword("INDEX"):
			stmt, err = p.createIndex()
		default:
			return nil, fmt.Errorf("expected TABLE or INDEX after CREATE, got %s", p.peek())
		}
	case "INSERT":
		stmt, err = p.insert()
	case "SELECT":
		stmt, err = p.selectStmt()
	case "UPDATE":
		stmt, err = p.update()
	case "DELETE":
		stmt, err = p.deleteStmt()
	default:
		return nil, fmt.Errorf("unsupported statement starting with %s", t)
	}
	if err != nil {
		return nil, err
	}
	if err := p.end(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// CREATE TABLE <name> (<col> <type>, ...)
func (p *parser) createTable() (Statement, error) {
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	name, err := p.ident("table")
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	var cols []ColumnDef
	for {
		col, err := p.ident("column")
		if err != nil {
			return nil, err
		}
		t := p.peek()
		if t.kind != tokIdent {
			return nil, fmt.Errorf("expected type for column %q, got %s", col, t)
		}
		p.next()
		cols = append(cols, ColumnDef{Name: col, Type: strings.ToUpper(t.text)})

		if p.isSymbol(",") {
			p.next()
			continue
		}
		break
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return &CreateTableStmt{TableName: name, Columns: cols}, nil
}

// CREATE INDEX [name] ON <table> (<column>)
func (p *parser) createIndex() (Statement, error) {
	if err := p.expectKeyword("INDEX"); err != nil {
		return nil, err
	}
	var idxName string
	if p.peek().kind == tokIdent {
		idxName = p.next().text
	}
	if err := p.expectKeyword("ON"); err != nil {
		return nil, err
	}
	table, err := p.ident("table")
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	col, err := p.ident("column")
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return &CreateIndexStmt{IndexName: idxName, TableName: table, Column: col}, nil
}

// INSERT INTO <table> VALUES (<lit>, ...)
func (p *parser) insert() (Statement, error) {
	p.next()
	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	table, err := p.ident("table")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("VALUES"); err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	var values []Expr
	if !p.isSymbol(")") {
		for {
			v, err := p.literal()
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			if p.isSymbol(",") {
				p.next()
				continue
			}
			break
		}
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return &InsertStmt{TableName: table, Values: values}, nil
}

// SELECT * | <col>, ... FROM <table> [WHERE ...]
func (p *parser) selectStmt() (Statement, error) {
	p.next()
	var cols []string
	if p.isSymbol("*") {
		p.next()
	} else {
		for {
			c, err := p.ident("column")
			if err != nil {
				return nil, err
			}
			cols = append(cols, c)
			if p.isSymbol(",") {
				p.next()
				continue
			}
			break
		}
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := p.ident("table")
	if err != nil {
		return nil, err
	}
	where, err := p.optionalWhere()
	if err != nil {
		return nil, err
	}
	return &SelectStmt{TableName: table, Columns: cols, Where: where}, nil
}

// UPDATE <table> SET <col> = <lit> [WHERE ...]
func (p *parser) update() (Statement, error) {
	p.next()
	table, err := p.ident("table")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}
	col, err := p.ident("column")
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokOp || t.text != "=" {
		return nil, fmt.Errorf("expected '=' after SET %s, got %s", col, t)
	}
	p.next()
	val, err := p.literal()
	if err != nil {
		return nil, err
	}
	where, err := p.optionalWhere()
	if err != nil {
		return nil, err
	}
	return &UpdateStmt{
		TableName: table,
		Set:       Assignment{Column: col, Value: val},
		Where:     where,
	}, nil
}

// DELETE FROM <table> [WHERE ...]
func (p *parser) deleteStmt() (Statement, error) {
	p.next()
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := p.ident("table")
	if err != nil {
		return nil, err
	}
	where, err := p.optionalWhere()
	if err != nil {
		return nil, err
	}
	return &DeleteStmt{TableName: table, Where: where}, nil
}

// WHERE <col> <op> <lit>
func (p *parser) optionalWhere() (*WhereExpr, error) {
	if !p.isKeyword("WHERE") {
		return nil, nil
	}
	p.next()
	col, err := p.ident("column")
	if err != nil {
		return nil, err
	}
	op := p.peek()
	if op.kind != tokOp {
		return nil, fmt.Errorf("expected comparison operator, got %s", op)
	}
	p.next()
	val, err := p.literal()
	if err != nil {
		return nil, err
	}
	return &WhereExpr{Column: col, Op: op.text, Value: val}, nil
}

func (p *parser) literal() (Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokInt:
		p.next()
		n, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %s: %w", t, err)
		}
		return &LiteralExpr{Value: n}, nil
	case tokFloat:
		p.next()
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %s: %w", t, err)
		}
		return &LiteralExpr{Value: f}, nil
	case tokString:
		p.next()
		return &LiteralExpr{Value: t.text}, nil
	case tokKeyword:
		if t.text == "NULL" {
			p.next()
			return &LiteralExpr{Value: nil}, nil
		}
	}
	return nil, fmt.Errorf("expected literal value, got %s", t)
}
