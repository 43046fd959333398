package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tuannm99/minisql/internal/heap"
	"github.com/tuannm99/minisql/internal/record"
)

// Table file format:
//
//	line 1 : name:TYPE,name:TYPE,...      (TYPE in INT, TEXT, FLOAT)
//	line N : v|v|...                      (one row, values in column order)
//
// NULL is the bare token NULL. Text escapes \ | \n \r with a backslash.
// A text value spelled exactly NULL is therefore read back as NULL; the format
// has no way to tell them apart.

// EncodeTable writes tbl to w in table file format.
func EncodeTable(w io.Writer, tbl *heap.Table) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(EncodeSchema(tbl.Schema)); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	for _, row := range tbl.Rows {
		if _, err := bw.WriteString(EncodeRow(row)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeTable reads a table named name from r.
func DecodeTable(name string, r io.Reader) (*heap.Table, error) {
	br := bufio.NewReader(r)

	header, err := readLine(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing schema line", ErrBadFormat)
		}
		return nil, err
	}
	schema, err := DecodeSchema(strings.TrimSpace(header))
	if err != nil {
		return nil, err
	}

	tbl := heap.NewTable(name, schema)
	lineNo := 1
	for {
		line, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		lineNo++

		if strings.TrimSpace(line) == "" && !singleTextColumn(schema) {
			continue
		}
		row, err := DecodeRow(line, schema)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, nil
}

// readLine returns the next line without its terminator. io.EOF is returned
// only when no bytes remain.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// A lone TEXT column writes an empty string as an empty line, so blank lines
// are rows there and padding everywhere else.
func singleTextColumn(s record.Schema) bool {
	return s.NumCols() == 1 && s.Cols[0].Type == record.ColText
}

func EncodeSchema(s record.Schema) string {
	parts := make([]string, len(s.Cols))
	for i, c := range s.Cols {
		parts[i] = c.Name + typeSep + c.Type.String()
	}
	return strings.Join(parts, columnSep)
}

func DecodeSchema(line string) (record.Schema, error) {
	var cols []record.Column
	for _, def := range strings.Split(line, columnSep) {
		parts := strings.Split(def, typeSep)
		if len(parts) != 2 {
			return record.Schema{}, fmt.Errorf("%w: invalid column definition: %s", ErrBadFormat, def)
		}
		typ, err := decodeColumnType(parts[1])
		if err != nil {
			return record.Schema{}, err
		}
		cols = append(cols, record.Column{Name: parts[0], Type: typ})
	}
	return record.Schema{Cols: cols}, nil
}

func decodeColumnType(s string) (record.ColumnType, error) {
	switch s {
	case "INT":
		return record.ColInt, nil
	case "TEXT":
		return record.ColText, nil
	case "FLOAT":
		return record.ColFloat, nil
	default:
		return 0, fmt.Errorf("%w: unknown data type: %s", ErrBadFormat, s)
	}
}

func EncodeRow(row []record.Value) string {
	var b strings.Builder
	for i, v := range row {
		if i > 0 {
			b.WriteByte(fieldSep)
		}
		b.WriteString(EncodeValue(v))
	}
	return b.String()
}

// DecodeRow parses one row line against schema.
func DecodeRow(line string, schema record.Schema) ([]record.Value, error) {
	fields := splitFields(line)
	if len(fields) != schema.NumCols() {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrBadFormat, schema.NumCols(), len(fields))
	}
	row := make([]record.Value, len(fields))
	for i, f := range fields {
		v, err := DecodeValue(f, schema.Cols[i].Type)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

// EncodeValue renders v for a table file. Floats use the shortest form that
// parses back to the same bits.
func EncodeValue(v record.Value) string {
	switch v.Kind() {
	case record.KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case record.KindText:
		return escapeText(v.Text())
	case record.KindFloat:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	default:
		return nullToken
	}
}

// DecodeValue parses a raw (still escaped) field as a value of type t.
func DecodeValue(s string, t record.ColumnType) (record.Value, error) {
	if s == nullToken {
		return record.Null(), nil
	}
	switch t {
	case record.ColInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return record.Value{}, fmt.Errorf("%w: invalid integer: %s", ErrBadFormat, s)
		}
		return record.IntValue(n), nil
	case record.ColText:
		return record.TextValue(unescapeText(s)), nil
	case record.ColFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return record.Value{}, fmt.Errorf("%w: invalid float: %s", ErrBadFormat, s)
		}
		return record.FloatValue(f), nil
	default:
		return record.Value{}, fmt.Errorf("%w: unsupported column type %v", ErrBadFormat, t)
	}
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	"\n", `\n`,
	"\r", `\r`,
)

func escapeText(s string) string { return textEscaper.Replace(s) }

func unescapeText(s string) string {
	if !strings.ContainsRune(s, escapeChar) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != escapeChar {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			b.WriteByte(escapeChar)
			break
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '|':
			b.WriteByte('|')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(escapeChar)
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// splitFields splits a row line on unescaped '|'. Fields keep their escape
// sequences; DecodeValue undoes them.
func splitFields(line string) []string {
	var fields []string
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case escapeChar:
			i++
		case fieldSep:
			fields = append(fields, line[start:i])
			start = i + 1
		}
	}
	return append(fields, line[start:])
}
