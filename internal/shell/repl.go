package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"github.com/tuannm99/minisql/internal/record"
	"github.com/tuannm99/minisql/internal/sql/executor"
	"github.com/tuannm99/minisql/internal/sql/parser"
	"github.com/tuannm99/minisql/internal/sql/planner"
)

// Catalog is what the meta commands read.
type Catalog interface {
	ListTables() []string
	TableSchema(name string) ([]record.Column, error)
	Indexes(table string) ([]string, error)
}

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

const helpText = `Available commands:
  .help          - Show this help message
  .exit/.quit    - Exit the database
  .tables        - List all tables
  .schema <t>    - Show the columns of table t
  .indexes <t>   - List the indexed columns of table t

Supported SQL:
  CREATE TABLE table_name (col1 TYPE, col2 TYPE, ...)
  CREATE INDEX ON table_name (col)
  INSERT INTO table_name VALUES (val1, val2, ...)
  SELECT * FROM table_name [WHERE col op value]
  SELECT col1, col2 FROM table_name WHERE col = value
  UPDATE table_name SET col = value [WHERE col op value]
  DELETE FROM table_name [WHERE col op value]`

type Shell struct {
	Exec    *executor.Executor
	Catalog Catalog
	Out     io.Writer

	Prompt      string
	HistoryFile string
}

func New(ex *executor.Executor, cat Catalog, out io.Writer) *Shell {
	return &Shell{Exec: ex, Catalog: cat, Out: out, Prompt: "mydb> "}
}

// Run reads lines until EOF or an exit command. Ctrl+C discards the current
// line.
func (s *Shell) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.Prompt,
		HistoryFile:     s.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if s.Handle(line) {
			return nil
		}
	}
}

// Handle processes one input line and reports whether the shell should stop.
func (s *Shell) Handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") {
		return s.meta(line)
	}
	s.RunSQL(line)
	return false
}

// RunSQL executes one statement and prints its result or error. It reports
// whether the statement succeeded.
func (s *Shell) RunSQL(sql string) bool {
	res, err := s.Exec.ExecSQL(sql)
	if err != nil {
		s.println(errorStyle.Render("✗ " + errorLabel(err) + ": " + err.Error()))
		return false
	}
	out := FormatResult(res)
	if !res.IsQuery() {
		out = okStyle.Render(out)
	}
	s.println(out)
	return true
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, parser.ErrSyntax):
		return "Parse error"
	case errors.Is(err, planner.ErrPlan):
		return "Planning error"
	default:
		return "Execution error"
	}
}

func (s *Shell) meta(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case ".exit", ".quit":
		s.println("Goodbye!")
		return true
	case ".help":
		s.println(helpText)
	case ".tables":
		tables := s.Catalog.ListTables()
		if len(tables) == 0 {
			s.println(mutedStyle.Render("No tables in database"))
			return false
		}
		s.println("Tables:")
		for _, t := range tables {
			s.println("  - " + t)
		}
	case ".schema":
		if len(args) != 1 {
			s.println("Usage: .schema <table>")
			return false
		}
		cols, err := s.Catalog.TableSchema(args[0])
		if err != nil {
			s.println(errorStyle.Render("✗ " + err.Error()))
			return false
		}
		s.println(fmt.Sprintf("Table '%s':", args[0]))
		for _, c := range cols {
			s.println(fmt.Sprintf("  %s %s", c.Name, c.Type))
		}
	case ".indexes":
		if len(args) != 1 {
			s.println("Usage: .indexes <table>")
			return false
		}
		cols, err := s.Catalog.Indexes(args[0])
		if err != nil {
			s.println(errorStyle.Render("✗ " + err.Error()))
			return false
		}
		if len(cols) == 0 {
			s.println(mutedStyle.Render(fmt.Sprintf("No indexes on table '%s'", args[0])))
			return false
		}
		s.println(fmt.Sprintf("Indexes on '%s':", args[0]))
		for _, c := range cols {
			s.println("  - " + c)
		}
	default:
		s.println(fmt.Sprintf("Unknown command: %s. Type .help for available commands.", line))
	}
	return false
}

func (s *Shell) println(msg string) {
	_, _ = fmt.Fprintln(s.Out, msg)
}
