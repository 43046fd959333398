package planner

import (
	"github.com/tuannm99/minisql/internal/record"
)

// Plan is the interface for executable plans.
type Plan interface {
	planNode()
}

// ----- Plan nodes -----

type CreateTablePlan struct {
	TableName string
	Cols      []record.Column
}

func (*CreateTablePlan) planNode() {}

type CreateIndexPlan struct {
	TableName string
	Column    string
}

func (*CreateIndexPlan) planNode() {}

type InsertPlan struct {
	TableName string
	Values    []record.Value
}

func (*InsertPlan) planNode() {}

// ScanPlan reads a table. Empty Columns means every column; nil Filter means
// every row.
type ScanPlan struct {
	TableName string
	Columns   []string
	Filter    *record.Filter
}

func (*ScanPlan) planNode() {}

type DeletePlan struct {
	TableName string
	Filter    *record.Filter
}

func (*DeletePlan) planNode() {}

type UpdatePlan struct {
	TableName string
	Column    string
	Value     record.Value
	Filter    *record.Filter
}

func (*UpdatePlan) planNode() {}
