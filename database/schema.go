package db

import "context"

type Column struct {
	Name string `json:"name"`
	Type string `json:"type"` // declared type as reported by the reader, may be empty
}

type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// ColumnNames returns the names of cols in order.
func ColumnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// DescribeTable returns the name and columns of a single table.
func DescribeTable(ctx context.Context, c Container, name string) (*Table, error) {
	cols, err := c.Columns(ctx, name)
	if err != nil {
		return nil, err
	}
	return &Table{Name: name, Columns: cols}, nil
}
