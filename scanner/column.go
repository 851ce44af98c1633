package scanner

import "github.com/go-data-exporter/adomd"

// Column describes a result column.
type Column interface {
	Name() string
	// DatabaseTypeName returns the semantic type label, e.g. "decimal".
	DatabaseTypeName() string
}

type cursorColumn struct {
	desc adomd.Description
}

func (c *cursorColumn) Name() string {
	return c.desc.Name
}

func (c *cursorColumn) DatabaseTypeName() string {
	return c.desc.TypeCode
}
