package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/operations/receipt"
)

type embedded struct {
	ID   id.ID  `db:"id"`
	Name string `db:"name"`
}

type outer struct {
	embedded
	Code    string `db:"code"`
	Skipped string `db:"-"`
	NoTag   string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[outer]()
	assert.Equal(t, []string{"id", "name", "code"}, cols)
}

func TestExtractDBColumns_OperationDocument(t *testing.T) {
	cols := ExtractDBColumns[receipt.Receipt]()
	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "reference")
	assert.Contains(t, cols, "status")
	assert.Contains(t, cols, "supplier_name")
	assert.Contains(t, cols, "destination_location_id")
	assert.NotContains(t, cols, "lines", "table parts are persisted separately")
}

func TestStructToMapNilEmbeddedPointer(t *testing.T) {
	type outerPtr struct {
		*embedded
		Code string `db:"code"`
	}

	m := StructToMap(&outerPtr{Code: "W-2"})
	assert.Equal(t, "W-2", m["code"])
	assert.Len(t, m, 1)
}

func TestStructToMap(t *testing.T) {
	v := outer{
		embedded: embedded{ID: id.New(), Name: "Widget"},
		Code:     "W-1",
		Skipped:  "never",
		NoTag:    "never",
	}
	m := StructToMap(&v)
	assert.Equal(t, "Widget", m["name"])
	assert.Equal(t, "W-1", m["code"])
	assert.Len(t, m, 3)
}
