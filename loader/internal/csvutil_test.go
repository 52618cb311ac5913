package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapColumnsAliases(t *testing.T) {
	header := []string{"Lens ID", "Title", "Abstract", "Owners", "Jurisdiction", "Publication Year", "CPC Classifications"}
	columns := MapColumns(header)

	assert.Equal(t, 0, columns["patent_id"])
	assert.Equal(t, 3, columns["assignee"])
	assert.Equal(t, 5, columns["filing_year"])
	assert.Equal(t, 6, columns["patent_class"])
}

func TestMapColumnsCaseInsensitive(t *testing.T) {
	columns := MapColumns([]string{" patent id ", "TITLE"})

	assert.Equal(t, 0, columns["patent_id"])
	assert.Equal(t, 1, columns["title"])
}

func TestMapColumnsMissingFieldsAbsent(t *testing.T) {
	columns := MapColumns([]string{"Title"})

	_, ok := columns["patent_id"]
	assert.False(t, ok)
}

func TestParseRowDefaults(t *testing.T) {
	columns := MapColumns([]string{"Patent ID", "Title", "Abstract"})
	row, err := ParseRow(columns, []string{"US 1234 567", "Battery pack", "A battery system."})

	require.NoError(t, err)
	assert.Equal(t, "US1234567", row.PatentID) // spaces inside identifiers are stripped
	assert.Equal(t, "US", row.Jurisdiction)
	assert.Equal(t, 2020, row.FilingYear)
	assert.Empty(t, row.PatentClass)
}

func TestParseRowMissingIdentifier(t *testing.T) {
	columns := MapColumns([]string{"Patent ID", "Title"})
	_, err := ParseRow(columns, []string{"   ", "Battery pack"})
	assert.Error(t, err)
}

func TestParseRowFullRecord(t *testing.T) {
	columns := MapColumns([]string{"Patent ID", "Title", "Abstract", "Assignee", "Country", "Filing Year", "IPCR Classifications"})
	row, err := ParseRow(columns, []string{"EP999", "Pump", "A pump.", "Acme", "EP", "2017", "F04B 1/00;;F04B 3/00"})

	require.NoError(t, err)
	assert.Equal(t, "EP", row.Jurisdiction)
	assert.Equal(t, 2017, row.FilingYear)
	assert.Equal(t, []string{"F04B 1/00", "F04B 3/00"}, row.PatentClass)
}

func TestSplitClasses(t *testing.T) {
	assert.Equal(t, []string{}, splitClasses(""))
	assert.Equal(t, []string{"H01M"}, splitClasses("H01M"))
	assert.Equal(t, []string{"H01M", "H02J"}, splitClasses("H01M;H02J"))
	assert.Equal(t, []string{"H01M", "H02J"}, splitClasses("H01M;; H02J ;"))
}
