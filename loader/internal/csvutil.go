package internal

import (
	"fmt"
	"strconv"
	"strings"

	"patentsearch/loader/types"
)

// Dataset exports name their columns differently (Lens.org, PatentsView CSV
// dumps, manual spreadsheets). Each field lists its known aliases in
// preference order; matching is case-insensitive.
var columnAliases = map[string][]string{
	"patent_id":    {"Display Key", "Lens ID", "Patent ID", "Publication Number"},
	"title":        {"Title", "Patent Title"},
	"abstract":     {"Abstract", "Patent Abstract"},
	"assignee":     {"Applicants", "Owners", "Assignee"},
	"jurisdiction": {"Jurisdiction", "Country", "Country Code"},
	"filing_year":  {"Publication Year", "Priority Year", "Filing Year"},
	"patent_class": {"CPC Classifications", "IPCR Classifications", "US Classifications"},
}

// MapColumns resolves field -> column index for a CSV header. Missing fields
// are simply absent from the result; callers fall back to defaults.
func MapColumns(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	columns := make(map[string]int)
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := index[strings.ToLower(alias)]; ok {
				columns[field] = i
				break
			}
		}
	}
	return columns
}

// ParseRow builds a normalized row from one CSV record. Jurisdiction defaults
// to US and the year to 2020 when the column is missing or unparseable,
// matching what the upstream exports leave blank most often.
func ParseRow(columns map[string]int, record []string) (types.PatentRow, error) {
	get := func(field string) string {
		i, ok := columns[field]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	patentID := strings.ReplaceAll(get("patent_id"), " ", "")
	if patentID == "" {
		return types.PatentRow{}, fmt.Errorf("row has no patent identifier")
	}

	jurisdiction := get("jurisdiction")
	if jurisdiction == "" {
		jurisdiction = "US"
	}

	year := 2020
	if v := get("filing_year"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			year = parsed
		}
	}

	return types.PatentRow{
		PatentID:     patentID,
		Title:        get("title"),
		Abstract:     get("abstract"),
		Assignee:     get("assignee"),
		Jurisdiction: jurisdiction,
		FilingYear:   year,
		PatentClass:  splitClasses(get("patent_class")),
	}, nil
}

func splitClasses(raw string) []string {
	if raw == "" {
		return []string{}
	}
	// Lens.org packs multiple codes as "A01B 1/00;;A01B 3/00"
	parts := strings.Split(strings.ReplaceAll(raw, ";;", ";"), ";")
	classes := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			classes = append(classes, p)
		}
	}
	return classes
}
