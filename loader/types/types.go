package types

type Config struct {
	APIURL        string // ingest endpoint of the running API server
	CSVPath       string
	Topic         string
	MaxWorkers    int
	MaxTextTokens int // 0 disables truncation
}

// PatentRow is one normalized CSV row, after best-effort column matching.
type PatentRow struct {
	PatentID     string
	Title        string
	Abstract     string
	Assignee     string
	Jurisdiction string
	FilingYear   int
	PatentClass  []string
}
