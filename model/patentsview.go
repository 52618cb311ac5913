package model

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"patentsearch/types"
)

// PatentsViewClient fetches patent text and metadata from the USPTO-backed
// PatentsView API, for ingestion by patent number alone.
type PatentsViewClient struct {
	baseURL string
	client  *http.Client
}

type PatentRecord struct {
	Text     string
	Metadata types.PatentMetadata
}

func NewPatentsViewClient(baseURL string, timeout time.Duration) *PatentsViewClient {
	if baseURL == "" {
		baseURL = "https://api.patentsview.org"
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &PatentsViewClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *PatentsViewClient) FetchPatent(ctx context.Context, patentID string) (*PatentRecord, error) {
	query := fmt.Sprintf(`{"patent_number":%q}`, patentID)
	fields := `["patent_title","patent_abstract","patent_description","assignee_organization","patent_date","patent_country_code"]`
	reqURL := fmt.Sprintf("%s/patents/query?q=%s&f=%s", c.baseURL, url.QueryEscape(query), url.QueryEscape(fields))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("patentsview API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var out struct {
		Patents []struct {
			Title       string `json:"patent_title"`
			Abstract    string `json:"patent_abstract"`
			Description string `json:"patent_description"`
			Assignee    string `json:"assignee_organization"`
			Date        string `json:"patent_date"`
			CountryCode string `json:"patent_country_code"`
		} `json:"patents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Patents) == 0 {
		return nil, fmt.Errorf("no data found for patent %s", patentID)
	}

	p := out.Patents[0]
	text := joinNonEmpty(p.Title, p.Abstract, p.Description)

	jurisdiction := p.CountryCode
	if jurisdiction == "" {
		jurisdiction = "US"
	}
	filingYear := 2000
	if len(p.Date) >= 4 {
		if y, err := strconv.Atoi(p.Date[:4]); err == nil {
			filingYear = y
		}
	}

	return &PatentRecord{
		Text: text,
		Metadata: types.PatentMetadata{
			PatentID:     patentID,
			Title:        p.Title,
			Assignee:     p.Assignee,
			Jurisdiction: jurisdiction,
			FilingYear:   filingYear,
			PatentClass:  []string{},
		},
	}, nil
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}
