package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"patentsearch/loader/internal"
	ltypes "patentsearch/loader/types"
	"patentsearch/types"
)

// Service reads a patents CSV export and posts every usable row to the
// ingestion endpoint. Rows are independent: one bad row is logged and the
// batch keeps going.
type Service struct {
	logger *slog.Logger
	cfg    ltypes.Config
	client *http.Client
}

func New(cfg ltypes.Config) *Service {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	return &Service{
		logger: slog.Default(),
		cfg:    cfg,
		client: &http.Client{Timeout: 300 * time.Second},
	}
}

func (s *Service) Run(ctx context.Context) error {
	f, err := os.Open(s.cfg.CSVPath)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	columns := internal.MapColumns(header)
	if _, ok := columns["patent_id"]; !ok {
		return fmt.Errorf("csv has no recognizable patent identifier column")
	}

	rowChan := make(chan ltypes.PatentRow, s.cfg.MaxWorkers)
	var ingested, skipped, failed atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < s.cfg.MaxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rowChan {
				chunks, err := s.ingestRow(ctx, row)
				if err != nil {
					failed.Add(1)
					s.logger.Error("row failed", "patent_id", row.PatentID, "error", err.Error())
					continue
				}
				ingested.Add(1)
				s.logger.Info("row ingested", "patent_id", row.PatentID, "chunks", chunks)
			}
		}()
	}

	start := time.Now()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			failed.Add(1)
			s.logger.Error("bad csv record", "error", err.Error())
			continue
		}

		row, err := internal.ParseRow(columns, record)
		if err != nil {
			skipped.Add(1)
			continue
		}
		if strings.TrimSpace(row.Title+row.Abstract) == "" {
			skipped.Add(1)
			s.logger.Info("row skipped, no text", "patent_id", row.PatentID)
			continue
		}

		select {
		case rowChan <- row:
		case <-ctx.Done():
			close(rowChan)
			wg.Wait()
			return ctx.Err()
		}
	}
	close(rowChan)
	wg.Wait()

	s.logger.Info("batch finished",
		"ingested", ingested.Load(),
		"skipped", skipped.Load(),
		"failed", failed.Load(),
		"took", time.Since(start).String(),
	)
	return nil
}

func (s *Service) ingestRow(ctx context.Context, row ltypes.PatentRow) (int, error) {
	text := strings.TrimSpace(row.Title + " " + row.Abstract)
	text, err := internal.TruncateTokens(text, s.cfg.MaxTextTokens)
	if err != nil {
		return 0, fmt.Errorf("truncate: %w", err)
	}

	metadata, err := json.Marshal(types.PatentMetadata{
		PatentID:     row.PatentID,
		Title:        row.Title,
		Assignee:     row.Assignee,
		Jurisdiction: row.Jurisdiction,
		FilingYear:   row.FilingYear,
		PatentClass:  row.PatentClass,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal metadata: %w", err)
	}

	payload, err := json.Marshal(types.IngestTextParams{
		Text:     text,
		Metadata: string(metadata),
		Topic:    s.cfg.Topic,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post row: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("ingest API returned %d: %s", resp.StatusCode, string(body))
	}

	var result types.IngestResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return result.ChunksCreated, nil
}
