package model

import (
	"regexp"
	"strings"

	"patentsearch/types"
)

const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
)

var sectionPatterns = []struct {
	label   types.ChunkType
	pattern *regexp.Regexp
}{
	{types.ChunkAbstract, regexp.MustCompile(`(?i)\babstract\b`)},
	{types.ChunkClaim, regexp.MustCompile(`(?i)\bclaims?\b`)},
	{types.ChunkDescription, regexp.MustCompile(`(?i)\bdescription\b|\bdetailed description\b`)},
}

var sectionWeights = map[types.ChunkType]float64{
	types.ChunkClaim:       1.0,
	types.ChunkAbstract:    0.7,
	types.ChunkDescription: 0.4,
}

// SectionWeight returns the fixed priority for a section label. Unknown labels
// get the description weight.
func SectionWeight(section types.ChunkType) float64 {
	if w, ok := sectionWeights[section]; ok {
		return w
	}
	return 0.4
}

// SplitIntoSections classifies raw patent text into semantic zones by the
// first occurrence of each section anchor. Every matched section runs from its
// anchor to the end of the text, so sections may overlap; that is intentional.
// No match anywhere yields an empty map, which signals whole-text fallback.
func SplitIntoSections(text string) map[types.ChunkType]string {
	sections := make(map[types.ChunkType]string)
	for _, sp := range sectionPatterns {
		if loc := sp.pattern.FindStringIndex(text); loc != nil {
			sections[sp.label] = text[loc[0]:]
		}
	}
	return sections
}

// SlidingWindowChunk splits text into overlapping windows of size words,
// advancing by size-overlap each step. Whitespace-only input yields nothing.
// A non-positive step is a caller configuration error and yields nothing
// rather than looping forever.
func SlidingWindowChunk(text string, size, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	step := size - overlap
	if size <= 0 || step <= 0 {
		return nil
	}

	words := strings.Fields(text)
	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}

// CreateChunks combines the section map with the sliding-window chunker.
// Sections are processed in a fixed label order so output is stable. When no
// section produced any chunk, the joined section contents (or the full text if
// no sections were detected) are chunked as plain description with the
// description priority.
func CreateChunks(sections map[types.ChunkType]string, fullText string, size, overlap int) []types.Chunk {
	var chunks []types.Chunk

	for _, sp := range sectionPatterns {
		content, ok := sections[sp.label]
		if !ok {
			continue
		}
		for idx, text := range SlidingWindowChunk(content, size, overlap) {
			chunks = append(chunks, types.Chunk{
				Text:            text,
				Type:            sp.label,
				SectionPriority: SectionWeight(sp.label),
				Index:           idx,
			})
		}
	}

	if len(chunks) == 0 {
		allText := fullText
		if len(sections) > 0 {
			parts := make([]string, 0, len(sections))
			for _, sp := range sectionPatterns {
				if content, ok := sections[sp.label]; ok {
					parts = append(parts, content)
				}
			}
			allText = strings.Join(parts, " ")
		}
		for idx, text := range SlidingWindowChunk(allText, size, overlap) {
			chunks = append(chunks, types.Chunk{
				Text:            text,
				Type:            types.ChunkDescription,
				SectionPriority: SectionWeight(types.ChunkDescription),
				Index:           idx,
			})
		}
	}

	return chunks
}
