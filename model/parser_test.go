package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patentsearch/types"
)

func TestSlidingWindowChunkWhitespaceOnly(t *testing.T) {
	assert.Empty(t, SlidingWindowChunk("", 500, 100))
	assert.Empty(t, SlidingWindowChunk("   \n\t  ", 500, 100))
}

func TestSlidingWindowChunkShortText(t *testing.T) {
	chunks := SlidingWindowChunk("a  battery\nthermal unit", 500, 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "a battery thermal unit", chunks[0])
}

func TestSlidingWindowChunkOverlap(t *testing.T) {
	words := []string{"w0", "w1", "w2", "w3", "w4", "w5", "w6", "w7", "w8", "w9"}
	chunks := SlidingWindowChunk(strings.Join(words, " "), 4, 2)
	require.Len(t, chunks, 5)

	for i := 0; i < len(chunks)-1; i++ {
		cur := strings.Fields(chunks[i])
		next := strings.Fields(chunks[i+1])
		// consecutive windows share exactly the overlap
		assert.Equal(t, cur[len(cur)-2:], next[:2])
	}
}

func TestSlidingWindowChunkNonPositiveStep(t *testing.T) {
	assert.Nil(t, SlidingWindowChunk("some words here", 2, 2))
	assert.Nil(t, SlidingWindowChunk("some words here", 2, 5))
	assert.Nil(t, SlidingWindowChunk("some words here", 0, 0))
}

func TestSplitIntoSectionsCaseInsensitive(t *testing.T) {
	upper := SplitIntoSections("ABSTRACT\nA cooling device.")
	lower := SplitIntoSections("abstract\nA cooling device.")

	require.Contains(t, upper, types.ChunkAbstract)
	require.Contains(t, lower, types.ChunkAbstract)
	assert.Equal(t, "ABSTRACT\nA cooling device.", upper[types.ChunkAbstract])
}

func TestSplitIntoSectionsSingularClaim(t *testing.T) {
	sections := SplitIntoSections("Claim 1. A heat pump.")
	require.Contains(t, sections, types.ChunkClaim)
}

func TestSplitIntoSectionsNoAnchors(t *testing.T) {
	assert.Empty(t, SplitIntoSections("nothing recognizable in here"))
}

func TestSplitIntoSectionsOverlappingTails(t *testing.T) {
	text := "Claims\nClaim 1: a pump.\nDetailed Description\nThe pump comprises a rotor."
	sections := SplitIntoSections(text)

	require.Contains(t, sections, types.ChunkClaim)
	require.Contains(t, sections, types.ChunkDescription)
	// each section runs from its own anchor to the end, so the claim section
	// swallows the description tail
	assert.Contains(t, sections[types.ChunkClaim], "Detailed Description")
	assert.True(t, strings.HasPrefix(sections[types.ChunkDescription], "Description"))
}

func TestCreateChunksSectionTagging(t *testing.T) {
	text := "Abstract\nA battery system.\n\nClaims\nClaim 1: thermal unit."
	chunks := CreateChunks(SplitIntoSections(text), text, DefaultChunkSize, DefaultChunkOverlap)

	require.Len(t, chunks, 2)
	assert.Equal(t, types.ChunkAbstract, chunks[0].Type)
	assert.Equal(t, 0.7, chunks[0].SectionPriority)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, types.ChunkClaim, chunks[1].Type)
	assert.Equal(t, 1.0, chunks[1].SectionPriority)
	assert.Equal(t, 0, chunks[1].Index)
}

func TestCreateChunksFallbackWholeText(t *testing.T) {
	chunks := CreateChunks(map[types.ChunkType]string{}, "just some plain patent text", DefaultChunkSize, DefaultChunkOverlap)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.Equal(t, types.ChunkDescription, chunk.Type)
		assert.Equal(t, 0.4, chunk.SectionPriority)
	}
}

func TestCreateChunksNothingToChunk(t *testing.T) {
	assert.Empty(t, CreateChunks(map[types.ChunkType]string{}, "   ", DefaultChunkSize, DefaultChunkOverlap))
	assert.Empty(t, CreateChunks(map[types.ChunkType]string{types.ChunkAbstract: "  \n "}, "", DefaultChunkSize, DefaultChunkOverlap))
}

func TestSectionWeight(t *testing.T) {
	assert.Equal(t, 1.0, SectionWeight(types.ChunkClaim))
	assert.Equal(t, 0.7, SectionWeight(types.ChunkAbstract))
	assert.Equal(t, 0.4, SectionWeight(types.ChunkDescription))
	assert.Equal(t, 0.4, SectionWeight(types.ChunkType("figure")))
}
