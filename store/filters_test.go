package store

import (
	"testing"

	pb "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patentsearch/types"
)

func TestBuildFilterAbsent(t *testing.T) {
	assert.Nil(t, buildFilter(nil))
	assert.Nil(t, buildFilter(&types.SearchFilters{}))
}

func TestBuildFilterKeywordSets(t *testing.T) {
	filter := buildFilter(&types.SearchFilters{
		Jurisdiction: []string{"US", "EP"},
		PatentClass:  []string{"H01M"},
	})
	require.NotNil(t, filter)
	require.Len(t, filter.Must, 2)

	field := filter.Must[0].GetField()
	require.NotNil(t, field)
	assert.Equal(t, "jurisdiction", field.Key)
	assert.Equal(t, []string{"US", "EP"}, field.GetMatch().GetKeywords().GetStrings())

	field = filter.Must[1].GetField()
	assert.Equal(t, "patent_class", field.Key)
	assert.Equal(t, []string{"H01M"}, field.GetMatch().GetKeywords().GetStrings())
}

func TestBuildFilterYearRange(t *testing.T) {
	filter := buildFilter(&types.SearchFilters{FilingYearFrom: 2015, FilingYearTo: 2020})
	require.Len(t, filter.Must, 1)

	yearRange := filter.Must[0].GetField().GetRange()
	require.NotNil(t, yearRange)
	assert.Equal(t, float64(2015), yearRange.GetGte())
	assert.Equal(t, float64(2020), yearRange.GetLte())
}

func TestBuildFilterYearFromOnly(t *testing.T) {
	filter := buildFilter(&types.SearchFilters{FilingYearFrom: 2015})
	yearRange := filter.Must[0].GetField().GetRange()
	require.NotNil(t, yearRange.Gte)
	assert.Nil(t, yearRange.Lte)
}

func TestBuildFilterTopicEquality(t *testing.T) {
	filter := buildFilter(&types.SearchFilters{Topic: "thermal_management"})
	require.Len(t, filter.Must, 1)

	match := filter.Must[0].GetField().GetMatch()
	assert.Equal(t, "thermal_management", match.GetKeyword())
}

func TestBuildFilterConjunction(t *testing.T) {
	filter := buildFilter(&types.SearchFilters{
		Jurisdiction:   []string{"US"},
		Assignee:       []string{"Acme"},
		PatentClass:    []string{"H01M"},
		FilingYearFrom: 2010,
		Topic:          "batteries",
	})
	assert.Len(t, filter.Must, 5)
}

func TestChunkPayload(t *testing.T) {
	metadata := types.PatentMetadata{
		PatentID:     "P1",
		Title:        "Battery pack",
		Assignee:     "Acme",
		Jurisdiction: "US",
		FilingYear:   2020,
		PatentClass:  []string{"H01M", "H02J"},
	}
	chunk := types.Chunk{Text: "a thermal unit", Type: types.ChunkClaim, SectionPriority: 1.0, Index: 3}

	payload := chunkPayload(chunk, metadata, "thermal")

	assert.Equal(t, "P1", payload["patent_id"].GetStringValue())
	assert.Equal(t, int64(2020), payload["filing_year"].GetIntegerValue())
	assert.Equal(t, "claim", payload["chunk_type"].GetStringValue())
	assert.Equal(t, 1.0, payload["section_priority"].GetDoubleValue())
	assert.Equal(t, int64(3), payload["chunk_index"].GetIntegerValue())
	assert.Equal(t, "thermal", payload["topic"].GetStringValue())
	assert.Len(t, payload["patent_class"].GetListValue().GetValues(), 2)

	_, hasClaimNumber := payload["claim_number"]
	assert.False(t, hasClaimNumber)
}

func TestChunkPayloadOptionalFields(t *testing.T) {
	claimNumber := 7
	chunk := types.Chunk{Text: "x", Type: types.ChunkClaim, ClaimNumber: &claimNumber}

	payload := chunkPayload(chunk, types.PatentMetadata{}, "")

	assert.Equal(t, int64(7), payload["claim_number"].GetIntegerValue())
	_, hasTopic := payload["topic"]
	assert.False(t, hasTopic)
}

func TestValueToAny(t *testing.T) {
	assert.Equal(t, "x", valueToAny(stringValue("x")))
	assert.Equal(t, int64(5), valueToAny(integerValue(5)))
	assert.Equal(t, 0.7, valueToAny(&pb.Value{Kind: &pb.Value_DoubleValue{DoubleValue: 0.7}}))

	list := &pb.Value{Kind: &pb.Value_ListValue{ListValue: &pb.ListValue{
		Values: []*pb.Value{stringValue("a"), stringValue("b")},
	}}}
	assert.Equal(t, []any{"a", "b"}, valueToAny(list))
}
