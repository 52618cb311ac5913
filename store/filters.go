package store

import (
	pb "github.com/qdrant/go-client/qdrant"

	"patentsearch/types"
)

// buildFilter translates SearchFilters into a Qdrant conjunction: keyword-set
// membership for the list fields, an inclusive range for the filing year and
// exact match for the topic. An absent field adds no condition; nil filters
// mean an unfiltered search.
func buildFilter(filters *types.SearchFilters) *pb.Filter {
	if filters.Empty() {
		return nil
	}

	var conditions []*pb.Condition

	if len(filters.Jurisdiction) > 0 {
		conditions = append(conditions, keywordsCondition("jurisdiction", filters.Jurisdiction))
	}
	if len(filters.Assignee) > 0 {
		conditions = append(conditions, keywordsCondition("assignee", filters.Assignee))
	}
	if len(filters.PatentClass) > 0 {
		conditions = append(conditions, keywordsCondition("patent_class", filters.PatentClass))
	}
	if filters.FilingYearFrom != 0 || filters.FilingYearTo != 0 {
		yearRange := &pb.Range{}
		if filters.FilingYearFrom != 0 {
			gte := float64(filters.FilingYearFrom)
			yearRange.Gte = &gte
		}
		if filters.FilingYearTo != 0 {
			lte := float64(filters.FilingYearTo)
			yearRange.Lte = &lte
		}
		conditions = append(conditions, &pb.Condition{
			ConditionOneOf: &pb.Condition_Field{
				Field: &pb.FieldCondition{Key: "filing_year", Range: yearRange},
			},
		})
	}
	if filters.Topic != "" {
		conditions = append(conditions, &pb.Condition{
			ConditionOneOf: &pb.Condition_Field{
				Field: &pb.FieldCondition{
					Key:   "topic",
					Match: &pb.Match{MatchValue: &pb.Match_Keyword{Keyword: filters.Topic}},
				},
			},
		})
	}

	return &pb.Filter{Must: conditions}
}

func keywordsCondition(key string, values []string) *pb.Condition {
	return &pb.Condition{
		ConditionOneOf: &pb.Condition_Field{
			Field: &pb.FieldCondition{
				Key:   key,
				Match: &pb.Match{MatchValue: &pb.Match_Keywords{Keywords: &pb.RepeatedStrings{Strings: values}}},
			},
		},
	}
}

// chunkPayload merges document metadata with the chunk's own fields. Payload
// shape is what the secondary indexes and the search echo depend on.
func chunkPayload(chunk types.Chunk, metadata types.PatentMetadata, topic string) map[string]*pb.Value {
	classValues := make([]*pb.Value, len(metadata.PatentClass))
	for i, c := range metadata.PatentClass {
		classValues[i] = stringValue(c)
	}

	payload := map[string]*pb.Value{
		"patent_id":        stringValue(metadata.PatentID),
		"title":            stringValue(metadata.Title),
		"assignee":         stringValue(metadata.Assignee),
		"jurisdiction":     stringValue(metadata.Jurisdiction),
		"filing_year":      integerValue(int64(metadata.FilingYear)),
		"patent_class":     {Kind: &pb.Value_ListValue{ListValue: &pb.ListValue{Values: classValues}}},
		"text":             stringValue(chunk.Text),
		"chunk_type":       stringValue(string(chunk.Type)),
		"section_priority": {Kind: &pb.Value_DoubleValue{DoubleValue: chunk.SectionPriority}},
		"chunk_index":      integerValue(int64(chunk.Index)),
	}
	if chunk.ClaimNumber != nil {
		payload["claim_number"] = integerValue(int64(*chunk.ClaimNumber))
	}
	if topic != "" {
		payload["topic"] = stringValue(topic)
	}
	return payload
}

func stringValue(s string) *pb.Value {
	return &pb.Value{Kind: &pb.Value_StringValue{StringValue: s}}
}

func integerValue(n int64) *pb.Value {
	return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: n}}
}

func valueToAny(v *pb.Value) any {
	switch kind := v.GetKind().(type) {
	case *pb.Value_StringValue:
		return kind.StringValue
	case *pb.Value_IntegerValue:
		return kind.IntegerValue
	case *pb.Value_DoubleValue:
		return kind.DoubleValue
	case *pb.Value_BoolValue:
		return kind.BoolValue
	case *pb.Value_ListValue:
		items := make([]any, 0, len(kind.ListValue.GetValues()))
		for _, item := range kind.ListValue.GetValues() {
			items = append(items, valueToAny(item))
		}
		return items
	default:
		return nil
	}
}
