package parser

import "testing"

func TestExtractorsFillTheirSide(t *testing.T) {
	var extractors = map[string]Extractor{
		"tasks":        TaskExtractor{},
		"requirements": RequirementExtractor{},
	}

	doc := extractors["tasks"].Extract("- [ ] one\n")
	if len(doc.Tasks) != 1 || len(doc.Requirements) != 0 {
		t.Fatalf("task extractor: %d tasks, %d requirements", len(doc.Tasks), len(doc.Requirements))
	}

	doc = extractors["requirements"].Extract("1. one\n")
	if len(doc.Requirements) != 1 || len(doc.Tasks) != 0 {
		t.Fatalf("requirement extractor: %d tasks, %d requirements", len(doc.Tasks), len(doc.Requirements))
	}
}
