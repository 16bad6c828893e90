package catalog

import "testing"

func TestProductID(t *testing.T) {
	t.Parallel()

	if got := ProductID("JBL", "Flip 6"); got != "JBL:Flip 6" {
		t.Fatalf("unexpected id: %q", got)
	}
	if ProductID("CAT1", "X") == ProductID("CAT2", "X") {
		t.Fatalf("expected ids to differ across categories")
	}
}

func TestDefaultSourcesOrderAndUniqueness(t *testing.T) {
	t.Parallel()

	sources := DefaultSources()
	if len(sources) != 8 {
		t.Fatalf("expected 8 default categories, got %d", len(sources))
	}
	if sources[0].Category != "JBL" || sources[len(sources)-1].Category != "OTROS" {
		t.Fatalf("unexpected default order: %+v", Categories(sources))
	}

	seenCategory := make(map[Category]bool)
	seenEndpoint := make(map[string]bool)
	for _, src := range sources {
		if seenCategory[src.Category] || seenEndpoint[src.Endpoint] {
			t.Fatalf("duplicate default source: %+v", src)
		}
		seenCategory[src.Category] = true
		seenEndpoint[src.Endpoint] = true
	}
}
