package score

import (
	"testing"

	"github.com/ppiankov/claimcheck/internal/model"
)

func src(url string, relevance int) model.ProcessedSource {
	return model.ProcessedSource{
		URL:       url,
		Title:     url,
		Content:   "content",
		Relevance: model.RelevanceScore{Score: relevance},
	}
}

func TestSelectTop_OrdersByScoreDescending(t *testing.T) {
	sources := []model.ProcessedSource{src("a", 3), src("b", 9), src("c", 6)}

	top := SelectTop(sources, 3)

	want := []string{"b", "c", "a"}
	for i, w := range want {
		if top[i].URL != w {
			t.Errorf("Position %d: expected %s, got %s", i, w, top[i].URL)
		}
	}

	// Input must be untouched
	if sources[0].URL != "a" || sources[1].URL != "b" {
		t.Error("SelectTop mutated its input")
	}
}

func TestSelectTop_TiesKeepEncounterOrder(t *testing.T) {
	sources := []model.ProcessedSource{src("first", 5), src("second", 5), src("third", 5)}

	top := SelectTop(sources, 2)
	if len(top) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(top))
	}
	if top[0].URL != "first" || top[1].URL != "second" {
		t.Errorf("Ties reordered: got %s, %s", top[0].URL, top[1].URL)
	}
}

func TestSelectTop_FewerSourcesThanRequested(t *testing.T) {
	sources := []model.ProcessedSource{src("only", 4)}

	top := SelectTop(sources, 5)
	if len(top) != 1 {
		t.Fatalf("Expected 1 source, got %d", len(top))
	}
}

func TestSelectTop_Idempotent(t *testing.T) {
	sources := []model.ProcessedSource{src("a", 2), src("b", 8), src("c", 5), src("d", 8)}

	once := SelectTop(sources, 3)
	twice := SelectTop(once, 3)

	if len(once) != len(twice) {
		t.Fatalf("Length changed on reapplication: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].URL != twice[i].URL {
			t.Errorf("Position %d changed on reapplication: %s vs %s", i, once[i].URL, twice[i].URL)
		}
	}
}

func TestSelectTop_Empty(t *testing.T) {
	top := SelectTop(nil, 3)
	if len(top) != 0 {
		t.Errorf("Expected empty selection, got %d", len(top))
	}
}
