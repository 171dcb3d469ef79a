package httpapi

import (
	"strings"
	"testing"

	"github.com/ppiankov/claimcheck/internal/model"
)

func TestEncodeEvent_WireShapes(t *testing.T) {
	refs := []model.SourceRef{{
		URL:       "https://a.example",
		Title:     "A",
		Relevance: model.RelevanceScore{Score: 8, Explanation: "on point"},
	}}

	tests := []struct {
		name  string
		event model.Event
		want  string
	}{
		{
			name:  "status",
			event: model.StatusEvent("Searching for relevant sources..."),
			want:  `{"status":"Searching for relevant sources..."}`,
		},
		{
			name:  "error",
			event: model.ErrorEvent("No claim provided"),
			want:  `{"error":"No claim provided"}`,
		},
		{
			name:  "result",
			event: model.ResultEvent("The claim is TRUE.", refs),
			want:  `{"result":"The claim is TRUE.","sources":[{"url":"https://a.example","title":"A","relevance":{"score":8,"explanation":"on point"}}],"streaming":true}`,
		},
		{
			name:  "result with nil sources",
			event: model.ResultEvent("text", nil),
			want:  `{"result":"text","sources":[],"streaming":true}`,
		},
		{
			name:  "complete",
			event: model.CompleteEvent(),
			want:  `{"complete":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := EncodeEvent(tt.event)
			if err != nil {
				t.Fatalf("EncodeEvent failed: %v", err)
			}
			if string(payload) != tt.want {
				t.Errorf("Payload = %s, want %s", payload, tt.want)
			}
		})
	}
}

func TestWriteEvent_Framing(t *testing.T) {
	var buf strings.Builder
	if err := WriteEvent(&buf, model.StatusEvent("working")); err != nil {
		t.Fatalf("WriteEvent failed: %v", err)
	}
	if buf.String() != "data: {\"status\":\"working\"}\n\n" {
		t.Errorf("Unexpected framing: %q", buf.String())
	}
}

func TestEncodeEvent_UnknownKind(t *testing.T) {
	if _, err := EncodeEvent(model.Event{Kind: model.EventKind(99)}); err == nil {
		t.Fatal("Expected error for unknown event kind")
	}
}
