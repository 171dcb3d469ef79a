package httpapi

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ppiankov/claimcheck/internal/model"
)

// Wire payloads for the progress protocol, one per event variant. The
// variants are encoded explicitly rather than through an untyped map so the
// wire shapes are pinned down in one place.
type statusPayload struct {
	Status string `json:"status"`
}

type errorPayload struct {
	Error string `json:"error"`
}

type resultPayload struct {
	Result    string            `json:"result"`
	Sources   []model.SourceRef `json:"sources"`
	Streaming bool              `json:"streaming"`
}

type completePayload struct {
	Complete bool `json:"complete"`
}

// EncodeEvent marshals an event into its wire payload.
func EncodeEvent(ev model.Event) ([]byte, error) {
	switch ev.Kind {
	case model.EventStatus:
		return json.Marshal(statusPayload{Status: ev.Message})
	case model.EventError:
		return json.Marshal(errorPayload{Error: ev.Message})
	case model.EventResult:
		sources := ev.Sources
		if sources == nil {
			sources = []model.SourceRef{}
		}
		return json.Marshal(resultPayload{Result: ev.Result, Sources: sources, Streaming: true})
	case model.EventComplete:
		return json.Marshal(completePayload{Complete: true})
	default:
		return nil, fmt.Errorf("unknown event kind: %d", ev.Kind)
	}
}

// WriteEvent writes one event in text/event-stream framing: a data line
// holding the JSON payload, terminated by a blank line.
func WriteEvent(w io.Writer, ev model.Event) error {
	payload, err := EncodeEvent(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
