package events

import "encoding/json"

// Event name constants
const (
	RecordsChanged = "records.changed"
)

// Event is a generic SSE event from the session daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// RecordsChangedEvent is the typed payload for records.changed. It is
// published after every add, edit, delete, or clear so a listening UI can
// re-fetch the record grid and the regenerated table.
type RecordsChangedEvent struct {
	Count int   `json:"count"`
	Ts    int64 `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic
// type T. It ignores the event name and simply unmarshals Data into T.
// If Data is empty, it returns the zero value of T with a nil error.
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
