package events

import "github.com/moodio/moodio-agent/internal/logging"

type BackendTracer struct{}

type DraftTracer struct{}

var (
	Backend = BackendTracer{}
	Draft   = DraftTracer{}
)

func (BackendTracer) Snapshot(kind string, count int) {
	logging.Trace("backend.snapshot", map[string]interface{}{"kind": kind, "count": count})
}

func (BackendTracer) Error(kind string, err error) {
	if err == nil {
		return
	}
	logging.Trace("backend.error", map[string]interface{}{"kind": kind, "error": err.Error()})
}

func (DraftTracer) Save(id, chatID string) {
	logging.Trace("draft.save", map[string]interface{}{"id": id, "chat": chatID})
}

func (DraftTracer) Restore(id, chatID string) {
	logging.Trace("draft.restore", map[string]interface{}{"id": id, "chat": chatID})
}

func (DraftTracer) Delete(id string) {
	logging.Trace("draft.delete", map[string]interface{}{"id": id})
}
