package events

import "github.com/moodio/moodio-agent/internal/logging"

type ChatTracer struct{}

type GenerationTracer struct{}

var (
	Chat       = ChatTracer{}
	Generation = GenerationTracer{}
)

func (ChatTracer) Send(chatID string, length int) {
	logging.Trace("chat.send", map[string]interface{}{"chat": chatID, "length": length})
}

func (ChatTracer) Reply(chatID, messageID string) {
	logging.Trace("chat.reply", map[string]interface{}{"chat": chatID, "message": messageID})
}

func (ChatTracer) Error(chatID string, err error) {
	if err == nil {
		return
	}
	logging.Trace("chat.error", map[string]interface{}{"chat": chatID, "error": err.Error()})
}

func (ChatTracer) Clear(chatID string) {
	logging.Trace("chat.clear", map[string]interface{}{"chat": chatID})
}

func (GenerationTracer) Image(chatID, model, aspectRatio string) {
	logging.Trace("generation.image", map[string]interface{}{"chat": chatID, "model": model, "aspect": aspectRatio})
}

func (GenerationTracer) Video(chatID, model string) {
	logging.Trace("generation.video", map[string]interface{}{"chat": chatID, "model": model})
}

func (GenerationTracer) Accepted(id, kind string) {
	logging.Trace("generation.accepted", map[string]interface{}{"id": id, "kind": kind})
}

func (GenerationTracer) Error(kind string, err error) {
	if err == nil {
		return
	}
	logging.Trace("generation.error", map[string]interface{}{"kind": kind, "error": err.Error()})
}
