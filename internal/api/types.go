package api

import "time"

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", or "system"
	Content string `json:"content"`
}

// ChatRequest is the payload for the chat endpoint.
type ChatRequest struct {
	ChatID    string        `json:"chat_id,omitempty"`
	Messages  []ChatMessage `json:"messages"`
	Model     string        `json:"model"`
	Expertise string        `json:"expertise,omitempty"`
}

// ChatResponse is the backend's reply to a chat request.
type ChatResponse struct {
	ChatID  string      `json:"chat_id"`
	Message ChatMessage `json:"message"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// GenerationRequest queues an image or video generation.
type GenerationRequest struct {
	ChatID      string   `json:"chat_id,omitempty"`
	Prompt      string   `json:"prompt"`
	Model       string   `json:"model"`
	Expertise   string   `json:"expertise,omitempty"`
	AspectRatio string   `json:"aspect_ratio,omitempty"`
	AssetIDs    []string `json:"asset_ids,omitempty"`
}

// Generation identifies a queued generation job.
type Generation struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PendingImage is one in-flight or finished image generation. Edited images
// come in pairs: the marked overlay the user drew and the original it applies
// to, linked by PairID.
type PendingImage struct {
	ID        string    `json:"id"`
	PairID    string    `json:"pair_id,omitempty"`
	Role      string    `json:"role,omitempty"` // "marked" or "original" for edit pairs
	Prompt    string    `json:"prompt"`
	Status    string    `json:"status"` // queued, processing, ready, failed
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PendingVideo is one in-flight or finished video generation.
type PendingVideo struct {
	ID          string    `json:"id"`
	Prompt      string    `json:"prompt"`
	Status      string    `json:"status"`
	URL         string    `json:"url,omitempty"`
	AspectRatio string    `json:"aspect_ratio,omitempty"`
	DurationSec int       `json:"duration_sec,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Asset is a stored item in the user's library.
type Asset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"` // image or video
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Collection groups assets in the user's library.
type Collection struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AssetCount int    `json:"asset_count"`
}

type pendingImagesResponse struct {
	Images []PendingImage `json:"images"`
}

type pendingVideosResponse struct {
	Videos []PendingVideo `json:"videos"`
}

type assetsResponse struct {
	Assets []Asset `json:"assets"`
}

type collectionsResponse struct {
	Collections []Collection `json:"collections"`
}

type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
