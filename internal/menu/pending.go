package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodio/moodio-agent/internal/deck"
	"github.com/moodio/moodio-agent/internal/format/table"
)

func loadPendingMenu(Context) ([]Item, error) {
	return menuItemsFromIDs([]string{"images", "videos"}), nil
}

func loadPendingImagesMenu(ctx Context) ([]Item, error) {
	if len(ctx.Decks) == 0 {
		return nil, nil
	}
	rows := make([][]string, 0, len(ctx.Decks))
	ids := make([]string, 0, len(ctx.Decks))
	for _, d := range ctx.Decks {
		rows = append(rows, []string{
			truncatePrompt(d.Prompt, 48),
			deckCardSummary(d),
			d.Status,
		})
		ids = append(ids, d.ID)
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft})
	items := make([]Item, len(aligned))
	for i, label := range aligned {
		items[i] = Item{ID: ids[i], Label: label}
	}
	return items, nil
}

func loadPendingVideosMenu(ctx Context) ([]Item, error) {
	if len(ctx.Videos) == 0 {
		return nil, nil
	}
	rows := make([][]string, 0, len(ctx.Videos))
	ids := make([]string, 0, len(ctx.Videos))
	for _, v := range ctx.Videos {
		duration := ""
		if v.DurationSec > 0 {
			duration = fmt.Sprintf("%ds", v.DurationSec)
		}
		rows = append(rows, []string{
			truncatePrompt(v.Prompt, 48),
			duration,
			v.Status,
		})
		ids = append(ids, v.ID)
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft})
	items := make([]Item, len(aligned))
	for i, label := range aligned {
		items[i] = Item{ID: ids[i], Label: label}
	}
	return items, nil
}

func PendingImageAction(ctx Context, item Item) tea.Cmd {
	target := strings.TrimSpace(item.ID)
	if target == "" {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid deck selection")} }
	}
	return func() tea.Msg {
		for _, d := range ctx.Decks {
			if d.ID != target {
				continue
			}
			return ActionResult{Info: deckDetail(d)}
		}
		return ActionResult{Err: fmt.Errorf("deck %s no longer pending", target)}
	}
}

func PendingVideoAction(ctx Context, item Item) tea.Cmd {
	target := strings.TrimSpace(item.ID)
	if target == "" {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid video selection")} }
	}
	return func() tea.Msg {
		for _, v := range ctx.Videos {
			if v.ID != target {
				continue
			}
			if v.URL != "" {
				return ActionResult{Info: fmt.Sprintf("%s: %s", v.Status, v.URL)}
			}
			return ActionResult{Info: fmt.Sprintf("%s: %s", v.Status, truncatePrompt(v.Prompt, 64))}
		}
		return ActionResult{Err: fmt.Errorf("video %s no longer pending", target)}
	}
}

func deckCardSummary(d deck.Deck) string {
	if len(d.Cards) == 2 {
		return "pair"
	}
	return fmt.Sprintf("%d card", len(d.Cards))
}

func deckDetail(d deck.Deck) string {
	parts := make([]string, 0, len(d.Cards))
	for _, card := range d.Cards {
		entry := fmt.Sprintf("%s %s", card.Role, card.Status)
		if card.URL != "" {
			entry += " " + card.URL
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, " | ")
}

func truncatePrompt(prompt string, max int) string {
	prompt = strings.TrimSpace(prompt)
	runes := []rune(prompt)
	if len(runes) <= max {
		return prompt
	}
	return string(runes[:max-1]) + "…"
}
