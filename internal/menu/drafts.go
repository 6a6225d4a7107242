package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodio/moodio-agent/internal/format/table"
)

func loadDraftsMenu(ctx Context) ([]Item, error) {
	if len(ctx.Drafts) == 0 {
		return nil, nil
	}
	rows := make([][]string, 0, len(ctx.Drafts))
	ids := make([]string, 0, len(ctx.Drafts))
	for _, entry := range ctx.Drafts {
		rows = append(rows, []string{
			truncatePrompt(entry.Prompt, 48),
			entry.Mode,
			entry.UpdatedAt.Local().Format("Jan 2 15:04"),
		})
		ids = append(ids, entry.ID)
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight})
	items := make([]Item, len(aligned))
	for i, label := range aligned {
		items[i] = Item{ID: ids[i], Label: label}
	}
	return items, nil
}

func DraftRestoreAction(ctx Context, item Item) tea.Cmd {
	target := strings.TrimSpace(item.ID)
	if target == "" {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid draft selection")} }
	}
	return func() tea.Msg {
		return DraftPicked{ID: target}
	}
}

func loadChatMenu(Context) ([]Item, error) {
	return menuItemsFromIDs([]string{"new", "clear"}), nil
}

func ChatNewAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		return ChatStarted{}
	}
}

func ChatClearAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		return ChatCleared{}
	}
}
