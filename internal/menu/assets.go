package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodio/moodio-agent/internal/format/table"
)

func loadAssetsMenu(ctx Context) ([]Item, error) {
	if len(ctx.Assets) == 0 {
		return nil, nil
	}
	rows := make([][]string, 0, len(ctx.Assets))
	ids := make([]string, 0, len(ctx.Assets))
	for _, asset := range ctx.Assets {
		attached := ""
		if ctx.Attached[asset.ID] {
			attached = "attached"
		}
		rows = append(rows, []string{asset.Name, asset.Kind, attached})
		ids = append(ids, asset.ID)
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft})
	items := make([]Item, len(aligned))
	for i, label := range aligned {
		items[i] = Item{ID: ids[i], Label: label}
	}
	return items, nil
}

// AssetToggleAction attaches or detaches an asset from the next generation
// request.
func AssetToggleAction(ctx Context, item Item) tea.Cmd {
	target := strings.TrimSpace(item.ID)
	if target == "" {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid asset selection")} }
	}
	return func() tea.Msg {
		return AssetToggled{ID: target}
	}
}
