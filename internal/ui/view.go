package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/moodio/moodio-agent/internal/menu"
	"github.com/moodio/moodio-agent/internal/state"
)

// transcriptMaxRows caps how much of the conversation renders above the menu.
const transcriptMaxRows = 12

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.menuHeader()
	switch m.mode {
	case ModeCollectionForm:
		if m.collectionForm != nil {
			return m.viewCollectionFormWithHeader(header)
		}
	case ModeCompose:
		return m.viewComposer(header)
	}
	return m.viewVertical(header)
}

func (m *Model) viewVertical(header string) string {
	lines := make([]styledLine, 0, 16)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	if summary := m.selectionSummary(); summary != "" {
		lines = append(lines, styledLine{text: summary, style: styles.ModeBadge})
	}
	if m.atRoot() {
		lines = append(lines, m.transcriptLines()...)
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
		start := 0
		displayItems := current.Items
		if maxItems := m.maxVisibleItems(); maxItems > 0 && len(displayItems) > maxItems {
			start = current.ViewportOffset
			if start < 0 {
				start = 0
			}
			if start+maxItems > len(displayItems) {
				start = len(displayItems) - maxItems
				if start < 0 {
					start = 0
				}
				current.ViewportOffset = start
			}
			displayItems = displayItems[start : start+maxItems]
		}
		if len(current.Items) == 0 {
			msg := "(no entries)"
			if current.Filter != "" {
				msg = fmt.Sprintf("No matches for %q", current.Filter)
			}
			lines = append(lines, styledLine{text: msg, style: styles.Info})
		} else {
			for i, item := range displayItems {
				idx := start + i
				lines = append(lines, m.buildItemLine(item.ID, item.Label, idx, current, m.width))
			}
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "↑/↓ move  enter select  tab mark  backspace clear  esc back  ctrl+c quit", style: styles.Footer})
	}
	// Reserve 3 rows for the bottom bar (blank + error/status + prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	// Bottom bar: error/status line + filter prompt.
	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	} else if m.loading {
		label := m.pendingLabel
		if label == "" {
			label = m.pendingID
		}
		statusLine = styledLine{text: fmt.Sprintf("Loading %s…", label), style: styles.Loading}
	} else if warn, issue := m.hasBackendIssue(); warn {
		statusLine = styledLine{text: fmt.Sprintf("Backend: %s", issue), style: styles.Error}
	}
	promptText, _ := m.filterPrompt()
	bottomLines := []styledLine{
		statusLine,
		{text: promptText},
	}
	bottomLines = applyWidth(bottomLines, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

func (m *Model) viewComposer(header string) string {
	lines := make([]styledLine, 0, 16)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	if summary := m.selectionSummary(); summary != "" {
		lines = append(lines, styledLine{text: summary, style: styles.ModeBadge})
	}
	lines = append(lines, m.transcriptLines()...)
	lines = append(lines, styledLine{})
	prompt := "Compose"
	if attached := len(m.attachedIDs()); attached > 0 {
		prompt = fmt.Sprintf("Compose (%d assets attached)", attached)
	}
	lines = append(lines, styledLine{text: prompt, style: styles.ComposePrompt})
	if m.width > 0 {
		m.composer.SetWidth(m.width)
	}
	for _, row := range strings.Split(m.composer.View(), "\n") {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	if m.errMsg != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.errMsg, style: styles.Error})
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "enter send  ctrl+s save draft  esc cancel (saves draft)  ctrl+c quit", style: styles.Footer})
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// transcriptLines renders the tail of the conversation.
func (m *Model) transcriptLines() []styledLine {
	entries := m.chat.Messages()
	if len(entries) == 0 {
		return nil
	}
	lines := make([]styledLine, 0, transcriptMaxRows)
	for _, entry := range entries {
		lines = append(lines, m.entryLines(entry)...)
	}
	if len(lines) > transcriptMaxRows {
		lines = lines[len(lines)-transcriptMaxRows:]
	}
	out := make([]styledLine, 0, len(lines)+1)
	out = append(out, lines...)
	out = append(out, styledLine{})
	return out
}

func (m *Model) entryLines(entry state.ChatEntry) []styledLine {
	if entry.Pending {
		return []styledLine{{text: "assistant is thinking…", style: styles.PendingMessage}}
	}
	switch entry.Role {
	case "user":
		return []styledLine{{text: "you: " + entry.Content, style: styles.UserMessage}}
	default:
		rendered := m.markdown.Render(entry.Content, m.width)
		rows := strings.Split(rendered, "\n")
		lines := make([]styledLine, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, styledLine{text: row, raw: true})
		}
		return lines
	}
}

// selectionSummary shows the active mode and category values.
func (m *Model) selectionSummary() string {
	st := m.menuState
	parts := []string{st.Mode}
	for _, cat := range menu.Categories() {
		if value := st.Value(cat); value != "" {
			parts = append(parts, m.optionLabel(cat, value))
		}
	}
	return " " + strings.Join(parts, " · ") + " "
}

func (m *Model) atRoot() bool {
	return len(m.stack) <= 1
}

func (m *Model) buildItemLine(id, label string, idx int, current *level, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	selectDisplay := ""
	if current.MultiSelect {
		mark := " "
		if current.IsSelected(id) {
			mark = "✓"
		}
		selectDisplay = fmt.Sprintf("[%s] ", mark)
	}
	if idx == current.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + selectDisplay + label
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func (m *Model) menuHeader() string {
	segments := m.headerSegments()
	if len(segments) == 0 {
		return ""
	}
	return strings.Join(segments, menuHeaderSeparator)
}

func (m *Model) headerSegments() []string {
	depth := len(m.stack)
	if depth == 0 {
		return nil
	}
	root := strings.TrimSpace(m.rootTitle)
	if root == "" {
		root = defaultRootTitle
	}
	if depth == 1 {
		return []string{root}
	}
	segments := make([]string, 0, depth)
	for i := 1; i < depth; i++ {
		segment := headerSegmentForLevel(m.stack[i])
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}
	if len(segments) == 0 {
		return []string{root}
	}
	return segments
}

func headerSegmentForLevel(l *level) string {
	if l == nil {
		return ""
	}
	candidate := strings.TrimSpace(l.ID)
	if candidate == "" {
		candidate = strings.TrimSpace(l.Title)
	}
	if candidate == "" {
		return ""
	}
	if idx := strings.LastIndex(candidate, ":"); idx >= 0 {
		candidate = candidate[idx+1:]
	}
	candidate = headerSegmentCleaner.Replace(candidate)
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ""
	}
	fields := strings.Fields(strings.ToLower(candidate))
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: error/status + filter prompt
	if header := m.menuHeader(); header != "" {
		used++
	}
	if m.selectionSummary() != "" {
		used++
	}
	if m.atRoot() {
		if transcript := m.transcriptLines(); len(transcript) > 0 {
			used += len(transcript)
		}
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			// Text already contains ANSI escapes; pass through as-is.
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
