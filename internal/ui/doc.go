// Package ui contains the Bubble Tea program that powers the chat client.
// The package is structured so the Model type focuses on message
// orchestration, while dedicated helpers own navigation, input, rendering,
// and state updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update forwards input to the active surface first (the prompt composer
//     or the collection form). When the menu is active, the message is routed
//     through a typed handler registry so each tea.Msg is handled by a
//     focused function (key presses, loader results, backend snapshots,
//     picker selections).
//   - Navigation helpers (internal/ui/navigation.go) manage the stack of menu
//     levels, cursor movement, and action dispatch. Filter/input helpers
//     (internal/ui/input.go) keep all text entry concerns isolated from the
//     Bubble Tea event loop.
//
// State ownership:
//   - Menu level state lives in internal/ui/state.Level, which tracks items,
//     filtering, selection, and viewport calculations.
//   - Transcript, generation, asset, and collection snapshots are provided by
//     internal/state stores and kept in sync by the dispatcher so menu
//     loaders always see current backend data.
//   - The resolved menu selections (mode plus category values) are held on
//     the Model and recomputed through menu.Resolve whenever a mode switch,
//     picker selection, draft restore, or config reload occurs.
//   - Command execution is handled through the internal/ui/command package,
//     letting actions run asynchronously via the central command bus.
//
// Backend interactions:
//   - A backend.Watcher polls the HTTP API; Update waits for its events and
//     hands them to applyBackendEvent, which refreshes the stores and any
//     on-screen menus that depend on them.
//   - Chat turns and generation requests run as tea.Cmd values built in
//     compose.go; their results come back as typed messages.
package ui
