// Package ui draws the overlay menu in the terminal with Bubble Tea.
//
// The model is a render sink. It never drives navigation: the input poll
// loop owns the navigator, and the model only reads nav.Snapshot values.
//
// Message flow:
//   - A frame timer (tickMsg, about 60Hz) re-reads the snapshot so cursor
//     moves show up without any coupling to the poll loop.
//   - VisibilityMsg is sent by the NotifyVisibility observer, which hands
//     off on its own goroutine so a flip raised on the event loop never
//     waits on that loop. It forces an immediate refresh.
//   - StatusMsg carries reload results and other operator messages.
//   - Key presses only quit the program or hide the menu; hiding runs as a
//     tea.Cmd, outside Update.
//
// Rendering keeps the selection on screen with a state.Viewport and shows
// the stack of open menus as a breadcrumb header.
package ui
