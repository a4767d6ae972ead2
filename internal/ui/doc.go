// Package ui provides the interactive terminal interface for wayfare.
//
// The interface is a Bubble Tea program. Model is the root state; keyboard
// and window messages come in through Update and every frame is built by
// View from the latest state.Snapshot.
//
// # Views
//
//   - Search: the flight search form with airport autocomplete
//   - Results: one page of offers in the active sort order
//   - Logs: the tail of the wayfare log file
//
// The offer details and the key help are overlays drawn on top of the
// current view.
//
// # Data Flow
//
//  1. Submitting the form validates the request and hands it to the Searcher
//     in a command, so the update loop never blocks on the network.
//  2. The Searcher writes results into state.Store; a periodic tick copies a
//     snapshot back into the model.
//  3. Sort, page and selection keys mutate the store directly and re-read the
//     snapshot in the same update so the next frame reflects them.
//  4. Typing in an airport field starts a debounce window; only the last
//     keystroke in a window issues a lookup, and answers for older input
//     are dropped.
//
// Themes cycle with T and the choice is persisted to the prefs file.
package ui
