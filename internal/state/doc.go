// Package state holds the search state shared by the search runner and the UI.
//
// # Overview
//
// A single Store is created by the app and passed by reference to whoever needs
// it. There is no global instance. Writers call the mutation methods; readers
// call Snapshot and render from the copy.
//
//	Searcher goroutine:              UI (Bubble Tea):
//	┌──────────────────────┐        ┌──────────────────────┐
//	│ gen := BeginSearch() │        │ snap := Snapshot()   │
//	│ resp, err := fetch() │───────→│ snap.PageOffers()    │
//	│ CompleteSearch(gen)  │ (lock) │ render               │
//	└──────────────────────┘        └──────────────────────┘
//
// # Generations
//
// Every BeginSearch bumps a generation counter and returns it. CompleteSearch
// only applies a result whose generation is still current, so a slow response
// to an abandoned query can never replace the answer to a newer one.
//
// # Results
//
// A completed search replaces the offers and dictionaries wholesale and
// returns to page 0. A failed search, or one whose payload lacks meta or data,
// clears the result set and records the error.
//
// # Paging and sorting
//
// Pages are zero-based; TotalPages is never below one. SetPage ignores pages
// outside the range. The sort config persists across searches and any change
// to it returns to page 0. Sorting happens on read, in Snapshot.PageOffers.
//
// # Copies
//
// Snapshot deep-copies the results with jinzhu/copier, including pointer
// fields and dictionary maps, so a snapshot can be held by the UI while the
// store moves on. Errors are wrapped so errors.Is still matches the original.
package state
