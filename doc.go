// Package ideastash is the Composition Root of IdeaStash, a personal idea journal.
//
// It connects the domain packages (ideas, prefs, entitlement, query) with the
// storage adapters using the Hexagonal Architecture pattern. Every component
// persists through the same key-value port, core.Store.
//
// Features:
//
//   - **Write-through repository**: every mutation persists the whole idea collection before it becomes visible.
//   - **Pluggable storage**: fs (JSON files, optional git history), sqlite, redis or memory.
//   - **Preferences**: onboarding flag, sort order and view mode stored as one record.
//   - **Entitlements**: a local provider that unlocks premium on purchase and a stub that declines.
//   - **Archives**: export and import of the journal as JSON, YAML or CSV.
//
// Usage:
//
//	app, err := ideastash.Open(ctx,
//		ideastash.WithAdapter(ideastash.AdapterSQLite),
//		ideastash.WithSeed(ideastash.SampleIdeas),
//		ideastash.WithLogger(logger),
//	)
//	if err != nil { ... }
//	defer app.Close()
//
//	_ = app.Load(ctx)
//	idea, err := app.Ideas.Add(ctx, ideastash.IdeaFields{Title: "Tiny garden", Category: "lifestyle"})
package ideastash
