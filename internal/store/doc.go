// Package store manages the directory of configuration documents: it lists
// and classifies them, migrates and activates the one the user selects, and
// restores that selection at startup.
//
// # Startup
//
//	s := store.New(dir, current,
//		store.WithLogger(logger),
//		store.WithSelection(config.Selection{}),
//	)
//	if err := s.Initialize(ctx); err != nil {
//		return err
//	}
//	cfg, path := s.Active().Get()
//
// [Store.Initialize] creates the directory with a default document on first
// run, then reactivates the remembered document if it still loads.
//
// # Listing and selection
//
// [Store.ListAvailable] loads every visible file concurrently and reports a
// [ConfigFileInfo] per file. Only entries whose state is selectable can be
// passed to [Store.Select]; a document that needs migration is upgraded and
// written back before it becomes active.
package store
