// Package app is the composition root of tablegrid.
//
// Run loads the config, the user prefs and the logger, reads the initial
// model record from one source and then either dumps the grid as a text
// table or starts the TUI:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()      config.toml
//	       ├─────> logging.New()      file logger
//	       ├─────> prefs.Load()       theme, vertical headers
//	       ├─────> open()             file, SQLite query or kernel
//	       ├─────> ui.NewGrid()       engine over terminal cells
//	       └─────> ui.Run()           TUI (blocks)
//
// Sources stay current while the TUI runs. Files and SQLite databases are
// watched by StartWatcher, which reloads on a changed modification time
// and backs off on failures. The kernel pushes updates over its websocket,
// and the grid's comm messages are sent back to it.
//
// Errors from config, source and grid construction are fatal. Reload and
// stream failures are logged and shown in the status bar.
package app
