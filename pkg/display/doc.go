// Package display provides the user-facing messages and terminal rendering
// shared by the CLI commands and the interactive browser.
//
// Messages:
//
// Every outcome of a load or search maps to one Message with a kind and an
// icon, so the CLI, the TUI status line and the HTTP envelope agree on the
// wording:
//
//	display.Loaded(tbl)          // 🟢 File loaded: skills.csv (120 rows)
//	display.MissingCriteria()    // 🟠 Enter an ID or select at least one skill ...
//	display.ForError(err)        // maps LoadError, EmptyTableError, ...
//
// Tables:
//
//	display.PrintPreview(os.Stdout, tbl, 5, 40)
//	display.PrintResults(os.Stdout, tbl, res, 40)
//
// Warnings emitted through pkg/warnings can be buffered with a
// WarningCollector and printed after the table.
package display
