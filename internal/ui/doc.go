// Package ui provides lipgloss rendering shared by the formguard CLI, the
// interactive form and the scenario report.
//
// # Components
//
//   - RenderMessage: the default wrapper.RenderFunc. Draws the control and,
//     below it, the selected rule's message in error or warning colours.
//   - RenderSnapshotTable: one row per field with its rules, visibility and
//     display flags. Used by `formguard check`.
//   - Printer: run-once output (header box, tables, success/failure boxes)
//     written to any io.Writer.
//
// # Logging Integration
//
// Styled output goes to stdout; zap logs go to stderr and are silent unless
// FORMGUARD_LOG_LEVEL is set, so the two never interleave by default.
package ui
