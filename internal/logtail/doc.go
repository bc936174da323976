// Package logtail reads the end of the tablegrid log file for the log
// overlay.
//
// Read keeps a ring buffer of the last maxLines lines, so memory is bounded
// by the tail size and not the file size. A missing file reads as no lines.
//
// Lines are in the text format of charmbracelet/log:
//
//	2026/10/14 09:12:01 INFO tablegrid: grid ready rows=120 columns=8
//	2026/10/14 09:12:04 WARN tablegrid: filter ignored expression="$ >" error="..."
//
// LevelOf finds the level token and Filter drops lines below a minimum
// level. Multi-line values keep the level of the line that started them.
package logtail
