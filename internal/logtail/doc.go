// Package logtail reads and renders wayfare's own log file.
//
// # Overview
//
// The TUI owns the terminal, so while it runs wayfare logs JSON events to a
// file. The "wayfare logs" command uses this package to show the end of that
// file in the same shape the console logger prints.
//
// # Reading Log Files
//
// Read uses a ring buffer to extract the last maxLines from a file in one
// pass, using O(maxLines) memory regardless of file size. Lines come back in
// chronological order. A missing file is not an error; it yields no lines.
//
//	lines, err := logtail.Read(cfg.LogFile, logtail.DefaultLines)
//	if err != nil {
//		return err
//	}
//	lines = logtail.Filter(lines, zerolog.WarnLevel)
//	return logtail.Render(os.Stdout, lines, true)
//
// # Rendering
//
// Render feeds each JSON line through zerolog.ConsoleWriter, giving
// "2024-03-05 14:30:00 INF search complete offers=3". Lines that are not JSON
// events, such as a panic trace, are printed unchanged.
package logtail
