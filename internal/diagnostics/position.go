package diagnostics

// PositionOf converts a byte offset in source into 1-based line and column
// numbers. Columns count runes. Offsets past the end of source map to the
// position just after the last character.
func PositionOf(source string, offset int) (line, column int) {
	if offset > len(source) {
		offset = len(source)
	}
	line, column = 1, 1
	for i, r := range source {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}
