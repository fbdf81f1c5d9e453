package ui

// DetermineLayoutMode picks the chrome for a terminal of cols by rows. Framed
// keeps the header and status bar around the tiles; bare drops them when
// only the tiles fit.
func DetermineLayoutMode(cols, rows, minCols, minRows int) LayoutMode {
	if cols < minCols || rows < minRows-chromeRows {
		return LayoutTooSmall
	}
	if rows < minRows {
		return LayoutBare
	}
	return LayoutFramed
}

const chromeRows = 2

// contentSize is the tile size for a terminal in the given mode.
func contentSize(mode LayoutMode, cols, rows int) (int, int) {
	if mode == LayoutFramed {
		rows -= chromeRows
	}
	return max(1, cols), max(1, rows)
}
