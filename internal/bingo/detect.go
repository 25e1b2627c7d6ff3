package bingo

import "fmt"

// Pattern identifies a completed bingo line.
type Pattern uint8

const (
	Row0 Pattern = iota
	Row1
	Row2
	Row3
	Row4
	Col0
	Col1
	Col2
	Col3
	Col4
	DiagonalMain
	DiagonalAnti
	FullCard
)

var patternNames = [...]string{
	"row_0", "row_1", "row_2", "row_3", "row_4",
	"col_0", "col_1", "col_2", "col_3", "col_4",
	"diagonal_main", "diagonal_anti", "full_card",
}

func (p Pattern) String() string {
	if int(p) < len(patternNames) {
		return patternNames[p]
	}
	return fmt.Sprintf("pattern(%d)", uint8(p))
}

// MarshalText renders the pattern name for JSON output.
func (p Pattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Detect scans a marked grid and returns the first completed pattern in
// fixed priority order: rows 0-4, columns 0-4, main diagonal, anti-diagonal,
// full card. When several lines complete on the same roll only the
// highest-priority one is reported.
func Detect(marked *[Cells]bool) (Pattern, bool) {
	for row := 0; row < GridSize; row++ {
		if lineComplete(marked, row*GridSize, 1) {
			return Row0 + Pattern(row), true
		}
	}
	for col := 0; col < GridSize; col++ {
		if lineComplete(marked, col, GridSize) {
			return Col0 + Pattern(col), true
		}
	}
	if lineComplete(marked, 0, GridSize+1) {
		return DiagonalMain, true
	}
	if lineComplete(marked, GridSize-1, GridSize-1) {
		return DiagonalAnti, true
	}
	full := true
	for _, m := range marked {
		if !m {
			full = false
			break
		}
	}
	if full {
		return FullCard, true
	}
	return 0, false
}

func lineComplete(marked *[Cells]bool, start, stride int) bool {
	for i := 0; i < GridSize; i++ {
		if !marked[start+i*stride] {
			return false
		}
	}
	return true
}
