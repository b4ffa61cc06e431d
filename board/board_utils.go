package board

import (
	"fmt"
	"strings"
)

// ToDisplayText renders the board for terminal display, showing the
// displayed value of each tile under the board's rule.
func (b Board) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("   " + strings.Repeat("-", Dim*7) + "\n")
	for r := 0; r < Dim; r++ {
		sb.WriteString(fmt.Sprintf("%2d|", r+1))
		for c := 0; c < Dim; c++ {
			idx := int(b.cells[r*Dim+c])
			if idx == 0 {
				sb.WriteString(fmt.Sprintf("%6s ", "."))
			} else {
				sb.WriteString(fmt.Sprintf("%6d ", b.rule.Value(idx)))
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", Dim*7) + "\n")
	return sb.String()
}

func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, c := range b.cells {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%d", c))
	}
	sb.WriteString("]")
	return sb.String()
}
