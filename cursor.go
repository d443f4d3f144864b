package screen

// moveKind identifies the encoding chosen for a cursor movement.
type moveKind uint8

const (
	moveNone moveKind = iota
	moveAbsolute
	moveRewrite
	moveLeft
	moveUp
	moveDown
)

// movePlan is the result of costing the candidate encodings for one cursor
// movement. n carries the distance for relative moves.
type movePlan struct {
	kind moveKind
	n    int
	cost int
}

// digits returns the decimal digit count of a non-negative integer.
func digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

// costAbsolute is the byte length of a CUP sequence to (row, col):
// ESC [ r ; c H with 1-indexed coordinates.
func costAbsolute(row, col int) int {
	return 4 + digits(row+1) + digits(col+1)
}

// costRel is the byte length of a single-axis relative move: ESC [ n X,
// with the count omitted when it is 1.
func costRel(n int) int {
	if n == 1 {
		return 3
	}
	return 3 + digits(n)
}

// costRewrite prices moving the cursor forward on the current row by
// re-emitting the back-buffer cells it skips over. This is only sound when
// every skipped cell is a plain single-width cell whose style matches the
// style state the terminal is currently in; otherwise re-emitting would
// change what is on screen.
func costRewrite(back []Cell, sc *styleCache, from, to int) (int, bool) {
	if !sc.valid {
		return 0, false
	}
	cost := 0
	for col := from; col < to; col++ {
		c := back[col]
		if c.Width != 1 || c.Content == "" || c == invalidCell {
			return 0, false
		}
		if !c.Style.Equal(sc.style) {
			return 0, false
		}
		cost += len(c.Content)
	}
	return cost, true
}

// planMove picks the cheapest encoding to get the cursor from
// (fromRow, fromCol) to (toRow, toCol). Candidates are absolute
// positioning, single-axis relative moves, and same-row forward rewriting
// of unchanged cells. Ties go to the non-absolute encoding. A from position
// of (-1, -1) means the cursor location is unknown and forces absolute.
func planMove(b *Buffer, sc *styleCache, fromRow, fromCol, toRow, toCol int) movePlan {
	if fromRow == toRow && fromCol == toCol {
		return movePlan{kind: moveNone}
	}

	best := movePlan{kind: moveAbsolute, cost: costAbsolute(toRow, toCol)}
	if fromRow < 0 || fromCol < 0 {
		return best
	}

	consider := func(p movePlan) {
		if p.cost <= best.cost {
			best = p
		}
	}

	if fromRow == toRow {
		if toCol > fromCol {
			// Forward movement re-prints the skipped cells rather than using
			// CUF: the terminal state stays verifiable and short gaps are
			// cheaper than any escape.
			if cost, ok := costRewrite(b.backRow(toRow), sc, fromCol, toCol); ok {
				consider(movePlan{kind: moveRewrite, n: toCol - fromCol, cost: cost})
			}
		} else {
			consider(movePlan{kind: moveLeft, n: fromCol - toCol, cost: costRel(fromCol - toCol)})
		}
	} else if fromCol == toCol {
		if toRow > fromRow {
			consider(movePlan{kind: moveDown, n: toRow - fromRow, cost: costRel(toRow - fromRow)})
		} else {
			consider(movePlan{kind: moveUp, n: fromRow - toRow, cost: costRel(fromRow - toRow)})
		}
	}

	return best
}

// emitMove writes the planned movement into the escape stream. For a
// rewrite it re-emits the skipped back-buffer cells, which advances the
// cursor as a side effect of printing.
func emitMove(e *escBuilder, b *Buffer, p movePlan, fromRow, fromCol, toRow, toCol int) {
	switch p.kind {
	case moveNone:
	case moveAbsolute:
		e.MoveTo(toRow, toCol)
	case moveRewrite:
		back := b.backRow(toRow)
		for col := fromCol; col < toCol; col++ {
			e.WriteString(back[col].Content)
		}
	case moveLeft:
		e.MoveLeft(p.n)
	case moveUp:
		e.MoveUp(p.n)
	case moveDown:
		e.MoveDown(p.n)
	}
}
