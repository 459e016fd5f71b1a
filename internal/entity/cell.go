package entity

// Cell is the occupancy of one board position. The numeric values are the
// codes the move engine expects on the wire.
type Cell int

const (
	CellEmpty Cell = 0
	CellHuman Cell = 1
	CellAI    Cell = 2
)

const (
	MarkHuman = "X"
	MarkAI    = "O"
	MarkEmpty = "."
)

func (c Cell) Mark() string {
	switch c {
	case CellHuman:
		return MarkHuman
	case CellAI:
		return MarkAI
	default:
		return MarkEmpty
	}
}

func (c Cell) IsPlayer() bool {
	return c == CellHuman || c == CellAI
}
