package entity

import (
	"fmt"

	"github.com/rocketscienceinc/caro-client/internal/apperror"
)

const (
	MinDimension = 5
	MaxDimension = 25
)

// Board is a rows*cols grid stored row-major. Cells only ever go from
// CellEmpty to a player mark.
type Board struct {
	rows  int
	cols  int
	cells []Cell
}

func NewBoard(rows, cols int) (*Board, error) {
	if !validDimension(rows) || !validDimension(cols) {
		return nil, fmt.Errorf("%w: %dx%d", apperror.ErrInvalidDimensions, rows, cols)
	}

	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}, nil
}

// ClampDimension pulls n into [MinDimension, MaxDimension].
func ClampDimension(n int) int {
	return min(max(n, MinDimension), MaxDimension)
}

func validDimension(n int) bool {
	return n >= MinDimension && n <= MaxDimension
}

func (that *Board) Rows() int { return that.rows }

func (that *Board) Cols() int { return that.cols }

func (that *Board) Len() int { return len(that.cells) }

// Center is the index the AI opens on: floor(rows*cols/2).
func (that *Board) Center() int {
	return len(that.cells) / 2
}

func (that *Board) InBounds(index int) bool {
	return index >= 0 && index < len(that.cells)
}

func (that *Board) IsEmpty(index int) bool {
	return that.InBounds(index) && that.cells[index] == CellEmpty
}

// Place writes player into an empty cell. The board is unchanged on error.
func (that *Board) Place(index int, player Cell) error {
	if !that.InBounds(index) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	if !player.IsPlayer() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidPlayer, player)
	}

	if that.cells[index] != CellEmpty {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	that.cells[index] = player

	return nil
}

// Cells returns a copy of the grid.
func (that *Board) Cells() []Cell {
	cells := make([]Cell, len(that.cells))
	copy(cells, that.cells)
	return cells
}

func (that *Board) Filled() int {
	filled := 0
	for _, cell := range that.cells {
		if cell != CellEmpty {
			filled++
		}
	}
	return filled
}
