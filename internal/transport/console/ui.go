package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/caro-client/internal/apperror"
	"github.com/rocketscienceinc/caro-client/internal/entity"
	"github.com/rocketscienceinc/caro-client/internal/service"
)

const (
	boardLeft = 4
	boardTop  = 2
	cellWidth = 2

	helpText = "arrows/hjkl move  enter/space play  r retry  n new game  q quit"

	busyIndicator = "[...]"
)

var (
	styleDefault = tcell.StyleDefault
	styleHuman   = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleAI      = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleGrid    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleInfo    = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleBanner  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleBusy    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Blink(true)
)

type gamePlay interface {
	StartGame(ctx context.Context, settings entity.Settings) (entity.SessionSnapshot, error)
	MakeTurn(ctx context.Context, cell int) error
	RetryBotTurn(ctx context.Context) error
}

// UI draws the board on a tcell screen and turns key presses and mouse
// clicks into gameplay calls.
type UI struct {
	logger   *slog.Logger
	screen   tcell.Screen
	settings entity.Settings

	mu       sync.Mutex
	snapshot entity.SessionSnapshot
	status   service.Status
	banner   string
	cursor   int

	turns sync.WaitGroup
}

func New(logger *slog.Logger, screen tcell.Screen, settings entity.Settings) *UI {
	return &UI{
		logger:   logger.With("component", "console"),
		screen:   screen,
		settings: settings,
		cursor:   -1,
	}
}

func (that *UI) Render(snapshot entity.SessionSnapshot, status service.Status) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if snapshot.ID != that.snapshot.ID {
		that.banner = ""
		that.cursor = len(snapshot.Cells) / 2
	}

	that.snapshot = snapshot
	that.status = status
	that.draw()
}

func (that *UI) GameOver(snapshot entity.SessionSnapshot, outcome entity.Outcome) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.snapshot = snapshot
	that.banner = bannerFor(outcome)
	that.draw()
}

// Run starts the first game and processes input until the player quits or
// ctx is cancelled.
func (that *UI) Run(ctx context.Context, game gamePlay) error {
	that.screen.EnableMouse()
	defer that.screen.DisableMouse()

	go func() {
		<-ctx.Done()
		_ = that.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	if _, err := game.StartGame(ctx, that.settings); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	defer that.turns.Wait()

	for {
		if ctx.Err() != nil {
			return nil
		}

		switch ev := that.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			return nil
		case *tcell.EventResize:
			that.screen.Sync()
			that.redraw()
		case *tcell.EventKey:
			if quit := that.handleKey(ctx, game, ev); quit {
				return nil
			}
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 != 0 {
				x, y := ev.Position()
				if cell, ok := that.cellAt(x, y); ok {
					that.moveCursorTo(cell)
					that.play(ctx, game, cell)
				}
			}
		}
	}
}

func (that *UI) handleKey(ctx context.Context, game gamePlay, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		that.moveCursor(-1, 0)
	case tcell.KeyDown:
		that.moveCursor(1, 0)
	case tcell.KeyLeft:
		that.moveCursor(0, -1)
	case tcell.KeyRight:
		that.moveCursor(0, 1)
	case tcell.KeyEnter:
		that.playCursor(ctx, game)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			that.moveCursor(-1, 0)
		case 'j':
			that.moveCursor(1, 0)
		case 'h':
			that.moveCursor(0, -1)
		case 'l':
			that.moveCursor(0, 1)
		case ' ':
			that.playCursor(ctx, game)
		case 'r':
			that.retry(ctx, game)
		case 'n':
			that.newGame(ctx, game)
		}
	}

	return false
}

func (that *UI) playCursor(ctx context.Context, game gamePlay) {
	that.mu.Lock()
	cell := that.cursor
	that.mu.Unlock()

	if cell >= 0 {
		that.play(ctx, game, cell)
	}
}

// play runs the turn off the event loop so that input arriving while the
// engine thinks is still read, and rejected by the gameplay service.
func (that *UI) play(ctx context.Context, game gamePlay, cell int) {
	that.turns.Add(1)
	go func() {
		defer that.turns.Done()

		if err := game.MakeTurn(ctx, cell); err != nil {
			that.logger.Warn("turn failed", "cell", cell, "error", err)
		}
	}()
}

func (that *UI) retry(ctx context.Context, game gamePlay) {
	that.turns.Add(1)
	go func() {
		defer that.turns.Done()

		err := game.RetryBotTurn(ctx)
		if errors.Is(err, apperror.ErrNothingToRetry) || errors.Is(err, apperror.ErrGameNotStarted) {
			return
		}
		if err != nil {
			that.logger.Warn("retry failed", "error", err)
		}
	}()
}

func (that *UI) newGame(ctx context.Context, game gamePlay) {
	if _, err := game.StartGame(ctx, that.settings); err != nil {
		that.logger.Error("failed to start game", "error", err)
	}
}

func (that *UI) moveCursor(dRow, dCol int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	rows, cols := that.snapshot.Rows, that.snapshot.Cols
	if rows == 0 || cols == 0 || that.cursor < 0 {
		return
	}

	row, col := that.snapshot.Position(that.cursor)
	that.cursor = that.snapshot.Index(min(max(row+dRow, 0), rows-1), min(max(col+dCol, 0), cols-1))
	that.draw()
}

func (that *UI) moveCursorTo(cell int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cursor = cell
	that.draw()
}

func (that *UI) redraw() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.draw()
}

// cellAt maps screen coordinates to a board index.
func (that *UI) cellAt(x, y int) (int, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	rows, cols := that.snapshot.Rows, that.snapshot.Cols
	if x < boardLeft || y < boardTop {
		return 0, false
	}

	row, col := y-boardTop, (x-boardLeft)/cellWidth
	if row >= rows || col >= cols {
		return 0, false
	}

	return that.snapshot.Index(row, col), true
}

// draw must be called with mu held.
func (that *UI) draw() {
	snapshot := that.snapshot

	that.screen.Clear()

	title := fmt.Sprintf("Caro %dx%d  win streak %d  level %d",
		snapshot.Rows, snapshot.Cols, snapshot.Rules.WinStreak, snapshot.Rules.Difficulty)
	drawText(that.screen, 0, 0, styleDefault, title)

	for index, cell := range snapshot.Cells {
		row, col := snapshot.Position(index)
		style := styleForCell(cell)
		// the board is dimmed while the engine owns the turn
		if that.status.Busy {
			style = style.Dim(true)
		}
		if index == that.cursor {
			style = style.Reverse(true)
		}

		x, y := boardLeft+col*cellWidth, boardTop+row
		that.screen.SetContent(x, y, []rune(cell.Mark())[0], nil, style)
		that.screen.SetContent(x+1, y, ' ', nil, styleDefault)

		if col == 0 {
			drawText(that.screen, 0, y, styleGrid, fmt.Sprintf("%2d", row+1))
		}
	}

	line := boardTop + snapshot.Rows + 1
	statusStyle := styleInfo
	if that.status.Error {
		statusStyle = styleError
	}
	drawText(that.screen, 0, line, statusStyle, that.status.Text)
	if that.status.Busy {
		drawText(that.screen, len([]rune(that.status.Text))+1, line, styleBusy, busyIndicator)
	}

	if that.banner != "" {
		drawText(that.screen, 0, line+1, styleBanner, that.banner)
	}

	drawText(that.screen, 0, line+3, styleGrid, helpText)

	that.screen.Show()
}

func styleForCell(cell entity.Cell) tcell.Style {
	switch cell {
	case entity.CellHuman:
		return styleHuman
	case entity.CellAI:
		return styleAI
	default:
		return styleGrid
	}
}

func bannerFor(outcome entity.Outcome) string {
	switch outcome {
	case entity.OutcomeHumanWin:
		return "*** YOU WIN! ***  press n for a new game"
	case entity.OutcomeAIWin:
		return "*** AI WINS! ***  press n for a new game"
	default:
		return "*** DRAW ***  press n for a new game"
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
