package entity

type Phase string

const (
	PhaseAwaitingHuman Phase = "awaiting_human"
	PhaseAwaitingAI    Phase = "awaiting_ai"
	PhaseFinished      Phase = "finished"
)

// Outcome is the terminal result reported by the engine. OutcomeNone means
// the game goes on.
type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeHumanWin Outcome = "human"
	OutcomeAIWin    Outcome = "ai"
	OutcomeDraw     Outcome = "draw"
)

func (o Outcome) IsTerminal() bool {
	return o != OutcomeNone
}
