package ports

import (
	"context"
	"errors"
	"time"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/formulate"
	"svw.info/pips/internal/program"
)

// ErrInfeasible is returned by solvers when no arrangement of the dominoes
// satisfies the puzzle.
var ErrInfeasible = errors.New("puzzle has no feasible arrangement")

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int64
	Duration time.Duration
}

// Solver decides feasibility of a binary integer program and returns a
// satisfying assignment.
type Solver interface {
	Solve(ctx context.Context, p *program.Program) (program.Assignment, Stats, error)
}

// GeneratedPuzzle is a freshly generated puzzle together with its canonical
// text form, which round-trips through the parser.
type GeneratedPuzzle struct {
	Text   string
	Puzzle *domain.Puzzle
}

// Generator creates new solvable puzzles for a board of the given size.
type Generator interface {
	Generate(ctx context.Context, seed int64, rows, cols int) (*GeneratedPuzzle, Stats, error)
}

// Verifier independently checks a solved assignment against the puzzle.
type Verifier interface {
	Verify(ctx context.Context, f *formulate.Formulation, a program.Assignment) (ok bool, violations []string, err error)
}

// Hint is one concrete placement a player could make next.
type Hint struct {
	Placement formulate.Placement
	Message   string
}

// Hinter produces a single placement hint for a puzzle.
type Hinter interface {
	Hint(ctx context.Context, p *domain.Puzzle) (Hint, bool, error)
}

// PuzzleRecord is a stored puzzle: its text plus metadata.
type PuzzleRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// Storage persists and retrieves puzzle records.
type Storage interface {
	Save(ctx context.Context, rec *PuzzleRecord) error
	Load(ctx context.Context, id string) (*PuzzleRecord, error)
	List(ctx context.Context) ([]PuzzleMeta, error)
}
