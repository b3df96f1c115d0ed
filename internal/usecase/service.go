package usecase

import (
	"context"
	"errors"
	"fmt"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/formulate"
	"svw.info/pips/internal/ports"
	"svw.info/pips/internal/program"
	"svw.info/pips/internal/render"
)

type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Verifier  ports.Verifier
	Hinter    ports.Hinter
	Storage   ports.Storage
}

func NewService(s ports.Solver, g ports.Generator, v ports.Verifier, h ports.Hinter, st ports.Storage) *Service {
	return &Service{Solver: s, Generator: g, Verifier: v, Hinter: h, Storage: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// Solution is a solved puzzle in all its renderable forms.
type Solution struct {
	Formulation  *formulate.Formulation
	Assignment   program.Assignment
	Placements   []formulate.Placement
	Instructions []string
	Art          string
}

// SolveText parses a puzzle, formulates it, solves it, and verifies the
// solver's answer before returning it.
func (u *Service) SolveText(ctx context.Context, text string) (*Solution, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	puz, err := domain.ParsePuzzle(text)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	return u.Solve(ctx, puz)
}

// Solve formulates and solves an already parsed puzzle.
func (u *Service) Solve(ctx context.Context, puz *domain.Puzzle) (*Solution, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	f, err := formulate.Formulate(puz)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	a, stats, err := u.Solver.Solve(ctx, f.Program)
	if err != nil {
		return nil, stats, err
	}
	if u.Verifier != nil {
		ok, violations, err := u.Verifier.Verify(ctx, f, a)
		if err != nil {
			return nil, stats, err
		}
		if !ok {
			return nil, stats, fmt.Errorf("solver returned an invalid solution: %v", violations)
		}
	}
	placements, err := render.ChosenPlacements(f, a)
	if err != nil {
		return nil, stats, err
	}
	instructions, err := render.Instructions(f, a)
	if err != nil {
		return nil, stats, err
	}
	art, err := render.Unicode(f, a)
	if err != nil {
		return nil, stats, err
	}
	sol := &Solution{
		Formulation:  f,
		Assignment:   a,
		Placements:   placements,
		Instructions: instructions,
		Art:          art,
	}
	return sol, stats, nil
}

func (u *Service) Generate(ctx context.Context, seed int64, rows, cols int) (*ports.GeneratedPuzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, rows, cols)
}

func (u *Service) Verify(ctx context.Context, f *formulate.Formulation, a program.Assignment) (bool, []string, error) {
	if u.Verifier == nil {
		return false, nil, errNotConfigured
	}
	return u.Verifier.Verify(ctx, f, a)
}

func (u *Service) Hint(ctx context.Context, puz *domain.Puzzle) (ports.Hint, bool, error) {
	if u.Hinter == nil {
		return ports.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, puz)
}

// Persistence
func (u *Service) Save(ctx context.Context, rec *ports.PuzzleRecord) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, rec)
}
func (u *Service) Load(ctx context.Context, id string) (*ports.PuzzleRecord, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]ports.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
