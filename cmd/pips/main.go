// Command pips solves domino puzzles from the command line. It reads puzzle
// files, formulates each as a binary integer program, solves it, and prints
// the solution as placement instructions and a unicode drawing.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/formulate"
	"svw.info/pips/internal/generator"
	"svw.info/pips/internal/ports"
	"svw.info/pips/internal/render"
	"svw.info/pips/internal/solver"
	"svw.info/pips/internal/verifier"
)

func pickSolver(kind string) ports.Solver {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "cpsat", "cp-sat":
		return solver.NewCPSAT()
	default:
		return solver.NewBacktracking()
	}
}

func summarizeFile(path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	puz, err := domain.ParsePuzzle(string(text))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Printf("%s: %d spaces, %d regions, %d dominoes\n", path, puz.NumSpaces(), puz.NumRegions(), puz.NumDominoes())
	for _, region := range puz.SortedRegions() {
		cond, err := puz.Condition(region)
		if err != nil {
			return err
		}
		fmt.Printf("  region at %s (%d spaces): %s\n", region.Spaces()[0], region.Len(), cond)
	}
	return nil
}

func solveFile(ctx context.Context, s ports.Solver, path string, art bool) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	puz, err := domain.ParsePuzzle(string(text))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	f, err := formulate.Formulate(puz)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	a, st, err := s.Solve(ctx, f.Program)
	if err != nil {
		if errors.Is(err, ports.ErrInfeasible) {
			fmt.Printf("%s: no solution (%v)\n", path, st.Duration.Round(time.Millisecond))
			return nil
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	if ok, violations, verr := verifier.New().Verify(ctx, f, a); verr != nil {
		return fmt.Errorf("%s: %w", path, verr)
	} else if !ok {
		return fmt.Errorf("%s: solver returned an invalid solution: %v", path, violations)
	}

	fmt.Printf("%s: solved in %v (%d nodes)\n", path, st.Duration.Round(time.Millisecond), st.Nodes)
	lines, err := render.Instructions(f, a)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	if art {
		drawing, err := render.Unicode(f, a)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(drawing)
	}
	return nil
}

func main() {
	levelStr := flag.String("log-level", "warn", "debug|info|warn|error")
	solverKind := flag.String("solver", "backtrack", "solver to use: backtrack|cpsat")
	art := flag.Bool("art", true, "draw the solution with box characters")
	summary := flag.Bool("summary", false, "print a parse summary instead of solving")
	pprof := flag.Bool("p", false, "enable pprof")
	gen := flag.Bool("generate", false, "generate a puzzle instead of solving")
	seed := flag.Int64("seed", 0, "generation seed (0 picks one from the clock)")
	rows := flag.Int("rows", 4, "generated board rows")
	cols := flag.Int("cols", 4, "generated board columns")
	flag.Parse()

	lvl := slog.LevelWarn
	switch strings.ToLower(*levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	if *pprof {
		defer profile.Start().Stop()
	}

	ctx := context.Background()

	if *gen {
		sd := *seed
		if sd == 0 {
			sd = time.Now().UnixNano()
		}
		gp, st, err := generator.NewRandomGenerator().Generate(ctx, sd, *rows, *cols)
		if err != nil {
			logger.Error("generate failed", "err", err)
			os.Exit(1)
		}
		logger.Info("generated", "seed", sd, "dur", st.Duration.Round(time.Millisecond))
		fmt.Print(gp.Text)
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: pips [flags] puzzle.txt ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *summary {
		for _, file := range files {
			if err := summarizeFile(file); err != nil {
				logger.Error("parse failed", "err", err)
				os.Exit(1)
			}
		}
		return
	}

	s := pickSolver(*solverKind)
	for _, file := range files {
		if err := solveFile(ctx, s, file, *art); err != nil {
			logger.Error("solve failed", "err", err)
			os.Exit(1)
		}
	}
}
