package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"svw.info/pips/internal/ports"
	"svw.info/pips/internal/program"
)

// CPSAT lowers the binary program into an or-tools CP-SAT model and hands
// it to the external solver. The lowering is mechanical because the program
// representation mirrors cpmodel's expression shape.
type CPSAT struct{}

// NewCPSAT returns a ready solver.
func NewCPSAT() *CPSAT { return &CPSAT{} }

func (s *CPSAT) Solve(ctx context.Context, p *program.Program) (program.Assignment, ports.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, ports.Stats{}, err
	}

	builder := cpmodel.NewCpModelBuilder()
	vars := make([]cpmodel.BoolVar, p.NumVars())
	for i := range vars {
		vars[i] = builder.NewBoolVar().WithName(p.VarName(i))
	}
	for _, c := range p.Constraints() {
		expr := cpmodel.NewLinearExpr()
		for _, t := range c.Expr.Terms() {
			expr.AddTerm(vars[t.Var], int64(t.Coeff))
		}
		expr.AddConstant(int64(c.Expr.Offset()))
		bound := cpmodel.NewConstant(int64(c.Bound))
		switch c.Sense {
		case program.SenseEqual:
			builder.AddEquality(expr, bound).WithName(c.Name)
		case program.SenseLessOrEqual:
			builder.AddLessOrEqual(expr, bound).WithName(c.Name)
		case program.SenseGreaterOrEqual:
			builder.AddGreaterOrEqual(expr, bound).WithName(c.Name)
		default:
			return nil, ports.Stats{}, fmt.Errorf("unsupported constraint sense %v", c.Sense)
		}
	}
	// Feasibility problem: any constant objective will do.
	builder.Minimize(cpmodel.NewConstant(0))

	model, err := builder.Model()
	if err != nil {
		return nil, ports.Stats{}, fmt.Errorf("build cp model: %w", err)
	}
	response, err := cpmodel.SolveCpModel(model)
	if err != nil {
		return nil, ports.Stats{}, fmt.Errorf("solve cp model: %w", err)
	}

	stats := ports.Stats{
		Nodes:    response.GetNumBranches(),
		Duration: time.Duration(response.GetWallTime() * float64(time.Second)),
	}
	switch response.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL, cmpb.CpSolverStatus_FEASIBLE:
	case cmpb.CpSolverStatus_INFEASIBLE:
		return nil, stats, ports.ErrInfeasible
	default:
		return nil, stats, fmt.Errorf("cp solver finished with status %v", response.GetStatus())
	}

	values := make(program.Assignment, len(vars))
	for i, v := range vars {
		values[i] = int(cpmodel.SolutionIntegerValue(response, v))
	}
	return values, stats, nil
}
