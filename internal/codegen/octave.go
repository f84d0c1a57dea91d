// Package codegen writes Octave scripts for the numerical linear algebra
// problems. Input is checked for shape here; the arithmetic is left to
// Octave.
package codegen

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/matparse"
)

var errNotSquare = errors.New("matrix must be square")

// script accumulates the lines of one Octave program.
type script struct {
	lines []string
}

func newScript(comment string) *script {
	return &script{lines: []string{"% " + comment}}
}

func (s *script) line(format string, args ...any) *script {
	s.lines = append(s.lines, fmt.Sprintf(format, args...))
	return s
}

func (s *script) blank() *script {
	s.lines = append(s.lines, "")
	return s
}

// disp prints a label followed by the value of expr.
func (s *script) disp(label, expr string) *script {
	return s.line("disp(%q);", label).line("disp(%s);", expr)
}

func (s *script) result(title string) engine.Result {
	return engine.Code(title, strings.Join(s.lines, "\n")+"\n")
}

// column renders v as an Octave column vector.
func column(v []float64) string {
	m := make(matparse.Matrix, len(v))
	for i, x := range v {
		m[i] = []float64{x}
	}
	return matparse.FormatBracket(m)
}

// squareMatrix reads field name as a non-empty n x n matrix.
func squareMatrix(in *engine.Input, name string) matparse.Matrix {
	m := in.Matrix(name)
	if m != nil && len(m) != len(m[0]) {
		in.Reject(name, fmt.Errorf("%w, got %dx%d", errNotSquare, len(m), len(m[0])))
		return nil
	}
	return m
}

// system reads a matrix A and, after a blank line, the right-hand side b
// as a column or a single row.
func system(in *engine.Input, name string) (matparse.Matrix, []float64) {
	blocks := in.Blocks(name, 2)
	if blocks == nil {
		return nil, nil
	}
	A := blocks[0]
	rows, _, err := matparse.Rectangular(A)
	if err != nil {
		in.Reject(name, fmt.Errorf("matrix A: %w", err))
		return nil, nil
	}
	b := blocks[1].Flatten()
	if len(b) != rows {
		in.Reject(name, fmt.Errorf("A has %d rows but b has %d values", rows, len(b)))
		return nil, nil
	}
	return A, b
}

// Determinant generates det(A).
func Determinant(in *engine.Input) engine.Result {
	A := squareMatrix(in, "A")
	const title = "Calculate Determinant"
	if err := in.Err(); err != nil {
		return engine.FailCode(title, err)
	}

	return newScript("Calculate Determinant").
		line("A = %s;", matparse.FormatBracket(A)).
		line("d = det(A);").
		disp("Determinant:", "d").
		result(title)
}

// Inverse generates inv(A), guarded by a singularity check.
func Inverse(in *engine.Input) engine.Result {
	A := squareMatrix(in, "A")
	const title = "Find Matrix Inverse"
	if err := in.Err(); err != nil {
		return engine.FailCode(title, err)
	}

	return newScript("Calculate Inverse").
		line("A = %s;", matparse.FormatBracket(A)).
		line("if rcond(A) < eps").
		line(`    disp("Matrix is singular, no inverse.");`).
		line("else").
		line("    invA = inv(A);").
		line(`    disp("Inverse Matrix:");`).
		line("    disp(invA);").
		line("end").
		result(title)
}

// Trace generates trace(A).
func Trace(in *engine.Input) engine.Result {
	A := squareMatrix(in, "A")
	const title = "Calculate Trace"
	if err := in.Err(); err != nil {
		return engine.FailCode(title, err)
	}

	return newScript("Calculate Trace").
		line("A = %s;", matparse.FormatBracket(A)).
		line("t = trace(A);").
		disp("Trace:", "t").
		result(title)
}

// Transpose generates A' for any rectangular matrix.
func Transpose(in *engine.Input) engine.Result {
	A := in.Matrix("A")
	const title = "Transpose Matrix"
	if err := in.Err(); err != nil {
		return engine.FailCode(title, err)
	}

	return newScript("Transpose").
		line("A = %s;", matparse.FormatBracket(A)).
		line("AT = A';").
		disp("Transposed Matrix:", "AT").
		result(title)
}

// DirectSolve generates x = A \ b for a square system.
func DirectSolve(in *engine.Input) engine.Result {
	A, b := system(in, "system")
	if A != nil && len(A) != len(A[0]) {
		in.Reject("system", fmt.Errorf("%w: A is %dx%d", errNotSquare, len(A), len(A[0])))
	}
	const title = "Direct Method (Ax=b)"
	if err := in.Err(); err != nil {
		return engine.FailCode(title, err)
	}

	return newScript("Octave Script: Solve Ax = b").
		line("A = %s;", matparse.FormatBracket(A)).
		line("b = %s;", column(b)).
		blank().
		line("%% Solve using left division operator").
		line("x = A \\ b;").
		blank().
		disp("Solution vector x:", "x").
		result(title)
}

// diagonallyDominant reports whether |a_ii| > sum of |a_ij| for every row.
func diagonallyDominant(A matparse.Matrix) bool {
	for i, row := range A {
		off := 0.0
		for j, v := range row {
			if j != i {
				off += math.Abs(v)
			}
		}
		if math.Abs(row[i]) <= off {
			return false
		}
	}
	return true
}

// GaussSeidel generates the Gauss-Seidel iteration for a square system.
func GaussSeidel(in *engine.Input) engine.Result {
	A, b := system(in, "system")
	tol, maxit := in.Float("tol"), in.Int("maxit")
	if A != nil {
		if len(A) != len(A[0]) {
			in.Reject("system", fmt.Errorf("%w: A is %dx%d", errNotSquare, len(A), len(A[0])))
		} else {
			for i := range A {
				if A[i][i] == 0 {
					in.Reject("system", fmt.Errorf("diagonal entry A(%d,%d) is zero; reorder the equations", i+1, i+1))
					break
				}
			}
		}
	}
	if tol <= 0 {
		in.Reject("tol", fmt.Errorf("tolerance must be positive, got %s", matparse.FormatNumber(tol)))
	}
	if maxit < 1 {
		in.Reject("maxit", fmt.Errorf("iteration limit must be at least 1, got %d", maxit))
	}
	const title = "Iterative (Gauss-Seidel)"
	if err := in.Err(); err != nil {
		return engine.FailCode(title, err)
	}

	s := newScript("Octave Script: Gauss-Seidel iteration for Ax = b")
	if !diagonallyDominant(A) {
		s.line("%% A is not strictly diagonally dominant; the iteration may diverge.")
	}
	return s.line("A = %s;", matparse.FormatBracket(A)).
		line("b = %s;", column(b)).
		line("tol = %s;", matparse.FormatNumber(tol)).
		line("maxit = %d;", maxit).
		blank().
		line("n = length(b);").
		line("x = zeros(n, 1);").
		line("for k = 1:maxit").
		line("    xold = x;").
		line("    for i = 1:n").
		line("        s = A(i, [1:i-1, i+1:n]) * x([1:i-1, i+1:n]);").
		line("        x(i) = (b(i) - s) / A(i, i);").
		line("    end").
		line("    if norm(x - xold, inf) < tol").
		line("        break;").
		line("    end").
		line("end").
		blank().
		line(`printf("Iterations: %%d\n", k);`).
		disp("Solution vector x:", "x").
		result(title)
}

// Eigen generates eig(A) with eigenvectors.
func Eigen(in *engine.Input) engine.Result {
	A := squareMatrix(in, "A")
	const title = "Calculate Eigenvalues"
	if err := in.Err(); err != nil {
		return engine.FailCode(title, err)
	}

	return newScript("Eigenvalues and Eigenvectors").
		line("A = %s;", matparse.FormatBracket(A)).
		line("[V, D] = eig(A);").
		disp("Eigenvalues (Diagonal of D):", "diag(D)").
		disp("Eigenvectors (Columns of V):", "V").
		result(title)
}

// LeastSquares generates the normal-equations solution of an
// overdetermined system.
func LeastSquares(in *engine.Input) engine.Result {
	A, b := system(in, "system")
	if A != nil && len(A) < len(A[0]) {
		in.Reject("system", fmt.Errorf("least squares needs at least as many equations as unknowns, A is %dx%d", len(A), len(A[0])))
	}
	const title = "Method of Least Squares"
	if err := in.Err(); err != nil {
		return engine.FailCode(title, err)
	}

	return newScript("Least Squares Solution (Overdetermined)").
		line("A = %s;", matparse.FormatBracket(A)).
		line("b = %s;", column(b)).
		blank().
		line("%% Normal equations: (A'A)x = A'b").
		line("x = (A' * A) \\ (A' * b);").
		line("r = b - A * x;").
		blank().
		disp("Least Squares Solution x:", "x").
		disp("Residual norm ||b - Ax||:", "norm(r)").
		result(title)
}

// GeneralSolution generates a particular solution and a null-space basis
// for an underdetermined system.
func GeneralSolution(in *engine.Input) engine.Result {
	A, b := system(in, "system")
	const title = "Find General Solution"
	if err := in.Err(); err != nil {
		return engine.FailCode(title, err)
	}

	s := newScript("General Solution (Underdetermined)")
	if len(A) >= len(A[0]) {
		s.line("%% A is %dx%d; the null space may be trivial.", len(A), len(A[0]))
	}
	return s.line("A = %s;", matparse.FormatBracket(A)).
		line("b = %s;", column(b)).
		blank().
		line("xp = pinv(A) * b;   %% particular (minimum norm) solution").
		line("N = null(A);        %% basis of the null space").
		blank().
		line("if norm(A * xp - b) > 1e-8").
		line(`    disp("The system is inconsistent; xp is only a least-squares fit.");`).
		line("end").
		disp("Particular solution xp:", "xp").
		disp("Null space basis (columns of N):", "N").
		line(`disp("General solution: x = xp + N * t for any vector t");`).
		result(title)
}

// LinearProgram generates a glpk call for max or min c'x subject to
// Ax <= b and x >= 0.
func LinearProgram(in *engine.Input) engine.Result {
	blocks := in.Blocks("program", 3)
	sense := 0
	switch s := strings.ToLower(in.Text("sense")); s {
	case "max", "maximize", "maximise":
		sense = -1
	case "min", "minimize", "minimise":
		sense = 1
	default:
		in.Reject("sense", fmt.Errorf("sense must be max or min, got %q", s))
	}
	var c, b []float64
	var A matparse.Matrix
	if blocks != nil {
		c, A, b = blocks[0].Flatten(), blocks[1], blocks[2].Flatten()
		if rows, cols, err := matparse.Rectangular(A); err != nil {
			in.Reject("program", fmt.Errorf("constraint matrix: %w", err))
		} else if cols != len(c) {
			in.Reject("program", fmt.Errorf("c has %d coefficients but A has %d columns", len(c), cols))
		} else if rows != len(b) {
			in.Reject("program", fmt.Errorf("A has %d rows but b has %d values", rows, len(b)))
		}
	}
	const title = "Solve LP (glpk)"
	if err := in.Err(); err != nil {
		return engine.FailCode(title, err)
	}

	word := "Maximum"
	if sense > 0 {
		word = "Minimum"
	}
	return newScript("Octave Script: Linear Programming (Simplex)").
		line("c = %s;  %% Objective function coefficients", column(c)).
		line("A = %s;  %% Constraint matrix", matparse.FormatBracket(A)).
		line("b = %s;  %% Constraint limits", column(b)).
		blank().
		line("%% Standard bounds (x >= 0)").
		line("lb = zeros(%d, 1);", len(c)).
		line("ub = [];").
		line("ctype = %q;  %% Upper-bound constraints", strings.Repeat("U", len(b))).
		line("vartype = %q;  %% Continuous variables", strings.Repeat("C", len(c))).
		line("s = %d;  %% Maximize (-1) or Minimize (1)", sense).
		blank().
		line("[xopt, fopt] = glpk(c, A, b, lb, ub, ctype, vartype, s);").
		blank().
		disp("Optimal x:", "xopt").
		disp(word+" Value:", "fopt").
		result(title)
}
