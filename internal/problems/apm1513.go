package problems

import (
	"github.com/Shy5ta/studentSuite/internal/codegen"
	"github.com/Shy5ta/studentSuite/internal/engine"
)

const (
	Determinant     engine.ProblemID = "determinant"
	MatrixInverse   engine.ProblemID = "matrix-inverse"
	Trace           engine.ProblemID = "trace"
	Transpose       engine.ProblemID = "transpose"
	DirectSolve     engine.ProblemID = "direct-solve"
	GaussSeidel     engine.ProblemID = "gauss-seidel"
	Eigenvalues     engine.ProblemID = "eigenvalues"
	LeastSquares    engine.ProblemID = "least-squares"
	GeneralSolution engine.ProblemID = "general-solution"
	LinearProgram   engine.ProblemID = "linear-program"
)

const (
	squareExample = "1 2 3\n4 5 6\n7 8 9"
	systemHelp    = "matrix A, a blank line, then the vector b"
)

func apm1513() course {
	const c = "APM1513"
	A := func(def string) engine.InputField {
		return matrix("A", def, "matrix, one row per line")
	}
	system := func(def string) engine.InputField {
		return matrix("system", def, systemHelp)
	}
	return course{
		problems: []engine.ProblemType{
			code(Determinant, "Calculate Determinant", codegen.Determinant, A(squareExample)),
			code(MatrixInverse, "Find Matrix Inverse", codegen.Inverse, A("4 7\n2 6")),
			code(Trace, "Calculate Trace", codegen.Trace, A(squareExample)),
			code(Transpose, "Transpose Matrix", codegen.Transpose, A("1 2 3\n4 5 6")),
			code(DirectSolve, "Direct Method (Ax=b)", codegen.DirectSolve, system("2 1\n1 3\n\n5\n8")),
			code(GaussSeidel, "Iterative (Gauss-Seidel)", codegen.GaussSeidel,
				system("4 1\n2 3\n\n1\n2"),
				scalar("tol", "1e-6", "stop when successive iterates differ by less than this"),
				scalar("maxit", "100", "iteration limit")),
			code(Eigenvalues, "Calculate Eigenvalues", codegen.Eigen, A("4 1\n2 3")),
			code(LeastSquares, "Method of Least Squares", codegen.LeastSquares, system("1 1\n1 2\n1 3\n\n1\n2\n2")),
			code(GeneralSolution, "Find General Solution", codegen.GeneralSolution, system("1 1 1\n0 1 2\n\n6\n4")),
			code(LinearProgram, "Solve LP (glpk)", codegen.LinearProgram,
				matrix("program", "40 60\n\n2 1\n1 1\n\n70\n40", "objective c, a blank line, constraints A, a blank line, limits b (Ax <= b, x >= 0)"),
				text("sense", "max", "max or min")),
		},
		topics: []engine.Topic{
			{ID: "apm1513-matrix-properties", Course: c, Title: "Matrix Properties and Manipulation",
				Problems: []engine.ProblemID{Determinant, MatrixInverse, Trace, Transpose}},
			{ID: "apm1513-square-systems", Course: c, Title: "Solving Square Linear Systems",
				Problems: []engine.ProblemID{DirectSolve, GaussSeidel}},
			{ID: "apm1513-eigen", Course: c, Title: "Eigenvalues and Eigenvectors",
				Problems: []engine.ProblemID{Eigenvalues}},
			{ID: "apm1513-least-squares", Course: c, Title: "Overdetermined Systems and Least Squares",
				Problems: []engine.ProblemID{LeastSquares}},
			{ID: "apm1513-null-space", Course: c, Title: "Underdetermined Systems and Null Space",
				Problems: []engine.ProblemID{GeneralSolution}},
			{ID: "apm1513-linear-programming", Course: c, Title: "Linear Programming",
				Problems: []engine.ProblemID{LinearProgram}},
		},
	}
}
