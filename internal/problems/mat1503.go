package problems

import (
	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/numeric"
)

const (
	Cramer            engine.ProblemID = "cramer-2x2"
	MatMul            engine.ProblemID = "matmul"
	Inverse2          engine.ProblemID = "inverse-2x2"
	Det2              engine.ProblemID = "det-2x2"
	Det3              engine.ProblemID = "det-3x3"
	Dot               engine.ProblemID = "dot"
	Cross             engine.ProblemID = "cross"
	Angle             engine.ProblemID = "angle"
	Projection        engine.ProblemID = "projection"
	ComplexArithmetic engine.ProblemID = "complex-arithmetic"
	Polar             engine.ProblemID = "polar-form"
	DeMoivre          engine.ProblemID = "de-moivre"
)

func mat1503() course {
	const c = "MAT1503"
	u := func(def string) engine.InputField { return matrix("u", def, "vector components separated by spaces") }
	v := func(def string) engine.InputField { return matrix("v", def, "vector components separated by spaces") }
	return course{
		problems: []engine.ProblemType{
			steps(Cramer, "Solve 2x2 System (Cramer's Rule)", numeric.Cramer,
				scalar("a", "2", "x coefficient, equation 1"),
				scalar("b", "3", "y coefficient, equation 1"),
				scalar("e", "5", "constant, equation 1"),
				scalar("c", "4", "x coefficient, equation 2"),
				scalar("d", "1", "y coefficient, equation 2"),
				scalar("f", "2", "constant, equation 2")),
			steps(MatMul, "Matrix Multiplication", numeric.MatMul,
				matrix("A", "1 2\n3 4", "left matrix"),
				matrix("B", "2 0\n1 2", "right matrix")),
			steps(Inverse2, "Inverse of 2x2 Matrix", numeric.Inverse2, matrix("A", "4 7\n2 6", "2x2 matrix")),
			steps(Det2, "Determinant (2x2)", numeric.Det2, matrix("A", "2 3\n4 5", "2x2 matrix")),
			steps(Det3, "Determinant (3x3)", numeric.Det3, matrix("A", "1 2 3\n0 1 4\n5 6 0", "3x3 matrix")),
			steps(Dot, "Dot Product", numeric.Dot, u("1 2 3"), v("4 -5 6")),
			steps(Cross, "Cross Product", numeric.Cross, u("1 0 1"), v("2 3 0")),
			steps(Angle, "Angle Between Vectors", numeric.Angle, u("1 2 3"), v("4 -5 6")),
			steps(Projection, "Projection of u onto v", numeric.Projection, u("1 2 3"), v("4 -5 6")),
			steps(ComplexArithmetic, "Complex Arithmetic (+, -, *, /)", numeric.ComplexArithmetic,
				text("z1", "3+2i", "complex number a+bi"),
				text("z2", "1-4i", "complex number a+bi")),
			steps(Polar, "Convert to Polar Form", numeric.Polar,
				scalar("a", "1", "real part"),
				scalar("b", "1", "imaginary part")),
			steps(DeMoivre, "De Moivre's Theorem (Powers)", numeric.DeMoivre,
				scalar("a", "1", "real part"),
				scalar("b", "1", "imaginary part"),
				scalar("n", "5", "power")),
		},
		topics: []engine.Topic{
			{ID: "mat1503-systems", Course: c, Title: "Systems of Linear Equations & Matrices",
				Problems: []engine.ProblemID{Cramer, MatMul, Inverse2}},
			{ID: "mat1503-determinants", Course: c, Title: "Determinants",
				Problems: []engine.ProblemID{Det2, Det3}},
			{ID: "mat1503-vectors", Course: c, Title: "Vectors in 2-Space & 3-Space",
				Problems: []engine.ProblemID{Dot, Cross, Angle, Projection}},
			{ID: "mat1503-complex", Course: c, Title: "Complex Numbers",
				Problems: []engine.ProblemID{ComplexArithmetic, Polar, DeMoivre}},
		},
	}
}
