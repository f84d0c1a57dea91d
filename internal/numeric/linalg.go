// Package numeric holds the closed-form formula solvers: small linear
// algebra, vectors, complex numbers and the population and physical models.
// Every solver shows the formula, the substituted values and the result.
package numeric

import (
	"fmt"
	"math"
	"strings"

	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/matparse"
)

const eps = 1e-12

var (
	num   = engine.Num
	paren = engine.Paren
)

func fixed2(v float64) string { return engine.Fixed(v, 2) }

// term renders the coefficient of a variable inside a sum, such as " - 3y".
func term(v float64, name string, first bool) string {
	switch {
	case first:
		return num(v) + name
	case v < 0:
		return " - " + num(-v) + name
	}
	return " + " + num(v) + name
}

// Cramer solves ax + by = e, cx + dy = f.
func Cramer(in *engine.Input) engine.Result {
	a, b, e := in.Float("a"), in.Float("b"), in.Float("e")
	c, d, f := in.Float("c"), in.Float("d"), in.Float("f")
	const title = "Cramer's Rule (2x2)"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	det := a*d - b*c
	dx := e*d - b*f
	dy := a*f - e*c

	n := engine.Narrate(title)
	n.Lines("System",
		term(a, "x", true)+term(b, "y", false)+" = "+num(e),
		term(c, "x", true)+term(d, "y", false)+" = "+num(f))
	n.Step("Calculate determinant D", "D = (a*d) - (b*c) = (%s*%s) - (%s*%s) = %s",
		num(a), paren(d), num(b), paren(c), num(det))
	if math.Abs(det) < eps {
		return n.Step("Conclusion", "Since D = 0, the system has no unique solution.").Result()
	}
	n.Step("Calculate Dx (replace the x-column with the constants)", "Dx = (e*d) - (b*f) = (%s*%s) - (%s*%s) = %s",
		num(e), paren(d), num(b), paren(f), num(dx))
	n.Step("Calculate Dy (replace the y-column with the constants)", "Dy = (a*f) - (e*c) = (%s*%s) - (%s*%s) = %s",
		num(a), paren(f), num(e), paren(c), num(dy))
	n.Lines("Solve for x and y",
		fmt.Sprintf("x = Dx / D = %s / %s = %s", num(dx), paren(det), fixed2(dx/det)),
		fmt.Sprintf("y = Dy / D = %s / %s = %s", num(dy), paren(det), fixed2(dy/det)))
	return n.Step("Solution", "x = %s, y = %s", fixed2(dx/det), fixed2(dy/det)).Result()
}

// square reads field name as an n x n matrix.
func square(in *engine.Input, name string, n int) matparse.Matrix {
	m := in.Matrix(name)
	if m == nil {
		return nil
	}
	if len(m) != n || len(m[0]) != n {
		in.Reject(name, fmt.Errorf("expected a %dx%d matrix, got %dx%d", n, n, len(m), len(m[0])))
		return nil
	}
	return m
}

// MatMul multiplies two conformable matrices entry by entry.
func MatMul(in *engine.Input) engine.Result {
	a, b := in.Matrix("A"), in.Matrix("B")
	const title = "Matrix Multiplication"
	if a != nil && b != nil && len(a[0]) != len(b) {
		in.Reject("B", fmt.Errorf("A has %d columns but B has %d rows", len(a[0]), len(b)))
	}
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	rows, inner, cols := len(a), len(b), len(b[0])
	n := engine.Narrate(title)
	n.Lines("Matrices",
		"A = "+matparse.FormatWith(a, num),
		"B = "+matparse.FormatWith(b, num),
		fmt.Sprintf("A is %dx%d and B is %dx%d, so AB is %dx%d", rows, inner, inner, cols, rows, cols))

	out := make(matparse.Matrix, rows)
	var lines []string
	for i := range out {
		out[i] = make([]float64, cols)
		for j := range out[i] {
			products := make([]string, inner)
			for k := 0; k < inner; k++ {
				out[i][j] += a[i][k] * b[k][j]
				products[k] = fmt.Sprintf("(%s*%s)", num(a[i][k]), paren(b[k][j]))
			}
			lines = append(lines, fmt.Sprintf("c%d%d = row %d of A . column %d of B = %s = %s",
				i+1, j+1, i+1, j+1, strings.Join(products, " + "), num(out[i][j])))
		}
	}
	n.Lines("Multiply rows by columns", lines...)
	return n.Step("Result", "AB = %s", matparse.FormatWith(out, num)).Result()
}

// Inverse2 inverts a 2x2 matrix through its adjoint.
func Inverse2(in *engine.Input) engine.Result {
	m := square(in, "A", 2)
	const title = "Inverse Matrix (2x2)"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	a, b, c, d := m[0][0], m[0][1], m[1][0], m[1][1]
	det := a*d - b*c

	n := engine.Narrate(title)
	n.Step("Matrix", "A = %s", matparse.FormatWith(m, num))
	n.Step("Calculate determinant", "det(A) = ad - bc = (%s)(%s) - (%s)(%s) = %s", num(a), num(d), num(b), num(c), num(det))
	if math.Abs(det) < eps {
		return n.Step("Conclusion", "Since det(A) = 0, the matrix is singular and has no inverse.").Result()
	}
	adj := matparse.Matrix{{d, -b}, {-c, a}}
	n.Step("Swap the main diagonal and negate the off-diagonal", "adj(A) = %s", matparse.FormatWith(adj, num))
	inv := matparse.Matrix{{d / det, -b / det}, {-c / det, a / det}}
	return n.Lines("Multiply by 1/det(A)",
		fmt.Sprintf("A^(-1) = (1/%s) * adj(A)", num(det)),
		"A^(-1) = "+matparse.FormatWith(inv, fixed2)).Result()
}

// Det2 computes ad - bc.
func Det2(in *engine.Input) engine.Result {
	m := square(in, "A", 2)
	const title = "Determinant (2x2)"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	a, b, c, d := m[0][0], m[0][1], m[1][0], m[1][1]
	det := a*d - b*c
	n := engine.Narrate(title)
	n.Step("Matrix", "A = %s", matparse.FormatWith(m, num))
	n.Step("Formula", "det(A) = ad - bc")
	n.Step("Substitute", "det(A) = (%s)(%s) - (%s)(%s) = %s - %s", num(a), num(d), num(b), num(c), paren(a*d), paren(b*c))
	return n.Step("Result", "det(A) = %s", num(det)).Result()
}

// Det3 expands a 3x3 determinant along the first row.
func Det3(in *engine.Input) engine.Result {
	m := square(in, "A", 3)
	const title = "Determinant (3x3)"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Matrix", "A = %s", matparse.FormatWith(m, num))
	n.Step("Cofactor expansion along row 1", "det(A) = a11*M11 - a12*M12 + a13*M13")

	var det float64
	var lines []string
	sign := 1.0
	for j := 0; j < 3; j++ {
		minor := minor3(m, j)
		md := minorDet(m, j)
		lines = append(lines, fmt.Sprintf("M1%d = det(%s) = (%s*%s) - (%s*%s) = %s",
			j+1, matparse.FormatWith(minor, num),
			num(minor[0][0]), paren(minor[1][1]), num(minor[0][1]), paren(minor[1][0]), num(md)))
		det += sign * m[0][j] * md
		sign = -sign
	}
	n.Lines("Minors", lines...)
	n.Step("Combine", "det(A) = %s*%s - %s*%s + %s*%s",
		paren(m[0][0]), paren(minorDet(m, 0)), paren(m[0][1]), paren(minorDet(m, 1)), paren(m[0][2]), paren(minorDet(m, 2)))
	return n.Step("Result", "det(A) = %s", num(det)).Result()
}

// minor3 removes row 0 and column j.
func minor3(m matparse.Matrix, j int) matparse.Matrix {
	out := make(matparse.Matrix, 0, 2)
	for _, row := range m[1:] {
		r := make([]float64, 0, 2)
		for k, v := range row {
			if k != j {
				r = append(r, v)
			}
		}
		out = append(out, r)
	}
	return out
}

func minorDet(m matparse.Matrix, j int) float64 {
	minor := minor3(m, j)
	return minor[0][0]*minor[1][1] - minor[0][1]*minor[1][0]
}
