package problems

import (
	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/numeric"
	"github.com/Shy5ta/studentSuite/internal/symbolic"
)

const (
	LimitPoint       engine.ProblemID = "limit-point"
	LimitInfinity    engine.ProblemID = "limit-infinity"
	OneSidedLimit    engine.ProblemID = "one-sided-limit"
	Derivative       engine.ProblemID = "derivative"
	Implicit         engine.ProblemID = "implicit"
	TangentLine      engine.ProblemID = "tangent-line"
	HigherDerivative engine.ProblemID = "higher-derivative"
	Indefinite       engine.ProblemID = "indefinite-integral"
	Definite         engine.ProblemID = "definite-integral"
	AreaUnder        engine.ProblemID = "area-under-curve"
	SeparableDE      engine.ProblemID = "separable-de"
	GrowthDecay      engine.ProblemID = "growth-decay"
	PartialX         engine.ProblemID = "partial-x"
	PartialY         engine.ProblemID = "partial-y"
	SecondPartials   engine.ProblemID = "second-partials"
)

const (
	fHelp  = "function of x, e.g. x^2 + sin(x)"
	fxy    = "x^2*y + sin(y)"
	fxyDoc = "function of x and y"
)

func mat1512() course {
	const c = "MAT1512"
	f := func(def string) engine.InputField { return expr("f", def, fHelp) }
	at := func(name, def string) engine.InputField { return expr(name, def, "point; oo and -oo allowed") }
	return course{
		problems: []engine.ProblemType{
			steps(LimitPoint, "Limit at a Point", symbolic.LimitPoint,
				f("(x^2 - 4)/(x - 2)"), at("a", "2")),
			steps(LimitInfinity, "Limit at Infinity", symbolic.LimitInfinity,
				f("(2*x^2 + 1)/(x^2 - 3)")),
			steps(OneSidedLimit, "One-Sided Limit", symbolic.OneSidedLimit,
				f("1/x"), expr("a", "0", "finite point"),
				text("direction", "+", "+ (from the right) or - (from the left)")),
			steps(Derivative, "Basic Derivative", symbolic.Derivative, f("x^3 + 2*x^2 - 5")),
			steps(Implicit, "Implicit Differentiation", symbolic.Implicit,
				expr("F", "x^2 + y^2 - 25", "left side of F(x, y) = 0")),
			steps(TangentLine, "Equation of Tangent Line", symbolic.TangentLine,
				f("x^2"), expr("a", "1", "x coordinate of the point of tangency")),
			steps(HigherDerivative, "Higher-Order Derivative", symbolic.HigherDerivative,
				f("sin(x)"), scalar("order", "2", "order of the derivative")),
			steps(Indefinite, "Indefinite Integral", symbolic.Indefinite, f("x^2 + 1/x")),
			steps(Definite, "Definite Integral", symbolic.Definite,
				f("x^2"), expr("a", "0", "lower bound"), expr("b", "3", "upper bound")),
			steps(AreaUnder, "Area Under a Curve", symbolic.AreaUnder,
				f("x^2"), expr("a", "0", "left end"), expr("b", "3", "right end")),
			steps(SeparableDE, "Separable Differential Equation", symbolic.SeparableDE,
				expr("equation", "y' = x*y", "first-order equation such as dy/dx = x*y")),
			steps(GrowthDecay, "Exponential Growth & Decay", numeric.GrowthDecay,
				scalar("y0", "100", "initial amount"),
				scalar("k", "0.05", "rate; negative for decay"),
				scalar("t", "10", "time")),
			steps(PartialX, "Partial Derivative df/dx", symbolic.PartialX, expr("f", fxy, fxyDoc)),
			steps(PartialY, "Partial Derivative df/dy", symbolic.PartialY, expr("f", fxy, fxyDoc)),
			steps(SecondPartials, "Second-Order Partials", symbolic.SecondPartials, expr("f", fxy, fxyDoc)),
		},
		topics: []engine.Topic{
			{ID: "mat1512-limits", Course: c, Title: "Limits",
				Problems: []engine.ProblemID{LimitPoint, LimitInfinity, OneSidedLimit}},
			{ID: "mat1512-differentiation", Course: c, Title: "Differentiation",
				Problems: []engine.ProblemID{Derivative, Implicit, TangentLine, HigherDerivative}},
			{ID: "mat1512-integrals", Course: c, Title: "Integrals",
				Problems: []engine.ProblemID{Indefinite, Definite, AreaUnder}},
			{ID: "mat1512-differential-equations", Course: c, Title: "Differential Equations",
				Problems: []engine.ProblemID{SeparableDE, GrowthDecay}},
			{ID: "mat1512-partial-derivatives", Course: c, Title: "Partial Derivatives",
				Problems: []engine.ProblemID{PartialX, PartialY, SecondPartials}},
		},
	}
}
