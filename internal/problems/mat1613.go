package problems

import (
	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/symbolic"
)

const (
	LHopital           engine.ProblemID = "lhopital"
	MeanValue          engine.ProblemID = "mean-value"
	CriticalPoints     engine.ProblemID = "critical-points"
	InverseTrig        engine.ProblemID = "inverse-trig-derivative"
	HyperbolicDeriv    engine.ProblemID = "hyperbolic-derivative"
	HyperbolicIntegral engine.ProblemID = "hyperbolic-integral"
	AreaBetween        engine.ProblemID = "area-between"
	VolumeDisk         engine.ProblemID = "volume-disk"
	ByParts            engine.ProblemID = "by-parts"
	PartialFractions   engine.ProblemID = "partial-fractions"
	Improper           engine.ProblemID = "improper-integral"
	Taylor             engine.ProblemID = "taylor"
	SequenceLimit      engine.ProblemID = "sequence-limit"
)

const intervalHelp = "interval as a, b"

func mat1613() course {
	const c = "MAT1613"
	f := func(def string) engine.InputField { return expr("f", def, fHelp) }
	return course{
		problems: []engine.ProblemType{
			steps(LHopital, "L'Hopital's Rule", symbolic.LHopital,
				f("(sin(x) - x)/x^3"), expr("a", "0", "point; oo and -oo allowed")),
			steps(MeanValue, "Mean Value Theorem", symbolic.MeanValue,
				f("x^3 - x"), expr("interval", "-1, 2", intervalHelp)),
			steps(CriticalPoints, "Critical Points & Extrema", symbolic.CriticalPoints, f("x^3 - 3*x^2 + 1")),
			steps(InverseTrig, "Derivative of Inverse Trig Functions", symbolic.InverseTrigDerivative, f("asin(x^2)")),
			steps(HyperbolicDeriv, "Derivative of Hyperbolic Functions", symbolic.HyperbolicDerivative, f("sinh(3*x)")),
			steps(HyperbolicIntegral, "Integral of Hyperbolic Functions", symbolic.HyperbolicIntegral, f("cosh(2*x)")),
			steps(AreaBetween, "Area Between Curves", symbolic.AreaBetween,
				f("x"), expr("g", "x^2", "second function of x"),
				expr("interval", "0, 1", intervalHelp)),
			steps(VolumeDisk, "Volume of Revolution (Disk)", symbolic.VolumeDisk,
				expr("R", "sqrt(x)", "radius R(x)"), expr("interval", "0, 1", intervalHelp)),
			steps(ByParts, "Integration by Parts", symbolic.ByParts,
				f("x * exp(x)"),
				expr("u", "x", "the part to differentiate"),
				expr("dv", "exp(x)", "the part to integrate")),
			steps(PartialFractions, "Partial Fractions", symbolic.PartialFractions, f("1 / (x^2 - 1)")),
			steps(Improper, "Evaluate Improper Integral", symbolic.Improper,
				f("1/x^2"),
				expr("a", "1", "lower bound; -oo allowed"),
				expr("b", "oo", "upper bound; oo allowed")),
			steps(Taylor, "Taylor Polynomial", symbolic.Taylor,
				f("sin(x)"), expr("a", "0", "centre"), scalar("order", "5", "highest power")),
			steps(SequenceLimit, "Limit of a Sequence", symbolic.SequenceLimit,
				expr("term", "(n + 1)/n", "general term a(n)")),
		},
		topics: []engine.Topic{
			{ID: "mat1613-derivative-applications", Course: c, Title: "Applications of Derivatives",
				Problems: []engine.ProblemID{LHopital, MeanValue, CriticalPoints}},
			{ID: "mat1613-transcendental", Course: c, Title: "Transcendental Functions",
				Problems: []engine.ProblemID{InverseTrig, HyperbolicDeriv, HyperbolicIntegral}},
			{ID: "mat1613-integration-applications", Course: c, Title: "Applications of Integration",
				Problems: []engine.ProblemID{AreaBetween, VolumeDisk}},
			{ID: "mat1613-techniques", Course: c, Title: "Advanced Techniques of Integration",
				Problems: []engine.ProblemID{ByParts, PartialFractions, Improper}},
			{ID: "mat1613-improper", Course: c, Title: "The Improper Integral",
				Problems: []engine.ProblemID{Improper}},
			{ID: "mat1613-series", Course: c, Title: "Infinite Sequences & Taylor Series",
				Problems: []engine.ProblemID{Taylor, SequenceLimit}},
		},
	}
}
