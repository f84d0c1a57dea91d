package problems

import (
	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/numeric"
	"github.com/Shy5ta/studentSuite/internal/symbolic"
)

const (
	SeparabilityCheck engine.ProblemID = "separability-check"
	MalthusPopulation engine.ProblemID = "malthus-population"
	MalthusTime       engine.ProblemID = "malthus-time"
	Logistic          engine.ProblemID = "logistic"
	Harvesting        engine.ProblemID = "harvesting"
	NewtonTemperature engine.ProblemID = "newton-temperature"
	NewtonTime        engine.ProblemID = "newton-time"
	LinearDifference  engine.ProblemID = "linear-difference"
	Savings           engine.ProblemID = "savings"
	Loan              engine.ProblemID = "loan"
	PredatorPrey      engine.ProblemID = "predator-prey"
	Mixture           engine.ProblemID = "mixture"
)

// withChecker puts the separability checker first in every topic.
func withChecker(ids ...engine.ProblemID) []engine.ProblemID {
	return append([]engine.ProblemID{SeparabilityCheck}, ids...)
}

func apm1514() course {
	const c = "APM1514"
	population := withChecker(MalthusPopulation, MalthusTime, Logistic, Harvesting)
	return course{
		problems: []engine.ProblemType{
			steps(SeparabilityCheck, "Check Separability", symbolic.SeparabilityCheck,
				expr("equation", "dy/dx = y * (1 - y)", "first-order equation such as dy/dx = x*y or y' = x + y")),
			steps(MalthusPopulation, "Malthusian Growth (Find P)", numeric.MalthusPopulation,
				scalar("P0", "100", "initial population"),
				scalar("k", "0.02", "growth rate"),
				scalar("t", "10", "time")),
			steps(MalthusTime, "Malthusian Growth (Find time t)", numeric.MalthusTime,
				scalar("P0", "100", "initial population"),
				scalar("P", "200", "target population"),
				scalar("k", "0.02", "growth rate")),
			steps(Logistic, "Logistic Growth", numeric.Logistic,
				scalar("P0", "100", "initial population"),
				scalar("a", "0.2", "growth rate"),
				scalar("b", "0.0001", "interaction coefficient"),
				scalar("t", "5", "time")),
			steps(Harvesting, "Harvesting Model", numeric.Harvesting,
				scalar("P0", "100", "initial population"),
				scalar("k", "0.1", "growth rate"),
				scalar("h", "5", "harvest rate"),
				scalar("t", "10", "time")),
			steps(NewtonTemperature, "Newton's Law (Find Temp)", numeric.NewtonTemperature,
				scalar("T0", "100", "initial temperature"),
				scalar("Tm", "20", "ambient temperature"),
				scalar("k", "0.1", "cooling constant"),
				scalar("t", "10", "time")),
			steps(NewtonTime, "Newton's Law (Find time t)", numeric.NewtonTime,
				scalar("T0", "100", "initial temperature"),
				scalar("Tm", "20", "ambient temperature"),
				scalar("k", "0.1", "cooling constant"),
				scalar("T", "50", "target temperature")),
			steps(LinearDifference, "Linear Difference Eq", numeric.LinearDifference,
				scalar("y0", "5", "initial value"),
				scalar("a", "2", "multiplier"),
				scalar("b", "0", "constant added each step"),
				scalar("n", "4", "steps")),
			steps(Savings, "Savings Account", numeric.Savings,
				scalar("A0", "1000", "initial deposit"),
				scalar("q", "5", "annual interest rate in percent"),
				scalar("D", "100", "monthly deposit"),
				scalar("n", "12", "months")),
			steps(Loan, "Loan Repayment", numeric.Loan,
				scalar("L", "10000", "loan amount"),
				scalar("q", "1.5", "annual interest rate in percent"),
				scalar("P", "200", "monthly payment"),
				scalar("n", "12", "months")),
			steps(PredatorPrey, "Predator-Prey", numeric.PredatorPrey,
				scalar("x", "40", "prey"),
				scalar("y", "9", "predators"),
				scalar("alpha", "0.1", "prey growth rate"),
				scalar("beta", "0.02", "predation rate"),
				scalar("gamma", "0.1", "predator death rate"),
				scalar("delta", "0.01", "predator growth per prey eaten")),
			steps(Mixture, "Mixture Tank", numeric.Mixture,
				scalar("A0", "0", "initial amount of solute"),
				scalar("c", "0.5", "inflow concentration"),
				scalar("V", "100", "tank volume"),
				scalar("r", "5", "flow rate in and out"),
				scalar("t", "10", "time")),
		},
		topics: []engine.Topic{
			{ID: "apm1514-malthusian", Course: c, Title: "Population Models (Malthusian)", Problems: population},
			{ID: "apm1514-logistic", Course: c, Title: "Population Models (Logistic)", Problems: population},
			{ID: "apm1514-predator-prey", Course: c, Title: "Predator-Prey Models", Problems: withChecker(PredatorPrey)},
			{ID: "apm1514-cooling", Course: c, Title: "Newton's Law of Cooling",
				Problems: withChecker(NewtonTemperature, NewtonTime)},
			{ID: "apm1514-discrete", Course: c, Title: "Discrete Models (Difference Equations)",
				Problems: withChecker(LinearDifference, Savings, Loan)},
			{ID: "apm1514-harvesting", Course: c, Title: "Harvesting Models", Problems: withChecker(Harvesting)},
			{ID: "apm1514-mixture", Course: c, Title: "Mixture Models", Problems: withChecker(Mixture)},
		},
	}
}
