package problems

import (
	"github.com/Shy5ta/studentSuite/internal/discrete"
	"github.com/Shy5ta/studentSuite/internal/engine"
)

const (
	SetOperations      engine.ProblemID = "set-operations"
	PowerSet           engine.ProblemID = "power-set"
	Subset             engine.ProblemID = "subset"
	TruthTable         engine.ProblemID = "truth-table"
	Tautology          engine.ProblemID = "tautology"
	RelationProperties engine.ProblemID = "relation-properties"
	InverseRelation    engine.ProblemID = "inverse-relation"
	Composition        engine.ProblemID = "composition"
	ClassifyFunction   engine.ProblemID = "classify-function"
	GCDLCM             engine.ProblemID = "gcd-lcm"
	PrimeFactors       engine.ProblemID = "prime-factors"
)

const (
	setHelp      = "elements separated by commas, e.g. 1, 2, 3"
	relationHelp = "ordered pairs, e.g. (1,a), (2,b)"
	formulaHelp  = "variables p..z with ~ & | -> <->"
)

func cos1501() course {
	const c = "COS1501"
	formula := text("formula", "(p -> q) & (q -> r)", formulaHelp)
	return course{
		problems: []engine.ProblemType{
			steps(SetOperations, "Set Operations (Union, Intersection, Difference)", discrete.SetOperations,
				set("A", "1, 2, 3", setHelp), set("B", "3, 4, 5", setHelp)),
			steps(PowerSet, "Power Set", discrete.PowerSet, set("A", "a, b, c", setHelp)),
			steps(Subset, "Check Subset", discrete.Subset,
				set("A", "1, 2", setHelp), set("B", "1, 2, 3, 4", setHelp)),
			steps(TruthTable, "Generate Truth Table", discrete.TruthTable, formula),
			steps(Tautology, "Check Tautology / Contradiction", discrete.Tautology, formula),
			steps(RelationProperties, "Check Relation Properties", discrete.RelationProperties,
				set("A", "1, 2, 3", setHelp),
				relation("R", "(1,1), (2,2), (3,3), (1,2)", relationHelp)),
			steps(InverseRelation, "Inverse Relation", discrete.InverseRelation,
				relation("R", "(1,a), (2,b), (3,c)", relationHelp)),
			steps(Composition, "Composition of Relations", discrete.Composition,
				relation("R", "(1,a), (2,b)", relationHelp),
				relation("S", "(a,x), (b,y)", relationHelp)),
			steps(ClassifyFunction, "Check Function Type (Injective/Surjective)", discrete.ClassifyFunction,
				set("A", "1, 2, 3", "domain"),
				set("B", "a, b, c, d", "codomain"),
				relation("f", "(1,a), (2,b), (3,c)", relationHelp)),
			steps(GCDLCM, "GCD and LCM", discrete.GCDLCM,
				scalar("a", "252", "integer"), scalar("b", "105", "integer")),
			steps(PrimeFactors, "Prime Factorisation", discrete.PrimeFactors, scalar("n", "360", "integer greater than 1")),
		},
		topics: []engine.Topic{
			{ID: "cos1501-sets", Course: c, Title: "Sets & Subsets",
				Problems: []engine.ProblemID{SetOperations, PowerSet, Subset}},
			{ID: "cos1501-logic", Course: c, Title: "Logic & Truth Tables",
				Problems: []engine.ProblemID{TruthTable, Tautology}},
			{ID: "cos1501-relations", Course: c, Title: "Relations & Properties",
				Problems: []engine.ProblemID{RelationProperties, InverseRelation, Composition}},
			{ID: "cos1501-functions", Course: c, Title: "Functions",
				Problems: []engine.ProblemID{ClassifyFunction}},
			{ID: "cos1501-integers", Course: c, Title: "Integers & Quantifiers",
				Problems: []engine.ProblemID{GCDLCM, PrimeFactors}},
		},
	}
}
