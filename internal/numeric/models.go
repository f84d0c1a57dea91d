package numeric

import (
	"fmt"
	"math"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

// MalthusPopulation evaluates P(t) = P0 e^(kt).
func MalthusPopulation(in *engine.Input) engine.Result {
	p0, k, t := in.Float("P0"), in.Float("k"), in.Float("t")
	const title = "Malthusian Population Model"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	p := p0 * math.Exp(k*t)
	n := engine.Narrate(title)
	n.Step("Differential equation", "dP/dt = kP")
	n.Step("General solution", "P(t) = P0 * e^(kt)")
	n.Step("Substitute", "P(%s) = %s * e^(%s*%s)", num(t), num(p0), num(k), paren(t))
	return n.Step("Result", "P(%s) = %s", num(t), fixed2(p)).Result()
}

// MalthusTime solves P0 e^(kt) = P for t.
func MalthusTime(in *engine.Input) engine.Result {
	p0, pt, k := in.Float("P0"), in.Float("P"), in.Float("k")
	const title = "Malthusian Population Model"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Differential equation", "dP/dt = kP")
	n.Step("General solution", "P(t) = P0 * e^(kt)")
	n.Step("Set up", "%s = %s * e^(%st)", num(pt), num(p0), num(k))
	if p0 == 0 || pt/p0 <= 0 {
		return n.Step("Conclusion", "P/P0 must be positive; the population never reaches %s.", num(pt)).Result()
	}
	if k == 0 {
		return n.Step("Conclusion", "With k = 0 the population stays at %s and never reaches %s.", num(p0), num(pt)).Result()
	}
	ratio := pt / p0
	t := math.Log(ratio) / k
	n.Lines("Take logarithms",
		fmt.Sprintf("ln(%s) = %st", fixed2(ratio), num(k)),
		fmt.Sprintf("t = ln(%s) / %s", fixed2(ratio), num(k)))
	if t < 0 {
		n.Step("Note", "t is negative: the population was %s before t = 0.", num(pt))
	}
	return n.Step("Result", "t = %s", fixed2(t)).Result()
}

// Logistic evaluates P(t) = K / (1 + A e^(-at)) with K = a/b.
func Logistic(in *engine.Input) engine.Result {
	p0, a, b, t := in.Float("P0"), in.Float("a"), in.Float("b"), in.Float("t")
	const title = "Logistic Population Model"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Differential equation", "dP/dt = aP - bP^2")
	if b == 0 || p0 == 0 {
		return n.Step("Conclusion", "The logistic model needs b != 0 and P0 != 0.").Result()
	}
	K := a / b
	A := (K - p0) / p0
	p := K / (1 + A*math.Exp(-a*t))
	n.Step("Carrying capacity", "K = a/b = %s/%s = %s", num(a), num(b), fixed2(K))
	n.Step("Constant A", "A = (K - P0)/P0 = (%s - %s)/%s = %s", fixed2(K), num(p0), num(p0), engine.Fixed(A, 4))
	n.Lines("Solution",
		"P(t) = K / (1 + A*e^(-at))",
		fmt.Sprintf("P(%s) = %s / (1 + %s*e^(-%s*%s))", num(t), fixed2(K), engine.Fixed(A, 4), num(a), paren(t)))
	return n.Step("Result", "P(%s) = %s", num(t), fixed2(p)).Result()
}

// Harvesting solves dP/dt = kP - h.
func Harvesting(in *engine.Input) engine.Result {
	p0, k, h, t := in.Float("P0"), in.Float("k"), in.Float("h"), in.Float("t")
	const title = "Harvesting Model"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Differential equation", "dP/dt = kP - h = %sP - %s", num(k), num(h))
	if k == 0 {
		p := p0 - h*t
		n.Step("Solution", "With k = 0: P(t) = P0 - ht")
		return n.Step("Result", "P(%s) = %s - %s*%s = %s", num(t), num(p0), num(h), paren(t), fixed2(p)).Result()
	}

	eq := h / k
	p := eq + (p0-eq)*math.Exp(k*t)
	n.Step("Equilibrium", "dP/dt = 0 when P* = h/k = %s/%s = %s", num(h), num(k), fixed2(eq))
	n.Step("General solution", "P(t) = h/k + (P0 - h/k)e^(kt)")
	n.Step("Substitute", "P(%s) = %s + (%s - %s)e^(%s*%s)", num(t), fixed2(eq), num(p0), fixed2(eq), num(k), paren(t))

	var trend string
	switch {
	case math.Abs(p0-eq) < eps:
		trend = "P0 equals the equilibrium, so the population stays constant."
	case k < 0:
		trend = "The population approaches the equilibrium."
	case p0 > eq:
		trend = "P0 is above the equilibrium, so the population grows."
	default:
		trend = "P0 is below the equilibrium, so the population declines toward extinction."
	}
	n.Step("Long-term behaviour", "%s", trend)
	return n.Step("Result", "P(%s) = %s", num(t), fixed2(p)).Result()
}

// NewtonTemperature evaluates T(t) = Tm + (T0 - Tm)e^(-kt).
func NewtonTemperature(in *engine.Input) engine.Result {
	t0, tm, k, t := in.Float("T0"), in.Float("Tm"), in.Float("k"), in.Float("t")
	const title = "Newton's Law of Cooling"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	temp := tm + (t0-tm)*math.Exp(-k*t)
	n := engine.Narrate(title)
	n.Step("Differential equation", "dT/dt = -k(T - Tm)")
	n.Step("Solution", "T(t) = Tm + (T0 - Tm)e^(-kt)")
	n.Step("Substitute", "T(%s) = %s + (%s - %s)e^(-%s*%s)", num(t), num(tm), num(t0), paren(tm), num(k), paren(t))
	return n.Step("Result", "T(%s) = %s", num(t), fixed2(temp)).Result()
}

// NewtonTime solves Tm + (T0 - Tm)e^(-kt) = T for t.
func NewtonTime(in *engine.Input) engine.Result {
	t0, tm, k, target := in.Float("T0"), in.Float("Tm"), in.Float("k"), in.Float("T")
	const title = "Newton's Law of Cooling"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Differential equation", "dT/dt = -k(T - Tm)")
	n.Step("Solution", "T(t) = Tm + (T0 - Tm)e^(-kt)")
	n.Step("Set up", "%s = %s + %se^(-%st)", num(target), num(tm), paren(t0-tm), num(k))
	if t0 == tm || k == 0 {
		return n.Step("Conclusion", "The temperature never changes, so it cannot reach %s.", num(target)).Result()
	}
	ratio := (target - tm) / (t0 - tm)
	if ratio <= 0 {
		return n.Step("Conclusion", "%s is not between T0 and the ambient temperature, so it is never reached.", num(target)).Result()
	}
	t := math.Log(ratio) / -k
	n.Lines("Isolate the exponential",
		fmt.Sprintf("e^(-%st) = (%s - %s)/(%s - %s) = %s", num(k), num(target), paren(tm), num(t0), paren(tm), engine.Fixed(ratio, 4)),
		fmt.Sprintf("t = ln(%s) / -%s", engine.Fixed(ratio, 4), num(k)))
	return n.Step("Result", "t = %s", fixed2(t)).Result()
}

// LinearDifference solves y(n+1) = a*y(n) + b in closed form.
func LinearDifference(in *engine.Input) engine.Result {
	y0, a, b, steps := in.Float("y0"), in.Float("a"), in.Float("b"), in.Int("n")
	const title = "Linear Difference Equation"
	if steps < 0 {
		in.Reject("n", fmt.Errorf("n must not be negative, got %d", steps))
	}
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Recurrence", "y(n+1) = %s*y(n)%s, y(0) = %s", num(a), signed(b), num(y0))

	var yn float64
	if a == 1 {
		yn = y0 + float64(steps)*b
		n.Step("Closed form", "With a = 1: y(n) = y(0) + n*b = %s + %s*n", num(y0), paren(b))
		if b == 0 {
			n.Step("Equilibrium", "Every value is an equilibrium since y(n+1) = y(n).")
		} else {
			n.Step("Equilibrium", "None: the sequence changes by %s each step.", num(b))
		}
	} else {
		eq := b / (1 - a)
		yn = math.Pow(a, float64(steps))*(y0-eq) + eq
		n.Step("Equilibrium", "y* = b/(1 - a) = %s/(1 - %s) = %s", num(b), paren(a), fixed2(eq))
		n.Step("Closed form", "y(n) = a^n (y(0) - y*) + y* = %s^n (%s - %s) + %s", paren(a), num(y0), paren(eq), fixed2(eq))
		n.Step("Stability", "%s", stability(a))
	}

	shown := min(steps, 5)
	lines := make([]string, 0, shown+1)
	y := y0
	for i := 0; i <= shown; i++ {
		lines = append(lines, fmt.Sprintf("y(%d) = %s", i, engine.Fixed(y, 2)))
		y = a*y + b
	}
	n.Lines("First iterates", lines...)
	return n.Step("Result", "y(%d) = %s", steps, num(round(yn, 10))).Result()
}

func stability(a float64) string {
	switch {
	case math.Abs(a) < 1:
		return "|a| < 1, so y(n) approaches the equilibrium."
	case a == -1:
		return "a = -1, so y(n) oscillates about the equilibrium with constant amplitude."
	}
	return "|a| > 1, so y(n) moves away from the equilibrium unless it starts there."
}

func signed(v float64) string {
	switch {
	case v < 0:
		return " - " + num(-v)
	case v > 0:
		return " + " + num(v)
	}
	return ""
}

func round(v float64, dp int) float64 {
	p := math.Pow(10, float64(dp))
	return math.Round(v*p) / p
}

// Savings compounds monthly and adds a fixed deposit: A(n+1) = r*A(n) + D.
func Savings(in *engine.Input) engine.Result {
	a0, q, d, months := in.Float("A0"), in.Float("q"), in.Float("D"), in.Int("n")
	const title = "Savings Account"
	if months < 1 {
		in.Reject("n", fmt.Errorf("need at least one month, got %d", months))
	}
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	r := 1 + q/100
	n := engine.Narrate(title)
	n.Step("Growth factor", "r = 1 + q/100 = 1 + %s/100 = %s", num(q), num(r))
	n.Step("Recurrence", "A(n+1) = %s*A(n) + %s, A(0) = %s", num(r), num(d), num(a0))

	var lines []string
	balance := a0
	for i := 1; i <= months; i++ {
		balance = balance*r + d
		if i <= 3 || i == months {
			if i == months && months > 4 {
				lines = append(lines, "...")
			}
			lines = append(lines, fmt.Sprintf("Month %d: %s", i, fixed2(balance)))
		}
	}
	n.Lines("Balances", lines...)
	return n.Step("Result", "Balance after %d months: %s", months, fixed2(balance)).Result()
}

// Loan tracks A(n+1) = r*A(n) - P until the loan is paid off or n months pass.
func Loan(in *engine.Input) engine.Result {
	l, q, p, months := in.Float("L"), in.Float("q"), in.Float("P"), in.Int("n")
	const title = "Loan Repayment"
	if months < 1 {
		in.Reject("n", fmt.Errorf("need at least one month, got %d", months))
	}
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	r := 1 + q/100
	n := engine.Narrate(title)
	n.Step("Growth factor", "r = 1 + q/100 = 1 + %s/100 = %s", num(q), num(r))
	n.Step("Recurrence", "A(n+1) = %s*A(n) - %s, A(0) = %s", num(r), num(p), num(l))
	interest := (r - 1) * l
	if p <= interest {
		n.Step("Warning", "The payment %s does not exceed the first month's interest %s, so the balance never falls.", num(p), fixed2(interest))
	}

	var lines []string
	balance := l
	paidOff := 0
	for i := 1; i <= months; i++ {
		balance = balance*r - p
		if balance <= 0 {
			lines = append(lines, fmt.Sprintf("Month %d: %s (final payment is %s)", i, fixed2(0), fixed2(p+balance)))
			paidOff = i
			break
		}
		if i <= 3 || i == months {
			if i == months && months > 4 {
				lines = append(lines, "...")
			}
			lines = append(lines, fmt.Sprintf("Month %d: %s", i, fixed2(balance)))
		}
	}
	n.Lines("Balances", lines...)
	if paidOff > 0 {
		return n.Step("Result", "The loan is paid off in month %d.", paidOff).Result()
	}
	return n.Step("Result", "Balance after %d months: %s", months, fixed2(balance)).Result()
}

// PredatorPrey evaluates the Lotka-Volterra rates and the coexistence
// equilibrium: dx/dt = alpha*x - beta*x*y, dy/dt = delta*x*y - gamma*y.
func PredatorPrey(in *engine.Input) engine.Result {
	x, y := in.Float("x"), in.Float("y")
	alpha, beta := in.Float("alpha"), in.Float("beta")
	gamma, delta := in.Float("gamma"), in.Float("delta")
	const title = "Predator-Prey Model"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	dx := alpha*x - beta*x*y
	dy := delta*x*y - gamma*y
	n := engine.Narrate(title)
	n.Lines("System",
		"dx/dt = alpha*x - beta*x*y   (prey)",
		"dy/dt = delta*x*y - gamma*y  (predator)")
	n.Lines("Rates at the current state",
		fmt.Sprintf("dx/dt = %s*%s - %s*%s*%s = %s", num(alpha), num(x), num(beta), num(x), num(y), fixed2(dx)),
		fmt.Sprintf("dy/dt = %s*%s*%s - %s*%s = %s", num(delta), num(x), num(y), num(gamma), num(y), fixed2(dy)))
	n.Lines("Trend",
		"Prey population is "+direction(dx)+".",
		"Predator population is "+direction(dy)+".")
	if beta == 0 || delta == 0 {
		return n.Step("Equilibrium", "No coexistence equilibrium: beta and delta must be nonzero.").Result()
	}
	return n.Step("Equilibrium", "Coexistence at (x, y) = (gamma/delta, alpha/beta) = (%s, %s)",
		fixed2(gamma/delta), fixed2(alpha/beta)).Result()
}

func direction(rate float64) string {
	switch {
	case rate > eps:
		return "increasing"
	case rate < -eps:
		return "decreasing"
	}
	return "momentarily constant"
}

// Mixture tracks the amount of solute in a well-stirred tank with equal
// inflow and outflow: A(t) = c*V + (A0 - c*V)e^(-rt/V).
func Mixture(in *engine.Input) engine.Result {
	a0, c, v, r, t := in.Float("A0"), in.Float("c"), in.Float("V"), in.Float("r"), in.Float("t")
	const title = "Mixture Model"
	if v <= 0 {
		in.Reject("V", fmt.Errorf("tank volume must be positive, got %s", num(v)))
	}
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	limit := c * v
	amount := limit + (a0-limit)*math.Exp(-r*t/v)
	n := engine.Narrate(title)
	n.Step("Differential equation", "dA/dt = (rate in) - (rate out) = %s*%s - %s*A/%s", num(r), num(c), num(r), num(v))
	n.Step("Long-run amount", "A(oo) = c*V = %s*%s = %s", num(c), num(v), fixed2(limit))
	n.Step("Solution", "A(t) = c*V + (A0 - c*V)e^(-rt/V)")
	n.Step("Substitute", "A(%s) = %s + (%s - %s)e^(-%s*%s/%s)", num(t), fixed2(limit), num(a0), fixed2(limit), num(r), paren(t), num(v))
	n.Step("Concentration", "A(%s)/V = %s", num(t), engine.Fixed(amount/v, 4))
	return n.Step("Result", "A(%s) = %s", num(t), fixed2(amount)).Result()
}

// GrowthDecay evaluates y(t) = y0 e^(kt) and the doubling time or half-life.
func GrowthDecay(in *engine.Input) engine.Result {
	y0, k, t := in.Float("y0"), in.Float("k"), in.Float("t")
	const title = "Exponential Growth/Decay"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	y := y0 * math.Exp(k*t)
	n := engine.Narrate(title)
	n.Step("Differential equation", "dy/dt = ky, so y(t) = y0 * e^(kt)")
	n.Step("Substitute", "y(%s) = %s * e^(%s*%s)", num(t), num(y0), num(k), paren(t))
	switch {
	case k > 0:
		n.Step("Doubling time", "ln(2)/k = %s", fixed2(math.Ln2/k))
	case k < 0:
		n.Step("Half-life", "ln(2)/|k| = %s", fixed2(math.Ln2/-k))
	default:
		n.Step("Note", "k = 0, so y stays constant.")
	}
	return n.Step("Result", "y(%s) = %s", num(t), fixed2(y)).Result()
}
