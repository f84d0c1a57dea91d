package discrete

import (
	"fmt"
	"strings"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

// maxFactor keeps trial division under a million steps.
const maxFactor = 1_000_000_000_000

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// GCDLCM runs the Euclidean algorithm on a and b, back-substitutes for the
// Bezout coefficients and derives lcm(a, b) = |a*b| / gcd(a, b).
func GCDLCM(in *engine.Input) engine.Result {
	a, b := in.Int("a"), in.Int("b")
	const title = "GCD and LCM"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Numbers", "a = %d, b = %d", a, b)
	if a == 0 && b == 0 {
		return n.Step("Conclusion", "gcd(0, 0) is undefined because every integer divides 0").Result()
	}

	x, y := abs(a), abs(b)
	if x < y {
		x, y = y, x
	}
	// Track x = s*|a| + t*|b| style coefficients for each remainder.
	type row struct{ r, s, t int }
	prev, cur := row{x, 1, 0}, row{y, 0, 1}
	var lines []string
	for cur.r != 0 {
		q := prev.r / cur.r
		lines = append(lines, fmt.Sprintf("%d = %d*%d + %d", prev.r, q, cur.r, prev.r-q*cur.r))
		prev, cur = cur, row{prev.r - q*cur.r, prev.s - q*cur.s, prev.t - q*cur.t}
	}
	g := prev.r
	if len(lines) == 0 {
		lines = append(lines, fmt.Sprintf("one number is 0, so the gcd is %d", g))
	}
	n.Lines("Euclidean algorithm (divide, keep the remainder)", lines...)
	n.Step("GCD", "gcd(%d, %d) = %d (the last non-zero remainder)", a, b, g)

	// prev.s and prev.t multiply x and y; map them back to a and b.
	s, t := prev.s, prev.t
	if abs(a) < abs(b) {
		s, t = t, s
	}
	if a < 0 {
		s = -s
	}
	if b < 0 {
		t = -t
	}
	n.Step("Bezout identity", "%d = (%d)*(%d) + (%d)*(%d)", g, s, a, t, b)

	if a == 0 || b == 0 {
		return n.Step("LCM", "lcm(%d, %d) = 0", a, b).Result()
	}
	l := abs(a) / g * abs(b)
	return n.Step("LCM", "lcm(%d, %d) = |a*b| / gcd = %d / %d = %d", a, b, abs(a)*abs(b), g, l).Result()
}

// PrimeFactors factorises n by trial division.
func PrimeFactors(in *engine.Input) engine.Result {
	v := in.Int("n")
	if in.Err() == nil && (v < 2 || v > maxFactor) {
		in.Reject("n", fmt.Errorf("n must be between 2 and %d, got %d", maxFactor, v))
	}
	const title = "Prime Factorisation"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Number", "n = %d", v)
	var lines []string
	var primes []int
	counts := map[int]int{}
	rest := v
	for p := 2; p*p <= rest; p++ {
		for rest%p == 0 {
			lines = append(lines, fmt.Sprintf("%d / %d = %d", rest, p, rest/p))
			rest /= p
			if counts[p] == 0 {
				primes = append(primes, p)
			}
			counts[p]++
		}
	}
	if rest > 1 {
		lines = append(lines, fmt.Sprintf("%d is prime", rest))
		if counts[rest] == 0 {
			primes = append(primes, rest)
		}
		counts[rest]++
	}
	n.Lines("Divide by the smallest prime that fits", lines...)

	parts := make([]string, len(primes))
	for i, p := range primes {
		parts[i] = fmt.Sprint(p)
		if counts[p] > 1 {
			parts[i] += fmt.Sprintf("^%d", counts[p])
		}
	}
	if len(primes) == 1 && counts[primes[0]] == 1 {
		return n.Step("Result", "%d is prime", v).Result()
	}
	return n.Step("Result", "%d = %s", v, strings.Join(parts, " * ")).Result()
}
