package cas

// Separate writes e as g(x)*h(y). It reports false when e does not factor
// that way.
func Separate(e Expr, x, y string) (g, h Expr, ok bool) {
	hasX, hasY := Has(e, x), Has(e, y)
	switch {
	case !hasY:
		return e, N(1), true
	case !hasX:
		return N(1), e, true
	}

	switch t := e.(type) {
	case Mul:
		gs, hs := []Expr{}, []Expr{}
		for _, f := range t.Factors {
			fg, fh, ok := Separate(f, x, y)
			if !ok {
				return nil, nil, false
			}
			gs, hs = append(gs, fg), append(hs, fh)
		}
		return MulOf(gs...), MulOf(hs...), true
	case Pow:
		if !Has(t.Exp, x) && !Has(t.Exp, y) {
			bg, bh, ok := Separate(t.Base, x, y)
			if !ok {
				return nil, nil, false
			}
			return PowOf(bg, t.Exp), PowOf(bh, t.Exp), true
		}
		if a, isAdd := t.Exp.(Add); isAdd && !Has(t.Base, x) && !Has(t.Base, y) {
			eg, eh, ok := splitSum(a, x, y)
			if !ok {
				return nil, nil, false
			}
			return PowOf(t.Base, eg), PowOf(t.Base, eh), true
		}
	case Func:
		if a, isAdd := t.Arg.(Add); isAdd && t.Name == "exp" {
			eg, eh, ok := splitSum(a, x, y)
			if !ok {
				return nil, nil, false
			}
			return FuncOf("exp", eg), FuncOf("exp", eh), true
		}
	case Add:
		return separateSum(t, x, y)
	}
	return nil, nil, false
}

// splitSum partitions the terms of a into those free of y and those free of x.
func splitSum(a Add, x, y string) (Expr, Expr, bool) {
	var gs, hs []Expr
	for _, term := range a.Terms {
		switch {
		case !Has(term, y):
			gs = append(gs, term)
		case !Has(term, x):
			hs = append(hs, term)
		default:
			return nil, nil, false
		}
	}
	return AddOf(gs...), AddOf(hs...), true
}

// separateSum factors a sum whose separated terms share a common x part or a
// common y part, as in x*y + x = x*(y + 1).
func separateSum(a Add, x, y string) (Expr, Expr, bool) {
	n := len(a.Terms)
	coeffs := make([]Expr, n)
	gs := make([]Expr, n)
	hs := make([]Expr, n)
	for i, term := range a.Terms {
		c, rest := splitCoeff(term)
		g, h, ok := Separate(rest, x, y)
		if !ok {
			return nil, nil, false
		}
		coeffs[i], gs[i], hs[i] = NumOf(c), g, h
	}

	sameG, sameH := true, true
	for i := 1; i < n; i++ {
		sameG = sameG && Equal(gs[i], gs[0])
		sameH = sameH && Equal(hs[i], hs[0])
	}
	switch {
	case sameG:
		sum := make([]Expr, n)
		for i := range hs {
			sum[i] = MulOf(coeffs[i], hs[i])
		}
		return gs[0], AddOf(sum...), true
	case sameH:
		sum := make([]Expr, n)
		for i := range gs {
			sum[i] = MulOf(coeffs[i], gs[i])
		}
		return AddOf(sum...), hs[0], true
	}
	return nil, nil, false
}
