package engine

const (
	WinScore       = 100_000_000.0
	ForcedWinScore = WinScore / 10
)

// Weights is the run scoring table. Values are positive; the owner's sign is applied on use.
type Weights struct {
	OneClosed    float64 `json:"one_closed"`
	OneOpen      float64 `json:"one_open"`
	TwoClosed    float64 `json:"two_closed"`
	TwoOpen      float64 `json:"two_open"`
	ThreeClosed  float64 `json:"three_closed"`
	ThreeOpen    float64 `json:"three_open"`
	ThreeWide    float64 `json:"three_wide"`
	FourClosed   float64 `json:"four_closed"`
	FourOpen     float64 `json:"four_open"`
	FourOnTurn   float64 `json:"four_on_turn"`
	Five         float64 `json:"five"`
	WideSpaceMin int     `json:"wide_space_min"`
}

func DefaultWeights() Weights {
	return Weights{
		OneClosed:    0.1,
		OneOpen:      0.3,
		TwoClosed:    0.4,
		TwoOpen:      0.7,
		ThreeClosed:  1.0,
		ThreeOpen:    3.0,
		ThreeWide:    7.0,
		FourClosed:   10.0,
		FourOpen:     100.0,
		FourOnTurn:   ForcedWinScore,
		Five:         WinScore,
		WideSpaceMin: 3,
	}
}

// Evaluate scores the board with the default weights. Positive favors O, negative favors X.
// toMove decides whose four-in-a-row counts as an immediate win.
func Evaluate(board *Board, toMove Player) float64 {
	return evaluateWith(board, toMove, DefaultWeights(), nil)
}

func evaluateWith(board *Board, toMove Player, w Weights, buf []run) float64 {
	value := 0.0
	for _, line := range boardLines {
		buf = collectRuns(board, line, buf)
		value += scoreRuns(buf, toMove, w)
	}
	return value
}

func scoreRuns(runs []run, toMove Player, w Weights) float64 {
	value := 0.0
	for i := 1; i < len(runs)-1; i++ {
		r := runs[i]
		if r.cell == CellEmpty {
			continue
		}
		emptyBefore := emptyLength(runs[i-1])
		emptyAfter := emptyLength(runs[i+1])
		if r.length+emptyBefore+emptyAfter < minLineLength {
			continue
		}
		bothOpen := emptyBefore > 0 && emptyAfter > 0
		sign := 1.0
		owner := PlayerO
		if r.cell == CellX {
			sign = -1.0
			owner = PlayerX
		}
		value += sign * runScore(r.length, bothOpen, emptyBefore+emptyAfter, owner == toMove, w)
	}
	return value
}

func runScore(length int, bothOpen bool, space int, onTurn bool, w Weights) float64 {
	switch {
	case length >= 5:
		return w.Five
	case length == 4:
		if onTurn {
			return w.FourOnTurn
		}
		if bothOpen {
			return w.FourOpen
		}
		return w.FourClosed
	case length == 3:
		if !bothOpen {
			return w.ThreeClosed
		}
		if space >= w.WideSpaceMin {
			return w.ThreeWide
		}
		return w.ThreeOpen
	case length == 2:
		if bothOpen {
			return w.TwoOpen
		}
		return w.TwoClosed
	default:
		if bothOpen {
			return w.OneOpen
		}
		return w.OneClosed
	}
}

func emptyLength(r run) int {
	if r.cell == CellEmpty {
		return r.length
	}
	return 0
}
