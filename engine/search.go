package engine

import (
	"log"
	"math"
	"math/rand"
	"time"
)

type SearchStats struct {
	Start          time.Time
	Elapsed        time.Duration
	Nodes          uint64
	Evaluations    uint64
	Cutoffs        uint64
	DecisiveLeaves uint64
	RootCandidates int
}

// Searcher picks moves with a fixed-depth alpha-beta search. It mutates the state it is
// given during a call and is not safe for concurrent use.
type Searcher struct {
	config Config
	rng    *rand.Rand
	logger *log.Logger
	stats  SearchStats
	runs   []run

	// OnRootMove, when set, receives each root candidate with its searched score.
	OnRootMove func(move Move, score float64)
}

func NewSearcher(config Config, logger *log.Logger) *Searcher {
	config = config.withDefaults()
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Searcher{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
		runs:   make([]run, 0, BoardSize+2),
	}
}

func (s *Searcher) Config() Config {
	return s.config
}

func (s *Searcher) Stats() SearchStats {
	return s.stats
}

func (s *Searcher) Evaluate(state *GameState) float64 {
	return evaluateWith(&state.Board, state.ToMove, s.config.Weights, s.runs)
}

// BestMove returns the move judged best for state.ToMove and its score. The state is
// identical to its input on return. It panics when the board has no empty cell.
func (s *Searcher) BestMove(state *GameState) (Move, float64) {
	s.stats = SearchStats{Start: time.Now()}
	moves := GenerateMoves(&state.Board, s.config.Radius, s.rng)
	if len(moves) == 0 {
		panic("engine: no legal move on a full board")
	}
	s.stats.RootCandidates = len(moves)

	maximize := state.ToMove == PlayerO
	best := moves[0]
	value := math.Inf(1)
	if maximize {
		value = math.Inf(-1)
	}
	for _, mv := range moves {
		state.place(mv)
		score := s.alphaBeta(state, s.config.Depth, math.Inf(-1), math.Inf(1))
		state.unplace(mv)

		if s.OnRootMove != nil {
			s.OnRootMove(mv, score)
		}
		if (maximize && score > value) || (!maximize && score < value) {
			value = score
			best = mv
		}
	}
	s.stats.Elapsed = time.Since(s.stats.Start)

	s.logger.Printf("Eval: %.2f", value)
	if s.config.LogSearchStats {
		s.logStats(state.ToMove)
	}
	return best, value
}

func (s *Searcher) alphaBeta(state *GameState, depth int, alpha, beta float64) float64 {
	s.stats.Nodes++
	s.stats.Evaluations++
	eval := s.Evaluate(state)
	if depth == 0 {
		return eval
	}
	if math.Abs(eval) > s.config.DecisiveThreshold {
		s.stats.DecisiveLeaves++
		return eval
	}

	moves := GenerateMoves(&state.Board, s.config.Radius, s.rng)
	if len(moves) == 0 {
		return eval
	}
	if state.ToMove == PlayerO {
		value := math.Inf(-1)
		for _, mv := range moves {
			state.place(mv)
			value = math.Max(value, s.alphaBeta(state, depth-1, alpha, beta))
			state.unplace(mv)
			if value > beta {
				s.stats.Cutoffs++
				break
			}
			alpha = math.Max(alpha, value)
		}
		return value
	}
	value := math.Inf(1)
	for _, mv := range moves {
		state.place(mv)
		value = math.Min(value, s.alphaBeta(state, depth-1, alpha, beta))
		state.unplace(mv)
		if value < alpha {
			s.stats.Cutoffs++
			break
		}
		beta = math.Min(beta, value)
	}
	return value
}

func (s *Searcher) logStats(player Player) {
	st := s.stats
	nps := 0.0
	if st.Elapsed > 0 {
		nps = float64(st.Nodes) / st.Elapsed.Seconds()
	}
	s.logger.Printf("[ai:%s] t=%dms depth=%d root=%d nodes=%d nps=%.0f evals=%d cutoffs=%d decisive=%d",
		player,
		st.Elapsed.Milliseconds(),
		s.config.Depth,
		st.RootCandidates,
		st.Nodes,
		nps,
		st.Evaluations,
		st.Cutoffs,
		st.DecisiveLeaves,
	)
}
