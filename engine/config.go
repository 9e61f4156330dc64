package engine

// Config tunes the search. Depth counts plies searched below each root candidate;
// 0 scores every candidate statically. Start from DefaultConfig when decoding partial
// JSON so an absent depth keeps its default.
type Config struct {
	Depth             int     `json:"depth"`
	Radius            int     `json:"radius"`
	DecisiveThreshold float64 `json:"decisive_threshold"`
	Seed              int64   `json:"seed"`
	LogSearchStats    bool    `json:"log_search_stats"`
	Weights           Weights `json:"weights"`
}

func DefaultConfig() Config {
	return Config{
		Depth:             2,
		Radius:            defaultRadius,
		DecisiveThreshold: 1000.0,
		Seed:              0, // 0 picks a time-based seed
		LogSearchStats:    false,
		Weights:           DefaultWeights(),
	}
}

// withDefaults fills unset fields so partially specified JSON configs stay usable.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Depth < 0 {
		c.Depth = def.Depth
	}
	if c.Radius <= 0 {
		c.Radius = def.Radius
	}
	if c.DecisiveThreshold <= 0 {
		c.DecisiveThreshold = def.DecisiveThreshold
	}
	c.Weights = c.Weights.withDefaults()
	return c
}

func (w Weights) withDefaults() Weights {
	def := DefaultWeights()
	if w.OneClosed == 0 {
		w.OneClosed = def.OneClosed
	}
	if w.OneOpen == 0 {
		w.OneOpen = def.OneOpen
	}
	if w.TwoClosed == 0 {
		w.TwoClosed = def.TwoClosed
	}
	if w.TwoOpen == 0 {
		w.TwoOpen = def.TwoOpen
	}
	if w.ThreeClosed == 0 {
		w.ThreeClosed = def.ThreeClosed
	}
	if w.ThreeOpen == 0 {
		w.ThreeOpen = def.ThreeOpen
	}
	if w.ThreeWide == 0 {
		w.ThreeWide = def.ThreeWide
	}
	if w.FourClosed == 0 {
		w.FourClosed = def.FourClosed
	}
	if w.FourOpen == 0 {
		w.FourOpen = def.FourOpen
	}
	if w.FourOnTurn == 0 {
		w.FourOnTurn = def.FourOnTurn
	}
	if w.Five == 0 {
		w.Five = def.Five
	}
	if w.WideSpaceMin <= 0 {
		w.WideSpaceMin = def.WideSpaceMin
	}
	return w
}
