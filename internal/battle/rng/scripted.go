package rng

// Fixed is a Source that always returns the same values.
//
// Intn returns Int clamped to [0, n). Float64 returns Float clamped to [0, 1).
// It is useful for pinning every roll in a test to its best or worst case.
type Fixed struct {
	Int   int
	Float float64
}

// Intn returns the fixed integer clamped to the requested range.
func (f Fixed) Intn(n int) int {
	if n <= 0 || f.Int <= 0 {
		return 0
	}
	if f.Int >= n {
		return n - 1
	}
	return f.Int
}

// Float64 returns the fixed float clamped to [0, 1).
func (f Fixed) Float64() float64 {
	if f.Float < 0 {
		return 0
	}
	if f.Float >= 1 {
		return 0.999999
	}
	return f.Float
}

// Scripted replays queued values and falls back to Fallback once a queue is
// drained.
type Scripted struct {
	Ints     []int
	Floats   []float64
	Fallback Source
}

// Intn returns the next queued integer clamped to [0, n).
func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if len(s.Ints) == 0 {
		return s.fallback().Intn(n)
	}
	value := s.Ints[0]
	s.Ints = s.Ints[1:]
	if value < 0 {
		return 0
	}
	if value >= n {
		return n - 1
	}
	return value
}

// Float64 returns the next queued float.
func (s *Scripted) Float64() float64 {
	if len(s.Floats) == 0 {
		return s.fallback().Float64()
	}
	value := s.Floats[0]
	s.Floats = s.Floats[1:]
	return Fixed{Float: value}.Float64()
}

func (s *Scripted) fallback() Source {
	if s.Fallback == nil {
		return Fixed{}
	}
	return s.Fallback
}
