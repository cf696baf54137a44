// Package sampler walks a scalar generator across its domain at a fixed step.
package sampler

// Generator is a deterministic function of the domain position.
type Generator func(x float64) float64

// Sampler advances a cursor by a fixed step and evaluates a Generator at the new position.
type Sampler struct {
	step   float64
	cursor float64
	gen    Generator
}

func New(step float64, gen Generator) *Sampler {
	return &Sampler{step: step, gen: gen}
}

// Advance moves the cursor one step forward and returns the value there.
func (s *Sampler) Advance() float64 {
	s.cursor += s.step
	return s.gen(s.cursor)
}

// Reposition moves the cursor without sampling.
func (s *Sampler) Reposition(c float64) { s.cursor = c }

// Seek places the cursor n steps past base. Unlike repeated Advance calls it does not
// accumulate rounding error.
func (s *Sampler) Seek(base float64, n int) { s.cursor = base + float64(n)*s.step }

func (s *Sampler) Cursor() float64 { return s.cursor }
func (s *Sampler) Step() float64   { return s.step }

func (s *Sampler) SetStep(step float64) { s.step = step }

// Eval evaluates the generator without moving the cursor.
func (s *Sampler) Eval(x float64) float64 { return s.gen(x) }
