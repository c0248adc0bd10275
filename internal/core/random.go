package core

import "fmt"

// Source is the random stream consumed by a run.
// *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Uniform draws u in [0,1) from src.
// A draw outside that interval is reported as ErrRandomSource.
func Uniform(src Source) (float64, error) {
	u := src.Float64()
	if !(u >= 0 && u < 1) {
		return 0, fmt.Errorf("core: uniform draw %v outside [0,1): %w", u, ErrRandomSource)
	}
	return u, nil
}

// Index draws an integer in [0,n) from src.
// A draw outside that interval is reported as ErrRandomSource.
func Index(src Source, n int) (int, error) {
	i := src.Intn(n)
	if i < 0 || i >= n {
		return 0, fmt.Errorf("core: index draw %d outside [0,%d): %w", i, n, ErrRandomSource)
	}
	return i, nil
}
