package sim

import (
	"context"
	"sync"

	"github.com/san-kum/dynmotion/internal/integrators"
	"github.com/san-kum/dynmotion/internal/value"
)

// Build prepares a started simulator for one scheme.
type Build[T value.Animatable[T]] func(scheme integrators.Scheme) (*Simulator[T], error)

// Compare runs the same animation under each scheme concurrently. Results
// are returned in scheme order; the first error wins.
func Compare[T value.Animatable[T]](ctx context.Context, schemes []integrators.Scheme, build Build[T], cfg Config) ([]*Result, error) {
	results := make([]*Result, len(schemes))
	errs := make([]error, len(schemes))

	var wg sync.WaitGroup
	for i, scheme := range schemes {
		wg.Add(1)
		go func(idx int, scheme integrators.Scheme) {
			defer wg.Done()

			s, err := build(scheme)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i, scheme)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
