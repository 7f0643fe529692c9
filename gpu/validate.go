package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

// ErrInvalidShader wraps every failure reported by Validate.
var ErrInvalidShader = errors.New("gpu: invalid WGSL")

// Validate parses, lowers and validates WGSL source with naga.
func Validate(source string) error {
	ast, err := naga.Parse(source)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	problems, err := naga.Validate(module)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	if len(problems) > 0 {
		errs := make([]error, len(problems))
		for i, p := range problems {
			errs[i] = p
		}
		return fmt.Errorf("%w: %w", ErrInvalidShader, errors.Join(errs...))
	}
	return nil
}
