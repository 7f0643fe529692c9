package gpu

import (
	"github.com/samber/lo"

	"github.com/gogpu/kernelwgsl/compiler"
	"github.com/gogpu/kernelwgsl/kernel"
)

// Feature is a capability a runtime may rely on when choosing kernels.
type Feature struct {
	Elem kernel.Elem
}

// FeatureRegistry receives the features of the WGSL target.
type FeatureRegistry interface {
	Register(f Feature)
}

// Properties is a FeatureRegistry that remembers what it was given.
type Properties struct {
	features []Feature
}

// Register records f. Duplicates are ignored.
func (p *Properties) Register(f Feature) {
	if p.Has(f.Elem) {
		return
	}
	p.features = append(p.features, f)
}

// Has reports whether elem was registered.
func (p *Properties) Has(elem kernel.Elem) bool {
	return lo.ContainsBy(p.features, func(f Feature) bool { return f.Elem == elem })
}

// Features returns the registered features in registration order.
func (p *Properties) Features() []Feature {
	return append([]Feature(nil), p.features...)
}

// RegisterFeatures reports every element type the compiler supports.
func RegisterFeatures(reg FeatureRegistry) {
	features := lo.Map(compiler.SupportedElems(), func(e kernel.Elem, _ int) Feature {
		return Feature{Elem: e}
	})
	for _, f := range features {
		reg.Register(f)
	}
}
