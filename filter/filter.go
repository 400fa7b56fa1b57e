// Package filter selects source images with an expr-lang boolean expression
// evaluated against the image filename, basename and scale.
//
//	scale >= 2 && !glob("debug-*", basename)
package filter

import (
	"github.com/bornholm/go-assetgen/explorer"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

type Filter struct {
	script  string
	program *vm.Program
}

// Match reports whether img is selected. A filter without script selects
// everything.
func (f *Filter) Match(img explorer.Image) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}

	result, err := expr.Run(f.program, env(img))
	if err != nil {
		return false, errors.Wrapf(err, "could not evaluate filter '%s'", f.script)
	}

	selected, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("unexpected filter '%s' result type '%T', expected boolean", f.script, result)
	}

	return selected, nil
}

func (f *Filter) String() string {
	return f.script
}

func Compile(script string) (*Filter, error) {
	if script == "" {
		return &Filter{}, nil
	}

	opts := append([]expr.Option{expr.Env(env(explorer.Image{})), expr.AsBool()}, WithFilterAPI()...)

	program, err := expr.Compile(script, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "could not compile filter '%s'", script)
	}

	return &Filter{script: script, program: program}, nil
}

func env(img explorer.Image) map[string]any {
	return map[string]any{
		"filename": img.Filename,
		"basename": img.Basename,
		"scale":    img.Scale,
	}
}
