package registry

import (
	"github.com/specialistvlad/optgen/internal/model"
)

// IDs are the command-line identifiers of one option. Zero means the
// spelling does not exist.
type IDs struct {
	Long    int
	Negated int
}

// Assignment is the result of a successful Register call: the modules of the
// run in supplied order and the IDs allocated to their options. It is valid
// only for the run that produced it.
type Assignment struct {
	modules []*model.Module
	sorted  map[*model.Module][]*model.Option
	ids     map[*model.Option]IDs
}

func newAssignment(modules []*model.Module) *Assignment {
	a := &Assignment{
		modules: modules,
		sorted:  make(map[*model.Module][]*model.Option, len(modules)),
		ids:     make(map[*model.Option]IDs),
	}
	for _, m := range modules {
		a.sorted[m] = m.Sorted()
	}
	return a
}

// Modules returns the modules in the order they were supplied.
func (a *Assignment) Modules() []*model.Module {
	return a.modules
}

// Sorted returns the options of m in the traversal order IDs were allocated
// in. Every emitter iterates options through this method.
func (a *Assignment) Sorted(m *model.Module) []*model.Option {
	if opts, ok := a.sorted[m]; ok {
		return opts
	}
	return m.Sorted()
}

// Options returns every option of the run in global traversal order.
func (a *Assignment) Options() []*model.Option {
	var all []*model.Option
	for _, m := range a.modules {
		all = append(all, a.Sorted(m)...)
	}
	return all
}

// IDs returns the identifiers allocated to o.
func (a *Assignment) IDs(o *model.Option) IDs {
	return a.ids[o]
}
