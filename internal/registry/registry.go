package registry

import (
	"context"
	"fmt"

	"github.com/specialistvlad/optgen/internal/ctxlog"
	"github.com/specialistvlad/optgen/internal/model"
)

// FirstID is the first identifier handed out to a long spelling. Values
// below it are left to single-character options, whose getopt ID is the
// character itself.
const FirstID = 256

// Namespace names one of the independent uniqueness domains.
type Namespace string

const (
	NamespaceModule Namespace = "module id"
	NamespaceLong   Namespace = "long option"
	NamespaceShort  Namespace = "short option"
	NamespaceSMT    Namespace = "smt name"
	NamespaceName   Namespace = "option name"
)

// Namespaces lists every namespace in the order collisions are checked.
var Namespaces = []Namespace{NamespaceModule, NamespaceLong, NamespaceShort, NamespaceSMT, NamespaceName}

// Registry holds the per-run uniqueness sets and the ID allocator.
type Registry struct {
	seen   map[Namespace]map[string]model.Location
	nextID int
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	r := &Registry{
		seen:   make(map[Namespace]map[string]model.Location, len(Namespaces)),
		nextID: FirstID,
	}
	for _, ns := range Namespaces {
		r.seen[ns] = make(map[string]model.Location)
	}
	return r
}

// CheckUnique inserts value into namespace ns or fails with a uniqueness
// error naming both declarations. Namespaces never see each other's values.
func (r *Registry) CheckUnique(ns Namespace, value string, loc model.Location) error {
	set, ok := r.seen[ns]
	if !ok {
		panic(fmt.Sprintf("registry: unknown namespace %q", ns))
	}
	if prior, exists := set[value]; exists {
		return model.UniquenessError(string(ns), value, loc, prior)
	}
	set[value] = loc
	return nil
}

// allocate hands out the next identifier.
func (r *Registry) allocate() int {
	id := r.nextID
	r.nextID++
	return id
}

// Register checks every cross-document invariant of modules and assigns the
// command-line IDs of their options. Modules are visited in the supplied
// order, options in model.Module.Sorted order. A Registry that returned an
// error is partially populated and must be discarded.
func (r *Registry) Register(ctx context.Context, modules ...*model.Module) (*Assignment, error) {
	logger := ctxlog.FromContext(ctx)
	a := newAssignment(modules)
	start := r.nextID

	for _, m := range modules {
		if err := r.CheckUnique(NamespaceModule, m.ID, m.Location()); err != nil {
			return nil, err
		}
		for _, o := range a.Sorted(m) {
			ids, err := r.registerOption(o)
			if err != nil {
				return nil, err
			}
			a.ids[o] = ids
		}
		logger.Debug("Module registered.", "module", m.ID, "options", len(m.Options))
	}

	logger.Debug("Command-line IDs assigned.", "first", start, "next", r.nextID)
	return a, nil
}

func (r *Registry) registerOption(o *model.Option) (IDs, error) {
	var ids IDs
	loc := o.Location

	if o.Long != "" {
		if err := r.CheckUnique(NamespaceLong, o.LongBase(), loc); err != nil {
			return ids, err
		}
		if o.HasAlternate() {
			if err := r.CheckUnique(NamespaceLong, o.Negated(), loc); err != nil {
				return ids, err
			}
		}
	}
	for _, c := range []struct {
		ns    Namespace
		value string
	}{
		{NamespaceShort, o.Short},
		{NamespaceSMT, o.SMTName},
		{NamespaceName, o.Name},
	} {
		if c.value == "" {
			continue
		}
		if err := r.CheckUnique(c.ns, c.value, loc); err != nil {
			return ids, err
		}
	}

	if o.Long != "" {
		ids.Long = r.allocate()
		if o.HasAlternate() {
			ids.Negated = r.allocate()
		}
	}
	return ids, nil
}
