package di_test

import (
	"github.com/sghaida/scopedi/di"
)

// service records the values it was constructed with.
type service struct {
	Deps di.Args
}

// newService declares a class whose instances capture their resolved deps.
func newService(name string, deps ...di.Dependency) *di.Class[*service] {
	return di.NewClass(name, func(args di.Args) (*service, error) {
		return &service{Deps: args}, nil
	}, deps...)
}

// construct returns a class provider producing *service.
func construct(deps ...di.Dependency) *di.ClassProvider {
	return di.Construct(func(args di.Args) (any, error) {
		return &service{Deps: args}, nil
	}, deps...)
}

// tracked counts OnDestroy calls into a shared journal.
type tracked struct {
	name    string
	journal *[]string
}

func (t *tracked) OnDestroy() { *t.journal = append(*t.journal, t.name) }

func newTracked(name string, journal *[]string) func(di.Args) (any, error) {
	return func(di.Args) (any, error) {
		return &tracked{name: name, journal: journal}, nil
	}
}

// counter returns a factory that counts its invocations.
func counter(n *int, val any) func(di.Args) (any, error) {
	return func(di.Args) (any, error) {
		*n++
		return val, nil
	}
}

// dep returns the i-th resolved dependency of a *service instance.
func dep(v any, i int) any {
	return v.(*service).Deps[i]
}
