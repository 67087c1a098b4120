package di

import (
	"strconv"
	"strings"
)

// PathEntry records that Token was being constructed by Injector.
type PathEntry struct {
	Token    Key
	Injector *Injector
}

// ResolvePath is the chain of constructions in progress, outermost first.
type ResolvePath []PathEntry

// String renders the path as "Name@depth → Name@depth".
func (p ResolvePath) String() string {
	parts := make([]string, 0, len(p))
	for _, e := range p {
		parts = append(parts, e.Token.Name()+"@"+strconv.Itoa(e.Injector.Depth()))
	}
	return strings.Join(parts, " → ")
}

// push returns a copy of p with the entry appended. p is never modified.
func (p ResolvePath) push(key Key, inj *Injector) ResolvePath {
	out := make(ResolvePath, len(p), len(p)+1)
	copy(out, p)
	return append(out, PathEntry{Token: key, Injector: inj})
}

// indexOf returns the position of (key, inj) in p, or -1.
func (p ResolvePath) indexOf(key Key, inj *Injector) int {
	for i, e := range p {
		if e.Token == key && e.Injector == inj {
			return i
		}
	}
	return -1
}
