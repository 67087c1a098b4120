package di

import "sync"

// Defaults holds fallback providers shared by root injectors.
//
// A root injector created with WithDefaults consults the registry at
// resolution time, after its own providers, so a default added after the
// injector was created is still visible until the key is first bound.
// Child injectors never read defaults directly; they reach them through
// their root.
//
// Expected usage:
//
//	defaults := di.NewDefaults().
//		Provide(di.Provide(Clock, di.Value(realClock{}))).
//		Provide(di.ProvideClass(HTTPClient))
//	root := di.New(nil, di.WithDefaults(defaults))
type Defaults struct {
	mu     sync.RWMutex
	single map[Key]Provider
	multi  *MultiMap[Key, Provider]
}

// NewDefaults returns an empty registry.
func NewDefaults() *Defaults {
	return &Defaults{
		single: map[Key]Provider{},
		multi:  NewMultiMap[Key, Provider](),
	}
}

// Provide stores bindings and returns the registry for chaining.
// A single key is replaced; a multi key accumulates in call order.
// It panics, storing nothing, when a binding lacks a token or provider.
func (d *Defaults) Provide(bindings ...ProviderBinding) *Defaults {
	for idx, b := range bindings {
		checkBinding(idx, b)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, b := range bindings {
		if b.Token.multi() {
			d.multi.Add(b.Token, b.Provider)
		} else {
			d.single[b.Token] = b.Provider
		}
	}
	return d
}

// Has reports whether a default exists for key.
func (d *Defaults) Has(key Key) bool {
	if d == nil {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	if key.multi() {
		_, ok := d.multi.Get(key)
		return ok
	}
	_, ok := d.single[key]
	return ok
}

// Clone returns an independent copy. Providers added to the copy are not
// visible to the original and vice versa.
func (d *Defaults) Clone() *Defaults {
	out := NewDefaults()
	if d == nil {
		return out
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	for k, p := range d.single {
		out.single[k] = p
	}
	out.multi = d.multi.Clone()
	return out
}

func (d *Defaults) lookup(key Key) (Provider, bool) {
	if d == nil {
		return nil, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.single[key]
	return p, ok
}

func (d *Defaults) lookupMulti(key Key) []Provider {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	ps, _ := d.multi.Get(key)
	return ps
}
