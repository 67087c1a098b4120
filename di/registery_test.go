package di

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// NewDefaults / Provide
// -----------------------------------------------------------------------------

// TestNewDefaults_Empty verifies NewDefaults initializes empty tables.
func TestNewDefaults_Empty(t *testing.T) {
	t.Parallel()

	d := NewDefaults()
	require.NotNil(t, d)
	assert.Len(t, d.single, 0)
	assert.Equal(t, 0, d.multi.size())
}

// TestDefaultsProvide_ChainsAndStores verifies Provide stores bindings and returns the same registry.
func TestDefaultsProvide_ChainsAndStores(t *testing.T) {
	t.Parallel()

	a := NewToken[int]("a")
	b := NewToken[string]("b")
	d := NewDefaults()

	ret := d.Provide(Provide(a, Value(1))).Provide(Provide(b, Value("x")))
	require.Same(t, d, ret)

	pa, ok := d.lookup(a)
	require.True(t, ok)
	assert.Equal(t, 1, pa.(*ValueProvider).Value)

	pb, ok := d.lookup(b)
	require.True(t, ok)
	assert.Equal(t, "x", pb.(*ValueProvider).Value)
}

// TestDefaultsProvide_ReplacesSingle verifies the last single provider wins.
func TestDefaultsProvide_ReplacesSingle(t *testing.T) {
	t.Parallel()

	tok := NewToken[int]("a")
	d := NewDefaults().Provide(Provide(tok, Value(1)), Provide(tok, Value(2)))

	p, ok := d.lookup(tok)
	require.True(t, ok)
	assert.Equal(t, 2, p.(*ValueProvider).Value)
}

// TestDefaultsProvide_AccumulatesMulti verifies multi providers keep call order.
func TestDefaultsProvide_AccumulatesMulti(t *testing.T) {
	t.Parallel()

	tok := NewMultiToken[int]("m")
	d := NewDefaults().
		Provide(Provide(tok, Value(1))).
		Provide(Provide(tok, Value(2)), Provide(tok, Value(3)))

	ps := d.lookupMulti(tok)
	require.Len(t, ps, 3)
	for i, p := range ps {
		assert.Equal(t, i+1, p.(*ValueProvider).Value)
	}

	_, ok := d.lookup(tok)
	assert.False(t, ok, "multi keys are not stored as single")
}

// TestDefaultsProvide_RejectsIncompleteBindings verifies Provide panics on a
// binding without a token or provider and leaves the registry untouched.
func TestDefaultsProvide_RejectsIncompleteBindings(t *testing.T) {
	t.Parallel()

	tok := NewToken[int]("x")

	d := NewDefaults()
	assert.PanicsWithValue(t, "di: binding #0 has no token", func() {
		d.Provide(ProviderBinding{Provider: Value(1)})
	})
	assert.PanicsWithValue(t, "di: binding #1 (x) has no provider", func() {
		d.Provide(Provide(tok, Value(1)), ProviderBinding{Token: tok})
	})
	assert.PanicsWithValue(t, "di: binding #0 (x) has no provider", func() {
		d.Provide(Provide(tok, &FactoryProvider{}))
	})
	assert.False(t, d.Has(tok))
}

//
// -----------------------------------------------------------------------------
// Has / lookup
// -----------------------------------------------------------------------------

// TestDefaultsHas verifies Has for single and multi keys.
func TestDefaultsHas(t *testing.T) {
	t.Parallel()

	single := NewToken[int]("s")
	multi := NewMultiToken[int]("m")
	d := NewDefaults().Provide(Provide(single, Value(1)), Provide(multi, Value(2)))

	assert.True(t, d.Has(single))
	assert.True(t, d.Has(multi))
	assert.False(t, d.Has(NewToken[int]("s")), "keys compare by identity")
}

// TestDefaults_NilSafe verifies a nil registry behaves as empty.
func TestDefaults_NilSafe(t *testing.T) {
	t.Parallel()

	var d *Defaults
	tok := NewToken[int]("a")

	assert.False(t, d.Has(tok))
	_, ok := d.lookup(tok)
	assert.False(t, ok)
	assert.Nil(t, d.lookupMulti(NewMultiToken[int]("m")))
	assert.NotNil(t, d.Clone())
}

//
// -----------------------------------------------------------------------------
// Clone
// -----------------------------------------------------------------------------

// TestDefaultsClone_Independent verifies clones do not share later registrations.
func TestDefaultsClone_Independent(t *testing.T) {
	t.Parallel()

	a := NewToken[int]("a")
	b := NewToken[int]("b")
	m := NewMultiToken[int]("m")

	orig := NewDefaults().Provide(Provide(a, Value(1)), Provide(m, Value(1)))
	clone := orig.Clone()

	clone.Provide(Provide(b, Value(2)), Provide(m, Value(2)))
	orig.Provide(Provide(m, Value(3)))

	assert.True(t, clone.Has(a))
	assert.True(t, clone.Has(b))
	assert.False(t, orig.Has(b))
	assert.Len(t, orig.lookupMulti(m), 2)
	assert.Len(t, clone.lookupMulti(m), 2)
	assert.Equal(t, 3, orig.lookupMulti(m)[1].(*ValueProvider).Value)
	assert.Equal(t, 2, clone.lookupMulti(m)[1].(*ValueProvider).Value)
}

//
// -----------------------------------------------------------------------------
// Concurrency
// -----------------------------------------------------------------------------

// TestDefaults_ConcurrentProvideAndLookup verifies registration races with lookups safely.
func TestDefaults_ConcurrentProvideAndLookup(t *testing.T) {
	t.Parallel()

	m := NewMultiToken[int]("m")
	d := NewDefaults()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			d.Provide(Provide(m, Value(i)))
		}()
		go func() {
			defer wg.Done()
			_ = d.lookupMulti(m)
			_ = d.Has(m)
		}()
	}
	wg.Wait()

	assert.Len(t, d.lookupMulti(m), n)
}
