package di

import "reflect"

// Resolve returns the instance bound to tok as T.
//
// It returns:
//   - the zero T and a nil error if Optional was given and nothing is bound
//   - TypeMismatchError if the bound value is not a T
//   - any lookup error from Injector.Get
func Resolve[T any](inj *Injector, tok *Token[T], opts ...ResolveOption) (T, error) {
	return resolveAs[T](inj, tok, opts)
}

// ResolveClass returns the instance bound to cls as T.
func ResolveClass[T any](inj *Injector, cls *Class[T], opts ...ResolveOption) (T, error) {
	return resolveAs[T](inj, cls, opts)
}

// ResolveAll returns every instance bound to tok as []T.
// With Optional, a missing key yields a nil slice and a nil error.
func ResolveAll[T any](inj *Injector, tok *MultiToken[T], opts ...ResolveOption) ([]T, error) {
	raw, err := inj.Get(tok, opts...)
	if err != nil || raw == nil {
		return nil, err
	}

	vals := raw.([]any)
	out := make([]T, 0, len(vals))
	for _, v := range vals {
		t, ok := as[T](v)
		if !ok {
			return nil, &TypeMismatchError{Token: tok, Got: typeName(v)}
		}
		out = append(out, t)
	}
	return out, nil
}

// MustResolve is like Resolve but panics on error.
// Useful in composition roots and tests where a missing binding should fail fast.
func MustResolve[T any](inj *Injector, tok *Token[T], opts ...ResolveOption) T {
	v, err := Resolve(inj, tok, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func resolveAs[T any](inj *Injector, key Key, opts []ResolveOption) (T, error) {
	var zero T
	raw, err := inj.Get(key, opts...)
	if err != nil {
		return zero, err
	}
	if raw == nil {
		return zero, nil
	}
	v, ok := as[T](raw)
	if !ok {
		return zero, &TypeMismatchError{Token: key, Got: typeName(raw)}
	}
	return v, nil
}

// as converts v to T, treating an untyped nil as the zero T.
func as[T any](v any) (T, bool) {
	var zero T
	if v == nil {
		return zero, true
	}
	t, ok := v.(T)
	return t, ok
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
