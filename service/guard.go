package service

import "reflect"

// StrPanic panics with panicMessage if p is empty, otherwise returns p.
// Used by constructors to fail fast on required settings (root key, network name).
func StrPanic(p string, panicMessage string) string {
	if p == "" {
		panic(panicMessage)
	}
	return p
}

// NilPanic panics with panicMessage if v is nil (nil interface, pointer, slice, map, chan or func),
// otherwise returns v.
//
// Called from NewRefresher, NewTransformer, the adapters and the HTTP server constructor
// when validating required dependencies.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

// isNil covers typed nils that a plain v == nil comparison misses.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
