// Package options applies functional options on top of backend defaults.
package options

// OptionConstructor returns the default options.
type OptionConstructor[T any] func() T

// OptionCallback changes a single option.
type OptionCallback[T any] func(*T)

// ApplyOptions builds options from the defaults and applies callbacks in order.
// Nil callbacks are skipped.
func ApplyOptions[T any](constructor OptionConstructor[T], cbs []OptionCallback[T]) T {
	var opts T

	if constructor != nil {
		opts = constructor()
	}

	for _, cb := range cbs {
		if cb != nil {
			cb(&opts)
		}
	}

	return opts
}
