// Package lazy models "constant or provider of value" configuration
// fields as a tagged union with a bounded-recursion resolver. Any
// dispatcher setting that accepts a lazy.Value can be a fixed value or a
// function of the per-dispatch event context.
package lazy
