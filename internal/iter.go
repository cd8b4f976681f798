// Package internal holds helpers shared by the machine packages.
package internal

import (
	"iter"
)

// ConcatSeq2 yields every pair of each sequence in turn.
func ConcatSeq2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// CollectSeq2 gathers pairs into a map. Later keys replace earlier ones.
func CollectSeq2[K comparable, V any](seq iter.Seq2[K, V]) (out map[K]V) {
	out = make(map[K]V)
	for key, value := range seq {
		out[key] = value
	}

	return
}
