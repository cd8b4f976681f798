package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcatSeq2(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"a": 1, "b": 2}
	b := map[string]int{"c": 3}

	got := CollectSeq2(ConcatSeq2(maps.All(a), maps.All(b)))
	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, got)

	count := 0
	for range ConcatSeq2(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestCollectSeq2_Replace(t *testing.T) {
	assert := assert.New(t)

	got := CollectSeq2(ConcatSeq2(
		maps.All(map[string]int{"a": 1}),
		maps.All(map[string]int{"a": 2}),
	))
	assert.Equal(map[string]int{"a": 2}, got)
}
