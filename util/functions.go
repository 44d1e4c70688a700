package util

import (
	"runtime"
	"sort"

	"github.com/rs/zerolog/log"
)

func AbsInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func Max(a, b int) int {
	if a < b {
		return b
	}
	return a
}

func Min(a, b int) int {
	if a > b {
		return b
	}
	return a
}

func LogMemory() {
	s := &runtime.MemStats{}
	runtime.ReadMemStats(s)
	log.Debug().
		Uint64("alloc", s.Alloc).
		Uint64("mallocs", s.Mallocs).
		Uint64("frees", s.Frees).
		Uint64("heapAlloc", s.HeapAlloc).
		Uint64("heapObjects", s.HeapObjects).
		Msg("Memory info")
}

type TopNStrIntDatum struct {
	S string
	N int
}

type TopNStrIntData []TopNStrIntDatum

func (arr TopNStrIntData) Len() int {
	return len(arr)
}

func (arr TopNStrIntData) Swap(a, b int) {
	arr[a], arr[b] = arr[b], arr[a]
}

// Less orders by descending count, then by key so results are stable.
func (arr TopNStrIntData) Less(a, b int) bool {
	if arr[a].N == arr[b].N {
		return arr[a].S < arr[b].S
	}
	return arr[a].N > arr[b].N
}

func GetTopNStrInt(m map[string]int, n int) []TopNStrIntDatum {
	data := make(TopNStrIntData, len(m))
	var i int
	for k, v := range m {
		data[i] = TopNStrIntDatum{k, v}
		i++
	}
	sort.Sort(data)
	return data[:Min(len(data), n)]
}
