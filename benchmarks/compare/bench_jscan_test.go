//go:build jscan

package compare_test

import (
	"testing"

	"github.com/romshark/jscan"
)

// jscan: syntax-only pass over the same payload
func Benchmark_ParseOnly_jscan_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(cmpHugeN, cmpHugeK)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !jscan.Valid(string(data)) {
			b.Fatal("invalid")
		}
	}
}
