//go:build !wasip1

package abi

import "testing"

// BenchmarkBuildRegion measures handing a borrowed buffer to the host.
func BenchmarkBuildRegion(b *testing.B) {
	payload := make([]byte, 256)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v := BuildRegion(payload)
		v.Release()
	}
}

// BenchmarkConsumeRegion measures the host-to-guest transfer of a small payload.
func BenchmarkConsumeRegion(b *testing.B) {
	payload := make([]byte, 256)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ConsumeRegion(hostDescriptor(payload))
	}
	b.StopTimer()
	FreeAllTracked()
}
