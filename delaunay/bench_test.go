package delaunay_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/isochrone/delaunay"
)

// BenchmarkTriangulate measures a 10k point random cloud.
func BenchmarkTriangulate(b *testing.B) {
	set := randomSet(b, 42, 10000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := delaunay.Triangulate(ctx, set); err != nil {
			b.Fatal(err)
		}
	}
}
