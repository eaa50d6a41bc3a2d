package sfc_test

import (
	"testing"

	"github.com/valerio/go-sfc/sfc"
	"github.com/valerio/go-sfc/sfc/backend"
	"github.com/valerio/go-sfc/sfc/backend/headless"
	"github.com/valerio/go-sfc/sfc/config"
)

func BenchmarkRunFrameHeadless(b *testing.B) {
	cases := []struct {
		name   string
		opts   []sfc.Option
		frames int
	}{
		{"bare_60", nil, 60},
		{"sa1_60", []sfc.Option{sfc.WithCoprocessor("sa1", 10738636, false)}, 60},
		{"sa1_long_quantum_60", []sfc.Option{sfc.WithCoprocessor("sa1", 10738636, false), sfc.WithQuantum(12)}, 60},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			s, err := sfc.New(config.Default(), tc.opts...)
			if err != nil {
				b.Fatalf("Failed to create system: %v", err)
			}

			// large frame count to avoid the quit condition
			hBackend := headless.New(tc.frames*(b.N+1), 0)
			if err := hBackend.Init(backend.Config{Title: "Benchmark"}); err != nil {
				b.Fatalf("Failed to initialize backend: %v", err)
			}
			defer hBackend.Cleanup()

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				for range tc.frames {
					if err := s.RunFrame(); err != nil {
						b.Fatalf("RunFrame failed: %v", err)
					}
					if _, err := hBackend.Update(s.Stats()); err != nil {
						b.Fatalf("Backend update failed: %v", err)
					}
				}
			}
		})
	}
}
