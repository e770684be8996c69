package chunk

import "testing"

func TestNewChunkSampleCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		framesPerChunk int
		channels       int
		wantSamples    int
	}{
		{framesPerChunk: 512, channels: 1, wantSamples: 512},
		{framesPerChunk: 512, channels: 2, wantSamples: 1024},
		{framesPerChunk: 256, channels: 4, wantSamples: 1024},
	}

	for _, tt := range tests {
		c := New(tt.framesPerChunk, tt.channels)
		if len(c.Samples) != tt.wantSamples {
			t.Errorf("New(%d, %d): len(Samples) = %d, want %d",
				tt.framesPerChunk, tt.channels, len(c.Samples), tt.wantSamples)
		}
		if c.OutTime != 0 {
			t.Errorf("New(%d, %d): OutTime = %v, want 0", tt.framesPerChunk, tt.channels, c.OutTime)
		}
	}
}

func TestNewPool(t *testing.T) {
	t.Parallel()

	pool := NewPool(16, 512, 2)
	if len(pool) != 16 {
		t.Fatalf("NewPool(16, ...): len = %d, want 16", len(pool))
	}

	seen := make(map[*Chunk]bool)
	for i, c := range pool {
		if len(c.Samples) != 1024 {
			t.Errorf("pool[%d]: len(Samples) = %d, want 1024", i, len(c.Samples))
		}
		if seen[c] {
			t.Errorf("pool[%d] aliases another chunk", i)
		}
		seen[c] = true
	}
}
