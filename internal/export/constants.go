package export

// Parallel sampling
const (
	minParallelSamples = 256 // below this the goroutine setup dominates
)

// WAV rendering defaults
const (
	DefaultSampleRate = 48000
	DefaultBitDepth   = 16

	pcmFormat = 1 // WAVE_FORMAT_PCM

	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	xyChannels  = 2
	xyzChannels = 3

	// peak amplitude of normalised samples
	headroom = 0.99
)

// CSV formatting
const (
	floatFormat    = 'g'
	floatPrecision = -1
	floatBits      = 64
)
