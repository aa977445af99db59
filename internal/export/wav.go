package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-spline3d/internal/simdops"
)

// WAVOptions controls oscilloscope rendering.
type WAVOptions struct {
	// SampleRate in Hz. Zero selects DefaultSampleRate.
	SampleRate int

	// BitDepth is 16, 24 or 32. Zero selects DefaultBitDepth.
	BitDepth int

	// Channels is 2 for an X/Y display or 3 to add Z. Zero selects 2.
	Channels int

	// Loops repeats the samples, for closed curves. Zero means once.
	Loops int
}

func (o *WAVOptions) withDefaults() (WAVOptions, error) {
	out := *o
	if out.SampleRate == 0 {
		out.SampleRate = DefaultSampleRate
	}
	if out.BitDepth == 0 {
		out.BitDepth = DefaultBitDepth
	}
	if out.Channels == 0 {
		out.Channels = xyChannels
	}
	if out.Loops == 0 {
		out.Loops = 1
	}

	switch {
	case out.SampleRate < 0:
		return out, fmt.Errorf("export: invalid sample rate %d", out.SampleRate)
	case out.BitDepth != bitsPerSample16 && out.BitDepth != bitsPerSample24 && out.BitDepth != bitsPerSample32:
		return out, fmt.Errorf("export: unsupported bit depth %d", out.BitDepth)
	case out.Channels != xyChannels && out.Channels != xyzChannels:
		return out, fmt.Errorf("export: channels must be %d or %d, got %d", xyChannels, xyzChannels, out.Channels)
	case out.Loops < 0:
		return out, fmt.Errorf("export: invalid loop count %d", out.Loops)
	}
	return out, nil
}

// WriteWAV renders sample positions as PCM audio: one channel per axis, so
// an oscilloscope in X/Y mode traces the curve. Positions are centred on their
// centroid and scaled uniformly so the largest coordinate sits just below full
// scale, which keeps the aspect ratio.
func WriteWAV(w io.WriteSeeker, samples []FrameSample, opts WAVOptions) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	o, err := opts.withDefaults()
	if err != nil {
		return err
	}

	axes := Normalize(samples, o.Channels)

	full := float64(int64(1)<<(o.BitDepth-1) - 1)
	n := len(samples)
	data := make([]int, 0, n*o.Channels*o.Loops)
	for range o.Loops {
		for i := range n {
			for ch := range o.Channels {
				data = append(data, int(math.Round(axes[ch][i]*full)))
			}
		}
	}

	enc := wav.NewEncoder(w, o.SampleRate, o.BitDepth, o.Channels, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: o.Channels, SampleRate: o.SampleRate},
		Data:           data,
		SourceBitDepth: o.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("export: writing audio data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("export: finalising WAV header: %w", err)
	}
	return nil
}

// Normalize returns the first channels axes (X, Y, Z) of the sample positions
// centred on their centroid and scaled by one common factor into
// [-headroom, headroom].
func Normalize(samples []FrameSample, channels int) [][]float64 {
	axes := make([][]float64, channels)
	for ch := range axes {
		axes[ch] = make([]float64, len(samples))
	}
	for i, s := range samples {
		p := [xyzChannels]float64{s.Frame.P.X, s.Frame.P.Y, s.Frame.P.Z}
		for ch := range axes {
			axes[ch][i] = p[ch]
		}
	}
	if len(samples) == 0 {
		return axes
	}

	var peak float64
	for _, a := range axes {
		floats.AddConst(-simdops.Mean(a), a)
		peak = math.Max(peak, math.Max(floats.Max(a), -floats.Min(a)))
	}
	if peak == 0 {
		return axes
	}

	ops := simdops.Float64Ops()
	for _, a := range axes {
		ops.Scale(a, a, headroom/peak)
	}
	return axes
}
