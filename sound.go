package atelier

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundConfig controls the synthesized page-flip sound.
type SoundConfig struct {
	// SampleRate is shared with the ebiten audio context.
	SampleRate int
	// Volume scales the sound; 0 is silent.
	Volume float64
	// FlipDuration is the length of the rustle.
	FlipDuration time.Duration
	// Seed makes the rustle noise reproducible.
	Seed uint64
}

// DefaultSoundConfig returns a soft, short rustle.
func DefaultSoundConfig() SoundConfig {
	return SoundConfig{
		SampleRate:   48000,
		Volume:       0.35,
		FlipDuration: 180 * time.Millisecond,
		Seed:         7,
	}
}

// noise streams low-passed white noise for a fixed number of samples.
type noise struct {
	rng      *rand.Rand
	remain   int
	smoothed float64
	cutoff   float64
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	if n.remain <= 0 {
		return 0, false
	}
	count := min(len(samples), n.remain)
	for i := 0; i < count; i++ {
		raw := n.rng.Float64()*2 - 1
		n.smoothed += (raw - n.smoothed) * n.cutoff
		samples[i][0] = n.smoothed
		samples[i][1] = n.smoothed
	}
	n.remain -= count
	return count, true
}

func (n *noise) Err() error { return nil }

// sine streams a sine tone for a fixed number of samples.
type sine struct {
	freq   float64
	phase  float64
	rate   beep.SampleRate
	remain int
}

func (s *sine) Stream(samples [][2]float64) (int, bool) {
	if s.remain <= 0 {
		return 0, false
	}
	count := min(len(samples), s.remain)
	for i := 0; i < count; i++ {
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
	}
	s.remain -= count
	return count, true
}

func (s *sine) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, total, attack, release int) beep.Streamer {
	return &envelope{streamer: s, total: total, attack: attack, release: release}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if rs := e.total - e.release; e.pos >= rs && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.pos)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume wraps s in a linear volume. Zero or less is silent because the
// beep volume effect works in log space.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// NewPageFlipSound builds the page-flip streamer: a paper rustle over a short
// low thump.
func NewPageFlipSound(cfg SoundConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	total := rate.N(cfg.FlipDuration)

	rustle := newEnvelope(&noise{
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1)),
		remain: total,
		cutoff: 0.35,
	}, total, rate.N(15*time.Millisecond), total/2)

	thumpLen := total / 3
	thump := newEnvelope(&sine{freq: 140, rate: rate, remain: thumpLen},
		thumpLen, rate.N(3*time.Millisecond), thumpLen-rate.N(3*time.Millisecond))

	return withVolume(beep.Mix(
		withVolume(rustle, 0.8),
		withVolume(thump, 0.3),
	), cfg.Volume)
}

// RenderPCM drains up to maxSamples frames of s into signed 16-bit
// little-endian stereo, the format of the ebiten audio context.
func RenderPCM(s beep.Streamer, maxSamples int) []byte {
	out := make([]byte, 0, maxSamples*4)
	buf := make([][2]float64, 512)
	for maxSamples > 0 {
		n, ok := s.Stream(buf[:min(len(buf), maxSamples)])
		maxSamples -= n
		for i := 0; i < n; i++ {
			for ch := 0; ch < 2; ch++ {
				v := math.Max(-1, math.Min(1, buf[i][ch]))
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok || n == 0 {
			break
		}
	}
	return out
}

// SoundBank holds pre-rendered effects and plays them through ebiten audio.
// A nil SoundBank is valid and silent.
type SoundBank struct {
	ctx      *audio.Context
	pageFlip []byte
}

// NewSoundBank renders the effects and attaches to the process-wide audio
// context, creating it if needed.
func NewSoundBank(cfg SoundConfig) *SoundBank {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(cfg.SampleRate)
	}
	return &SoundBank{
		ctx:      ctx,
		pageFlip: RenderPCM(NewPageFlipSound(cfg), beep.SampleRate(cfg.SampleRate).N(cfg.FlipDuration)),
	}
}

// PlayPageFlip starts a page-flip sound.
func (b *SoundBank) PlayPageFlip() {
	if b == nil || len(b.pageFlip) == 0 {
		return
	}
	b.ctx.NewPlayerFromBytes(b.pageFlip).Play()
}
