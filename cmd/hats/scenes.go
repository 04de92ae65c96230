package main

import (
	"context"
	"math/rand"

	"github.com/ossrs/go-oryx-lib/errors"

	"github.com/cwbudde/algo-grain/dsp/core"
	"github.com/cwbudde/algo-grain/dsp/curve"
	"github.com/cwbudde/algo-grain/dsp/fx"
	"github.com/cwbudde/algo-grain/dsp/noise"
	"github.com/cwbudde/algo-grain/dsp/seq"
	"github.com/cwbudde/algo-grain/dsp/shape"
	"github.com/cwbudde/algo-grain/dsp/signal"
	"github.com/cwbudde/algo-grain/dsp/sound"
)

const beat = 0.2

// kit builds the instruments for one render configuration.
type kit struct {
	cfg      config
	workers  int
	pluckout *curve.Curve
}

func newKit(cfg config, workers int) (*kit, error) {
	pluckout, err := shape.New(shape.PluckOut)
	if err != nil {
		return nil, errors.Wrapf(err, "pluck envelope")
	}
	k := &kit{cfg: cfg, workers: workers, pluckout: pluckout}
	if _, err := k.buffer(); err != nil {
		return nil, err
	}
	return k, nil
}

func (k *kit) buffer() (*sound.Buffer, error) {
	out, err := sound.NewSeconds(k.cfg.Length, core.WithSampleRate(k.cfg.SampleRate))
	if err != nil {
		return nil, errors.Wrapf(err, "output buffer of %vs", k.cfg.Length)
	}
	return out, nil
}

func (k *kit) noise(rng *rand.Rand) []noise.Option {
	return []noise.Option{noise.WithSampleRate(k.cfg.SampleRate), noise.WithRand(rng)}
}

func (k *kit) render(ctx context.Context, out *sound.Buffer, tl seq.Timeline, voice seq.Voice, salt int64) error {
	_, err := seq.Render(ctx, out, tl, voice, seq.WithWorkers(k.workers), seq.WithSeed(k.cfg.Seed+salt))
	return err
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return float64(curve.Between(lo, hi, rng))
}

func randomRange(rng *rand.Rand, lo, hi float64) (*curve.Curve, error) {
	return shape.New(shape.Random, shape.WithRange(curve.Const(lo), curve.Const(hi)), shape.WithRand(rng))
}

func (k *kit) hat(length float64, rng *rand.Rand) (*sound.Buffer, error) {
	low, err := randomRange(rng, 9000, 11000)
	if err != nil {
		return nil, err
	}
	high, err := randomRange(rng, 12000, 14000)
	if err != nil {
		return nil, err
	}
	b, err := noise.BLN(signal.Sine, length, low, high, k.noise(rng)...)
	if err != nil {
		return nil, err
	}
	return b.ApplyEnvelope(k.pluckout).Scale(0.5), nil
}

func (k *kit) clap(length float64, rng *rand.Rand) (*sound.Buffer, error) {
	low, err := randomRange(rng, 3000, 6000)
	if err != nil {
		return nil, err
	}
	high, err := randomRange(rng, 2000, 8000)
	if err != nil {
		return nil, err
	}
	b, err := noise.BLN(signal.Triangle, length, low, high, k.noise(rng)...)
	if err != nil {
		return nil, err
	}
	return b.ApplyEnvelope(k.pluckout), nil
}

func (k *kit) kick(length float64, rng *rand.Rand) (*sound.Buffer, error) {
	low := curve.Points(between(rng, 80, 100), between(rng, 50, 100))
	high := curve.Points(between(rng, 150, 200), between(rng, 50, 70))
	b, err := noise.BLN(signal.Square, length, low, high, k.noise(rng)...)
	if err != nil {
		return nil, err
	}
	if b, err = fx.Crush(b, between(rng, 6, 10), between(rng, 11000, 44100)); err != nil {
		return nil, err
	}
	if b, err = fx.LPF(b, 200); err != nil {
		return nil, err
	}
	if b, err = fx.Warp(b, curve.Points(1, 0.5)); err != nil {
		return nil, err
	}
	taper := core.SecondsToFrames(0.02, b.SampleRate())
	return b.ApplyEnvelope(k.pluckout).Taper(taper).Scale(between(rng, 0.6, 1)), nil
}

type scene struct {
	name   string
	render func(ctx context.Context, k *kit) (*sound.Buffer, error)
}

var scenes = []scene{
	{name: "plucked-hat", render: pluckedHat},
	{name: "hats-on-ice", render: hatsOnIce},
	{name: "hats-slipping-on-ice", render: hatsSlipping},
	{name: "kicks-and-hats", render: kicksAndHats},
}

func sceneNames() []string {
	names := make([]string, len(scenes))
	for i, s := range scenes {
		names[i] = s.name
	}
	return names
}

func lookupScene(name string) (scene, bool) {
	for _, s := range scenes {
		if s.name == name {
			return s, true
		}
	}
	return scene{}, false
}

func pluckedHat(_ context.Context, k *kit) (*sound.Buffer, error) {
	low, err := shape.Win("hannin", 9000, 11000)
	if err != nil {
		return nil, err
	}
	high, err := shape.Win("hannin", 12000, 14000)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(k.cfg.Seed))
	b, err := noise.BLN(signal.Sine, 80*core.MS, low, high, k.noise(rng)...)
	if err != nil {
		return nil, errors.Wrapf(err, "hat")
	}
	return b.ApplyEnvelope(k.pluckout).Scale(0.5), nil
}

func hatsOnIce(ctx context.Context, k *kit) (*sound.Buffer, error) {
	lfo, err := shape.Win("sinc", 0.1, 1)
	if err != nil {
		return nil, err
	}
	out, err := k.buffer()
	if err != nil {
		return nil, err
	}
	voice := func(_ context.Context, ev seq.Event) (*sound.Buffer, error) {
		return k.hat(lfo.Interp(ev.Pos), ev.Rand)
	}
	if err := k.render(ctx, out, seq.Every(k.cfg.Length, 0.5), voice, 0); err != nil {
		return nil, errors.Wrapf(err, "hats")
	}
	return out, nil
}

func hatsSlipping(ctx context.Context, k *kit) (*sound.Buffer, error) {
	lengthLFO, err := shape.Win("sinc", 0.1, 1)
	if err != nil {
		return nil, err
	}
	timeLFO, err := shape.Win("hann", 0.001, 0.2)
	if err != nil {
		return nil, err
	}
	out, err := k.buffer()
	if err != nil {
		return nil, err
	}
	voice := func(_ context.Context, ev seq.Event) (*sound.Buffer, error) {
		return k.hat(lengthLFO.Interp(ev.Pos), ev.Rand)
	}
	tl := seq.Timeline{Length: k.cfg.Length, Step: timeLFO}
	if err := k.render(ctx, out, tl, voice, 0); err != nil {
		return nil, errors.Wrapf(err, "hats")
	}
	return fx.LPF(out, 3000)
}

func kicksAndHats(ctx context.Context, k *kit) (*sound.Buffer, error) {
	hatLFO, err := shape.Win("sine", 0.01, 1.1)
	if err != nil {
		return nil, err
	}
	clapLFO, err := shape.Win("sine", 0.01, 0.1)
	if err != nil {
		return nil, err
	}
	kickLFO, err := shape.Win("sine", 0.05, 0.1)
	if err != nil {
		return nil, err
	}
	timeLFO, err := shape.Win("hann", 0.001, 0.2)
	if err != nil {
		return nil, err
	}
	length := k.cfg.Length

	out, err := k.buffer()
	if err != nil {
		return nil, err
	}
	kicks := func(_ context.Context, ev seq.Event) (*sound.Buffer, error) {
		kickLength := kickLFO.Interp(ev.Pos)
		b, err := k.kick(kickLength, ev.Rand)
		if err != nil {
			return nil, err
		}
		if ev.Rand.Float64() > 0.95 {
			echo, err := k.kick(kickLength, ev.Rand)
			if err != nil {
				return nil, err
			}
			b.Dub(echo.Scale(between(ev.Rand, 0.5, 0.8)), beat/2)
		}
		return b, nil
	}
	if err := k.render(ctx, out, seq.Every(length, beat*5), kicks, 1); err != nil {
		return nil, errors.Wrapf(err, "kicks")
	}

	hats, err := k.buffer()
	if err != nil {
		return nil, err
	}
	hat := func(_ context.Context, ev seq.Event) (*sound.Buffer, error) {
		return k.hat(hatLFO.Interp(ev.Pos), ev.Rand)
	}
	if err := k.render(ctx, hats, seq.Every(length, beat), hat, 2); err != nil {
		return nil, errors.Wrapf(err, "hats")
	}

	claps := func(_ context.Context, ev seq.Event) (*sound.Buffer, error) {
		return k.clap(clapLFO.Interp(ev.Pos), ev.Rand)
	}
	clapTimeline := seq.Timeline{Length: length, Start: beat * 2, Step: curve.Const(beat * 3)}
	if err := k.render(ctx, hats, clapTimeline, claps, 3); err != nil {
		return nil, errors.Wrapf(err, "claps")
	}

	smears := func(_ context.Context, ev seq.Event) (*sound.Buffer, error) {
		b, err := k.hat(hatLFO.Interp(ev.Pos), ev.Rand)
		if err != nil {
			return nil, err
		}
		return b.Scale(0.2), nil
	}
	smearTimeline := seq.Timeline{Length: length, Step: timeLFO, Phase: &seq.PhaseLoop{Period: beat * 6}}
	if err := k.render(ctx, hats, smearTimeline, smears, 4); err != nil {
		return nil, errors.Wrapf(err, "smears")
	}

	if hats, err = fx.LPF(hats, 3000); err != nil {
		return nil, errors.Wrapf(err, "lowpass")
	}
	out.DubFrames(hats, 0)
	return out, nil
}
