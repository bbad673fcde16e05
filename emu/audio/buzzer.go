// Package audio plays the CHIP-8 buzzer tone.
package audio

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	SampleRate = beep.SampleRate(44100)

	toneFrequency = 220
	amplitude     = 0.2
)

// Buzzer is a square wave that is paused while the sound timer is zero.
type Buzzer struct {
	ctrl *beep.Ctrl
}

func NewBuzzer() (*Buzzer, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	b := &Buzzer{
		ctrl: &beep.Ctrl{Streamer: squareWave(SampleRate, toneFrequency), Paused: true},
	}
	speaker.Play(b.ctrl)
	return b, nil
}

// Toggle starts or stops the tone.
func (b *Buzzer) Toggle(on bool) {
	speaker.Lock()
	b.ctrl.Paused = !on
	speaker.Unlock()
}

func squareWave(sr beep.SampleRate, frequency float64) beep.Streamer {
	period := float64(sr) / frequency
	var pos float64

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := amplitude
			if pos >= period/2 {
				v = -amplitude
			}
			samples[i][0], samples[i][1] = v, v

			pos++
			if pos >= period {
				pos -= period
			}
		}
		return len(samples), true
	})
}
