package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// The speaker is initialized once at a fixed rate; decoded streams are
// resampled to it so tracks with different rates can share the device.
const speakerRate beep.SampleRate = 44100

var (
	speakerOnce sync.Once
	speakerErr  error
)

// BeepLoader returns a Loader backed by the beep speaker. Each acquired
// player loops its track until closed and pauses through a beep.Ctrl
// gate.
func BeepLoader() Loader {
	return func(track Track) (Player, error) {
		file, err := os.Open(track.Path)
		if err != nil {
			return nil, fmt.Errorf("open track: %w", err)
		}

		var (
			streamer beep.StreamSeekCloser
			format   beep.Format
		)
		switch strings.ToLower(filepath.Ext(track.Path)) {
		case ".mp3":
			streamer, format, err = mp3.Decode(file)
		case ".wav":
			streamer, format, err = wav.Decode(file)
		default:
			_ = file.Close()
			return nil, fmt.Errorf("unsupported track format %q", filepath.Ext(track.Path))
		}
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("decode track: %w", err)
		}

		if err := ensureSpeaker(); err != nil {
			_ = streamer.Close()
			return nil, err
		}

		looped := beep.Streamer(beep.Loop(-1, streamer))
		if format.SampleRate != speakerRate {
			looped = beep.Resample(4, format.SampleRate, speakerRate, looped)
		}

		ctrl := &beep.Ctrl{Streamer: looped, Paused: true}
		speaker.Play(ctrl)
		return &beepPlayer{streamer: streamer, ctrl: ctrl}, nil
	}
}

func ensureSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	if speakerErr != nil {
		return fmt.Errorf("init speaker: %w", speakerErr)
	}
	return nil
}

type beepPlayer struct {
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
}

func (player *beepPlayer) Play() {
	speaker.Lock()
	player.ctrl.Paused = false
	speaker.Unlock()
}

func (player *beepPlayer) Pause() {
	speaker.Lock()
	player.ctrl.Paused = true
	speaker.Unlock()
}

func (player *beepPlayer) Close() error {
	speaker.Lock()
	player.ctrl.Paused = true
	player.ctrl.Streamer = nil
	speaker.Unlock()
	return player.streamer.Close()
}
