package audio

import (
	"log"
	"sync"
)

// Track identifies one ambient recording in the playlist.
type Track struct {
	Name string
	Path string
}

// Player is one active playback resource. Implementations loop the track
// until closed.
type Player interface {
	Play()
	Pause()
	Close() error
}

// Loader acquires a playback resource for a track.
type Loader func(track Track) (Player, error)

// Controller coordinates looping ambient playback over a fixed playlist.
// It owns at most one active Player at a time; switching tracks tears the
// previous resource down before acquiring the next. Load failures are
// logged and swallowed: ambience is best effort, and the next play
// attempt retries.
type Controller struct {
	mu     sync.Mutex
	tracks []Track
	load   Loader
	index  int
	on     bool
	player Player
}

// NewController creates a Controller over the given playlist.
func NewController(tracks []Track, load Loader) *Controller {
	return &Controller{tracks: tracks, load: load}
}

// On reports whether ambient sound is switched on.
func (controller *Controller) On() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.on
}

// CurrentIndex returns the playlist position.
func (controller *Controller) CurrentIndex() int {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.index
}

// CurrentTrack returns the selected track, if the playlist is non-empty.
func (controller *Controller) CurrentTrack() (Track, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if len(controller.tracks) == 0 {
		return Track{}, false
	}
	return controller.tracks[controller.index], true
}

// Toggle flips ambient sound on or off.
func (controller *Controller) Toggle() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.on {
		controller.turnOffLocked()
		return
	}
	controller.turnOnLocked()
}

// TurnOn switches ambience on, loading the current track if needed.
func (controller *Controller) TurnOn() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.turnOnLocked()
}

// TurnOff pauses playback without releasing the playback resource.
func (controller *Controller) TurnOff() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.turnOffLocked()
}

// NextTrack advances the playlist cyclically, tearing down the current
// resource. Playback resumes only if ambience is on.
func (controller *Controller) NextTrack() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if len(controller.tracks) == 0 {
		return
	}
	controller.index = (controller.index + 1) % len(controller.tracks)
	controller.releaseLocked()
	if controller.on {
		controller.playLocked()
	}
}

// Stop tears down the playback resource and forces ambience off.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.releaseLocked()
	controller.on = false
}

// Suspend pauses playback while keeping the on switch untouched. Used by
// the presentation layer when the session timer pauses.
func (controller *Controller) Suspend() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.player != nil {
		controller.player.Pause()
	}
}

// Resume restarts playback if ambience is on, retrying the load when the
// previous attempt failed.
func (controller *Controller) Resume() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.on {
		controller.playLocked()
	}
}

func (controller *Controller) turnOnLocked() {
	if len(controller.tracks) == 0 {
		return
	}
	controller.on = true
	controller.playLocked()
}

func (controller *Controller) turnOffLocked() {
	controller.on = false
	if controller.player != nil {
		controller.player.Pause()
	}
}

func (controller *Controller) playLocked() {
	if controller.player == nil && !controller.loadLocked() {
		return
	}
	controller.player.Play()
}

func (controller *Controller) loadLocked() bool {
	if len(controller.tracks) == 0 || controller.load == nil {
		return false
	}
	track := controller.tracks[controller.index]
	player, err := controller.load(track)
	if err != nil {
		log.Printf("ambience: load %q: %v", track.Name, err)
		return false
	}
	controller.player = player
	return true
}

func (controller *Controller) releaseLocked() {
	if controller.player == nil {
		return
	}
	if err := controller.player.Close(); err != nil {
		log.Printf("ambience: close player: %v", err)
	}
	controller.player = nil
}
