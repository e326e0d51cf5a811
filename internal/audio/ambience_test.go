package audio

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	track   Track
	playing bool
	closed  bool
}

func (player *fakePlayer) Play()  { player.playing = true }
func (player *fakePlayer) Pause() { player.playing = false }
func (player *fakePlayer) Close() error {
	player.closed = true
	return nil
}

type fakeLoader struct {
	players []*fakePlayer
	fail    bool
}

func (loader *fakeLoader) load(track Track) (Player, error) {
	if loader.fail {
		return nil, errors.New("track not found")
	}
	player := &fakePlayer{track: track}
	loader.players = append(loader.players, player)
	return player, nil
}

func testPlaylist(size int) []Track {
	tracks := make([]Track, 0, size)
	for i := 0; i < size; i++ {
		tracks = append(tracks, Track{
			Name: fmt.Sprintf("track %d", i),
			Path: fmt.Sprintf("/ambience/track-%d.mp3", i),
		})
	}
	return tracks
}

func TestControllerToggleOnLoadsAndPlays(t *testing.T) {
	loader := &fakeLoader{}
	controller := NewController(testPlaylist(3), loader.load)

	controller.Toggle()
	require.True(t, controller.On())
	require.Len(t, loader.players, 1)
	assert.True(t, loader.players[0].playing)
	assert.Equal(t, "track 0", loader.players[0].track.Name)
}

func TestControllerToggleOffKeepsResource(t *testing.T) {
	loader := &fakeLoader{}
	controller := NewController(testPlaylist(3), loader.load)

	controller.TurnOn()
	controller.TurnOff()
	assert.False(t, controller.On())
	require.Len(t, loader.players, 1)
	assert.False(t, loader.players[0].playing)
	assert.False(t, loader.players[0].closed)

	// Turning back on reuses the paused player instead of reloading.
	controller.TurnOn()
	assert.Len(t, loader.players, 1)
	assert.True(t, loader.players[0].playing)
}

func TestControllerNextTrackWrapsAround(t *testing.T) {
	loader := &fakeLoader{}
	controller := NewController(testPlaylist(6), loader.load)

	start := controller.CurrentIndex()
	for i := 0; i < 6; i++ {
		controller.NextTrack()
	}
	assert.Equal(t, start, controller.CurrentIndex())
}

func TestControllerNextTrackTearsDownBeforeLoading(t *testing.T) {
	loader := &fakeLoader{}
	controller := NewController(testPlaylist(3), loader.load)

	controller.TurnOn()
	controller.NextTrack()

	require.Len(t, loader.players, 2)
	assert.True(t, loader.players[0].closed)
	assert.True(t, loader.players[1].playing)
	assert.Equal(t, "track 1", loader.players[1].track.Name)
}

func TestControllerNextTrackWhileOffDoesNotPlay(t *testing.T) {
	loader := &fakeLoader{}
	controller := NewController(testPlaylist(3), loader.load)

	controller.NextTrack()
	assert.Equal(t, 1, controller.CurrentIndex())
	assert.Empty(t, loader.players)
}

func TestControllerLoadFailureIsSilentAndRetried(t *testing.T) {
	loader := &fakeLoader{fail: true}
	controller := NewController(testPlaylist(3), loader.load)

	controller.TurnOn()
	assert.True(t, controller.On())
	assert.Empty(t, loader.players)

	// The handle stayed empty; the next play attempt retries the load.
	loader.fail = false
	controller.Resume()
	require.Len(t, loader.players, 1)
	assert.True(t, loader.players[0].playing)
}

func TestControllerStopTearsDownAndForcesOff(t *testing.T) {
	loader := &fakeLoader{}
	controller := NewController(testPlaylist(3), loader.load)

	controller.TurnOn()
	controller.Stop()
	assert.False(t, controller.On())
	require.Len(t, loader.players, 1)
	assert.True(t, loader.players[0].closed)

	// A later toggle starts over with a fresh resource.
	controller.Toggle()
	require.Len(t, loader.players, 2)
	assert.True(t, loader.players[1].playing)
}

func TestControllerSuspendResumeKeepsSwitch(t *testing.T) {
	loader := &fakeLoader{}
	controller := NewController(testPlaylist(3), loader.load)

	controller.TurnOn()
	controller.Suspend()
	assert.True(t, controller.On())
	assert.False(t, loader.players[0].playing)

	controller.Resume()
	assert.True(t, loader.players[0].playing)
}

func TestControllerResumeWhileOffIsNoOp(t *testing.T) {
	loader := &fakeLoader{}
	controller := NewController(testPlaylist(3), loader.load)

	controller.Resume()
	assert.Empty(t, loader.players)
}

func TestControllerEmptyPlaylist(t *testing.T) {
	loader := &fakeLoader{}
	controller := NewController(nil, loader.load)

	controller.Toggle()
	controller.NextTrack()
	controller.Resume()
	controller.Stop()

	assert.False(t, controller.On())
	assert.Empty(t, loader.players)
	_, ok := controller.CurrentTrack()
	assert.False(t, ok)
}
