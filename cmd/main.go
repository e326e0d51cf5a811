package main

import (
	"log"
	"time"

	"breathflow/internal/audio"
	"breathflow/internal/core/session"
	"breathflow/internal/platform"
	"breathflow/internal/storage"
	"breathflow/internal/ui/animation"
	"breathflow/internal/ui/breathview"
	"breathflow/internal/ui/preferences"
	"breathflow/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const appName = "BreathFlow"

func main() {
	release, err := platform.Lock(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = release()
	}()

	fyneApp := app.NewWithID("com.breathflow.app")

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	timer := session.New(settings.SessionConfig(), session.Config{TickInterval: time.Second / 60})

	tracks, err := resources.AmbientTracks(appName)
	if err != nil {
		log.Printf("ambient tracks: %v", err)
	}
	ambience := audio.NewController(tracks, audio.BeepLoader())

	var view *breathview.Window
	var prefsWindow *preferences.Window

	view = breathview.New(fyneApp, animation.DefaultConfig(), breathview.Callbacks{
		OnStartPause: func() {
			if timer.Snapshot().State == session.StateRunning {
				timer.Pause()
				ambience.Suspend()
				return
			}
			timer.Start()
			ambience.Resume()
		},
		OnReset: func() {
			timer.Reset()
			ambience.Stop()
			view.SetSound(false, currentTrackName(ambience))
		},
		OnToggleSound: func() {
			ambience.Toggle()
			view.SetSound(ambience.On(), currentTrackName(ambience))
		},
		OnNextTrack: func() {
			ambience.NextTrack()
			view.SetSound(ambience.On(), currentTrackName(ambience))
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
	})

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(appName, updated); err != nil {
			log.Printf("save settings: %v", err)
		}
		timer.Apply(updated.SessionConfig())
	})

	events := timer.Subscribe(8)
	go func() {
		for event := range events {
			switch event.Type {
			case session.EventProgress:
				view.SetBreath(event.Phase, event.Progress)
				view.SetRemaining(event.Remaining)
			case session.EventStateChange:
				view.SetState(event.State)
				view.SetBreath(event.Phase, event.Progress)
				view.SetRemaining(event.Remaining)
			case session.EventFinished:
				view.SetState(event.State)
				view.SetRemaining(event.Remaining)
				fyneApp.SendNotification(fyne.NewNotification(appName, "Session complete. Well done."))
			}
		}
	}()

	if settings.SoundOn {
		ambience.TurnOn()
	}

	snapshot := timer.Snapshot()
	view.SetState(snapshot.State)
	view.SetBreath(snapshot.Phase, snapshot.Progress)
	view.SetRemaining(snapshot.Remaining)
	view.SetSound(ambience.On(), currentTrackName(ambience))
	view.Show()

	fyneApp.Run()

	timer.Close()
	ambience.Stop()
}

func currentTrackName(ambience *audio.Controller) string {
	track, ok := ambience.CurrentTrack()
	if !ok {
		return "no ambient tracks"
	}
	return track.Name
}
