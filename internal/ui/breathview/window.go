package breathview

import (
	"fmt"
	"image/color"

	"breathflow/internal/core/model"
	"breathflow/internal/core/session"
	"breathflow/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines control handlers issued by the user.
type Callbacks struct {
	OnStartPause  func()
	OnReset       func()
	OnToggleSound func()
	OnNextTrack   func()
	OnPreferences func()
}

// Window is the single-screen breathing UI.
type Window struct {
	window      fyne.Window
	circle      *canvas.Circle
	circleArea  *fyne.Container
	breathArea  *breathLayout
	phaseLabel  *canvas.Text
	timerLabel  *canvas.Text
	trackLabel  *widget.Label
	startButton *widget.Button
	soundButton *widget.Button
	callbacks   Callbacks
	anim        animation.Config
}

// New creates the main window.
func New(app fyne.App, anim animation.Config, callbacks Callbacks) *Window {
	window := app.NewWindow("BreathFlow")
	window.SetMaster()
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	circle := canvas.NewCircle(color.NRGBA{R: 96, G: 168, B: 220, A: 230})
	circle.StrokeColor = color.NRGBA{R: 225, G: 240, B: 250, A: 255}
	circle.StrokeWidth = 2

	breathArea := &breathLayout{scale: float32(anim.Scale(model.PhaseInhale, 0))}
	circleArea := container.New(breathArea, circle)

	phaseLabel := canvas.NewText("Breathe in", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = 21

	timerLabel := canvas.NewText(formatRemaining(0), color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true}
	timerLabel.TextSize = 16

	trackLabel := widget.NewLabel("")

	view := &Window{
		window:     window,
		circle:     circle,
		circleArea: circleArea,
		breathArea: breathArea,
		phaseLabel: phaseLabel,
		timerLabel: timerLabel,
		trackLabel: trackLabel,
		callbacks:  callbacks,
		anim:       anim,
	}

	view.startButton = widget.NewButton("Start", func() {
		if view.callbacks.OnStartPause != nil {
			view.callbacks.OnStartPause()
		}
	})
	resetButton := widget.NewButton("Reset", func() {
		if view.callbacks.OnReset != nil {
			view.callbacks.OnReset()
		}
	})
	view.soundButton = widget.NewButton("Sound: off", func() {
		if view.callbacks.OnToggleSound != nil {
			view.callbacks.OnToggleSound()
		}
	})
	nextButton := widget.NewButton("Next track", func() {
		if view.callbacks.OnNextTrack != nil {
			view.callbacks.OnNextTrack()
		}
	})
	settingsButton := widget.NewButton("Settings", func() {
		if view.callbacks.OnPreferences != nil {
			view.callbacks.OnPreferences()
		}
	})

	controls := container.NewHBox(
		view.startButton, resetButton, layout.NewSpacer(),
		view.soundButton, nextButton, layout.NewSpacer(), settingsButton,
	)
	header := container.NewVBox(phaseLabel, timerLabel)
	footer := container.NewVBox(trackLabel, controls)

	window.SetContent(container.NewBorder(header, footer, nil, nil, circleArea))
	window.Resize(fyne.NewSize(420, 520))
	window.CenterOnScreen()

	return view
}

// Show displays the main window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// SetBreath updates the phase caption and circle size.
func (view *Window) SetBreath(phase model.Phase, progress float64) {
	fyne.Do(func() {
		view.phaseLabel.Text = phaseCaption(phase)
		view.phaseLabel.Refresh()
		view.breathArea.scale = float32(view.anim.Scale(phase, progress))
		view.circleArea.Refresh()
	})
}

// SetRemaining updates the countdown label.
func (view *Window) SetRemaining(seconds int) {
	fyne.Do(func() {
		view.timerLabel.Text = formatRemaining(seconds)
		view.timerLabel.Refresh()
	})
}

// SetState adjusts the controls for the session state.
func (view *Window) SetState(state session.State) {
	fyne.Do(func() {
		switch state {
		case session.StateRunning:
			view.startButton.SetText("Pause")
			view.startButton.Enable()
		case session.StatePaused:
			view.startButton.SetText("Resume")
			view.startButton.Enable()
		case session.StateFinished:
			view.startButton.SetText("Start")
			view.startButton.Disable()
			view.phaseLabel.Text = "Session complete"
			view.phaseLabel.Refresh()
		default:
			view.startButton.SetText("Start")
			view.startButton.Enable()
		}
	})
}

// SetSound updates the ambient sound controls.
func (view *Window) SetSound(on bool, trackName string) {
	fyne.Do(func() {
		if on {
			view.soundButton.SetText("Sound: on")
		} else {
			view.soundButton.SetText("Sound: off")
		}
		view.trackLabel.SetText(trackName)
	})
}

func phaseCaption(phase model.Phase) string {
	switch phase {
	case model.PhaseInhale:
		return "Breathe in"
	case model.PhaseExhale:
		return "Breathe out"
	default:
		return "Hold"
	}
}

func formatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// breathLayout centers the circle and sizes it to a fraction of the
// largest square that fits the available area.
type breathLayout struct {
	scale float32
}

func (area *breathLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	scale := area.scale
	if scale < 0 {
		scale = 0
	}
	if scale > 1 {
		scale = 1
	}
	diameter := side * scale

	circle := objects[0]
	circle.Resize(fyne.NewSize(diameter, diameter))
	circle.Move(fyne.NewPos((size.Width-diameter)/2, (size.Height-diameter)/2))
}

func (area *breathLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(220, 220)
}
