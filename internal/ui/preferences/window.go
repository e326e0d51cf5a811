package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the settings UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)
	length   *widget.Entry
	inhale   *widget.Entry
	holdIn   *widget.Entry
	exhale   *widget.Entry
	holdOut  *widget.Entry
	sound    *widget.Check
}

// New creates a settings window. onSave receives the clamped settings.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("BreathFlow Settings")

	length := widget.NewEntry()
	inhale := widget.NewEntry()
	holdIn := widget.NewEntry()
	exhale := widget.NewEntry()
	holdOut := widget.NewEntry()

	sound := widget.NewCheck("Ambient sound", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Session", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Session length"), length, widget.NewLabel("min")),
		widget.NewLabelWithStyle("Breathing pattern", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Breathe in"), inhale, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Hold"), holdIn, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Breathe out"), exhale, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Hold"), holdOut, widget.NewLabel("sec")),
		sound,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 360))

	prefs := &Window{
		window:   window,
		settings: settings,
		onSave:   onSave,
		length:   length,
		inhale:   inhale,
		holdIn:   holdIn,
		exhale:   exhale,
		holdOut:  holdOut,
		sound:    sound,
	}
	prefs.fillFields(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.fillFields(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.fillFields(settings)
}

func (prefs *Window) fillFields(settings Settings) {
	prefs.length.SetText(fmt.Sprintf("%d", int(settings.Length.Minutes())))
	prefs.inhale.SetText(fmt.Sprintf("%d", int(settings.Inhale.Seconds())))
	prefs.holdIn.SetText(fmt.Sprintf("%d", int(settings.HoldIn.Seconds())))
	prefs.exhale.SetText(fmt.Sprintf("%d", int(settings.Exhale.Seconds())))
	prefs.holdOut.SetText(fmt.Sprintf("%d", int(settings.HoldOut.Seconds())))
	prefs.sound.SetChecked(settings.SoundOn)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parseNonNegativeInt(prefs.length.Text); ok {
		settings.Length = time.Duration(minutes) * time.Minute
	}
	if seconds, ok := parseNonNegativeInt(prefs.inhale.Text); ok {
		settings.Inhale = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parseNonNegativeInt(prefs.holdIn.Text); ok {
		settings.HoldIn = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parseNonNegativeInt(prefs.exhale.Text); ok {
		settings.Exhale = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parseNonNegativeInt(prefs.holdOut.Text); ok {
		settings.HoldOut = time.Duration(seconds) * time.Second
	}
	settings.SoundOn = prefs.sound.Checked

	settings = settings.Clamped()
	prefs.settings = settings
	prefs.fillFields(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parseNonNegativeInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}
