package gui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"codeberg.org/snonux/ttsuz/internal"
	"codeberg.org/snonux/ttsuz/internal/audio"
	"codeberg.org/snonux/ttsuz/internal/i18n"
	"codeberg.org/snonux/ttsuz/internal/logging"
	"codeberg.org/snonux/ttsuz/internal/processor"
	"codeberg.org/snonux/ttsuz/internal/translit"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// Sidebar
	languageToggle *widget.Check
	menuSelect     *widget.Select

	// Home page
	titleLabel     *widget.Label
	inputLabel     *widget.Label
	textInput      *CustomMultiLineEntry
	hintLabel      *widget.Label
	convertButton  *ttwidget.Button
	progressBar    *widget.ProgressBarInfinite
	progressLabel  *widget.Label
	statusLabel    *widget.Label
	processedText  *widget.Label
	latinText      *widget.Label
	processedPanel *widget.Accordion
	audioPlayer    *AudioPlayer

	// About page
	aboutText     *widget.RichText
	developerLink *widget.Hyperlink

	// History page
	historyViewer *HistoryViewer

	homePage    fyne.CanvasObject
	aboutPage   fyne.CanvasObject
	historyPage fyne.CanvasObject
	pages       *fyne.Container

	// State
	processor *processor.Processor
	config    *Config
	loc       *i18n.Localizer
	logger    *zap.Logger
	busy      bool

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// Config holds GUI application configuration
type Config struct {
	Language string // "uz" or "en"
	AutoPlay bool   // Play audio as soon as it arrives
	Logger   *zap.Logger
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		Language: i18n.Uzbek,
		AutoPlay: true,
	}
}

// New creates a new GUI application
func New(proc *processor.Processor, config *Config) *Application {
	return NewWithApp(app.NewWithID("org.codeberg.snonux.ttsuz"), proc, config)
}

// NewWithApp creates the GUI on an existing fyne app
func NewWithApp(fyneApp fyne.App, proc *processor.Processor, config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())
	fyneApp.SetIcon(GetAppIcon())

	a := &Application{
		app:       fyneApp,
		processor: proc,
		config:    config,
		loc:       i18n.New(config.Language),
		logger:    logging.OrNop(config.Logger),
		ctx:       ctx,
		cancel:    cancel,
	}

	a.setupUI()
	a.applyLanguage()
	a.updateConvertButton()

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("ttsuz v%s", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(820, 640))

	// Sidebar
	a.languageToggle = widget.NewCheck("", func(english bool) {
		if english {
			a.loc = i18n.New(i18n.English)
		} else {
			a.loc = i18n.New(i18n.Uzbek)
		}
		a.applyLanguage()
	})
	a.languageToggle.Checked = a.loc.Language() == i18n.English

	a.menuSelect = widget.NewSelect(nil, func(string) {
		a.showPage(a.menuSelect.SelectedIndex())
	})

	sidebar := container.NewVBox(
		widget.NewIcon(GetAppIcon()),
		a.languageToggle,
		widget.NewSeparator(),
		a.menuSelect,
	)

	a.homePage = a.createHomePage()
	a.aboutPage = a.createAboutPage()
	a.historyViewer = NewHistoryViewer()
	a.historyPage = container.NewPadded(a.historyViewer)
	a.pages = container.NewStack(a.homePage, a.aboutPage, a.historyPage)
	a.aboutPage.Hide()
	a.historyPage.Hide()

	content := container.NewBorder(nil, nil, container.NewPadded(sidebar), nil, a.pages)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	a.window.SetOnClosed(func() {
		a.cancel()
		a.audioPlayer.Clear()
		a.wg.Wait()
	})
}

func (a *Application) createHomePage() fyne.CanvasObject {
	a.titleLabel = widget.NewLabel("")
	a.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	a.inputLabel = widget.NewLabel("")

	a.textInput = NewCustomMultiLineEntry()
	a.textInput.Wrapping = fyne.TextWrapWord
	a.textInput.SetMinRowsVisible(10)
	a.textInput.OnChanged = a.onTextChanged
	a.textInput.SetOnSubmit(a.onConvert)
	a.textInput.SetOnEscape(func() {
		a.window.Canvas().Unfocus()
	})

	a.hintLabel = widget.NewLabel("")
	a.hintLabel.TextStyle = fyne.TextStyle{Italic: true}
	a.hintLabel.Wrapping = fyne.TextWrapWord

	a.convertButton = ttwidget.NewButtonWithIcon("", theme.VolumeUpIcon(), a.onConvert)
	a.convertButton.Importance = widget.HighImportance

	a.progressBar = widget.NewProgressBarInfinite()
	a.progressBar.Stop()
	a.progressBar.Hide()
	a.progressLabel = widget.NewLabel("")
	a.progressLabel.Hide()

	a.statusLabel = widget.NewLabel("")
	a.statusLabel.Wrapping = fyne.TextWrapWord

	a.processedText = widget.NewLabel("")
	a.processedText.Wrapping = fyne.TextWrapWord
	a.processedText.Selectable = true
	a.latinText = widget.NewLabel("")
	a.latinText.Wrapping = fyne.TextWrapWord
	a.latinText.TextStyle = fyne.TextStyle{Italic: true}

	a.processedPanel = widget.NewAccordion(
		widget.NewAccordionItem("", container.NewVBox(a.processedText, widget.NewSeparator(), a.latinText)),
	)
	a.processedPanel.Hide()

	a.audioPlayer = NewAudioPlayer()
	a.audioPlayer.Hide()

	return container.NewBorder(
		container.NewVBox(a.titleLabel, a.inputLabel),
		container.NewVBox(
			a.hintLabel,
			a.convertButton,
			a.progressLabel,
			a.progressBar,
			a.statusLabel,
			a.processedPanel,
			a.audioPlayer,
		),
		nil, nil,
		a.textInput,
	)
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.Canvas().Focus(a.textInput)
	a.window.ShowAndRun()
}

// onTextChanged keeps the convert button disabled while the input is blank
func (a *Application) onTextChanged(text string) {
	a.updateConvertButton()
	a.updateHint()
}

func (a *Application) updateConvertButton() {
	a.mu.Lock()
	busy := a.busy
	a.mu.Unlock()

	if busy || !hasText(a.textInput.Text) {
		a.convertButton.Disable()
	} else {
		a.convertButton.Enable()
	}
}

func (a *Application) updateHint() {
	text := a.textInput.Text
	if translit.ExceedsWordLimit(text) {
		a.hintLabel.SetText(a.loc.Tf(i18n.MsgWordLimit, map[string]interface{}{
			"Count": translit.WordCount(text),
			"Limit": translit.WordLimitHint,
		}))
		a.hintLabel.Importance = widget.WarningImportance
	} else {
		a.hintLabel.SetText(a.loc.Tf(i18n.MsgInputHint, map[string]interface{}{"Limit": translit.WordLimitHint}))
		a.hintLabel.Importance = widget.MediumImportance
	}
	a.hintLabel.Refresh()
}

// onConvert starts a conversion in the background. The button stays
// disabled until it finished.
func (a *Application) onConvert() {
	text := a.textInput.Text
	if !hasText(text) {
		return
	}

	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return
	}
	a.busy = true
	a.mu.Unlock()

	a.updateConvertButton()
	a.showProgress()
	a.processedPanel.Hide()
	a.audioPlayer.Clear()
	a.audioPlayer.Hide()

	language := a.loc.Language()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		outcome, err := a.processor.Convert(a.ctx, text, language)
		if errors.Is(err, context.Canceled) && a.ctx.Err() != nil {
			// Window closed
			return
		}
		if err != nil {
			a.logger.Debug("conversion failed", zap.Error(err))
		}

		fyne.Do(func() {
			a.finishConversion(outcome, err)
		})
	}()
}

func (a *Application) finishConversion(outcome *processor.Outcome, err error) {
	a.mu.Lock()
	a.busy = false
	a.mu.Unlock()

	a.hideProgress()
	a.updateConvertButton()

	message, failed := resultMessage(a.loc, outcome, err)
	if failed {
		a.statusLabel.Importance = widget.DangerImportance
		a.statusLabel.SetText(message)
		if !audio.IsStatus(err) {
			dialog.ShowError(errors.New(message), a.window)
		}
		return
	}

	a.statusLabel.Importance = widget.SuccessImportance
	a.statusLabel.SetText(message)

	a.showProcessedText(outcome.Normalized.Text)

	// Unsaved audio is played from a temporary file
	file, cleanup, err := outcome.PlaybackFile()
	if err != nil {
		a.logger.Warn("no audio to play", zap.Error(err))
		return
	}
	a.audioPlayer.SetAudioFile(file, cleanup)
	a.audioPlayer.Show()
	if a.config.AutoPlay {
		a.audioPlayer.Play()
	}
}

func (a *Application) showProcessedText(text string) {
	a.processedText.SetText(text)
	a.latinText.SetText(a.loc.T(i18n.MsgLatinReading) + ": " + translit.ToLatin(text))
	a.processedPanel.Show()
	a.processedPanel.Open(0)
}

func (a *Application) showProgress() {
	a.statusLabel.SetText("")
	a.progressLabel.SetText(a.loc.T(i18n.MsgProgress))
	a.progressLabel.Show()
	a.progressBar.Show()
	a.progressBar.Start()
}

func (a *Application) hideProgress() {
	a.progressBar.Stop()
	a.progressBar.Hide()
	a.progressLabel.Hide()
}

// resultMessage returns the status line for a finished conversion and
// whether it failed
func resultMessage(loc *i18n.Localizer, outcome *processor.Outcome, err error) (string, bool) {
	if err == nil && outcome != nil && outcome.Result != nil && outcome.Result.OK() {
		return "✅ " + loc.T(i18n.MsgSuccess), false
	}

	if code, ok := audio.StatusCode(err); ok {
		return "❌ " + loc.Tf(i18n.MsgStatusError, map[string]interface{}{"StatusCode": code}), true
	}

	if err == nil {
		err = errors.New("no audio received")
	}
	return "❌ " + loc.Tf(i18n.MsgRequestError, map[string]interface{}{"Error": err.Error()}), true
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
