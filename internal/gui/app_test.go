package gui

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"

	"codeberg.org/snonux/ttsuz/internal/audio"
	"codeberg.org/snonux/ttsuz/internal/i18n"
	"codeberg.org/snonux/ttsuz/internal/processor"
	"codeberg.org/snonux/ttsuz/internal/testutil"
	"codeberg.org/snonux/ttsuz/internal/translit"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	proc := processor.NewProcessor(testutil.NewFakeProvider(), nil, processor.Options{}, nil)
	a := NewWithApp(test.NewApp(), proc, &Config{Language: i18n.Uzbek})
	t.Cleanup(func() {
		a.cancel()
		a.wg.Wait()
		a.audioPlayer.Clear()
	})
	return a
}

func TestConvertButtonFollowsInput(t *testing.T) {
	a := newTestApplication(t)

	if !a.convertButton.Disabled() {
		t.Error("Convert button should start disabled")
	}

	a.textInput.SetText("Salom dunyo")
	a.onTextChanged(a.textInput.Text)
	if a.convertButton.Disabled() {
		t.Error("Convert button should be enabled with text")
	}

	a.textInput.SetText("  \n\t ")
	a.onTextChanged(a.textInput.Text)
	if !a.convertButton.Disabled() {
		t.Error("Convert button should be disabled for blank text")
	}
}

func TestConvertButtonDisabledWhileBusy(t *testing.T) {
	a := newTestApplication(t)
	a.textInput.SetText("Salom")

	a.mu.Lock()
	a.busy = true
	a.mu.Unlock()
	a.updateConvertButton()

	if !a.convertButton.Disabled() {
		t.Error("Convert button should be disabled while a request is running")
	}
}

func TestLanguageToggle(t *testing.T) {
	a := newTestApplication(t)

	if a.inputLabel.Text != "💬 Matn kiriting" {
		t.Errorf("inputLabel = %q", a.inputLabel.Text)
	}
	if a.menuSelect.Options[0] != "🏘 Bosh sahifa" || a.menuSelect.Options[1] != "✍️ Dastur haqida" {
		t.Errorf("menu = %v", a.menuSelect.Options)
	}

	a.languageToggle.SetChecked(true)

	if a.loc.Language() != i18n.English {
		t.Errorf("Language() = %q, want en", a.loc.Language())
	}
	if a.inputLabel.Text != "💬 Enter text" {
		t.Errorf("inputLabel = %q", a.inputLabel.Text)
	}
	if a.menuSelect.Options[0] != "🏘 Home" || a.menuSelect.Options[1] != "✍️ About" {
		t.Errorf("menu = %v", a.menuSelect.Options)
	}
	if a.menuSelect.SelectedIndex() != pageHome {
		t.Errorf("SelectedIndex() = %d, want home", a.menuSelect.SelectedIndex())
	}
}

func TestMenuSwitchesPages(t *testing.T) {
	a := newTestApplication(t)

	if !a.homePage.Visible() || a.aboutPage.Visible() {
		t.Fatal("Home page should be shown first")
	}

	a.menuSelect.SetSelectedIndex(pageAbout)
	if a.homePage.Visible() || !a.aboutPage.Visible() {
		t.Error("About page should be shown")
	}

	a.menuSelect.SetSelectedIndex(pageHome)
	if !a.homePage.Visible() || a.aboutPage.Visible() {
		t.Error("Home page should be shown again")
	}
}

func TestWordLimitHint(t *testing.T) {
	a := newTestApplication(t)

	text := ""
	for i := 0; i <= translit.WordLimitHint; i++ {
		text += "soz "
	}
	a.textInput.SetText(text)
	a.onTextChanged(text)

	want := "Matnda 501 ta so'z bor, tavsiya etilgan 500 tadan ko'p"
	if a.hintLabel.Text != want {
		t.Errorf("hintLabel = %q, want %q", a.hintLabel.Text, want)
	}
}

func TestFinishConversionShowsProcessedText(t *testing.T) {
	a := newTestApplication(t)
	a.config.AutoPlay = false

	outcome := &processor.Outcome{
		Result:     &audio.Result{StatusCode: 200, Text: "Салом", Audio: testutil.WAVFixture(), Format: audio.FormatWAV},
		Normalized: translit.Result{Text: "Салом", Transliterated: true},
	}
	a.finishConversion(outcome, nil)

	if a.processedText.Text != "Салом" {
		t.Errorf("processedText = %q", a.processedText.Text)
	}
	if !a.processedPanel.Visible() {
		t.Error("Processed text panel should be visible")
	}
	if a.statusLabel.Text != "✅ Matn nutqqa muvaffaqiyatli aylantirildi!" {
		t.Errorf("statusLabel = %q", a.statusLabel.Text)
	}
}

func TestUnsavedAudioIsPlayable(t *testing.T) {
	a := newTestApplication(t)
	a.config.AutoPlay = false

	outcome := &processor.Outcome{
		Result:     &audio.Result{StatusCode: 200, Text: "Салом", Audio: testutil.WAVFixture(), Format: audio.FormatWAV},
		Normalized: translit.Result{Text: "Салом", Transliterated: true},
	}
	a.finishConversion(outcome, nil)

	if !a.audioPlayer.Visible() {
		t.Fatal("Audio player should be visible for unsaved audio")
	}
	file := a.audioPlayer.AudioFile()
	if file == "" {
		t.Fatal("Audio player has no file")
	}
	testutil.AssertFileContent(t, file, testutil.WAVFixture())
	if a.audioPlayer.playButton.Disabled() {
		t.Error("Play button should be enabled")
	}

	a.audioPlayer.Clear()
	testutil.AssertFileNotExists(t, file)
}

func TestResultMessage(t *testing.T) {
	en := i18n.New(i18n.English)

	tests := []struct {
		name       string
		outcome    *processor.Outcome
		err        error
		want       string
		wantFailed bool
	}{
		{
			name:    "success",
			outcome: &processor.Outcome{Result: &audio.Result{StatusCode: 200, Audio: []byte("RIFF")}},
			want:    "✅ Text converted to speech successfully!",
		},
		{
			name:       "status",
			outcome:    &processor.Outcome{Result: &audio.Result{StatusCode: 503}},
			err:        &audio.SpeechError{Kind: audio.KindStatus, StatusCode: 503},
			want:       "❌ Error occurred with status code: 503",
			wantFailed: true,
		},
		{
			name:       "transport",
			outcome:    &processor.Outcome{},
			err:        errors.New("connection refused"),
			want:       "❌ Error in text-to-speech conversion: connection refused",
			wantFailed: true,
		},
	}

	for _, tt := range tests {
		got, failed := resultMessage(en, tt.outcome, tt.err)
		if got != tt.want || failed != tt.wantFailed {
			t.Errorf("%s: resultMessage() = %q, %v, want %q, %v", tt.name, got, failed, tt.want, tt.wantFailed)
		}
	}
}

func TestHistoryPageWithoutStore(t *testing.T) {
	a := newTestApplication(t)

	a.menuSelect.SetSelectedIndex(pageHistory)
	if !a.historyPage.Visible() || a.homePage.Visible() || a.aboutPage.Visible() {
		t.Fatal("Only the history page should be shown")
	}
	if a.historyViewer.logEntry.Text != "Tarix o'chirilgan." {
		t.Errorf("history text = %q", a.historyViewer.logEntry.Text)
	}
}
