package gui

import (
	"context"
	"errors"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/ttsuz/internal/history"
	"codeberg.org/snonux/ttsuz/internal/i18n"
	"codeberg.org/snonux/ttsuz/internal/translit"
)

const (
	pageHome = iota
	pageAbout
	pageHistory
)

func (a *Application) createAboutPage() fyne.CanvasObject {
	a.aboutText = widget.NewRichTextFromMarkdown("")
	a.aboutText.Wrapping = fyne.TextWrapWord

	developerURL, _ := url.Parse(i18n.DeveloperURL)
	a.developerLink = widget.NewHyperlink("", developerURL)

	return container.NewVScroll(container.NewVBox(
		widget.NewIcon(GetAppIcon()),
		a.aboutText,
		a.developerLink,
	))
}

// showPage switches to one of the sidebar pages
func (a *Application) showPage(page int) {
	a.homePage.Hide()
	a.aboutPage.Hide()
	a.historyPage.Hide()

	switch page {
	case pageAbout:
		a.aboutPage.Show()
	case pageHistory:
		a.historyPage.Show()
		a.loadHistory()
	default:
		a.homePage.Show()
	}
}

// loadHistory reads the recent conversions in the background
func (a *Application) loadHistory() {
	store := a.processor.History()
	if store == nil {
		a.historyViewer.SetMessage(a.loc.T(i18n.MsgHistoryOff))
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		entries, err := store.Recent(a.ctx, history.DefaultLimit)
		if errors.Is(err, context.Canceled) {
			return
		}

		fyne.Do(func() {
			if err != nil {
				a.historyViewer.SetMessage(a.loc.Tf(i18n.MsgHistoryError, map[string]interface{}{"Error": err.Error()}))
				return
			}
			a.historyViewer.SetEntries(entries, a.loc.T(i18n.MsgHistoryEmpty))
		})
	}()
}

// applyLanguage relabels every widget in the current language
func (a *Application) applyLanguage() {
	loc := a.loc

	a.languageToggle.Text = "🏴 " + loc.T(i18n.MsgEnglish)
	a.languageToggle.Refresh()

	selected := a.menuSelect.SelectedIndex()
	if selected < 0 {
		selected = pageHome
	}
	a.menuSelect.PlaceHolder = loc.T(i18n.MsgSelectMenu)
	a.menuSelect.Options = []string{
		"🏘 " + loc.T(i18n.MsgMenuHome),
		"✍️ " + loc.T(i18n.MsgMenuAbout),
		"🗂 " + loc.T(i18n.MsgMenuHistory),
	}
	a.menuSelect.SetSelectedIndex(selected)

	a.titleLabel.SetText("🎁 " + loc.T(i18n.MsgAppTitle))
	a.inputLabel.SetText("💬 " + loc.T(i18n.MsgInputLabel))
	a.textInput.SetPlaceHolder(loc.Tf(i18n.MsgInputHint, map[string]interface{}{"Limit": translit.WordLimitHint}))
	a.convertButton.SetText(loc.T(i18n.MsgConvert))
	a.convertButton.SetToolTip(loc.T(i18n.MsgConvert) + " (Ctrl+Enter)")
	a.progressLabel.SetText(loc.T(i18n.MsgProgress))
	a.processedPanel.Items[0].Title = "🔻 " + loc.T(i18n.MsgProcessedText) + " 🔻"
	a.processedPanel.Refresh()
	a.updateHint()

	if text := a.processedText.Text; text != "" {
		a.latinText.SetText(loc.T(i18n.MsgLatinReading) + ": " + translit.ToLatin(text))
	}

	a.aboutText.ParseMarkdown(loc.T(i18n.MsgAboutText))
	a.developerLink.SetText("🧑‍💻 " + loc.T(i18n.MsgDeveloper))
	a.audioPlayer.SetPlayTooltip(loc.T(i18n.MsgPlay))
	a.historyViewer.SetTitle(loc.T(i18n.MsgMenuHistory))

	a.window.SetTitle("ttsuz - " + loc.T(i18n.MsgAppTitle))
}
