package i18n

import (
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"en", English},
		{"uz", Uzbek},
		{"", Uzbek},
		{"de", Uzbek},
	}

	for _, tt := range tests {
		if got := New(tt.lang).Language(); got != tt.want {
			t.Errorf("New(%q).Language() = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestT(t *testing.T) {
	tests := []struct {
		lang string
		id   string
		want string
	}{
		{Uzbek, MsgInputLabel, "Matn kiriting"},
		{English, MsgInputLabel, "Enter text"},
		{Uzbek, MsgMenuHome, "Bosh sahifa"},
		{Uzbek, MsgMenuAbout, "Dastur haqida"},
		{English, MsgMenuAbout, "About"},
		{Uzbek, MsgProgress, "Jarayon boshlandi. Iltimos ozgina vaqt kuting."},
		{English, "NoSuchMessage", "NoSuchMessage"},
	}

	for _, tt := range tests {
		if got := New(tt.lang).T(tt.id); got != tt.want {
			t.Errorf("T(%s, %s) = %q, want %q", tt.lang, tt.id, got, tt.want)
		}
	}
}

func TestTf(t *testing.T) {
	l := New(English)

	got := l.Tf(MsgStatusError, map[string]interface{}{"StatusCode": 503})
	if got != "Error occurred with status code: 503" {
		t.Errorf("Tf() = %q", got)
	}

	got = New(Uzbek).Tf(MsgInputHint, map[string]interface{}{"Limit": 500})
	if got != "Iltimos bu qismda so'zlar soni 500 tadan oshmasin" {
		t.Errorf("Tf() = %q", got)
	}
}

func TestMessagesComplete(t *testing.T) {
	uz := make(map[string]bool)
	for _, m := range uzbekMessages {
		uz[m.ID] = true
	}
	for _, m := range englishMessages {
		if !uz[m.ID] {
			t.Errorf("message %s has no Uzbek translation", m.ID)
		}
	}
	if len(uzbekMessages) != len(englishMessages) {
		t.Errorf("got %d Uzbek and %d English messages", len(uzbekMessages), len(englishMessages))
	}
}
