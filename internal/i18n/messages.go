package i18n

import (
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

// Message IDs
const (
	MsgAppTitle      = "AppTitle"
	MsgInputLabel    = "InputLabel"
	MsgInputHint     = "InputHint"
	MsgConvert       = "Convert"
	MsgProgress      = "Progress"
	MsgSuccess       = "Success"
	MsgProcessedText = "ProcessedText"
	MsgStatusError   = "StatusError"
	MsgRequestError  = "RequestError"
	MsgSelectMenu    = "SelectMenu"
	MsgMenuHome      = "MenuHome"
	MsgMenuAbout     = "MenuAbout"
	MsgEnglish       = "English"
	MsgAboutText     = "AboutText"
	MsgDeveloper     = "Developer"
	MsgWordLimit     = "WordLimit"
	MsgPlay          = "Play"
	MsgLatinReading  = "LatinReading"
	MsgMenuHistory   = "MenuHistory"
	MsgHistoryEmpty  = "HistoryEmpty"
	MsgHistoryOff    = "HistoryOff"
	MsgHistoryError  = "HistoryError"
)

const aboutText = `### Generative AI (GenAI)
- Generative AI (GenAI) is an artificial intelligence system capable of generating text, images, videos, or other forms of data using generative models.
- It often responds to prompts and has seen unprecedented growth in recent years due to advancements in transformer-based deep neural networks and large language models (LLMs).
- Examples include chatbots like ChatGPT, image generation systems like Stable Diffusion, and video generation models like Sora.

### Applications and Concerns
- GenAI is being applied in various fields, including software development, healthcare, finance, entertainment, marketing, art, fashion, and product design.
- However, concerns have been raised about the potential misuse of GenAI for cybercrime, spreading misinformation, or replacing human jobs on a large scale.`

var englishMessages = []*goi18n.Message{
	{ID: MsgAppTitle, Other: "Text-to-Speech Conversion App"},
	{ID: MsgInputLabel, Other: "Enter text"},
	{ID: MsgInputHint, Other: "Please limit the text to {{.Limit}} words or less."},
	{ID: MsgConvert, Other: "Convert to Speech"},
	{ID: MsgProgress, Other: "Processing started. Please wait a moment."},
	{ID: MsgSuccess, Other: "Text converted to speech successfully!"},
	{ID: MsgProcessedText, Other: "Processed Text"},
	{ID: MsgStatusError, Other: "Error occurred with status code: {{.StatusCode}}"},
	{ID: MsgRequestError, Other: "Error in text-to-speech conversion: {{.Error}}"},
	{ID: MsgSelectMenu, Other: "Select menu"},
	{ID: MsgMenuHome, Other: "Home"},
	{ID: MsgMenuAbout, Other: "About"},
	{ID: MsgEnglish, Other: "English"},
	{ID: MsgAboutText, Other: aboutText},
	{ID: MsgDeveloper, Other: "About the developer"},
	{ID: MsgWordLimit, Other: "The text has {{.Count}} words, more than the suggested {{.Limit}}"},
	{ID: MsgPlay, Other: "Play"},
	{ID: MsgLatinReading, Other: "Latin reading"},
	{ID: MsgMenuHistory, Other: "History"},
	{ID: MsgHistoryEmpty, Other: "No conversions yet."},
	{ID: MsgHistoryOff, Other: "History is disabled."},
	{ID: MsgHistoryError, Other: "Could not load history: {{.Error}}"},
}

var uzbekMessages = []*goi18n.Message{
	{ID: MsgAppTitle, Other: "Matndan nutqqa generatsiya qilish dasturi"},
	{ID: MsgInputLabel, Other: "Matn kiriting"},
	{ID: MsgInputHint, Other: "Iltimos bu qismda so'zlar soni {{.Limit}} tadan oshmasin"},
	{ID: MsgConvert, Other: "Nutqqa aylantirish"},
	{ID: MsgProgress, Other: "Jarayon boshlandi. Iltimos ozgina vaqt kuting."},
	{ID: MsgSuccess, Other: "Matn nutqqa muvaffaqiyatli aylantirildi!"},
	{ID: MsgProcessedText, Other: "Qayta ishlangan matn"},
	{ID: MsgStatusError, Other: "Xatolik yuz berdi, holat kodi: {{.StatusCode}}"},
	{ID: MsgRequestError, Other: "Matnni nutqqa aylantirishda xatolik: {{.Error}}"},
	{ID: MsgSelectMenu, Other: "Menyuni tanlang"},
	{ID: MsgMenuHome, Other: "Bosh sahifa"},
	{ID: MsgMenuAbout, Other: "Dastur haqida"},
	{ID: MsgEnglish, Other: "English"},
	{ID: MsgAboutText, Other: aboutText},
	{ID: MsgDeveloper, Other: "Dasturchi haqida"},
	{ID: MsgWordLimit, Other: "Matnda {{.Count}} ta so'z bor, tavsiya etilgan {{.Limit}} tadan ko'p"},
	{ID: MsgPlay, Other: "Tinglash"},
	{ID: MsgLatinReading, Other: "Lotin yozuvida"},
	{ID: MsgMenuHistory, Other: "Tarix"},
	{ID: MsgHistoryEmpty, Other: "Hali hech narsa aylantirilmagan."},
	{ID: MsgHistoryOff, Other: "Tarix o'chirilgan."},
	{ID: MsgHistoryError, Other: "Tarixni yuklab bo'lmadi: {{.Error}}"},
}
