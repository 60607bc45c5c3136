package internal

// Version is the ttsuz release version
const Version = "0.1.0"
