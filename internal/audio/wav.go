package audio

import (
	"bytes"
	"encoding/binary"
	"time"
)

const wavHeaderSize = 44

// IsWAV reports whether b starts with a RIFF/WAVE header
func IsWAV(b []byte) bool {
	return len(b) >= 12 && bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WAVE"))
}

// WrapPCM puts raw little-endian PCM samples into a WAV container
func WrapPCM(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+len(pcm)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

// Duration estimates the playing time of a canonical WAV file. It returns
// zero when the header cannot be read.
func Duration(b []byte) time.Duration {
	if !IsWAV(b) || len(b) < wavHeaderSize {
		return 0
	}

	byteRate := binary.LittleEndian.Uint32(b[28:32])
	if byteRate == 0 {
		return 0
	}

	dataSize := len(b) - wavHeaderSize
	return time.Duration(float64(dataSize) / float64(byteRate) * float64(time.Second))
}
