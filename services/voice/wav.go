package voice

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	MaxDuration = 60 * time.Second
	MaxFileSize = 5 * 1024 * 1024
)

var (
	ErrNotWAV          = errors.New("audio is not a RIFF/WAVE file")
	ErrUnsupportedWAV  = errors.New("audio must be 16-bit linear PCM")
	ErrAudioTooLarge   = fmt.Errorf("audio exceeds %d bytes", MaxFileSize)
	ErrAudioTooLong    = fmt.Errorf("audio exceeds %s", MaxDuration)
	ErrMissingDataPart = errors.New("audio has no data chunk")
)

// WAVInfo is what the recognizer needs to know about an upload.
type WAVInfo struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
	DataSize      int
	Duration      time.Duration
}

type fmtChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// ParseWAV walks the RIFF chunks of data and validates the upload limits.
func ParseWAV(data []byte) (*WAVInfo, error) {
	if len(data) > MaxFileSize {
		return nil, ErrAudioTooLarge
	}
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, ErrNotWAV
	}

	r := bytes.NewReader(data[12:])
	var (
		format  *fmtChunk
		dataLen int
	)
	for dataLen == 0 {
		var id [4]byte
		var size uint32
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			break
		}
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, ErrNotWAV
		}

		switch string(id[:]) {
		case "fmt ":
			if size < 16 {
				return nil, ErrNotWAV
			}
			format = &fmtChunk{}
			if err := binary.Read(r, binary.LittleEndian, format); err != nil {
				return nil, ErrNotWAV
			}
			if _, err := r.Seek(int64(size-16+size%2), io.SeekCurrent); err != nil {
				return nil, ErrNotWAV
			}
		case "data":
			if format == nil {
				return nil, ErrNotWAV
			}
			dataLen = int(size)
			if remaining := r.Len(); dataLen > remaining {
				dataLen = remaining
			}
			if dataLen == 0 {
				return nil, ErrMissingDataPart
			}
		default:
			if _, err := r.Seek(int64(size+size%2), io.SeekCurrent); err != nil {
				return nil, ErrNotWAV
			}
		}
	}

	if format == nil {
		return nil, ErrNotWAV
	}
	if dataLen == 0 {
		return nil, ErrMissingDataPart
	}
	if format.AudioFormat != 1 || format.BitsPerSample != 16 || format.NumChannels == 0 || format.SampleRate == 0 {
		return nil, ErrUnsupportedWAV
	}

	bytesPerSecond := int(format.SampleRate) * int(format.NumChannels) * 2
	info := &WAVInfo{
		Channels:      int(format.NumChannels),
		SampleRate:    int(format.SampleRate),
		BitsPerSample: int(format.BitsPerSample),
		DataSize:      dataLen,
		Duration:      time.Duration(dataLen) * time.Second / time.Duration(bytesPerSecond),
	}
	if info.Duration > MaxDuration {
		return nil, ErrAudioTooLong
	}
	return info, nil
}
