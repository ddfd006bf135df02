package voice

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWAV returns a PCM file with an optional LIST chunk before the data.
func buildWAV(t *testing.T, format, bits, channels uint16, rate uint32, samples int, withList bool) []byte {
	t.Helper()
	var body bytes.Buffer
	body.WriteString("WAVE")

	body.WriteString("fmt ")
	require.NoError(t, binary.Write(&body, binary.LittleEndian, uint32(16)))
	require.NoError(t, binary.Write(&body, binary.LittleEndian, fmtChunk{
		AudioFormat:   format,
		NumChannels:   channels,
		SampleRate:    rate,
		ByteRate:      rate * uint32(channels) * uint32(bits/8),
		BlockAlign:    channels * bits / 8,
		BitsPerSample: bits,
	}))

	if withList {
		body.WriteString("LIST")
		require.NoError(t, binary.Write(&body, binary.LittleEndian, uint32(5)))
		body.Write([]byte{'I', 'N', 'F', 'O', 0, 0})
	}

	data := make([]byte, samples*int(channels)*int(bits/8))
	body.WriteString("data")
	require.NoError(t, binary.Write(&body, binary.LittleEndian, uint32(len(data))))
	body.Write(data)

	var out bytes.Buffer
	out.WriteString("RIFF")
	require.NoError(t, binary.Write(&out, binary.LittleEndian, uint32(body.Len())))
	out.Write(body.Bytes())
	return out.Bytes()
}

func TestParseWAV(t *testing.T) {
	info, err := ParseWAV(buildWAV(t, 1, 16, 1, 16000, 32000, false))
	require.NoError(t, err)

	assert.Equal(t, 16000, info.SampleRate)
	assert.Equal(t, 1, info.Channels)
	assert.Equal(t, 64000, info.DataSize)
	assert.Equal(t, 2*time.Second, info.Duration)
}

func TestParseWAVSkipsUnknownChunks(t *testing.T) {
	info, err := ParseWAV(buildWAV(t, 1, 16, 2, 8000, 800, true))
	require.NoError(t, err)
	assert.Equal(t, 2, info.Channels)
	assert.Equal(t, 100*time.Millisecond, info.Duration)
}

func TestParseWAVRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not riff", []byte("ID3\x03 this is an mp3 file"), ErrNotWAV},
		{"float samples", buildWAV(t, 3, 16, 1, 16000, 100, false), ErrUnsupportedWAV},
		{"8-bit samples", buildWAV(t, 1, 8, 1, 16000, 100, false), ErrUnsupportedWAV},
		{"too long", buildWAV(t, 1, 16, 1, 8000, 8000*61, false), ErrAudioTooLong},
		{"too large", make([]byte, MaxFileSize+1), ErrAudioTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWAV(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
