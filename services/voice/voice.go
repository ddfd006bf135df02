package voice

import "context"

// Transcriber turns recorded speech into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// Synthesizer turns a reply into speech. It returns MP3 bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
