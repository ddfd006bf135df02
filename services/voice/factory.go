package voice

import (
	"context"

	"hotelsupport/config"
)

// NewFromConfig selects the speech backends named by VOICE_BACKEND. With
// "none" both are nil and the voice endpoint is disabled.
func NewFromConfig(ctx context.Context, cfg config.Config) (Transcriber, Synthesizer, func(), error) {
	if cfg.VoiceBackend != "google" {
		return nil, nil, func() {}, nil
	}

	stt, err := NewGoogleTranscriber(ctx, cfg.GoogleServiceAccountFile, cfg.STTLanguage)
	if err != nil {
		return nil, nil, nil, err
	}
	tts, err := NewGoogleSynthesizer(ctx, cfg.GoogleServiceAccountFile, cfg.TTSLanguage, cfg.TTSVoice)
	if err != nil {
		stt.Close()
		return nil, nil, nil, err
	}
	return stt, tts, func() {
		stt.Close()
		tts.Close()
	}, nil
}
