package voice

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"

	"hotelsupport/metrics"
)

// GoogleTranscriber recognizes 16-bit PCM WAV uploads with Cloud Speech-to-Text.
type GoogleTranscriber struct {
	client          *speech.Client
	defaultLanguage string
}

func NewGoogleTranscriber(ctx context.Context, credentialsFile, defaultLanguage string) (*GoogleTranscriber, error) {
	client, err := speech.NewClient(ctx, clientOptions(credentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech client: %w", err)
	}
	return &GoogleTranscriber{client: client, defaultLanguage: defaultLanguage}, nil
}

func (g *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	info, err := ParseWAV(audio)
	if err != nil {
		return "", err
	}
	if language == "" {
		language = g.defaultLanguage
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   int32(info.SampleRate),
			LanguageCode:      language,
			AudioChannelCount: int32(info.Channels),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	defer metrics.TimeExternalCall("transcribe")()
	resp, err := g.client.Recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcript.WriteString(result.Alternatives[0].Transcript + " ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}

func (g *GoogleTranscriber) Close() error {
	return g.client.Close()
}

// GoogleSynthesizer speaks replies with Cloud Text-to-Speech.
type GoogleSynthesizer struct {
	client   *texttospeech.Client
	language string
	voice    string
}

func NewGoogleSynthesizer(ctx context.Context, credentialsFile, language, voiceName string) (*GoogleSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx, clientOptions(credentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize text-to-speech client: %w", err)
	}
	return &GoogleSynthesizer{client: client, language: language, voice: voiceName}, nil
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.language,
			Name:         g.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	defer metrics.TimeExternalCall("synthesize")()
	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	return resp.AudioContent, nil
}

func (g *GoogleSynthesizer) Close() error {
	return g.client.Close()
}

func clientOptions(credentialsFile string) []option.ClientOption {
	if credentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}
