package handlers

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"hotelsupport/models"
	"hotelsupport/services/intelligence"
	"hotelsupport/services/storage"
	"hotelsupport/services/voice"
	"hotelsupport/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const allowedAudioExtension = ".wav"

// VoiceHandler runs transcribe, route and synthesize for one spoken message.
type VoiceHandler struct {
	Router      *intelligence.Router
	Transcriber voice.Transcriber
	Synthesizer voice.Synthesizer
	Audio       storage.AudioStore
	// Timeout bounds each speech and upload call. Zero means no deadline.
	Timeout time.Duration
}

func NewVoiceHandler(router *intelligence.Router, stt voice.Transcriber, tts voice.Synthesizer, audio storage.AudioStore, timeout time.Duration) *VoiceHandler {
	return &VoiceHandler{Router: router, Transcriber: stt, Synthesizer: tts, Audio: audio, Timeout: timeout}
}

type VoiceResponse struct {
	Transcription string             `json:"transcription"`
	Reply         *models.AIResponse `json:"reply"`
	AudioURL      string             `json:"audio_url,omitempty"`
	AudioBase64   string             `json:"audio_base64,omitempty"`
}

func (h *VoiceHandler) HandleVoice(c *gin.Context) {
	logger := getLogger(c)
	if h.Transcriber == nil {
		utils.JSONError(c, http.StatusNotImplemented, "voice is disabled", "VOICE_BACKEND is none")
		return
	}

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "audio file is required", err.Error())
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != allowedAudioExtension {
		utils.JSONError(c, http.StatusBadRequest, "invalid file type", fmt.Sprintf("expected %s, got %s", allowedAudioExtension, ext))
		return
	}

	audio, err := io.ReadAll(io.LimitReader(file, voice.MaxFileSize+1))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read audio file", err.Error())
		return
	}
	if _, err := voice.ParseWAV(audio); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid audio", err.Error())
		return
	}

	text, err := h.transcribe(c.Request.Context(), audio, c.PostForm("language"))
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			logger.Warn("Transcription failed", zap.Error(err), zap.Bool("timeout", errors.Is(err, context.DeadlineExceeded)))
		}
		c.JSON(http.StatusUnprocessableEntity, utils.ErrorResponse{
			Message:   "no input received",
			Code:      string(models.CodeExternalFailure),
			Retryable: true,
		})
		return
	}

	reply, err := h.Router.Handle(c.Request.Context(), c.Param("id"), text)
	if err != nil {
		utils.ServiceErrorJSON(c, err)
		return
	}

	resp := VoiceResponse{Transcription: text, Reply: reply}
	if h.Synthesizer != nil {
		h.attachAudio(c, &resp)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VoiceHandler) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if h.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.Timeout)
}

func (h *VoiceHandler) transcribe(parent context.Context, audio []byte, language string) (string, error) {
	ctx, cancel := h.callContext(parent)
	defer cancel()
	return h.Transcriber.Transcribe(ctx, audio, language)
}

// attachAudio adds the spoken reply. Failures leave a text-only reply.
func (h *VoiceHandler) attachAudio(c *gin.Context, resp *VoiceResponse) {
	logger := getLogger(c)
	ctx, cancel := h.callContext(c.Request.Context())
	defer cancel()

	speech, err := h.Synthesizer.Synthesize(ctx, resp.Reply.ResponseText)
	if err != nil {
		logger.Warn("Speech synthesis failed", zap.Error(err))
		return
	}

	if h.Audio != nil {
		url, err := h.Audio.SaveReply(ctx, resp.Reply.SessionID, speech)
		if err == nil {
			resp.AudioURL = url
			return
		}
		logger.Warn("Reply audio upload failed", zap.Error(err))
	}
	resp.AudioBase64 = base64.StdEncoding.EncodeToString(speech)
}
