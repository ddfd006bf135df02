package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"hotelsupport/utils"
)

// AudioStore hosts synthesized replies and returns a URL the client can play.
type AudioStore interface {
	SaveReply(ctx context.Context, sessionID string, audio []byte) (string, error)
}

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryAudioStore uploads MP3 replies into one folder. Cloudinary files
// audio under the "video" resource type.
type CloudinaryAudioStore struct {
	upload uploadAPI
	folder string
}

func NewCloudinaryAudioStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryAudioStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryAudioStore{upload: &cld.Upload, folder: folder}, nil
}

func (s *CloudinaryAudioStore) SaveReply(ctx context.Context, sessionID string, audio []byte) (string, error) {
	result, err := s.upload.Upload(ctx, bytes.NewReader(audio), uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     sessionID + "-" + utils.ShortID(),
		ResourceType: "video",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload reply audio: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected reply audio: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no URL")
	}
	return result.SecureURL, nil
}
