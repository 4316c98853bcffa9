package services

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/storage"
)

const (
	teamLogoPrefix    = "team-logos/"
	uploadURLLifetime = 300 * time.Second
	defaultMimeType   = "application/octet-stream"
)

type UploadService interface {
	// SignTeamLogoUpload returns a pre-signed PUT URL for team-logos/<objectName>.
	SignTeamLogoUpload(ctx context.Context, actor models.Actor, objectName string) (string, error)
}

type uploadService struct {
	signer storage.URLSigner
}

func NewUploadService(signer storage.URLSigner) UploadService {
	return &uploadService{signer: signer}
}

func (s *uploadService) SignTeamLogoUpload(ctx context.Context, actor models.Actor, objectName string) (string, error) {
	if !actor.IsAuthenticated() {
		return "", ErrAuthenticationRequired
	}
	if strings.TrimSpace(objectName) == "" {
		return "", ErrObjectNameRequired
	}

	url, err := s.signer.PresignPut(ctx, teamLogoPrefix+objectName, contentTypeFor(objectName), uploadURLLifetime)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}
	return url, nil
}

// contentTypeFor guesses the MIME type from the file extension.
func contentTypeFor(objectName string) string {
	ct := mime.TypeByExtension(strings.ToLower(path.Ext(objectName)))
	if ct == "" {
		return defaultMimeType
	}
	return ct
}
