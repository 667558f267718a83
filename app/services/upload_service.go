package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ashrith-07/campus-bites-sub000/pkg/apperr"
	"github.com/ashrith-07/campus-bites-sub000/pkg/storage"
)

// MaxUploadBytes caps a single image upload at 5 MB.
const MaxUploadBytes = 5 << 20

// UploadService stores menu images on the configured disk.
type UploadService struct {
	disk storage.Disk
}

func NewUploadService(disk storage.Disk) *UploadService {
	return &UploadService{disk: disk}
}

// UploadResult identifies a stored image.
type UploadResult struct {
	ImageURL string `json:"imageUrl"`
	PublicID string `json:"publicId"`
}

// StoreImage validates and persists one uploaded image. Only image/*
// content up to MaxUploadBytes is accepted.
func (s *UploadService) StoreImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (UploadResult, error) {
	if header.Size > MaxUploadBytes {
		return UploadResult{}, apperr.InvalidInput("Image must be 5 MB or smaller")
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		return UploadResult{}, apperr.InvalidInput("Only image uploads are accepted")
	}

	publicID := uuid.NewString()
	key := "uploads/" + publicID + strings.ToLower(filepath.Ext(header.Filename))

	if err := s.disk.Put(ctx, key, file); err != nil {
		return UploadResult{}, apperr.Internal(err)
	}

	return UploadResult{
		ImageURL: s.disk.URL(key),
		PublicID: publicID,
	}, nil
}
