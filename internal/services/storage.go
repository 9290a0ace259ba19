package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ImageStore abstrait le stockage des images produits.
type ImageStore interface {
	UploadProductImage(ctx context.Context, file *multipart.FileHeader) (string, error)
	RemoveImage(ctx context.Context, imageURL string) error
}

// Storage range les images produits dans un bucket MinIO.
type Storage struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

func NewStorage(client *minio.Client) *Storage {
	if client == nil {
		return nil
	}
	return &Storage{
		client:   client,
		bucket:   os.Getenv("MINIO_BUCKET"),
		endpoint: os.Getenv("MINIO_ENDPOINT"),
		useSSL:   os.Getenv("MINIO_USE_SSL") == "true",
	}
}

// UploadProductImage stocke le fichier sous products/<uuid><ext> et renvoie
// son URL publique.
func (s *Storage) UploadProductImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("ouverture fichier: %w", err)
	}
	defer f.Close()

	objectName := "products/" + uuid.NewString() + filepath.Ext(file.Filename)
	_, err = s.client.PutObject(ctx, s.bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", fmt.Errorf("upload MinIO: %w", err)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName), nil
}

// RemoveImage supprime l'objet désigné par son URL publique.
func (s *Storage) RemoveImage(ctx context.Context, imageURL string) error {
	key := s.objectKey(imageURL)
	if key == "" {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// objectKey retrouve la clé objet à partir de l'URL stockée sur le produit.
func (s *Storage) objectKey(imageURL string) string {
	marker := "/" + s.bucket + "/"
	idx := strings.Index(imageURL, marker)
	if idx < 0 {
		return ""
	}
	return imageURL[idx+len(marker):]
}
