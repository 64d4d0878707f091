package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"

	"server/config"
	"server/internal/apperr"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/storage"
)

// Asset categories, used as the key namespace in the object store.
const (
	CategoryResumes    = "resumes"
	CategoryPortfolios = "portfolios"
)

// AssetUploader is what the intake coordinator depends on.
type AssetUploader interface {
	UploadAll(ctx context.Context, resume Asset, images []Asset) (string, []string, error)
}

type UploadService struct {
	store     storage.ObjectStore
	keyPrefix string
	log       logger.Logger
}

func NewUploadService(store storage.ObjectStore, config config.Config) *UploadService {
	return &UploadService{
		store:     store,
		keyPrefix: strings.Trim(config.StorageKeyPrefix, "/"),
		log:       logger.New("UploadService"),
	}
}

// Upload stores one asset under its category namespace and returns the
// locator.
func (s *UploadService) Upload(ctx context.Context, asset Asset, category string) (string, error) {
	log := s.log.Function("Upload")

	key := s.objectKey(category, asset.FileName)
	locator, err := s.store.Put(ctx, key, asset.ContentType, asset.Content)
	if err != nil {
		return "", log.Err("failed to upload asset", err, "category", category, "fileName", asset.FileName)
	}

	return locator, nil
}

// UploadAll uploads the resume and every portfolio image concurrently and
// waits for all of them. Image locators come back in input order no matter
// which upload finishes first. Any single failure fails the whole batch
// with the first error seen; no partial locator list is ever returned.
func (s *UploadService) UploadAll(
	ctx context.Context,
	resume Asset,
	images []Asset,
) (string, []string, error) {
	log := s.log.Function("UploadAll")

	var resumeLocator string
	imageLocators := make([]string, len(images))

	var wg sync.WaitGroup
	errChan := make(chan error, 1)

	recordErr := func(err error) {
		select {
		case errChan <- err:
		default:
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		locator, err := s.Upload(ctx, resume, CategoryResumes)
		if err != nil {
			recordErr(err)
			return
		}
		resumeLocator = locator
	}()

	for i := range images {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			locator, err := s.Upload(ctx, images[index], CategoryPortfolios)
			if err != nil {
				recordErr(err)
				return
			}
			imageLocators[index] = locator
		}(i)
	}

	wg.Wait()

	select {
	case err := <-errChan:
		return "", nil, apperr.Upload("asset upload failed", err)
	default:
	}

	log.Info("Uploaded submission assets", "images", len(images))
	return resumeLocator, imageLocators, nil
}

func (s *UploadService) objectKey(category, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	name := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	if s.keyPrefix == "" {
		return path.Join(category, name)
	}
	return path.Join(s.keyPrefix, category, name)
}
