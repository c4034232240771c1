// Package photo mutates the photo lists embedded two levels deep in the
// itinerary aggregate. Photos have no standalone document; every mutation
// rewrites the full owning itinerary.
package photo

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tripvault/internal/domain"
	"tripvault/internal/events"
	"tripvault/pkg/domainerrors"
)

// SavedImage describes where an image's bytes ended up on disk.
type SavedImage struct {
	Path          string
	ThumbnailPath string
	Width         *int
	Height        *int
	Size          int64
}

// ImageStorage persists image bytes outside the document store.
type ImageStorage interface {
	SaveImage(ctx context.Context, ownerID string, fileName string, data []byte) (SavedImage, error)
	DeleteImage(ctx context.Context, path, thumbnailPath string) error
	LoadImage(ctx context.Context, path string) ([]byte, error)
}

// ItineraryStore is the slice of the itinerary repository the photo service
// needs: full enumeration (to locate a photo's owner) and write-back.
type ItineraryStore interface {
	GetAll(ctx context.Context) ([]domain.Itinerary, error)
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
}

// ItemSaver rewrites the standalone document of the item whose photo list
// changed, keeping it in step with the embedded copy.
type ItemSaver interface {
	Save(ctx context.Context, item domain.ItineraryItem) error
}

// Service orchestrates photo mutations across the aggregate and the image
// files on disk.
type Service struct {
	itineraries ItineraryStore
	items       ItemSaver
	images      ImageStorage
	publisher   *events.Publisher
	logger      *slog.Logger
}

func NewService(itineraries ItineraryStore, items ItemSaver, images ImageStorage, publisher *events.Publisher, logger *slog.Logger) *Service {
	return &Service{itineraries: itineraries, items: items, images: images, publisher: publisher, logger: logger}
}

// AddPhoto stores the image bytes, then appends the photo to the item's list.
// The stored image is removed again when the document write fails, so no
// orphan files accumulate.
func (s *Service) AddPhoto(ctx context.Context, itemID, fileName string, data []byte) (domain.Photo, error) {
	owner, item, err := s.findOwner(ctx, itemID)
	if err != nil {
		return domain.Photo{}, err
	}

	saved, err := s.images.SaveImage(ctx, itemID, fileName, data)
	if err != nil {
		return domain.Photo{}, domainerrors.Newf(domainerrors.CodeStoreFailure, "store image for item %s: %v", itemID, err)
	}

	now := time.Now().UTC()
	photo := domain.Photo{
		ID:            uuid.NewString(),
		ItemID:        itemID,
		FileName:      fileName,
		FilePath:      saved.Path,
		ThumbnailPath: saved.ThumbnailPath,
		Order:         0,
		Width:         saved.Width,
		Height:        saved.Height,
		FileSize:      saved.Size,
		UploadedAt:    now,
		ModifiedAt:    now,
	}
	item.Photos = append(item.Photos, photo)

	if err := s.writeBack(ctx, owner, item); err != nil {
		if cleanupErr := s.images.DeleteImage(ctx, saved.Path, saved.ThumbnailPath); cleanupErr != nil {
			s.logger.WarnContext(ctx, "orphan image left behind", "path", saved.Path, "error", cleanupErr)
		}
		return domain.Photo{}, err
	}
	s.publisher.Emit(ctx, "photo.added", photo.ID)
	return photo, nil
}

// DeletePhoto drops the photo from the item and clears the cover pointer if
// it referenced the deleted photo. Image file removal is best-effort.
func (s *Service) DeletePhoto(ctx context.Context, photoID string) error {
	owner, item, photo, err := s.findPhoto(ctx, photoID)
	if err != nil {
		return err
	}

	kept := item.Photos[:0]
	for _, p := range item.Photos {
		if p.ID != photoID {
			kept = append(kept, p)
		}
	}
	item.Photos = kept
	if item.CoverPhotoID != nil && *item.CoverPhotoID == photoID {
		item.CoverPhotoID = nil
	}

	if err := s.writeBack(ctx, owner, item); err != nil {
		return err
	}
	if err := s.images.DeleteImage(ctx, photo.FilePath, photo.ThumbnailPath); err != nil {
		s.logger.WarnContext(ctx, "image file cleanup failed", "photo_id", photoID, "error", err)
	}
	s.publisher.Emit(ctx, "photo.deleted", photoID)
	return nil
}

// SetCoverPhoto points the item's cover at an existing photo. When the photo
// does not exist nothing is written.
func (s *Service) SetCoverPhoto(ctx context.Context, itemID, photoID string) error {
	owner, item, err := s.findOwner(ctx, itemID)
	if err != nil {
		return err
	}
	if item.PhotoByID(photoID) == nil {
		return domainerrors.Newf(domainerrors.CodeNotFound, "photo %s not found on item %s", photoID, itemID)
	}

	item.CoverPhotoID = &photoID
	for i := range item.Photos {
		item.Photos[i].IsCover = item.Photos[i].ID == photoID
	}
	return s.writeBack(ctx, owner, item)
}

// ReorderPhotos rewrites the item's photo list to exactly orderedIDs filtered
// to photos that exist, in that order. Photos the caller leaves out are
// dropped, and a dropped cover clears the cover pointer.
func (s *Service) ReorderPhotos(ctx context.Context, itemID string, orderedIDs []string) ([]domain.Photo, error) {
	owner, item, err := s.findOwner(ctx, itemID)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]domain.Photo, len(item.Photos))
	for _, p := range item.Photos {
		existing[p.ID] = p
	}

	reordered := make([]domain.Photo, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		p, ok := existing[id]
		if !ok {
			continue
		}
		p.Order = len(reordered)
		reordered = append(reordered, p)
		delete(existing, id)
	}
	item.Photos = reordered

	if item.CoverPhotoID != nil && item.PhotoByID(*item.CoverPhotoID) == nil {
		item.CoverPhotoID = nil
	}

	if err := s.writeBack(ctx, owner, item); err != nil {
		return nil, err
	}
	return reordered, nil
}

// LoadImage streams the stored bytes for a photo's file path.
func (s *Service) LoadImage(ctx context.Context, photoID string) ([]byte, string, error) {
	_, _, photo, err := s.findPhoto(ctx, photoID)
	if err != nil {
		return nil, "", err
	}
	data, err := s.images.LoadImage(ctx, photo.FilePath)
	if err != nil {
		return nil, "", domainerrors.Newf(domainerrors.CodeStoreFailure, "load image for photo %s: %v", photoID, err)
	}
	return data, photo.FileName, nil
}

// findOwner scans every itinerary for the item. The store has no reverse
// index from item to itinerary, so enumeration is the lookup.
func (s *Service) findOwner(ctx context.Context, itemID string) (domain.Itinerary, domain.ItineraryItem, error) {
	all, err := s.itineraries.GetAll(ctx)
	if err != nil {
		return domain.Itinerary{}, domain.ItineraryItem{}, err
	}
	for _, it := range all {
		for _, item := range it.Items {
			if item.ID == itemID {
				return it, item, nil
			}
		}
	}
	return domain.Itinerary{}, domain.ItineraryItem{},
		domainerrors.Newf(domainerrors.CodeNotFound, "item %s not found on any itinerary", itemID)
}

func (s *Service) findPhoto(ctx context.Context, photoID string) (domain.Itinerary, domain.ItineraryItem, domain.Photo, error) {
	all, err := s.itineraries.GetAll(ctx)
	if err != nil {
		return domain.Itinerary{}, domain.ItineraryItem{}, domain.Photo{}, err
	}
	for _, it := range all {
		for _, item := range it.Items {
			if p := item.PhotoByID(photoID); p != nil {
				return it, item, *p, nil
			}
		}
	}
	return domain.Itinerary{}, domain.ItineraryItem{}, domain.Photo{},
		domainerrors.Newf(domainerrors.CodeNotFound, "photo %s not found", photoID)
}

// writeBack persists the mutated item into the itinerary and then refreshes
// the standalone item document. The itinerary is authoritative for photos, so
// a failed standalone refresh is logged, not surfaced.
func (s *Service) writeBack(ctx context.Context, owner domain.Itinerary, item domain.ItineraryItem) error {
	item.ModifiedAt = time.Now().UTC()
	if !owner.ReplaceItem(item) {
		owner.Items = append(owner.Items, item)
	}
	if _, err := s.itineraries.Update(ctx, owner); err != nil {
		return err
	}
	if err := s.items.Save(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "standalone item refresh failed after photo change", "item_id", item.ID, "error", err)
	}
	return nil
}
