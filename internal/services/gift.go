package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/secondchance/apiserver/internal/events"
	"github.com/secondchance/apiserver/internal/store"
	"github.com/secondchance/apiserver/types"
	"go.uber.org/zap"
)

// ErrValidation is returned when a create or update payload is missing one
// of the mandatory gift fields.
var ErrValidation = errors.New("name, category, and condition are required fields")

// requiredFields are mandatory non-empty on create and on update.
var requiredFields = []string{"name", "category", "condition"}

// GiftRepository defines persistence operations for gifts.
type GiftRepository interface {
	List(ctx context.Context) ([]types.Gift, error)
	GetByGiftID(ctx context.Context, giftID string) (types.Gift, error)
	Create(ctx context.Context, gift types.Gift) (types.Gift, error)
	Update(ctx context.Context, giftID string, fields map[string]any) error
	Delete(ctx context.Context, giftID string) error
	Search(ctx context.Context, filter store.SearchFilter) ([]types.Gift, error)
}

// EventPublisher publishes catalog change events. May be nil-backed in
// tests; the service treats publication as fire-and-forget.
type EventPublisher interface {
	GiftChanged(ctx context.Context, eventType, giftID string) error
}

// GiftService encapsulates gift use-cases: validation, business id
// assignment and event publication around the repository.
type GiftService struct {
	repo      GiftRepository
	publisher EventPublisher
	logger    *zap.SugaredLogger
}

func NewGiftService(repo GiftRepository, publisher EventPublisher, logger *zap.SugaredLogger) *GiftService {
	return &GiftService{repo: repo, publisher: publisher, logger: logger}
}

func (s *GiftService) List(ctx context.Context) ([]types.Gift, error) {
	return s.repo.List(ctx)
}

func (s *GiftService) Get(ctx context.Context, giftID string) (types.Gift, error) {
	return s.repo.GetByGiftID(ctx, giftID)
}

// Create validates the mandatory fields, assigns a business id when the
// caller did not supply one, and persists the gift. Without the assignment
// a freshly created gift could never be addressed again.
func (s *GiftService) Create(ctx context.Context, gift types.Gift) (types.Gift, error) {
	if strings.TrimSpace(gift.Name) == "" ||
		strings.TrimSpace(gift.Category) == "" ||
		strings.TrimSpace(gift.Condition) == "" {
		return types.Gift{}, ErrValidation
	}

	if strings.TrimSpace(gift.GiftID) == "" {
		gift.GiftID = uuid.NewString()
	}
	if gift.DateAdded == 0 {
		gift.DateAdded = time.Now().Unix()
	}

	created, err := s.repo.Create(ctx, gift)
	if err != nil {
		return types.Gift{}, err
	}

	s.publish(ctx, events.GiftCreated, created.GiftID)
	return created, nil
}

// Update merges the payload into the stored gift: present fields
// overwrite, absent fields are preserved. The addressing keys are not
// updatable through the payload.
func (s *GiftService) Update(ctx context.Context, giftID string, fields map[string]any) (types.Gift, error) {
	for _, field := range requiredFields {
		value, ok := fields[field].(string)
		if !ok || strings.TrimSpace(value) == "" {
			return types.Gift{}, ErrValidation
		}
	}

	delete(fields, "_id")
	delete(fields, "id")

	if err := s.repo.Update(ctx, giftID, fields); err != nil {
		return types.Gift{}, err
	}

	s.publish(ctx, events.GiftUpdated, giftID)
	return s.repo.GetByGiftID(ctx, giftID)
}

func (s *GiftService) Delete(ctx context.Context, giftID string) error {
	if err := s.repo.Delete(ctx, giftID); err != nil {
		return err
	}

	s.publish(ctx, events.GiftDeleted, giftID)
	return nil
}

func (s *GiftService) Search(ctx context.Context, filter store.SearchFilter) ([]types.Gift, error) {
	return s.repo.Search(ctx, filter)
}

// AttachImage records the object-store key of a gift's uploaded image.
// This is an internal partial update and bypasses required-field checks.
func (s *GiftService) AttachImage(ctx context.Context, giftID, key string) error {
	if err := s.repo.Update(ctx, giftID, map[string]any{"image": key}); err != nil {
		return err
	}

	s.publish(ctx, events.GiftUpdated, giftID)
	return nil
}

// publish emits a catalog event. Publication failure never fails the
// request that caused it.
func (s *GiftService) publish(ctx context.Context, eventType, giftID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.GiftChanged(ctx, eventType, giftID); err != nil && s.logger != nil {
		s.logger.Errorw("failed to publish catalog event",
			"type", eventType, "gift_id", giftID, "error", err)
	}
}
