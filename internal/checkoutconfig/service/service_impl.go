package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/checkoutconfig/domain"
	"github.com/elzapay/elza/internal/merchantctx"
	merchantdomain "github.com/elzapay/elza/internal/merchant/domain"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxSlugLen = 50

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	// label.tld, lowercase; matches the admin-form validation upstream.
	domainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z]{2,})+$`)
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	MerchantRepo merchantdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	repo         domain.Repository
	merchantRepo merchantdomain.Repository
	genID        *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("checkoutconfig.service"),
		repo:         p.Repo,
		merchantRepo: p.MerchantRepo,
		genID:        p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	checkoutType := domain.CheckoutType(strings.TrimSpace(req.CheckoutType))
	if !checkoutType.Valid() {
		return nil, domain.ErrInvalidType
	}

	configSlug, err := s.resolveSlug(ctx, req.Slug, name, 0)
	if err != nil {
		return nil, err
	}

	customDomain, err := s.resolveDomain(ctx, req.CustomDomain, 0)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	products := req.Products
	if products == nil {
		products = []string{}
	}

	now := time.Now().UTC()
	c := &domain.CheckoutConfig{
		ID:             s.genID.Generate(),
		MerchantID:     merchantID,
		Name:           name,
		Description:    trimPtr(req.Description),
		Slug:           configSlug,
		CustomDomain:   customDomain,
		ProductIDs:     products,
		CheckoutType:   checkoutType,
		Customizations: req.Customizations,
		Active:         active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, s.db, c); err != nil {
		return nil, err
	}

	resp := toResponse(c)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	items, err := s.repo.FindAll(ctx, s.db, merchantID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	item, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Description != nil {
		item.Description = trimPtr(req.Description)
	}
	if req.Slug != nil {
		newSlug, err := s.resolveSlug(ctx, req.Slug, item.Name, item.ID)
		if err != nil {
			return nil, err
		}
		item.Slug = newSlug
	}
	if req.CustomDomain != nil {
		newDomain, err := s.resolveDomain(ctx, req.CustomDomain, item.ID)
		if err != nil {
			return nil, err
		}
		item.CustomDomain = newDomain
	}
	if req.Products != nil {
		item.ProductIDs = req.Products
	}
	if req.CheckoutType != nil {
		checkoutType := domain.CheckoutType(strings.TrimSpace(*req.CheckoutType))
		if !checkoutType.Valid() {
			return nil, domain.ErrInvalidType
		}
		item.CheckoutType = checkoutType
	}
	if req.Customizations != nil {
		item.Customizations = *req.Customizations
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, item.MerchantID, item.ID)
}

func (s *Service) SlugAvailable(ctx context.Context, candidate, excludeID string) (bool, error) {
	candidate = strings.TrimSpace(candidate)
	if !validSlug(candidate) {
		return false, domain.ErrInvalidSlug
	}

	existing, err := s.repo.FindBySlug(ctx, s.db, candidate)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return true, nil
	}
	if excludeID != "" && existing.ID.String() == strings.TrimSpace(excludeID) {
		return true, nil
	}
	return false, nil
}

func (s *Service) Public(ctx context.Context, key domain.PublicKey) (*domain.PublicConfig, error) {
	item, err := s.lookupPublic(ctx, key)
	if err != nil {
		return nil, err
	}
	// Inactive configurations are indistinguishable from missing ones on
	// the public path.
	if item == nil || !item.Active {
		return nil, domain.ErrNotFound
	}

	m, err := s.merchantRepo.FindByID(ctx, s.db, item.MerchantID)
	if err != nil {
		return nil, err
	}

	pub := &domain.PublicConfig{Response: toResponse(item)}
	if m != nil {
		pub.Merchant = domain.PublicMerchant{
			ID:           m.ID.String(),
			BusinessName: m.BusinessName,
			Email:        m.Email,
			LogoURL:      m.LogoURL,
		}
	}
	return pub, nil
}

func (s *Service) lookupPublic(ctx context.Context, key domain.PublicKey) (*domain.CheckoutConfig, error) {
	switch {
	case key.ID != "":
		id, err := snowflake.ParseString(strings.TrimSpace(key.ID))
		if err != nil {
			return nil, domain.ErrNotFound
		}
		return s.repo.FindPublicByID(ctx, s.db, id)
	case key.Slug != "":
		return s.repo.FindBySlug(ctx, s.db, strings.ToLower(strings.TrimSpace(key.Slug)))
	case key.Domain != "":
		return s.repo.FindByDomain(ctx, s.db, strings.ToLower(strings.TrimSpace(key.Domain)))
	default:
		return nil, domain.ErrInvalidKey
	}
}

func (s *Service) find(ctx context.Context, id string) (*domain.CheckoutConfig, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	configID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, merchantID, configID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// resolveSlug validates a caller-supplied slug or derives one from the
// checkout name, then enforces global uniqueness.
func (s *Service) resolveSlug(ctx context.Context, supplied *string, name string, excludeID snowflake.ID) (string, error) {
	var candidate string
	if supplied != nil && strings.TrimSpace(*supplied) != "" {
		candidate = strings.ToLower(strings.TrimSpace(*supplied))
		if !validSlug(candidate) {
			return "", domain.ErrInvalidSlug
		}
	} else {
		candidate = GenerateSlug(name)
		if candidate == "" {
			return "", domain.ErrInvalidSlug
		}
	}

	existing, err := s.repo.FindBySlug(ctx, s.db, candidate)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.ID != excludeID {
		return "", domain.ErrSlugTaken
	}
	return candidate, nil
}

func (s *Service) resolveDomain(ctx context.Context, supplied *string, excludeID snowflake.ID) (*string, error) {
	if supplied == nil {
		return nil, nil
	}
	candidate := strings.ToLower(strings.TrimSpace(*supplied))
	if candidate == "" {
		return nil, nil
	}
	if !domainPattern.MatchString(candidate) {
		return nil, domain.ErrInvalidDomain
	}

	existing, err := s.repo.FindByDomain(ctx, s.db, candidate)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != excludeID {
		return nil, domain.ErrDomainTaken
	}
	return &candidate, nil
}

// GenerateSlug derives a URL-safe slug from a checkout name, capped at 50
// characters without a trailing hyphen.
func GenerateSlug(name string) string {
	generated := slug.Make(name)
	if len(generated) > maxSlugLen {
		generated = strings.TrimRight(generated[:maxSlugLen], "-")
	}
	return generated
}

func validSlug(candidate string) bool {
	return candidate != "" && len(candidate) <= maxSlugLen && slugPattern.MatchString(candidate)
}

func toResponse(c *domain.CheckoutConfig) domain.Response {
	products := c.ProductIDs
	if products == nil {
		products = []string{}
	}
	return domain.Response{
		ID:             c.ID.String(),
		MerchantID:     c.MerchantID.String(),
		Name:           c.Name,
		Description:    c.Description,
		Slug:           c.Slug,
		CustomDomain:   c.CustomDomain,
		Products:       products,
		CheckoutType:   c.CheckoutType,
		Customizations: c.Customizations,
		Active:         c.Active,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
