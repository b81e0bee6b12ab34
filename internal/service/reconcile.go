package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopkart/commerce-api/internal/domain"
)

// reconcile decides, field by field, which parts of the patch overwrite
// the stored product. Fields absent from the patch are never touched;
// fields that are present but blank or malformed fail the whole update
// before any write. The returned set is applied as one merge.
func (s *productService) reconcile(ctx context.Context, current *domain.Product, patch domain.ProductPatch) (domain.ProductUpdate, error) {
	var set domain.ProductUpdate

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return set, domain.Invalidf("title", "should not be blank")
		}
		if !domain.IsValidWords(title) {
			return set, domain.Invalidf("title", "should contain alphabetic words only")
		}
		// uniqueness among non-deleted products, excluding this one
		existing, err := s.repo.FindByTitle(ctx, title)
		if err == nil && existing.ID != current.ID {
			return set, domain.ErrDuplicateTitle
		}
		if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
			return set, err
		}
		set.Title = &title
	}

	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return set, domain.Invalidf("description", "should not be blank")
		}
		set.Description = &description
	}

	if patch.Price != nil {
		price, ok := domain.ParsePrice(*patch.Price)
		if !ok {
			return set, domain.Invalidf("price", "should be a positive number")
		}
		set.Price = &price
	}

	if patch.IsFreeShipping != nil {
		flag, ok := domain.ParseBoolFlag(*patch.IsFreeShipping)
		if !ok {
			return set, domain.Invalidf("isFreeShipping", "should be boolean")
		}
		set.IsFreeShipping = &flag
	}

	if patch.Style != nil {
		style := strings.TrimSpace(*patch.Style)
		if style == "" {
			return set, domain.Invalidf("style", "should not be blank")
		}
		if !domain.IsValidWords(style) {
			return set, domain.Invalidf("style", "should contain alphabetic words only")
		}
		set.Style = &style
	}

	// availableSizes carries a single token that is appended to the
	// stored set, not a replacement list.
	if patch.AvailableSize != nil {
		token := strings.ToUpper(strings.TrimSpace(*patch.AvailableSize))
		if token == "" {
			return set, domain.Invalidf("availableSizes", "should not be blank")
		}
		if !domain.IsValidSize(token) {
			return set, domain.Invalidf("availableSizes",
				"size must be one of %s", strings.Join(domain.SizeTokens, ", "))
		}
		if current.HasSize(token) {
			return set, domain.ErrDuplicateSize
		}
		merged := append(append([]string(nil), current.AvailableSizes...), token)
		set.AvailableSizes = merged
	}

	if patch.Installments != nil {
		installments, ok := domain.ParsePositiveInt(*patch.Installments)
		if !ok {
			return set, domain.Invalidf("installments", "should be a positive number")
		}
		set.Installments = &installments
	}

	if patch.ImageRequested || patch.Image != nil {
		if patch.Image == nil {
			return set, domain.Invalidf("productImage", "an uploaded file must accompany the request")
		}
		ref, err := s.storeImage(patch.Image)
		if err != nil {
			s.logger.Error("Unable to store product image", "error", err)
			return set, err
		}
		set.ProductImage = &ref
	}

	return set, nil
}
