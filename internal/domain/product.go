package domain

import (
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fixed currency for the whole catalog.
const (
	CurrencyID     = "INR"
	CurrencyFormat = "₹"
)

// Product is a catalog entry. Deleted products are never removed from
// storage, only flagged via IsDeleted.
type Product struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title          string             `json:"title" bson:"title"`
	Description    string             `json:"description" bson:"description"`
	Price          float64            `json:"price" bson:"price"`
	CurrencyID     string             `json:"currencyId" bson:"currencyId"`
	CurrencyFormat string             `json:"currencyFormat" bson:"currencyFormat"`
	IsFreeShipping bool               `json:"isFreeShipping" bson:"isFreeShipping"`
	ProductImage   string             `json:"productImage" bson:"productImage"`
	Style          string             `json:"style,omitempty" bson:"style,omitempty"`
	AvailableSizes []string           `json:"availableSizes" bson:"availableSizes"`
	Installments   int                `json:"installments,omitempty" bson:"installments,omitempty"`
	IsDeleted      bool               `json:"isDeleted" bson:"isDeleted"`
	DeletedAt      *time.Time         `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Products is a collection of Product
type Products []*Product

// FileUpload is the content of a multipart file attached to a request.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// NewProductInput carries the raw form fields of a create request.
// Values are kept as strings; the service parses and validates them.
type NewProductInput struct {
	Title          string
	Description    string
	Price          string
	IsFreeShipping string
	CurrencyID     string
	CurrencyFormat string
	Style          string
	AvailableSizes string
	Installments   string
	Image          *FileUpload
}

// ProductPatch carries the fields present in an update request. A nil
// pointer means the field was absent from the request entirely, which is
// distinct from a field that is present but blank.
type ProductPatch struct {
	Title          *string
	Description    *string
	Price          *string
	IsFreeShipping *string
	Style          *string
	AvailableSize  *string
	Installments   *string

	// ImageRequested is set when the request names productImage; Image is
	// the file that must accompany it.
	ImageRequested bool
	Image          *FileUpload
}

// Empty reports whether the patch carries no recognized fields at all.
func (p ProductPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil &&
		p.IsFreeShipping == nil && p.Style == nil && p.AvailableSize == nil &&
		p.Installments == nil && !p.ImageRequested && p.Image == nil
}

// ProductUpdate is the staged set of fields a reconciled patch will write.
// Nil pointers (and a nil AvailableSizes slice) are left untouched in
// storage; the whole set is applied as a single merge.
type ProductUpdate struct {
	Title          *string
	Description    *string
	Price          *float64
	IsFreeShipping *bool
	Style          *string
	AvailableSizes []string
	Installments   *int
	ProductImage   *string
}

// Empty reports whether applying the update would be a no-op.
func (u ProductUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Price == nil &&
		u.IsFreeShipping == nil && u.Style == nil && u.AvailableSizes == nil &&
		u.Installments == nil && u.ProductImage == nil
}

// Apply merges the update into p, mirroring what the document store does
// with the staged field set.
func (u ProductUpdate) Apply(p *Product) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.IsFreeShipping != nil {
		p.IsFreeShipping = *u.IsFreeShipping
	}
	if u.Style != nil {
		p.Style = *u.Style
	}
	if u.AvailableSizes != nil {
		p.AvailableSizes = u.AvailableSizes
	}
	if u.Installments != nil {
		p.Installments = *u.Installments
	}
	if u.ProductImage != nil {
		p.ProductImage = *u.ProductImage
	}
}

// HasSize reports whether the product already offers the given size token.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.AvailableSizes {
		if s == size {
			return true
		}
	}
	return false
}
