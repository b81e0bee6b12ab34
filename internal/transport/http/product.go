package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/shopkart/commerce-api/internal/domain"
	"github.com/shopkart/commerce-api/internal/service"
)

// maxFormMemory bounds the in-memory part of multipart form parsing.
const maxFormMemory = 32 << 20

// ProductHandler serves the catalog routes. Create and Update consume
// multipart form bodies so field values arrive as strings alongside the
// image file.
type ProductHandler struct {
	products service.ProductService
	logger   hclog.Logger
}

func NewProductHandler(products service.ProductService, logger hclog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// Create handles POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil || emptyForm(r) {
		writeJSON(w, http.StatusBadRequest,
			envelope{Status: false, Message: "request body can't be empty"})
		return
	}

	input := domain.NewProductInput{
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		Price:          r.FormValue("price"),
		IsFreeShipping: r.FormValue("isFreeShipping"),
		CurrencyID:     r.FormValue("currencyId"),
		CurrencyFormat: r.FormValue("currencyFormat"),
		Style:          r.FormValue("style"),
		AvailableSizes: r.FormValue("availableSizes"),
		Installments:   r.FormValue("installments"),
	}

	upload, err := attachedFile(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if upload != nil {
		if closer, ok := upload.Content.(io.Closer); ok {
			defer closer.Close()
		}
		input.Image = upload
	}

	product, err := h.products.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Success", product)
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := domain.ParseProductFilter(
		q.Get("size"), q.Get("name"), q.Get("priceLessThan"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	products, err := h.products.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Success", products)
}

// Get handles GET /products/{productId}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), mux.Vars(r)["productId"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Success", product)
}

// Update handles PUT /products/{productId}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil || emptyForm(r) {
		writeJSON(w, http.StatusBadRequest,
			envelope{Status: false, Message: "please enter product details for updating"})
		return
	}

	patch := domain.ProductPatch{
		Title:          formField(r, "title"),
		Description:    formField(r, "description"),
		Price:          formField(r, "price"),
		IsFreeShipping: formField(r, "isFreeShipping"),
		Style:          formField(r, "style"),
		AvailableSize:  formField(r, "availableSizes"),
		Installments:   formField(r, "installments"),
	}
	patch.ImageRequested = formField(r, "productImage") != nil

	upload, err := attachedFile(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if upload != nil {
		if closer, ok := upload.Content.(io.Closer); ok {
			defer closer.Close()
		}
		patch.Image = upload
	}

	product, updated, err := h.products.Update(r.Context(), mux.Vars(r)["productId"], patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if !updated {
		writeSuccess(w, http.StatusOK, "nothing to update", nil)
		return
	}

	writeSuccess(w, http.StatusOK, "product updated successfully", product)
}

// Delete handles DELETE /products/{productId}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	alreadyDeleted, err := h.products.Delete(r.Context(), mux.Vars(r)["productId"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if alreadyDeleted {
		writeSuccess(w, http.StatusOK, "product is already deleted", nil)
		return
	}

	writeSuccess(w, http.StatusOK, "successfully deleted the product", nil)
}

// formField returns a pointer to the first value of the named form field,
// or nil when the field was absent from the request entirely.
func formField(r *http.Request, name string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[name]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

// attachedFile opens the first file attached to the request, regardless
// of its form key.
func attachedFile(r *http.Request) (*domain.FileUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	for _, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return &domain.FileUpload{Name: fh.Filename, Content: f}, nil
		}
	}
	return nil, nil
}

func emptyForm(r *http.Request) bool {
	if r.MultipartForm == nil {
		return true
	}
	return len(r.MultipartForm.Value) == 0 && len(r.MultipartForm.File) == 0
}
