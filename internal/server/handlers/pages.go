package handlers

import (
	"net/http"

	"github.com/dreammattress/storefront/internal/views"
)

// HandleHome handles GET /.
func (h *Handlers) HandleHome(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	h.render(w, r, http.StatusOK, views.HomePage, views.Page{
		Active: "/",
		Live:   true,
		Data:   views.NewHome(h.store.Get(), h.whatsapp),
	})
}

// HandleProducts handles GET /products.
func (h *Handlers) HandleProducts(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	h.render(w, r, http.StatusOK, views.ProductsPage, views.Page{
		Title:  "Products",
		Active: "/products",
		Live:   true,
		Data:   views.ProductsView{Cards: views.NewProductCards(h.store.Get(), h.whatsapp)},
	})
}

// HandleProduct handles GET /product/{id}. The id may be either
// identifier of the record. Unknown ids get the not-found page.
func (h *Handlers) HandleProduct(w http.ResponseWriter, r *http.Request, id string) {
	if !readOnly(w, r) {
		return
	}
	p, ok := h.store.Find(id)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.render(w, r, http.StatusOK, views.DetailPage, views.Page{
		Title:  p.Name,
		Active: "/products",
		Live:   true,
		Data:   views.NewDetail(p, views.ParseDetailQuery(r.URL.Query()), h.whatsapp),
	})
}

// HandleNotFound renders the product not-found page with status 404.
func (h *Handlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, views.NotFoundPage, views.Page{
		Title:  "Product Not Found",
		Active: "/products",
	})
}

// HandleAbout handles GET /about.
func (h *Handlers) HandleAbout(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	h.render(w, r, http.StatusOK, views.AboutPage, views.Page{Title: "About", Active: "/about"})
}

// HandleContact handles GET /contact.
func (h *Handlers) HandleContact(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	h.render(w, r, http.StatusOK, views.ContactPage, views.Page{Title: "Contact", Active: "/contact"})
}

// HandleLegacyPreview permanently redirects the old preview page home.
func (h *Handlers) HandleLegacyPreview(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusMovedPermanently)
}

// HandleUnknown sends any unmatched path home.
func (h *Handlers) HandleUnknown(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}
