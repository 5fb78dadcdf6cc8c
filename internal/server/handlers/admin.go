package handlers

import (
	"net/http"

	"github.com/dreammattress/storefront/internal/admin"
	"github.com/dreammattress/storefront/internal/server/response"
	"github.com/dreammattress/storefront/internal/server/session"
	"github.com/dreammattress/storefront/internal/views"
	"github.com/dreammattress/storefront/pkg/logging"
)

// AdminPath is the admin dashboard and login page.
const AdminPath = "/admin"

// HandleAdmin handles GET /admin: the login form while logged out, the
// dashboard otherwise.
func (h *Handlers) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	sess := h.session(w, r)
	if !sess.Gate().LoggedIn() {
		h.renderLogin(w, r, http.StatusOK, sess.Gate().Error())
		return
	}

	now := h.now()
	var notice *views.NoticeView
	if n, ok := sess.Notice(now); ok {
		notice = views.NewNotice(n, now)
	}
	h.render(w, r, http.StatusOK, views.DashboardPage, views.Page{
		Title:  "Dashboard",
		Active: AdminPath,
		Admin:  true,
		Data:   views.NewDashboard(h.store.Get(), notice),
	})
}

// HandleLogin handles POST /admin/login. Passing the gate re-syncs the
// catalog before the dashboard is shown.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	gate := sess.Gate()

	if gate.Submit(r.PostFormValue("password")) {
		ctx := logging.WithOperation(r.Context(), "resync")
		if err := h.workflow.Resync(ctx); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("Keeping cached catalog after login")
		}
	}
	if !gate.LoggedIn() {
		h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("Rejected admin login")
		h.renderLogin(w, r, http.StatusUnauthorized, gate.Error())
		return
	}
	redirect(w, r, AdminPath)
}

// HandleLogout handles POST /admin/logout.
func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).Gate().Logout()
	redirect(w, r, AdminPath)
}

// HandleNewProduct handles GET /admin/products/new.
func (h *Handlers) HandleNewProduct(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, h.workflow.NewDraft(), nil)
}

// HandleCreateProduct handles POST /admin/products.
func (h *Handlers) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, h.workflow.NewDraft())
}

// HandleEditProduct handles GET /admin/products/{id}/edit.
func (h *Handlers) HandleEditProduct(w http.ResponseWriter, r *http.Request, id string) {
	p, ok := h.store.Find(id)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.renderForm(w, r, http.StatusOK, admin.EditDraft(p), nil)
}

// HandleUpdateProduct handles POST /admin/products/{id}.
func (h *Handlers) HandleUpdateProduct(w http.ResponseWriter, r *http.Request, id string) {
	p, ok := h.store.Find(id)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.submit(w, r, admin.EditDraft(p))
}

// HandleConfirmDelete handles GET /admin/products/{id}/delete.
func (h *Handlers) HandleConfirmDelete(w http.ResponseWriter, r *http.Request, id string) {
	p, ok := h.store.Find(id)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.render(w, r, http.StatusOK, views.DeletePage, views.Page{
		Title:  "Delete Product",
		Active: AdminPath,
		Admin:  true,
		Data:   views.NewDelete(p),
	})
}

// HandleDeleteProduct handles POST /admin/products/{id}/delete. Anything
// but confirm=yes cancels without contacting the API.
func (h *Handlers) HandleDeleteProduct(w http.ResponseWriter, r *http.Request, id string) {
	if p, ok := h.store.Find(id); ok {
		id = p.ID()
	}
	confirmed := r.PostFormValue("confirm") == "yes"

	notice, err := h.workflow.Delete(r.Context(), id, confirmed)
	if err != nil {
		h.logger.Error().Err(err).Str("product_id", id).Msg("Delete did not complete")
	}
	if notice.Kind != admin.NoNotice {
		h.session(w, r).Post(notice)
	}
	redirect(w, r, AdminPath)
}

// submit runs one product form submission against d. Form actions
// re-render the draft; a save validates, writes through the workflow and
// returns to the dashboard on success.
func (h *Handlers) submit(w http.ResponseWriter, r *http.Request, d *admin.Draft) {
	action, err := admin.ParseDraft(r, d)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Unreadable product form")
		h.renderForm(w, r, http.StatusBadRequest, d, &views.NoticeView{Message: err.Error(), Blocking: true})
		return
	}

	if action.Kind != admin.ActionSave {
		action.Apply(d)
		h.renderForm(w, r, http.StatusOK, d, nil)
		return
	}
	if !d.Valid() {
		h.renderForm(w, r, http.StatusUnprocessableEntity, d, nil)
		return
	}

	notice, err := h.workflow.Save(r.Context(), d)
	if err != nil {
		now := h.now()
		h.renderForm(w, r, response.StatusFor(err), d, views.NewNotice(notice, now))
		return
	}
	h.session(w, r).Post(notice)
	redirect(w, r, AdminPath)
}

func (h *Handlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.render(w, r, status, views.LoginPage, views.Page{
		Title:  "Admin Login",
		Active: AdminPath,
		Data:   views.LoginView{Error: msg},
	})
}

func (h *Handlers) renderForm(w http.ResponseWriter, r *http.Request, status int, d *admin.Draft, notice *views.NoticeView) {
	title := "Add Product"
	if !d.Creating() {
		title = "Edit Product"
	}
	h.render(w, r, status, views.ProductFormPage, views.Page{
		Title:  title,
		Active: AdminPath,
		Admin:  true,
		Data:   views.NewForm(d, notice),
	})
}

// session returns the request's admin session, loading it from the cookie
// when the session middleware did not run.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) *admin.Session {
	if sess, ok := session.FromContext(r.Context()); ok {
		return sess
	}
	return h.sessions.Load(w, r)
}

