package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"photo-storefront/internal/middleware"
	"photo-storefront/internal/models"
	"photo-storefront/internal/services"
	"photo-storefront/web/templates/pages"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	stateSessionKey = "state"
	confirmationKey = "confirmation"
)

// StorefrontHandler serves the photo panel and its cart/checkout actions
type StorefrontHandler struct {
	service *services.StorefrontService
	store   sessions.Store
	logger  *zap.Logger
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(service *services.StorefrontService, store sessions.Store, logger *zap.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		service: service,
		store:   store,
		logger:  logger,
	}
}

// Page renders the full document for the session state
func (h *StorefrontHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.renderCurrent(w, r, pages.StorefrontPage)
}

// Panel renders only the panel, for HTMX refreshes
func (h *StorefrontHandler) Panel(w http.ResponseWriter, r *http.Request) {
	h.renderCurrent(w, r, pages.Panel)
}

// SwitchTab handles POST /tabs/{tab}
func (h *StorefrontHandler) SwitchTab(w http.ResponseWriter, r *http.Request) {
	tab := chi.URLParam(r, "tab")
	h.transition(w, r, func(ctx context.Context, state models.CartState) (models.CartState, error) {
		return h.service.SwitchTab(ctx, state, tab)
	})
}

// AddToCart handles POST /cart/add with form field photo_id
func (h *StorefrontHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.WriteErrorFragment(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}

	photoID := r.FormValue("photo_id")
	if photoID == "" {
		middleware.WriteErrorFragment(w, r, http.StatusBadRequest, "Photo ID is required")
		return
	}

	h.transition(w, r, func(ctx context.Context, state models.CartState) (models.CartState, error) {
		return h.service.AddToCart(ctx, state, photoID)
	})
}

// RemoveFromCart handles POST /cart/remove/{id}
func (h *StorefrontHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "id")
	h.transition(w, r, func(ctx context.Context, state models.CartState) (models.CartState, error) {
		return h.service.RemoveFromCart(ctx, state, photoID)
	})
}

// EnterCheckout handles POST /checkout
func (h *StorefrontHandler) EnterCheckout(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.EnterCheckout)
}

// CancelCheckout handles POST /checkout/cancel
func (h *StorefrontHandler) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.CancelCheckout)
}

// UpdateEmail handles POST /checkout/email with form field email
func (h *StorefrontHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.WriteErrorFragment(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}

	email := r.FormValue("email")
	h.transition(w, r, func(ctx context.Context, state models.CartState) (models.CartState, error) {
		return h.service.UpdateEmail(ctx, state, email)
	})
}

// CompleteOrder handles POST /checkout/complete. An email field posted with
// the form is stored before paying.
func (h *StorefrontHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.WriteErrorFragment(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}

	session, state, ok := h.loadState(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if _, posted := r.PostForm["email"]; posted {
		updated, err := h.service.UpdateEmail(ctx, state, r.PostForm.Get("email"))
		if err != nil {
			h.handleTransitionError(w, r, err)
			return
		}
		state = updated
	}

	next, receipt, err := h.service.CompleteOrder(ctx, state)
	if err != nil {
		h.handleTransitionError(w, r, err)
		return
	}

	h.logger.Info("Order confirmed",
		zap.String("order_number", receipt.OrderNumber),
		zap.String("request_id", middleware.RequestIDFromContext(ctx)),
	)

	// HTMX shows the confirmation in the swapped panel; plain posts carry
	// it across the redirect as a flash
	flash := ""
	if middleware.IsHTMXRequest(r) {
		flash = receipt.Message
	} else {
		session.AddFlash(receipt.Message, confirmationKey)
	}

	if !h.saveState(w, r, session, next) {
		return
	}
	h.respond(w, r, next, flash)
}

// State returns the session state and its view as JSON
func (h *StorefrontHandler) State(w http.ResponseWriter, r *http.Request) {
	_, state, ok := h.loadState(w, r)
	if !ok {
		return
	}

	view := h.service.View(state)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"state": state,
		"view":  view,
	}); err != nil {
		h.logger.Error("Failed to encode state", zap.Error(err))
	}
}

// Health reports liveness and the catalog size
func (h *StorefrontHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"photos": h.service.Catalog().Len(),
	})
}

// transition loads the state, applies fn and answers with the new panel
func (h *StorefrontHandler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, models.CartState) (models.CartState, error)) {
	session, state, ok := h.loadState(w, r)
	if !ok {
		return
	}

	next, err := fn(r.Context(), state)
	if err != nil {
		h.handleTransitionError(w, r, err)
		return
	}

	if !h.saveState(w, r, session, next) {
		return
	}
	h.respond(w, r, next, "")
}

func (h *StorefrontHandler) renderCurrent(w http.ResponseWriter, r *http.Request, component func(models.StorefrontView) templ.Component) {
	session, state, ok := h.loadState(w, r)
	if !ok {
		return
	}

	flash := ""
	if flashes := session.Flashes(confirmationKey); len(flashes) > 0 {
		flash, _ = flashes[0].(string)
		if err := session.Save(r, w); err != nil {
			h.logger.Error("Failed to save session", zap.Error(err))
		}
	}

	h.render(w, r, component(h.viewFor(r, state, flash)))
}

func (h *StorefrontHandler) respond(w http.ResponseWriter, r *http.Request, state models.CartState, flash string) {
	if !middleware.IsHTMXRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, pages.Panel(h.viewFor(r, state, flash)))
}

func (h *StorefrontHandler) render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		h.logger.Error("Failed to render", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (h *StorefrontHandler) viewFor(r *http.Request, state models.CartState, flash string) models.StorefrontView {
	view := h.service.View(state)
	view.CSRFToken = middleware.CSRFTokenFromContext(r.Context())
	view.Flash = flash
	return view
}

func (h *StorefrontHandler) loadState(w http.ResponseWriter, r *http.Request) (*sessions.Session, models.CartState, bool) {
	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		h.handleSessionError(w, r, err)
		return nil, models.CartState{}, false
	}
	return session, h.service.Restore(h.getStateFromSession(session)), true
}

func (h *StorefrontHandler) saveState(w http.ResponseWriter, r *http.Request, session *sessions.Session, state models.CartState) bool {
	if err := h.saveStateToSession(session, state); err != nil {
		h.handleSessionError(w, r, err)
		return false
	}
	if err := session.Save(r, w); err != nil {
		h.handleSessionError(w, r, err)
		return false
	}
	return true
}

func (h *StorefrontHandler) getStateFromSession(session *sessions.Session) models.CartState {
	stateJSON, ok := session.Values[stateSessionKey].(string)
	if !ok {
		return models.NewCartState()
	}

	var state models.CartState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		h.logger.Warn("Discarding unreadable cart state", zap.Error(err))
		return models.NewCartState()
	}
	return state
}

func (h *StorefrontHandler) saveStateToSession(session *sessions.Session, state models.CartState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return err
	}
	session.Values[stateSessionKey] = string(stateJSON)
	return nil
}

func (h *StorefrontHandler) handleTransitionError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Storefront action failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	middleware.WriteErrorFragment(w, r, status, err.Error())
}

// handleSessionError handles session-related errors
func (h *StorefrontHandler) handleSessionError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("Session error", zap.Error(err))
	middleware.WriteErrorFragment(w, r, http.StatusInternalServerError, "Session error. Please refresh the page and try again.")
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, models.ErrPhotoNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidTab), errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrPaymentFailed):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
