package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/efren-tilemart/judgeme-proxy/pkg/catalog"
	"github.com/efren-tilemart/judgeme-proxy/pkg/config"
	"github.com/efren-tilemart/judgeme-proxy/pkg/pricing"
	"github.com/efren-tilemart/judgeme-proxy/pkg/reviews"
	"github.com/efren-tilemart/judgeme-proxy/pkg/upstream"
)

type server struct {
	reviews    *reviews.Service
	resolver   *catalog.Resolver
	pricing    *pricing.Service
	orders     *upstream.Client
	catalogCfg config.CatalogConfig
	logger     zerolog.Logger
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func (s *server) handleReviews(w http.ResponseWriter, r *http.Request) {
	result, err := s.reviews.Fetch(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]any{"reviews": result})
}

func (s *server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Handles json.RawMessage `json:"handles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, upstream.Validation("request body must be JSON"))
		return
	}

	// Reject non-sequence input before any upstream call.
	var handles []string
	if body.Handles == nil || json.Unmarshal(body.Handles, &handles) != nil {
		s.writeError(w, upstream.Validation("handles must be a list of strings"))
		return
	}

	result, err := s.resolver.Resolve(r.Context(), handles)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]any{"products": result})
}

func (s *server) handlePrice(w http.ResponseWriter, r *http.Request) {
	info, err := s.pricing.Derive(r.Context(), pricing.Query{Handle: r.PathValue("handle")})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, info)
}

// handleOrder forwards an order lookup to the catalog upstream
// unmodified. No caching, no sanitization.
func (s *server) handleOrder(w http.ResponseWriter, r *http.Request) {
	base := s.catalogCfg.BaseURL
	if base == "" {
		base = "https://" + s.catalogCfg.ShopDomain
	}
	endpoint := fmt.Sprintf("%s/admin/api/%s/orders/%s.json", base, s.catalogCfg.APIVersion, r.PathValue("id"))
	headers := map[string]string{"X-Shopify-Access-Token": s.catalogCfg.APIToken}

	var payload json.RawMessage
	if err := s.orders.GetJSON(r.Context(), endpoint, headers, &payload); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func (s *server) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write response")
	}
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	kind := upstream.KindOf(err)
	status := statusFor(kind)

	s.logger.Warn().
		Err(err).
		Str("error_kind", string(kind)).
		Int("status_code", status).
		Msg("Request failed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": err.Error(),
		"kind":  string(kind),
	})
}

func statusFor(kind upstream.Kind) int {
	switch kind {
	case upstream.KindValidation:
		return http.StatusBadRequest
	case upstream.KindNotFound:
		return http.StatusNotFound
	case upstream.KindTimeout:
		return http.StatusGatewayTimeout
	case upstream.KindHTTP, upstream.KindShape, upstream.KindOverflow:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
