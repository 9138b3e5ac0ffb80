package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"address-geocoder/internal/format"
	"address-geocoder/internal/message"
	"address-geocoder/internal/models"
	"address-geocoder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
)

// GeoCodeHandler handles geocoding requests
type GeoCodeHandler struct {
	service    GeoCodeService
	messages   message.Catalog
	debug      bool
	batchLimit int
	logger     zerolog.Logger
}

// GeoCodeService interface for dependency injection
type GeoCodeService interface {
	Geocode(ctx context.Context, req models.GeocodeRequest) (models.Query, error)
	GeocodeBatch(ctx context.Context, reqs []models.GeocodeRequest) ([]models.Query, error)
}

// Option configures a GeoCodeHandler.
type Option func(*GeoCodeHandler)

// WithDebug adds the finder's lookup keys to GeoJSON output.
func WithDebug(debug bool) Option {
	return func(h *GeoCodeHandler) { h.debug = debug }
}

// WithBatchLimit caps the number of addresses in one batch request.
func WithBatchLimit(n int) Option {
	return func(h *GeoCodeHandler) {
		if n > 0 {
			h.batchLimit = n
		}
	}
}

// WithLogger sets the handler's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(h *GeoCodeHandler) { h.logger = l }
}

// NewGeoCodeHandler creates a new geocode handler
func NewGeoCodeHandler(svc GeoCodeService, messages message.Catalog, opts ...Option) *GeoCodeHandler {
	h := &GeoCodeHandler{
		service:    svc,
		messages:   messages,
		batchLimit: 1000,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// GeoCode handles GET /geocode requests
func (h *GeoCodeHandler) GeoCode(c *gin.Context) {
	name := c.Query("format")
	if _, err := format.New(name, io.Discard, false); err != nil {
		h.fail(c, http.StatusBadRequest, message.InvalidFormat)
		return
	}

	req := models.GeocodeRequest{
		Input:      c.Query("input"),
		Prefecture: c.Query("pref"),
		City:       c.Query("city"),
		Town:       c.Query("town"),
		TownID:     c.Query("town_id"),
		LgCode:     c.Query("lg_code"),
		Address:    c.Query("address"),
	}

	query, err := h.service.Geocode(c.Request.Context(), req)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	h.write(c, name, []models.Query{query})
}

// GeoCodeBatch handles POST /geocode/batch requests. The body is a JSON array
// of requests; the response holds one record per request, in order.
func (h *GeoCodeHandler) GeoCodeBatch(c *gin.Context) {
	name := c.Query("format")
	if _, err := format.New(name, io.Discard, false); err != nil {
		h.fail(c, http.StatusBadRequest, message.InvalidFormat)
		return
	}

	var reqs []models.GeocodeRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		h.fail(c, http.StatusBadRequest, message.InvalidBody)
		return
	}
	if len(reqs) > h.batchLimit {
		h.fail(c, http.StatusRequestEntityTooLarge, message.BatchTooLarge)
		return
	}

	queries, err := h.service.GeocodeBatch(c.Request.Context(), reqs)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	h.write(c, name, queries)
}

// write streams queries in the requested format, gzip-compressed when the
// client asks with gzip=1.
func (h *GeoCodeHandler) write(c *gin.Context, name string, queries []models.Query) {
	var w io.Writer = c.Writer
	if c.Query("gzip") == "1" {
		gz := gzip.NewWriter(c.Writer)
		defer gz.Close()
		c.Header("Content-Encoding", "gzip")
		w = gz
	}

	f, err := format.New(name, w, h.debug)
	if err != nil {
		h.fail(c, http.StatusBadRequest, message.InvalidFormat)
		return
	}

	c.Header("Content-Type", f.ContentType())
	c.Status(http.StatusOK)
	for _, q := range queries {
		if err := f.Write(q); err != nil {
			h.logger.Error().Err(err).Msg("failed to write geocode result")
			return
		}
	}
}

func (h *GeoCodeHandler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyAddress):
		h.fail(c, http.StatusBadRequest, message.MissingAddress)
	case errors.Is(err, service.ErrMissingScope):
		h.fail(c, http.StatusBadRequest, message.MissingScope)
	default:
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("geocode failed")
		h.fail(c, http.StatusInternalServerError, message.InternalError)
	}
}

func (h *GeoCodeHandler) fail(c *gin.Context, status int, id message.ID) {
	c.JSON(status, gin.H{"code": string(id), "error": h.messages.Get(id)})
}
