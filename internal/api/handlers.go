package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"devotional/internal/domain"
	"devotional/internal/language"
	"devotional/internal/service"
)

// UserLanguageKey is the gin context key under which an upstream auth layer
// stores the signed-in user's preferred language.
const UserLanguageKey = "userLanguage"

// ContentService lists and looks up content records.
type ContentService interface {
	List(ctx context.Context, kind domain.Kind, language string, take int, cursor string) (*domain.Page, error)
	Get(ctx context.Context, kind domain.Kind, language, slug string) (*domain.Record, error)
}

// SearchService ranks content records against a query.
type SearchService interface {
	Search(ctx context.Context, kind domain.Kind, language, query string, mode domain.SearchMode) (*domain.SearchResult, error)
	SearchSaints(ctx context.Context, language, query string, mode domain.SearchMode, typ domain.SaintsSearchType) (*domain.SaintsSearchResult, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler holds HTTP request handlers
type Handler struct {
	content   ContentService
	search    SearchService
	languages *language.Resolver
	db        Pinger
	logger    *slog.Logger
}

// NewHandler creates a new handler instance. db may be nil, in which case
// the health check only reports the process as up.
func NewHandler(content ContentService, search SearchService, languages *language.Resolver, db Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		content:   content,
		search:    search,
		languages: languages,
		db:        db,
		logger:    logger.With("component", "api"),
	}
}

type listResponse struct {
	Language   string          `json:"language"`
	Items      []domain.Record `json:"items"`
	NextCursor *string         `json:"nextCursor"`
}

type itemResponse struct {
	Language string         `json:"language"`
	Item     *domain.Record `json:"item"`
}

type searchResponse struct {
	Language    string              `json:"language"`
	Query       string              `json:"query"`
	Suggestions []domain.Suggestion `json:"suggestions"`
	Results     []domain.Record     `json:"results"`
}

type saintsSearchResponse struct {
	Language           string              `json:"language"`
	Query              string              `json:"query"`
	Suggestions        []domain.Suggestion `json:"suggestions"`
	ResultsSaints      []domain.Record     `json:"resultsSaints"`
	ResultsApparitions []domain.Record     `json:"resultsApparitions"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// List returns the listing handler for kind.
func (h *Handler) List(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := h.resolveLanguage(c)

		take, err := parseTake(c.Query("take"))
		if err != nil {
			h.abort(c, http.StatusBadRequest, "INVALID_TAKE", "take must be an integer")
			return
		}

		page, err := h.content.List(c.Request.Context(), kind, lang, take, strings.TrimSpace(c.Query("cursor")))
		if err != nil {
			h.fail(c, err, "list failed", "kind", kind, "language", lang)
			return
		}

		c.JSON(http.StatusOK, listResponse{
			Language:   lang,
			Items:      page.Items,
			NextCursor: page.NextCursor,
		})
	}
}

// Get returns the single-record handler for kind.
func (h *Handler) Get(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := h.resolveLanguage(c)
		slug := c.Param("slug")

		record, err := h.content.Get(c.Request.Context(), kind, lang, slug)
		if err != nil {
			h.fail(c, err, "get failed", "kind", kind, "language", lang, "slug", slug)
			return
		}

		c.JSON(http.StatusOK, itemResponse{Language: lang, Item: record})
	}
}

// Search returns the local search handler for prayers or apparitions.
func (h *Handler) Search(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := h.resolveLanguage(c)
		query := c.Query("q")

		mode, ok := domain.ParseSearchMode(c.Query("mode"))
		if !ok {
			h.abort(c, http.StatusBadRequest, "VALIDATION_ERROR", service.ErrInvalidMode.Error())
			return
		}

		result, err := h.search.Search(c.Request.Context(), kind, lang, query, mode)
		if err != nil {
			h.fail(c, err, "search failed", "kind", kind, "language", lang, "query", query)
			return
		}

		c.JSON(http.StatusOK, searchResponse{
			Language:    lang,
			Query:       query,
			Suggestions: result.Suggestions,
			Results:     result.Results,
		})
	}
}

// SearchSaints handles the combined saints and apparitions search.
func (h *Handler) SearchSaints(c *gin.Context) {
	lang := h.resolveLanguage(c)
	query := c.Query("q")

	mode, ok := domain.ParseSearchMode(c.Query("mode"))
	if !ok {
		h.abort(c, http.StatusBadRequest, "VALIDATION_ERROR", service.ErrInvalidMode.Error())
		return
	}
	typ, ok := domain.ParseSaintsSearchType(c.Query("type"))
	if !ok {
		h.abort(c, http.StatusBadRequest, "VALIDATION_ERROR", service.ErrInvalidType.Error())
		return
	}

	result, err := h.search.SearchSaints(c.Request.Context(), lang, query, mode, typ)
	if err != nil {
		h.fail(c, err, "saints search failed", "language", lang, "query", query, "type", typ)
		return
	}

	c.JSON(http.StatusOK, saintsSearchResponse{
		Language:           lang,
		Query:              query,
		Suggestions:        result.Suggestions,
		ResultsSaints:      result.ResultsSaints,
		ResultsApparitions: result.ResultsApparitions,
	})
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(c *gin.Context) {
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			h.logger.Warn("database ping failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "unreachable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) resolveLanguage(c *gin.Context) string {
	query := c.Query("language")
	if query == "" {
		query = c.Query("lang")
	}

	return h.languages.Resolve(language.Request{
		UserLanguage:   c.GetString(UserLanguageKey),
		QueryLanguage:  query,
		AcceptLanguage: c.GetHeader("Accept-Language"),
	})
}

// fail maps service errors onto HTTP statuses. Unexpected errors are logged
// and answered with a generic message.
func (h *Handler) fail(c *gin.Context, err error, msg string, args ...any) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.abort(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, service.ErrInvalidType),
		errors.Is(err, service.ErrQueryTooLong):
		h.abort(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		h.logger.Error(msg, append(args, "error", err)...)
		h.abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func (h *Handler) abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Timestamp: time.Now(),
	})
}

// parseTake accepts an empty value as "use the default".
func parseTake(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
