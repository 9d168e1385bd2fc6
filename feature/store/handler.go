package store

import (
	"strconv"

	"election-results/core/logger"
	"election-results/feature/races"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the stored history.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/history")
	group.Get("/summary", h.HandleSummary)
	group.Get("/races/:category", h.HandleRaces)
}

// HandleSummary returns row counts and yearly statistics of the store.
// @Summary History summary
// @Description Row counts per table and per-year statistics of stored results.
// @Tags history
// @Produce json
// @Success 200 {object} Summary
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history/summary [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	sum, err := h.store.Summary(c.Context())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("History summary failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sum)
}

// HandleRaces returns stored rows of one category.
// @Summary Stored races
// @Description Rows of a stored category, optionally filtered by election year.
// @Tags history
// @Produce json
// @Param category path string true "Category (e.g. 'senate', 'ballot-measures')"
// @Param year query int false "Election year"
// @Success 200 {array} RaceRow
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown category"
// @Router /history/races/{category} [get]
func (h *Handler) HandleRaces(c *fiber.Ctx) error {
	cat, ok := races.ParseCategory(c.Params("category"))
	if !ok || cat == races.CategoryOther {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown category: " + c.Params("category")})
	}

	year := 0
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid year: " + raw})
		}
		year = y
	}

	rows, err := h.store.Races(c.Context(), cat, year)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("History query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	enabled bool
}

// NewFeature creates the history feature. It is disabled without a database.
func NewFeature(store *Store, logger *zap.Logger) *Feature {
	if store == nil {
		return &Feature{}
	}
	return &Feature{handler: NewHandler(store, logger), enabled: true}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "history"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
