package races

import (
	"time"

	"election-results/core/logger"
	"election-results/feature/races/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for live races.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// SummaryResponse is the body of GET /races.
type SummaryResponse struct {
	ElectionDate string          `json:"election_date"`
	FetchedAt    time.Time       `json:"fetched_at"`
	Total        int             `json:"total"`
	Categories   []CategoryCount `json:"categories"`
	Summary      SummaryCounts   `json:"summary"`
	Failures     []Failure       `json:"failures"`
}

// CategoryCount is the number of races in one category.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// SummaryCounts mirrors the reconcile run counters.
type SummaryCounts struct {
	TotalKeys int `json:"total_keys"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
	Failed    int `json:"failed"`
}

// CategoryResponse is the body of GET /races/:category.
type CategoryResponse struct {
	Category Category            `json:"category"`
	Races    []models.RaceRecord `json:"races"`
}

// RegisterRoutes registers the races routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/races")
	group.Get("/", h.HandleSummary)
	group.Get("/:category", h.HandleCategory)
}

// HandleSummary returns per-category counts of the live result set.
// @Summary Live results summary
// @Description Reconciles the live feeds (cached) and returns counts per category and failed races.
// @Tags races
// @Produce json
// @Success 200 {object} SummaryResponse
// @Failure 502 {object} map[string]string "Upstream feed error"
// @Router /races [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	snap, err := h.service.Current(c.Context())
	if err != nil {
		l.Error("Failed to load live results", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	rs := snap.Results
	resp := SummaryResponse{
		ElectionDate: snap.ElectionDate,
		FetchedAt:    snap.FetchedAt,
		Total:        rs.Total(),
		Categories:   make([]CategoryCount, 0, len(CategoryOrder)),
		Summary: SummaryCounts{
			TotalKeys: rs.Summary.TotalKeys,
			Matched:   rs.Summary.Matched,
			Unmatched: rs.Summary.Unmatched,
			Failed:    rs.Summary.Failed,
		},
		Failures: rs.Failures,
	}
	for _, cat := range rs.Categories() {
		resp.Categories = append(resp.Categories, CategoryCount{Category: cat, Count: len(rs.Races(cat))})
	}
	if resp.Failures == nil {
		resp.Failures = []Failure{}
	}
	return c.JSON(resp)
}

// HandleCategory returns the races of one category.
// @Summary Races of a category
// @Description Returns reconciled races of one category in feed order.
// @Tags races
// @Produce json
// @Param category path string true "Category (e.g. 'governor', 'ballot-measures')"
// @Success 200 {object} CategoryResponse
// @Failure 404 {object} map[string]string "Unknown category"
// @Failure 502 {object} map[string]string "Upstream feed error"
// @Router /races/{category} [get]
func (h *Handler) HandleCategory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	cat, ok := ParseCategory(c.Params("category"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown category: " + c.Params("category")})
	}

	snap, err := h.service.Current(c.Context())
	if err != nil {
		l.Error("Failed to load live results", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	races := snap.Results.Races(cat)
	if races == nil {
		races = []models.RaceRecord{}
	}
	return c.JSON(CategoryResponse{Category: cat, Races: races})
}
