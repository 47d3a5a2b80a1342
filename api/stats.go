package api

import (
	"github.com/gofiber/fiber/v3"

	"github.com/technelab/techne/storage"
)

// StatsHandler serves corpus statistics and health checks.
type StatsHandler struct {
	chunkRepository storage.ChunkRepository
}

type statsResponse struct {
	TotalChunks    int `json:"total_chunks"`
	TotalDocuments int `json:"total_documents"`
	TotalDomains   int `json:"total_domains"`
	EmbeddedChunks int `json:"embedded_chunks"`
}

// Stats summarizes the corpus: chunk, document, and domain counts.
func (h *StatsHandler) Stats(c fiber.Ctx) error {
	records, err := h.chunkRepository.GetAllChunks(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to read corpus")
	}

	documents := make(map[string]struct{})
	domains := make(map[string]struct{})
	embedded := 0
	for _, record := range records {
		documents[record.SourceURL] = struct{}{}
		if record.Domain != "" {
			domains[record.Domain] = struct{}{}
		}
		if len(record.Vector) > 0 {
			embedded++
		}
	}

	return jsonSuccess(c, statsResponse{
		TotalChunks:    len(records),
		TotalDocuments: len(documents),
		TotalDomains:   len(domains),
		EmbeddedChunks: embedded,
	})
}

// Healthz reports service health. Always returns 200; the body carries the
// verdict so load balancers and humans read the same signal.
func (h *StatsHandler) Healthz(c fiber.Ctx) error {
	_, err := h.chunkRepository.CountChunks(c.Context())
	database := err == nil

	status := "healthy"
	if !database {
		status = "unhealthy"
	}

	return c.JSON(fiber.Map{
		"status":   status,
		"database": database,
		"version":  Version,
	})
}
