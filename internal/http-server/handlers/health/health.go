package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"CampaignBot/internal/lib/api/response"
)

func Status(_ *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.OK())
	}
}
