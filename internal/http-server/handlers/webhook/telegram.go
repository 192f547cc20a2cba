package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/go-chi/render"

	"CampaignBot/internal/lib/api/response"
	"CampaignBot/internal/lib/sl"
)

// Core receives decoded chat updates from the webhook route.
type Core interface {
	HandleWebhookUpdate(ctx context.Context, update tgbotapi.Update)
}

// Telegram handles webhook deliveries from the chat platform. The secret
// token header is checked when configured; the endpoint always answers 200
// to a well-formed update so the platform does not retry forever.
func Telegram(log *slog.Logger, secret string, handler Core) http.HandlerFunc {
	mod := sl.Module("http.handlers.webhook")

	return func(w http.ResponseWriter, r *http.Request) {
		if secret != "" {
			got := r.Header.Get("X-Telegram-Bot-Api-Secret-Token")
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				log.With(mod).Warn("webhook secret mismatch")
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Forbidden"))
				return
			}
		}

		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			log.With(mod, sl.Err(err)).Warn("malformed webhook payload")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		log.With(
			mod,
			slog.Int64("update_id", update.UpdateId),
		).Debug("webhook update received")

		handler.HandleWebhookUpdate(r.Context(), update)

		render.JSON(w, r, response.OK())
	}
}
