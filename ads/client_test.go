package ads

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CampaignBot/entity"
	"CampaignBot/flow"
	"CampaignBot/internal/config"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	conf := &config.Config{}
	conf.Ads.BaseURL = server.URL
	conf.Ads.ApiVersion = "v19.0"
	conf.Ads.AccessToken = "test-token"
	conf.Ads.TimeoutSec = 5

	client := NewClient(conf, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NotNil(t, client)
	return client
}

func testDraft() *entity.CampaignDraft {
	return &entity.CampaignDraft{
		Name:         "Campaña verano",
		Objective:    "CONVERSIONS",
		BudgetType:   "campaign",
		DailyBudget:  10.5,
		StartDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		Geolocation:  "MX",
		AgeMin:       18,
		AgeMax:       65,
		Genders:      []string{"male", "female"},
		Placement:    "automatic",
		AdName:       "Anuncio verano",
		CreativeType: "image",
		AdText:       "Compra ahora",
		AccountID:    "act_123",
		PageID:       "456",
	}
}

func TestNewClientRequiresToken(t *testing.T) {
	conf := &config.Config{}
	assert.Nil(t, NewClient(conf, slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestListAdAccounts(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v19.0/me/adaccounts", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "name", r.URL.Query().Get("fields"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{
				{"id": "act_1", "name": "Cuenta uno"},
				{"id": "act_2", "name": "Cuenta dos"},
			},
		})
	}))

	options, err := client.ListAdAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, entity.Option{ID: "act_1", Label: "Cuenta uno"}, options[0])
	assert.Equal(t, entity.Option{ID: "act_2", Label: "Cuenta dos"}, options[1])
}

func TestCreateCampaign(t *testing.T) {
	var paths []string
	var forms []url.Values

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		paths = append(paths, r.URL.Path)
		forms = append(forms, r.PostForm)

		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "token-abc", r.Header.Get("X-Idempotency-Key"))

		_ = json.NewEncoder(w).Encode(map[string]string{"id": "obj_" + r.URL.Path[len(r.URL.Path)-3:]})
	}))

	created, err := client.CreateCampaign(context.Background(), testDraft(), "token-abc")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.CampaignID)
	assert.NotEmpty(t, created.AdSetID)
	assert.NotEmpty(t, created.AdID)

	require.Equal(t, []string{
		"/v19.0/act_123/campaigns",
		"/v19.0/act_123/adsets",
		"/v19.0/act_123/ads",
	}, paths)

	campaign := forms[0]
	assert.Equal(t, "PAUSED", campaign.Get("status"))
	assert.Equal(t, "1050", campaign.Get("daily_budget"), "budget travels as cents")

	adSet := forms[1]
	assert.Empty(t, adSet.Get("daily_budget"), "campaign-level budget stays off the ad set")

	var targeting map[string]any
	require.NoError(t, json.Unmarshal([]byte(adSet.Get("targeting")), &targeting))
	assert.NotContains(t, targeting, "publisher_platforms", "automatic placement sets no platform filter")
	assert.Equal(t, []any{1.0, 2.0}, targeting["genders"].([]any))

	ad := forms[2]
	var creative map[string]any
	require.NoError(t, json.Unmarshal([]byte(ad.Get("creative")), &creative))
	spec := creative["object_story_spec"].(map[string]any)
	assert.Equal(t, "456", spec["page_id"])
}

func TestCreateCampaignAdSetBudget(t *testing.T) {
	var forms []url.Values
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		forms = append(forms, r.PostForm)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "obj"})
	}))

	draft := testDraft()
	draft.BudgetType = "adset"
	draft.Placement = "instagram"

	_, err := client.CreateCampaign(context.Background(), draft, "token-abc")
	require.NoError(t, err)

	assert.Empty(t, forms[0].Get("daily_budget"))
	assert.Equal(t, "1050", forms[1].Get("daily_budget"))

	var targeting map[string]any
	require.NoError(t, json.Unmarshal([]byte(forms[1].Get("targeting")), &targeting))
	assert.Equal(t, []any{"instagram"}, targeting["publisher_platforms"].([]any))
}

func TestCreateCampaignSurfacesPlatformError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": "Invalid parameter: daily_budget",
				"type":    "OAuthException",
				"code":    100,
			},
		})
	}))

	_, err := client.CreateCampaign(context.Background(), testDraft(), "token-abc")
	var xerr *flow.ExternalError
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, "Invalid parameter: daily_budget", xerr.Message)
}

func TestBudgetCents(t *testing.T) {
	assert.Equal(t, "1000", budgetCents(10))
	assert.Equal(t, "1050", budgetCents(10.5))
	assert.Equal(t, "1", budgetCents(0.01))
	assert.Equal(t, "1999", budgetCents(19.99))
}
