package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"CampaignBot/entity"
)

type createResponse struct {
	ID string `json:"id"`
}

// CreateCampaign materializes a validated draft as three linked remote
// objects: campaign, ad set and ad. The idempotency token is forwarded on
// every call so the platform can deduplicate a retried commit.
func (c *Client) CreateCampaign(ctx context.Context, draft *entity.CampaignDraft, idempotencyToken string) (*entity.CreatedObjects, error) {
	campaignID, err := c.createCampaignObject(ctx, draft, idempotencyToken)
	if err != nil {
		return nil, err
	}

	adSetID, err := c.createAdSet(ctx, draft, campaignID, idempotencyToken)
	if err != nil {
		return nil, err
	}

	adID, err := c.createAd(ctx, draft, adSetID, idempotencyToken)
	if err != nil {
		return nil, err
	}

	c.log.Info("campaign objects created",
		slog.String("campaign_id", campaignID),
		slog.String("ad_set_id", adSetID),
		slog.String("ad_id", adID),
	)

	return &entity.CreatedObjects{CampaignID: campaignID, AdSetID: adSetID, AdID: adID}, nil
}

func (c *Client) createCampaignObject(ctx context.Context, draft *entity.CampaignDraft, token string) (string, error) {
	form := url.Values{}
	form.Set("name", draft.Name)
	form.Set("objective", draft.Objective)
	form.Set("status", "PAUSED")
	form.Set("special_ad_categories", "[]")
	if draft.BudgetType == "campaign" {
		form.Set("daily_budget", budgetCents(draft.DailyBudget))
	}

	var resp createResponse
	path := draft.AccountID + "/campaigns"
	if err := c.postForm(ctx, path, form, token, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) createAdSet(ctx context.Context, draft *entity.CampaignDraft, campaignID, token string) (string, error) {
	targeting := map[string]any{
		"geo_locations": map[string]any{"countries": []string{draft.Geolocation}},
		"age_min":       draft.AgeMin,
		"age_max":       draft.AgeMax,
		"genders":       genderCodes(draft.Genders),
	}
	if draft.Placement != "automatic" {
		targeting["publisher_platforms"] = []string{draft.Placement}
	}
	targetingJSON, err := json.Marshal(targeting)
	if err != nil {
		return "", fmt.Errorf("encoding targeting: %w", err)
	}

	form := url.Values{}
	form.Set("name", draft.Name+" - conjunto")
	form.Set("campaign_id", campaignID)
	form.Set("status", "PAUSED")
	form.Set("billing_event", "IMPRESSIONS")
	form.Set("targeting", string(targetingJSON))
	form.Set("start_time", draft.StartDate.Format("2006-01-02T15:04:05-0700"))
	form.Set("end_time", draft.EndDate.Format("2006-01-02T15:04:05-0700"))
	if draft.BudgetType == "adset" {
		form.Set("daily_budget", budgetCents(draft.DailyBudget))
	}

	var resp createResponse
	path := draft.AccountID + "/adsets"
	if err := c.postForm(ctx, path, form, token, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) createAd(ctx context.Context, draft *entity.CampaignDraft, adSetID, token string) (string, error) {
	creative := map[string]any{
		"object_story_spec": map[string]any{
			"page_id": draft.PageID,
			"link_data": map[string]any{
				"message": draft.AdText,
			},
		},
	}
	creativeJSON, err := json.Marshal(creative)
	if err != nil {
		return "", fmt.Errorf("encoding creative: %w", err)
	}

	form := url.Values{}
	form.Set("name", draft.AdName)
	form.Set("adset_id", adSetID)
	form.Set("status", "PAUSED")
	form.Set("creative", string(creativeJSON))

	var resp createResponse
	path := draft.AccountID + "/ads"
	if err := c.postForm(ctx, path, form, token, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// budgetCents converts a USD amount to the integer cents the API expects.
func budgetCents(amount float64) string {
	return strconv.FormatInt(int64(amount*100+0.5), 10)
}

// genderCodes maps gender names to the platform's numeric codes.
func genderCodes(genders []string) []int {
	codes := make([]int, 0, len(genders))
	for _, g := range genders {
		switch g {
		case "male":
			codes = append(codes, 1)
		case "female":
			codes = append(codes, 2)
		}
	}
	return codes
}
