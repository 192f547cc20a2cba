package ads

import (
	"context"
	"net/url"

	"CampaignBot/entity"
)

// listResponse is the platform's paged list envelope.
type listResponse struct {
	Data []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"data"`
}

// ListAdAccounts returns the ad accounts available to the configured token,
// in the order the platform reports them.
func (c *Client) ListAdAccounts(ctx context.Context) ([]entity.Option, error) {
	query := url.Values{}
	query.Set("fields", "name")
	query.Set("limit", "200")

	var resp listResponse
	if err := c.getJSON(ctx, "me/adaccounts", query, &resp); err != nil {
		return nil, err
	}

	return toOptions(resp), nil
}

// ListPages returns the pages the configured token can publish for.
func (c *Client) ListPages(ctx context.Context) ([]entity.Option, error) {
	query := url.Values{}
	query.Set("fields", "name")
	query.Set("limit", "200")

	var resp listResponse
	if err := c.getJSON(ctx, "me/accounts", query, &resp); err != nil {
		return nil, err
	}

	return toOptions(resp), nil
}

func toOptions(resp listResponse) []entity.Option {
	options := make([]entity.Option, 0, len(resp.Data))
	for _, item := range resp.Data {
		options = append(options, entity.Option{ID: item.ID, Label: item.Name})
	}
	return options
}
