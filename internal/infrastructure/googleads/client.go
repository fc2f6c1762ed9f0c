package googleads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"

	"adsmanager/internal/domain/campaign"
	domain "adsmanager/internal/domain/googleads"
)

// DefaultBaseURL is the Google Ads REST endpoint.
const DefaultBaseURL = "https://googleads.googleapis.com"

const customerQuery = "SELECT customer.id, customer.descriptive_name, customer.currency_code, " +
	"customer.time_zone, customer.status FROM customer LIMIT 1"

var tracer = otel.Tracer("adsmanager/googleads")

// APIError is a non-2xx answer from the Ads API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("google ads api: status %d: %s", e.StatusCode, e.Body)
}

// Options configure a Client.
type Options struct {
	BaseURL         string
	Version         string
	DeveloperToken  string
	LoginCustomerID string
	HTTPClient      *http.Client
}

// Client calls the Google Ads REST API with delegated user credentials.
type Client struct {
	baseURL         string
	version         string
	developerToken  string
	loginCustomerID string
	httpClient      *http.Client
}

// NewClient creates an Ads API client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Version == "" {
		opts.Version = "v17"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	loginID, _ := domain.NormalizeCustomerID(opts.LoginCustomerID)
	return &Client{
		baseURL:         strings.TrimRight(opts.BaseURL, "/"),
		version:         opts.Version,
		developerToken:  opts.DeveloperToken,
		loginCustomerID: loginID,
		httpClient:      opts.HTTPClient,
	}
}

// ListAccessibleCustomerIDs returns the ids of every customer reachable with ts.
func (c *Client) ListAccessibleCustomerIDs(ctx context.Context, ts oauth2.TokenSource) ([]string, error) {
	var resp struct {
		ResourceNames []string `json:"resourceNames"`
	}
	if err := c.do(ctx, ts, http.MethodGet, "customers:listAccessibleCustomers", nil, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.ResourceNames))
	for _, name := range resp.ResourceNames {
		ids = append(ids, lastSegment(name))
	}
	return ids, nil
}

// ListAccessibleAccounts returns the details of every accessible customer.
// Customers whose details cannot be read are logged and skipped.
func (c *Client) ListAccessibleAccounts(ctx context.Context, ts oauth2.TokenSource) ([]domain.AdsAccount, error) {
	ctx, span := tracer.Start(ctx, "googleads.list_accessible_accounts")
	defer span.End()

	ids, err := c.ListAccessibleCustomerIDs(ctx, ts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	accounts := make([]domain.AdsAccount, 0, len(ids))
	for _, id := range ids {
		acc, err := c.customer(ctx, ts, id)
		if err != nil {
			log.Printf("[googleads] skipping customer %s: %v", id, err)
			continue
		}
		accounts = append(accounts, *acc)
	}
	span.SetAttributes(attribute.Int("googleads.accounts", len(accounts)))
	return accounts, nil
}

// CheckAccess reports whether customerID is reachable with ts.
func (c *Client) CheckAccess(ctx context.Context, ts oauth2.TokenSource, customerID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "googleads.check_access", trace.WithAttributes(attribute.String("googleads.customer_id", customerID)))
	defer span.End()

	ids, err := c.ListAccessibleCustomerIDs(ctx, ts)
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	for _, id := range ids {
		if id == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) customer(ctx context.Context, ts oauth2.TokenSource, id string) (*domain.AdsAccount, error) {
	var resp struct {
		Results []struct {
			Customer struct {
				ID              string `json:"id"`
				DescriptiveName string `json:"descriptiveName"`
				CurrencyCode    string `json:"currencyCode"`
				TimeZone        string `json:"timeZone"`
				Status          string `json:"status"`
			} `json:"customer"`
		} `json:"results"`
	}
	body := map[string]string{"query": customerQuery}
	if err := c.do(ctx, ts, http.MethodPost, "customers/"+id+"/googleAds:search", body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("customer %s: no rows", id)
	}

	cust := resp.Results[0].Customer
	return &domain.AdsAccount{
		CustomerID:      id,
		DescriptiveName: cust.DescriptiveName,
		CurrencyCode:    cust.CurrencyCode,
		TimeZone:        cust.TimeZone,
		Status:          cust.Status,
	}, nil
}

type mutateResponse struct {
	Results []struct {
		ResourceName string `json:"resourceName"`
	} `json:"results"`
}

func (r mutateResponse) resourceName() (string, error) {
	if len(r.Results) == 0 || r.Results[0].ResourceName == "" {
		return "", fmt.Errorf("google ads api: empty mutate response")
	}
	return r.Results[0].ResourceName, nil
}

// CreateCampaign creates a budget and a search campaign using it and returns
// the new campaign id.
func (c *Client) CreateCampaign(ctx context.Context, ts oauth2.TokenSource, customerID string, spec domain.CampaignSpec) (string, error) {
	ctx, span := tracer.Start(ctx, "googleads.create_campaign", trace.WithAttributes(attribute.String("googleads.customer_id", customerID)))
	defer span.End()

	budget := map[string]any{
		"operations": []map[string]any{{
			"create": map[string]any{
				"name":             fmt.Sprintf("%s budget %d", spec.Name, time.Now().UnixNano()),
				"amountMicros":     strconv.FormatInt(int64(math.Round(spec.Budget*1e6)), 10),
				"deliveryMethod":   "STANDARD",
				"explicitlyShared": false,
			},
		}},
	}
	var budgetResp mutateResponse
	if err := c.do(ctx, ts, http.MethodPost, "customers/"+customerID+"/campaignBudgets:mutate", budget, &budgetResp); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("create budget: %w", err)
	}
	budgetName, err := budgetResp.resourceName()
	if err != nil {
		return "", err
	}

	create := map[string]any{
		"operations": []map[string]any{{
			"create": map[string]any{
				"name":                   spec.Name,
				"status":                 spec.Status,
				"advertisingChannelType": "SEARCH",
				"campaignBudget":         budgetName,
				"startDate":              spec.StartDate.Format(campaign.DateLayout),
				"endDate":                spec.EndDate.Format(campaign.DateLayout),
				"manualCpc":              map[string]any{},
				"networkSettings": map[string]bool{
					"targetGoogleSearch":  true,
					"targetSearchNetwork": true,
				},
			},
		}},
	}
	var campaignResp mutateResponse
	if err := c.do(ctx, ts, http.MethodPost, "customers/"+customerID+"/campaigns:mutate", create, &campaignResp); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("create campaign: %w", err)
	}
	name, err := campaignResp.resourceName()
	if err != nil {
		return "", err
	}
	return lastSegment(name), nil
}

// RemoveCampaign removes a campaign from the customer.
func (c *Client) RemoveCampaign(ctx context.Context, ts oauth2.TokenSource, customerID, campaignID string) error {
	ctx, span := tracer.Start(ctx, "googleads.remove_campaign", trace.WithAttributes(attribute.String("googleads.customer_id", customerID)))
	defer span.End()

	body := map[string]any{
		"operations": []map[string]string{{
			"remove": "customers/" + customerID + "/campaigns/" + campaignID,
		}},
	}
	if err := c.do(ctx, ts, http.MethodPost, "customers/"+customerID+"/campaigns:mutate", body, nil); err != nil {
		span.RecordError(err)
		return fmt.Errorf("remove campaign: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, ts oauth2.TokenSource, method, path string, in, out any) error {
	tok, err := ts.Token()
	if err != nil {
		return fmt.Errorf("google ads credentials: %w", err)
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+c.version+"/"+path, body)
	if err != nil {
		return err
	}
	tok.SetAuthHeader(req)
	req.Header.Set("developer-token", c.developerToken)
	if c.loginCustomerID != "" {
		req.Header.Set("login-customer-id", c.loginCustomerID)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func lastSegment(resourceName string) string {
	return resourceName[strings.LastIndex(resourceName, "/")+1:]
}
