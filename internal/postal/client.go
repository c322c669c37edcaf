package postal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/warehouse"
)

const (
	DefaultBaseURL = "https://api.postalpincode.in/pincode"

	maxResponseBody = 1 << 20
)

var (
	ErrPincodeNotFound = errors.New("pincode not found")

	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

type PostOffice struct {
	Name     string `json:"Name"`
	Division string `json:"Division"`
	District string `json:"District"`
	State    string `json:"State"`
	Country  string `json:"Country"`
}

type lookupResponse struct {
	Message    string       `json:"Message"`
	Status     string       `json:"Status"`
	PostOffice []PostOffice `json:"PostOffice"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Lookup returns the post offices serving a six digit pin code.
func (c *Client) Lookup(ctx context.Context, pincode string) ([]PostOffice, error) {
	if !pincodePattern.MatchString(pincode) {
		return nil, apperrors.NewValidationError("pin_code")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+pincode, nil)
	if err != nil {
		return nil, fmt.Errorf("postal: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: postal lookup: %v", apperrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: postal lookup: read body: %v", apperrors.ErrExternalService, err)
	}
	if len(body) > maxResponseBody {
		return nil, fmt.Errorf("%w: postal lookup: response exceeds %d bytes", apperrors.ErrExternalService, maxResponseBody)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: postal lookup: HTTP %d", apperrors.ErrExternalService, resp.StatusCode)
	}

	parsed, err := decodeLookup(body)
	if err != nil {
		return nil, fmt.Errorf("%w: postal lookup: %v", apperrors.ErrExternalService, err)
	}
	if !strings.EqualFold(parsed.Status, "Success") || len(parsed.PostOffice) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPincodeNotFound, pincode)
	}
	return parsed.PostOffice, nil
}

// Resolve maps the first post office to the locality used to autofill
// addresses; the division stands in for the city.
func (c *Client) Resolve(ctx context.Context, pincode string) (warehouse.Locality, error) {
	offices, err := c.Lookup(ctx, pincode)
	if err != nil {
		return warehouse.Locality{}, err
	}
	po := offices[0]
	return warehouse.Locality{City: po.Division, State: po.State, Country: po.Country}, nil
}

// decodeLookup accepts both the list envelope the API returns and a bare
// object.
func decodeLookup(body []byte) (lookupResponse, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var list []lookupResponse
		if err := json.Unmarshal(body, &list); err != nil {
			return lookupResponse{}, err
		}
		if len(list) == 0 {
			return lookupResponse{}, nil
		}
		return list[0], nil
	}

	var single lookupResponse
	err := json.Unmarshal(body, &single)
	return single, err
}
