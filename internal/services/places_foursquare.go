package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"tripgen/internal/planner"
	"tripgen/pkg/utils"
)

const foursquareFields = "fsq_id,name,categories,geocodes,location,hours,price,rating,tel,website"

// -------------- Foursquare Places v3 client ---------------

type FoursquareSearcher struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	Limiter *rate.Limiter
}

// NewFoursquareSearcher allows ten requests per second with a small burst,
// well under the provider's documented quota.
func NewFoursquareSearcher(apiKey, baseURL string) *FoursquareSearcher {
	return &FoursquareSearcher{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Limiter: rate.NewLimiter(rate.Limit(10), 5),
	}
}

type fsqResponse struct {
	Results []fsqPlace `json:"results"`
}

type fsqPlace struct {
	FsqID      string `json:"fsq_id"`
	Name       string `json:"name"`
	Categories []struct {
		Name string `json:"name"`
	} `json:"categories"`
	Geocodes struct {
		Main struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"main"`
	} `json:"geocodes"`
	Location struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"location"`
	Hours *struct {
		Display string `json:"display"`
		Regular []struct {
			Day   int    `json:"day"`
			Open  string `json:"open"`
			Close string `json:"close"`
		} `json:"regular"`
	} `json:"hours"`
	Price   *int     `json:"price"`
	Rating  *float64 `json:"rating"`
	Tel     string   `json:"tel"`
	Website string   `json:"website"`
}

func (c *FoursquareSearcher) Search(ctx context.Context, q PlaceQuery) ([]planner.Venue, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: foursquare rate limit wait: %v", utils.ErrPlacesProvider, err)
		}
	}

	u, err := url.Parse(c.BaseURL + "/places/search")
	if err != nil {
		return nil, fmt.Errorf("%w: foursquare base url: %v", utils.ErrPlacesProvider, err)
	}
	params := url.Values{}
	params.Set("query", q.Query)
	params.Set("near", q.Near)
	params.Set("fields", foursquareFields)
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrPlacesProvider, err)
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: foursquare http error: %v", utils.ErrPlacesProvider, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: foursquare bad status: %s", utils.ErrPlacesProvider, resp.Status)
	}

	var payload fsqResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: foursquare decode: %v", utils.ErrPlacesProvider, err)
	}

	venues := make([]planner.Venue, 0, len(payload.Results))
	for _, p := range payload.Results {
		if p.FsqID == "" {
			continue
		}
		venues = append(venues, p.toVenue())
	}
	return venues, nil
}

func (p fsqPlace) toVenue() planner.Venue {
	v := planner.Venue{
		ID:        p.FsqID,
		Name:      p.Name,
		Latitude:  p.Geocodes.Main.Latitude,
		Longitude: p.Geocodes.Main.Longitude,
		Address:   p.Location.FormattedAddress,
		Phone:     p.Tel,
		Website:   p.Website,
		Price:     p.Price,
		Rating:    p.Rating,
	}
	for _, c := range p.Categories {
		v.Categories = append(v.Categories, c.Name)
	}
	if p.Hours != nil {
		h := &planner.Hours{Display: p.Hours.Display}
		for _, r := range p.Hours.Regular {
			h.Regular = append(h.Regular, planner.HoursEntry{Day: r.Day, Open: r.Open, Close: r.Close})
		}
		v.Hours = h
	}
	return v
}
