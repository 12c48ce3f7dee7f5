package ygoprodeck

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrFetch marks any failure to get usable card data out of the API.
// Callers treat it as terminal for the current game or lookup; there is
// no retry inside the client.
var ErrFetch = errors.New("ygoprodeck: fetch failed")

const DefaultBaseURL = "https://db.ygoprodeck.com/api/v7"

// Client is a thin HTTP client for the YGOPRODeck REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client against baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SearchByName returns cards whose name contains the query (fuzzy match).
// An empty result is not an error.
func (c *Client) SearchByName(name string) ([]Card, error) {
	return c.cardinfo(url.Values{"fname": {name}})
}

// ByName returns the single card with exactly this name, nil if none.
func (c *Client) ByName(name string) (*Card, error) {
	cards, err := c.cardinfo(url.Values{"name": {name}})
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, nil
	}
	return &cards[0], nil
}

// ByArchetype returns every card in an archetype.
func (c *Client) ByArchetype(archetype string) ([]Card, error) {
	return c.cardinfo(url.Values{"archetype": {archetype}})
}

// Staples returns the community staple list, a pool of a few hundred
// cards most players recognize.
func (c *Client) Staples() ([]Card, error) {
	return c.cardinfo(url.Values{"staple": {"yes"}})
}

// RandomCard fetches one random card.
func (c *Client) RandomCard() (*Card, error) {
	resp, err := c.http.Get(c.baseURL + "/randomcard.php")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	var card Card
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if card.Name == "" {
		return nil, fmt.Errorf("%w: malformed random card response", ErrFetch)
	}

	return &card, nil
}

// cardinfo queries the cardinfo.php endpoint. The API answers 400 with
// an error body when nothing matches; that maps to an empty slice here.
func (c *Client) cardinfo(params url.Values) ([]Card, error) {
	resp, err := c.http.Get(c.baseURL + "/cardinfo.php?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	var payload struct {
		Data []Card `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	return payload.Data, nil
}
