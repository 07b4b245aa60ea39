// Package scryfall resolves Magic: the Gathering card names through the
// Scryfall API. It is one concrete card source; nothing else in the
// tool knows about Magic.
package scryfall

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/decksmith/decksmith/internal/card"
)

const (
	// DefaultBaseURL is the public Scryfall API.
	DefaultBaseURL = "https://api.scryfall.com"

	// CardBackURL is the standard Magic card back served by Scryfall's
	// image host. Every resolved card uses it.
	CardBackURL = "https://backs.scryfall.io/normal/0/a/0aeebaf5-8c7d-4636-9e82-8c27447861f7.jpg"

	userAgent = "decksmith/1.0"

	// Scryfall asks clients to leave 50-100ms between requests.
	requestDelay = 100 * time.Millisecond
)

// Client resolves card names against the Scryfall API. Successful
// lookups are cached per name, so a decklist full of duplicates costs
// one request per distinct card. Not safe for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	cache       map[string]scryfallCard
	lastRequest time.Time
}

// NewClient creates a client for the public API.
func NewClient() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: map[string]scryfallCard{},
	}
}

// Resolve implements card.Resolver using the exact-named-card endpoint.
// The returned card carries Scryfall's canonical spelling of the name.
func (c *Client) Resolve(name string) (card.Card, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if cached, ok := c.cache[key]; ok {
		return cached, nil
	}

	c.throttle()
	slog.Debug("Looking up card on Scryfall", "name", name)

	req, err := http.NewRequest(http.MethodGet,
		fmt.Sprintf("%s/cards/named?exact=%s", c.BaseURL, url.QueryEscape(name)), nil)
	if err != nil {
		return nil, &card.Error{Name: name, Facet: card.FacetLookup, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &card.Error{Name: name, Facet: card.FacetLookup, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &card.Error{Name: name, Facet: card.FacetLookup, Err: errors.New("card doesn't exist")}
	case resp.StatusCode != http.StatusOK:
		return nil, &card.Error{Name: name, Facet: card.FacetLookup,
			Err: fmt.Errorf("scryfall returned status %d", resp.StatusCode)}
	}

	var payload struct {
		Name      string `json:"name"`
		ImageURIs struct {
			Normal string `json:"normal"`
		} `json:"image_uris"`
		CardFaces []struct {
			ImageURIs struct {
				Normal string `json:"normal"`
			} `json:"image_uris"`
		} `json:"card_faces"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &card.Error{Name: name, Facet: card.FacetLookup,
			Err: fmt.Errorf("decoding scryfall response: %w", err)}
	}

	front := payload.ImageURIs.Normal
	if front == "" && len(payload.CardFaces) > 0 {
		// Double-faced cards carry images per face; the deck shows the
		// first face.
		front = payload.CardFaces[0].ImageURIs.Normal
	}

	resolved := scryfallCard{name: payload.Name, front: front}
	c.cache[key] = resolved
	slog.Debug("Resolved card", "name", payload.Name, "front", front)
	return resolved, nil
}

// throttle spaces requests out by requestDelay.
func (c *Client) throttle() {
	if wait := requestDelay - time.Since(c.lastRequest); wait > 0 {
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

// scryfallCard is a resolved Magic card. Magic cards are always rounded
// rectangles and share one back image.
type scryfallCard struct {
	name  string
	front string
}

func (c scryfallCard) Name() string {
	return c.name
}

func (c scryfallCard) FrontImage() (string, error) {
	if c.front == "" {
		return "", &card.Error{Name: c.name, Facet: card.FacetFrontImage,
			Err: errors.New("scryfall has no image for this card")}
	}
	return c.front, nil
}

func (c scryfallCard) BackImage() (string, error) {
	return CardBackURL, nil
}

func (c scryfallCard) Shape() (card.Shape, error) {
	return card.RoundedRectangle, nil
}
