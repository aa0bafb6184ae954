// Package dadis provides a client for the FAO DAD-IS breed registry API.
package dadis

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/vbo-tools/dadismatch/internal/transport"
	"github.com/vbo-tools/dadismatch/pkg/constants"
	"github.com/vbo-tools/dadismatch/pkg/errors"
	"github.com/vbo-tools/dadismatch/pkg/logging"
	"github.com/vbo-tools/dadismatch/pkg/registry"
)

// API paths relative to the base URL.
const (
	speciesPath             = "/species"
	transboundaryNamesPath  = "/transboundaryNames"
	transboundaryBreedsPath = "/transboundaryBreeds"
)

// Client implements registry.Provider against the DAD-IS API.
type Client struct {
	baseURL   string
	apiKey    string
	transport *transport.Client
	topts     []transport.Option
}

var _ registry.Provider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.topts = append(c.topts, transport.WithHTTPClient(hc))
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.topts = append(c.topts, transport.WithTimeout(d))
	}
}

// WithRateLimit caps requests per second. Zero disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		c.topts = append(c.topts, transport.WithRateLimit(perSecond, burst))
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.topts = append(c.topts, transport.WithUserAgent(ua))
	}
}

// New creates a DAD-IS client. An empty apiKey is a configuration error;
// no request is ever made without one.
func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.NewConfigError(constants.RegistryName, constants.ErrMsgMissingAPIKey, errors.ErrAPIKeyRequired)
	}

	c := &Client{
		baseURL: constants.DefaultRegistryURL,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.transport = transport.New(&transport.HeaderAuth{Header: "Authorization"}, c.topts...)
	return c, nil
}

// BaseURL returns the API base URL in use.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchSpecies retrieves every species with its English name.
func (c *Client) FetchSpecies(ctx context.Context) ([]registry.Species, error) {
	var items []speciesResponse
	if err := c.get(ctx, registry.OpSpecies, speciesPath, &items); err != nil {
		return nil, err
	}

	out := make([]registry.Species, 0, len(items))
	for _, s := range items {
		out = append(out, s.toSpecies())
	}
	return out, nil
}

// FetchCanonicalBreedNames retrieves the canonical name of every
// transboundary breed.
func (c *Client) FetchCanonicalBreedNames(ctx context.Context) ([]registry.CanonicalBreed, error) {
	var items []transboundaryNameResponse
	if err := c.get(ctx, registry.OpCanonical, transboundaryNamesPath, &items); err != nil {
		return nil, err
	}

	out := make([]registry.CanonicalBreed, 0, len(items))
	for _, n := range items {
		out = append(out, n.toCanonical())
	}
	return out, nil
}

// FetchAllAliasBreeds retrieves every breed linked to a transboundary breed.
func (c *Client) FetchAllAliasBreeds(ctx context.Context) ([]registry.AliasBreed, error) {
	var items []transboundaryBreedResponse
	if err := c.get(ctx, registry.OpAliases, transboundaryBreedsPath, &items); err != nil {
		return nil, err
	}

	out := make([]registry.AliasBreed, 0, len(items))
	for _, b := range items {
		out = append(out, b.toAlias())
	}
	return out, nil
}

// get fetches path and decodes the "response" array of the envelope into
// target. Every failure comes back as a *errors.RegistryError.
func (c *Client) get(ctx context.Context, op, path string, target any) error {
	ctx = logging.WithOperation(logging.WithRegistry(ctx, constants.RegistryName), op)
	logger := logging.FromContext(ctx)
	url := c.baseURL + path

	logger.Debug().Str("url", url).Msg("Fetching from DAD-IS")

	resp, err := c.transport.Get(ctx, url, c.apiKey)
	if err != nil {
		if ctx.Err() != nil {
			return errors.WrapRegistry(constants.RegistryName, op, ctx.Err())
		}
		return errors.WrapRegistry(constants.RegistryName, op, &errors.APIError{
			Registry: constants.RegistryName,
			Endpoint: path,
			Message:  "request failed",
			Err:      err,
		})
	}

	env := envelope{Response: target}
	if err := transport.DecodeResponse(resp, constants.RegistryName, &env); err != nil {
		return errors.WrapRegistry(constants.RegistryName, op, err)
	}
	if !env.present {
		return errors.WrapRegistry(constants.RegistryName, op,
			errors.NewParseError("json", path, `missing "response" field`, nil))
	}

	logger.Debug().Msg("Fetched from DAD-IS")
	return nil
}
