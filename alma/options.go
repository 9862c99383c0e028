package alma

import (
	"time"

	"github.com/mathieugrimault/vufind/cache"
	"github.com/mathieugrimault/vufind/datefmt"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout            time.Duration
	itemLimit          int
	fanOutLimit        int
	inventoryTypes     []string
	digitalDeliveryURL string
	dates              *datefmt.Normalizer
	store              cache.Store
}

func defaultClientOptions() clientOptions {
	return clientOptions{
		timeout:        30 * time.Second,
		itemLimit:      10,
		fanOutLimit:    5,
		inventoryTypes: []string{"physical"},
		dates:          datefmt.New(),
		store:          cache.NewMemory(),
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithItemLimit sets the default holdings item window size.
func WithItemLimit(limit int) Option {
	return func(o *clientOptions) {
		if limit > 0 {
			o.itemLimit = limit
		}
	}
}

// WithFanOutLimit bounds the number of concurrent per-item sub-fetches
// during holdings aggregation.
func WithFanOutLimit(limit int) Option {
	return func(o *clientOptions) {
		if limit > 0 {
			o.fanOutLimit = limit
		}
	}
}

// WithInventoryTypes selects which availability sources are queried
// (subset of physical, electronic, digital).
func WithInventoryTypes(types []string) Option {
	return func(o *clientOptions) {
		if len(types) > 0 {
			o.inventoryTypes = types
		}
	}
}

// WithDigitalDeliveryURL sets the delivery link template for digital
// inventory; the %%id%% token is replaced with the representation id.
func WithDigitalDeliveryURL(template string) Option {
	return func(o *clientOptions) {
		o.digitalDeliveryURL = template
	}
}

// WithDateNormalizer overrides the date display conversion.
func WithDateNormalizer(n *datefmt.Normalizer) Option {
	return func(o *clientOptions) {
		if n != nil {
			o.dates = n
		}
	}
}

// WithCache sets the store used to memoize patron blocks and group
// codes.
func WithCache(store cache.Store) Option {
	return func(o *clientOptions) {
		if store != nil {
			o.store = store
		}
	}
}
