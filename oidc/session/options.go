package session

import (
	"net/http"

	"github.com/hashicorp/go-hclog"
)

// Option defines a common functional options type
type Option func(interface{})

// ApplyOpts takes a pointer to the options struct as a set of default options
// and applies the slice of opts as overrides.
func ApplyOpts(opts interface{}, opt ...Option) {
	for _, o := range opt {
		if o == nil {
			continue
		}
		o(opts)
	}
}

// WithLogger provides an optional logger for: Manager, ExchangeClient
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		switch v := o.(type) {
		case *managerOptions:
			v.withLogger = l
		case *exchangeOptions:
			v.withLogger = l
		}
	}
}

// WithExchanger overrides the Manager's backend code exchanger. Useful for
// tests and for hosts with their own exchange transport.
func WithExchanger(e CodeExchanger) Option {
	return func(o interface{}) {
		if o, ok := o.(*managerOptions); ok {
			o.withExchanger = e
		}
	}
}

// WithHTTPClient provides an optional http client for the ExchangeClient.
func WithHTTPClient(c *http.Client) Option {
	return func(o interface{}) {
		if o, ok := o.(*exchangeOptions); ok {
			o.withHTTPClient = c
		}
	}
}

// managerOptions is the set of available options for New
type managerOptions struct {
	withLogger    hclog.Logger
	withExchanger CodeExchanger
}

func managerDefaults() managerOptions {
	return managerOptions{}
}

func getManagerOpts(opt ...Option) managerOptions {
	opts := managerDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// exchangeOptions is the set of available options for NewExchangeClient
type exchangeOptions struct {
	withLogger     hclog.Logger
	withHTTPClient *http.Client
}

func exchangeDefaults() exchangeOptions {
	return exchangeOptions{}
}

func getExchangeOpts(opt ...Option) exchangeOptions {
	opts := exchangeDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}
