package client

import "net/http"

// Endpoint identifies one signed call exposed by the gateway. The set is
// closed; each value maps to a fixed HTTP method and path.
type Endpoint int

const (
	// Onramp
	EndpointPlatformConfig Endpoint = iota + 1
	EndpointQuotes
	EndpointBuyAsset

	// Payments
	EndpointRates
	EndpointPaymentConfig
	EndpointPaymentMethods
)

type endpointDef struct {
	name   string
	method string
	path   string
}

var endpoints = [...]endpointDef{
	EndpointPlatformConfig: {"PlatformConfig", http.MethodGet, "/onramp/v1/configuration"},
	EndpointQuotes:         {"Quotes", http.MethodGet, "/onramp/v1/quotes"},
	EndpointBuyAsset:       {"BuyAsset", http.MethodGet, "/onramp/v1/buy"},
	EndpointRates:          {"Rates", http.MethodGet, "/api/v1/rates"},
	EndpointPaymentConfig:  {"PaymentConfig", http.MethodGet, "/api/v1/config"},
	EndpointPaymentMethods: {"PaymentMethods", http.MethodGet, "/api/v1/methods/currencies"},
}

func (e Endpoint) def() endpointDef {
	if e <= 0 || int(e) >= len(endpoints) {
		return endpointDef{}
	}
	return endpoints[e]
}

// Method returns the HTTP method token, e.g. "GET".
func (e Endpoint) Method() string { return e.def().method }

// Path returns the URL path relative to the API host.
func (e Endpoint) Path() string { return e.def().path }

func (e Endpoint) String() string {
	if s := e.def(); s.name != "" {
		return s.name
	}
	return "Endpoint(unknown)"
}

// Endpoints lists every known endpoint in declaration order.
func Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(endpoints)-1)
	for e := EndpointPlatformConfig; int(e) < len(endpoints); e++ {
		out = append(out, e)
	}
	return out
}
