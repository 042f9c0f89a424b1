package client

import (
	"fmt"
	"strings"
)

// Environment selects the gateway deployment.
type Environment string

const (
	Sandbox    Environment = "sandbox"
	Production Environment = "production"
)

// RESTHost returns the REST API base URL for env.
func (env Environment) RESTHost() string {
	if env == Production {
		return "https://api.gatefi.com"
	}
	return "https://api-sandbox.gatefi.com"
}

// PaymentPageHost returns the base URL of the hosted payment page for env.
func (env Environment) PaymentPageHost() string {
	if env == Production {
		return "https://onramp.gatefi.com"
	}
	return "https://onramp-sandbox.gatefi.com"
}

// ParseEnvironment accepts "sandbox", "production" or "prod", in any case.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sandbox", "":
		return Sandbox, nil
	case "production", "prod":
		return Production, nil
	}
	return "", &ValidationError{Field: "environment", Message: fmt.Sprintf("unknown environment %q", s)}
}
