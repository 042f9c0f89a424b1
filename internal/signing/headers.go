package signing

import "net/http"

// Header key constants used by the GateFi REST API.
const (
	HeaderApiKey       = "api-key"
	HeaderSignature    = "signature"
	HeaderMerchantID   = "X-merchantid"
	HeaderAllowHeaders = "access-control-allow-headers"
)

// Identity is the non-secret part of the caller's credentials.
type Identity struct {
	PartnerID string
	AccessKey string
}

// BuildHeaders returns the header set attached to every signed call.
// X-merchantid is omitted when no partner id is configured.
func BuildHeaders(id Identity, signature string) http.Header {
	h := http.Header{}
	h.Set(HeaderAllowHeaders, "Accept")
	h.Set(HeaderApiKey, id.AccessKey)
	h.Set(HeaderSignature, signature)
	if id.PartnerID != "" {
		h.Set(HeaderMerchantID, id.PartnerID)
	}
	return h
}
