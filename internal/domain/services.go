package domain

// StreamingService identifies a subscription service the user can hold.
// The set is closed: adding a service means adding a constant here and
// a case to ServiceForProvider, both compile-time visible.
type StreamingService string

const (
	ServiceNetflix     StreamingService = "Netflix"
	ServiceHBOMax      StreamingService = "HBO-MAX"
	ServiceAmazonPrime StreamingService = "AmazonPrime"
	ServiceDisneyPlus  StreamingService = "Disney+"
)

// AllServices returns every known service, in display order
func AllServices() []StreamingService {
	return []StreamingService{
		ServiceNetflix,
		ServiceHBOMax,
		ServiceAmazonPrime,
		ServiceDisneyPlus,
	}
}

// ServiceForProvider maps a catalog provider name to a service.
// Matching is exact and case-sensitive; unknown names return false.
func ServiceForProvider(providerName string) (StreamingService, bool) {
	switch providerName {
	case "Netflix":
		return ServiceNetflix, true
	case "Max", "HBO Max":
		return ServiceHBOMax, true
	case "Amazon Prime Video":
		return ServiceAmazonPrime, true
	case "Disney Plus":
		return ServiceDisneyPlus, true
	default:
		return "", false
	}
}

// ParseService converts a stored config value back to a service
func ParseService(s string) (StreamingService, bool) {
	for _, svc := range AllServices() {
		if string(svc) == s {
			return svc, true
		}
	}
	return "", false
}

// DisplayName returns the human-readable service name
func (s StreamingService) DisplayName() string {
	switch s {
	case ServiceNetflix:
		return "Netflix"
	case ServiceHBOMax:
		return "Max"
	case ServiceAmazonPrime:
		return "Amazon Prime Video"
	case ServiceDisneyPlus:
		return "Disney+"
	default:
		return string(s)
	}
}
