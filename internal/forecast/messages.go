package forecast

import "github.com/couchcryptid/groundwater-forecast-service/internal/domain"

// userMessages maps each failure kind to the text shown to the user. Raw
// transport detail never reaches the presentation layer.
var userMessages = map[domain.Kind]string{
	domain.KindNetworkUnavailable:   "Network error. Please check your internet connection.",
	domain.KindServiceUnavailable:   "The prediction service is temporarily unavailable. Please try again.",
	domain.KindMalformedPayload:     "The service returned an unreadable response. This may be a temporary issue.",
	domain.KindMissingField:         "The service's response was incomplete. Please try again.",
	domain.KindInconsistentTimeline: "The service returned an inconsistent forecast timeline. Please try again.",
	domain.KindInvalidRequest:       "The location could not be processed. Please try a different one.",
	domain.KindServiceMisconfigured: "The prediction service is not configured correctly. Please contact support.",
	domain.KindUnexpected:           "An unexpected error occurred. Please try again later.",
}

// UserMessage returns the user-facing text for kind.
func UserMessage(kind domain.Kind) string {
	if msg, ok := userMessages[kind]; ok {
		return msg
	}
	return userMessages[domain.KindUnexpected]
}
