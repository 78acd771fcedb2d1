package apperror

// fieldMessages are validation defaults for the pass creation payload,
// keyed by field name.
var fieldMessages = map[string]string{
	"eventId":      "an event must be selected",
	"accountId":    "account is required",
	"barcode":      "barcode is required",
	"customerName": "customer name is required",
	"spotType":     "spot type is required",
	"lotId":        "lot is required",
}

type messageKey struct {
	kind Kind
	code Code
}

var defaultMessages = map[messageKey]string{
	{KindNetwork, CodeConnectionError}:      "could not reach the ParkHub API",
	{KindNetwork, CodeTimeout}:              "request to the ParkHub API timed out",
	{KindAuthentication, CodeInvalidAPIKey}: "API key was rejected",
	{KindAuthentication, CodeMissingAPIKey}: "no API key configured",
	{KindValidation, CodeInvalidInput}:      "request was rejected as invalid",
	{KindValidation, CodeDuplicateBarcode}:  "a pass with this barcode already exists",
	{KindServer, CodeServerError}:           "ParkHub API returned a server error",
	{KindServer, CodeRateLimitExceeded}:     "rate limit exceeded, slow down",
	{KindClient, CodeEventNotFound}:         "event not found",
	{KindClient, CodeUnknownError}:          "unexpected response from the ParkHub API",
	{KindUnknown, CodeUnknownError}:         "unexpected error",
}

// defaultMessage resolves the kind x code lookup, preferring a field-specific
// message for validation errors.
func defaultMessage(kind Kind, code Code, field string) string {
	if kind == KindValidation && code == CodeInvalidInput && field != "" {
		if msg, ok := fieldMessages[field]; ok {
			return msg
		}
	}
	if msg, ok := defaultMessages[messageKey{kind, code}]; ok {
		return msg
	}
	return "unexpected error"
}
