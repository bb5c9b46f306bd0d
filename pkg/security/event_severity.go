package security

// Severity is derived from EventType, never supplied by the caller
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityWARN   Severity = "WARN"
	SeverityHIGH   Severity = "HIGH"
)

var EventSeverityMap = map[EventType]Severity{
	EventValidationFailed:   SeverityINFO,
	EventCaptchaFailed:      SeverityWARN,
	EventRateLimitTriggered: SeverityWARN,
	EventDispatchFailed:     SeverityMEDIUM,
	EventServerError:        SeverityMEDIUM,
	EventUnauthorizedAccess: SeverityHIGH,
}

// GetSeverity returns the severity for an event type
// If the event type is not mapped, defaults to MEDIUM
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

// IsHighOrAbove returns true if the event is HIGH severity
func IsHighOrAbove(eventType EventType) bool {
	return GetSeverity(eventType) == SeverityHIGH
}
