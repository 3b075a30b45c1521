package security

import "go.uber.org/zap/zapcore"

// Severity is derived from the EventType, never supplied by the caller.
type Severity string

const (
	SeverityINFO     Severity = "INFO"
	SeverityMEDIUM   Severity = "MEDIUM"
	SeverityWARN     Severity = "WARN"
	SeverityHIGH     Severity = "HIGH"
	SeverityCRITICAL Severity = "CRITICAL"
)

// EventSeverityMap fixes the severity of every event the API emits.
var EventSeverityMap = map[EventType]Severity{
	EventLoginSuccess: SeverityINFO,
	EventRegistered:   SeverityINFO,

	EventTokenRejected: SeverityMEDIUM,
	EventForbidden:     SeverityMEDIUM,

	EventLoginFailed:        SeverityWARN,
	EventRateLimitTriggered: SeverityWARN,

	EventLoginBlocked: SeverityHIGH,
	EventBlockCreated: SeverityHIGH,
}

// GetSeverity returns the severity for an event type, MEDIUM when unmapped.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

// IsHighOrAbove returns true if the event is HIGH or CRITICAL severity
func IsHighOrAbove(eventType EventType) bool {
	severity := GetSeverity(eventType)
	return severity == SeverityHIGH || severity == SeverityCRITICAL
}

func levelFor(event EventType) zapcore.Level {
	switch GetSeverity(event) {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityHIGH, SeverityCRITICAL:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
