package models

// Health represents the health status of the service.
type Health struct {
	Status  HealthStatus   `json:"status"`
	Time    Timestamp      `json:"time"`
	Details map[string]any `json:"details,omitempty"`
}

// Readiness reports whether the service can accept calculations.
type Readiness struct {
	Status HealthStatus `json:"status"`
	Time   Timestamp    `json:"time"`
	Checks []Check      `json:"checks"`
}

// Check is the outcome of a single readiness probe.
type Check struct {
	Name   string       `json:"name"`
	Status HealthStatus `json:"status"`
	Detail string       `json:"detail,omitempty"`
}
