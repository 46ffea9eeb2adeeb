// Package logging emits single-line JSON events on the standard
// logger, so log shippers can parse without a prefix convention.
package logging

import (
	"encoding/json"
	"log"
	"time"
)

type Fields struct {
	Service    string `json:"service"`
	RequestID  string `json:"request_id,omitempty"`
	EventID    string `json:"event_id,omitempty"`
	OrderID    int64  `json:"order_id,omitempty"`
	UserID     int64  `json:"user_id,omitempty"`
	Method     string `json:"method,omitempty"`
	Path       string `json:"path,omitempty"`
	Status     string `json:"status,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Message    string `json:"message,omitempty"`
}

func Log(fields Fields) {
	payload := map[string]any{
		"service":   fields.Service,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if fields.RequestID != "" {
		payload["request_id"] = fields.RequestID
	}
	if fields.EventID != "" {
		payload["event_id"] = fields.EventID
	}
	if fields.OrderID != 0 {
		payload["order_id"] = fields.OrderID
	}
	if fields.UserID != 0 {
		payload["user_id"] = fields.UserID
	}
	if fields.Method != "" {
		payload["method"] = fields.Method
	}
	if fields.Path != "" {
		payload["path"] = fields.Path
	}
	if fields.Status != "" {
		payload["status"] = fields.Status
	}
	if fields.DurationMS != 0 {
		payload["duration_ms"] = fields.DurationMS
	}
	if fields.Message != "" {
		payload["message"] = fields.Message
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("{\"service\":%q,\"status\":\"log_error\",\"error\":%q}", fields.Service, err.Error())
		return
	}
	log.Print(string(data))
}
