package gateway

import (
	"encoding/json"
	"fmt"
	"time"
)

// Outcome is the closed internal form of a provider-reported payment result.
// Provider payloads are translated into it exactly once, at this boundary;
// nothing past this package branches on raw provider strings.
type Outcome struct {
	Reference string
	Succeeded bool
	PaidAt    *time.Time
	Reason    string
	Raw       []byte
}

type eventEnvelope struct {
	Event string      `json:"event"`
	Data  outcomeData `json:"data"`
}

type outcomeData struct {
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	PaidAt          string `json:"paid_at"`
	GatewayResponse string `json:"gateway_response"`
	Message         string `json:"message"`
}

// ParseWebhook translates a raw webhook body into an Outcome. Only
// charge.success maps to a successful outcome; every other event for a
// reference lands in the failed bucket.
func ParseWebhook(body []byte) (Outcome, error) {
	var env eventEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Outcome{}, fmt.Errorf("decode webhook body: %w", err)
	}
	if env.Data.Reference == "" {
		return Outcome{}, fmt.Errorf("webhook body carries no reference")
	}
	out := outcomeFromData(env.Data)
	out.Succeeded = env.Event == "charge.success" && env.Data.Status == "success"
	out.Raw = body
	return out, nil
}

func outcomeFromData(data outcomeData) Outcome {
	out := Outcome{
		Reference: data.Reference,
		Succeeded: data.Status == "success",
	}
	if out.Succeeded {
		if ts, err := time.Parse(time.RFC3339, data.PaidAt); err == nil {
			out.PaidAt = &ts
		}
	} else {
		out.Reason = data.GatewayResponse
		if out.Reason == "" {
			out.Reason = data.Message
		}
		if out.Reason == "" {
			out.Reason = data.Status
		}
	}
	return out
}
