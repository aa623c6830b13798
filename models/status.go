package models

// StatusTTLMillis is how long a one-shot status stays on screen before it
// self-dismisses.
const StatusTTLMillis = 3200

const (
	StatusInfo    = "info"
	StatusSuccess = "success"
	StatusError   = "error"
)

// Status is the one-shot user-facing message every mutation returns.
type Status struct {
	Kind     string `json:"kind"`
	Text     string `json:"text"`
	TTLMilli int    `json:"ttlMs"`
}

func InfoStatus(text string) Status {
	return Status{Kind: StatusInfo, Text: text, TTLMilli: StatusTTLMillis}
}

func SuccessStatus(text string) Status {
	return Status{Kind: StatusSuccess, Text: text, TTLMilli: StatusTTLMillis}
}

func ErrorStatus(text string) Status {
	return Status{Kind: StatusError, Text: text, TTLMilli: StatusTTLMillis}
}
