package send_reminders

// Result итог рассылки: Sent + Failed == Total
type Result struct {
	Date   string `json:"date"`
	Total  int    `json:"total"`
	Sent   int    `json:"sent"`
	Failed int    `json:"failed"`
}

const (
	resultSent   = "sent"
	resultFailed = "failed"
)
