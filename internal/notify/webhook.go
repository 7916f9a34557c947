package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pulsehealth/pulsehealth/pkg/types"
)

func (n *Notifier) sendSlack(url string, nf *Notification) error {
	rec := nf.Recommendation
	body, _ := json.Marshal(map[string]string{
		"text": fmt.Sprintf("*%s* %s on %s: %s — %s",
			priorityLabel(rec.Priority), rec.Category, nf.Machine, rec.Issue, rec.Action),
	})
	return n.post(url, body)
}

func (n *Notifier) sendTeams(url string, nf *Notification) error {
	rec := nf.Recommendation
	payload := map[string]interface{}{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": priorityColor(rec.Priority),
		"summary":    rec.Issue,
		"title":      fmt.Sprintf("PulseHealth: %s on %s", rec.Category, nf.Machine),
		"text":       fmt.Sprintf("%s\n\n**Action:** %s", rec.Issue, rec.Action),
	}
	body, _ := json.Marshal(payload)
	return n.post(url, body)
}

func (n *Notifier) sendHTTP(url string, nf *Notification) error {
	body, _ := json.Marshal(map[string]interface{}{"notification": nf})
	return n.post(url, body)
}

func (n *Notifier) post(url string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}

func priorityLabel(p types.Priority) string {
	switch p {
	case types.PriorityCritical:
		return "[CRITICAL]"
	case types.PriorityHigh:
		return "[HIGH]"
	case types.PriorityMedium:
		return "[MEDIUM]"
	default:
		return "[LOW]"
	}
}

func priorityColor(p types.Priority) string {
	switch p {
	case types.PriorityCritical:
		return "FF4F6A"
	case types.PriorityHigh:
		return "FFAB40"
	default:
		return "00D4FF"
	}
}
