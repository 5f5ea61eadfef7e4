package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/trahulprabhu38/major-project-sub000/internal/model"
	"github.com/trahulprabhu38/major-project-sub000/pkg/logger"

	"go.uber.org/zap"
)

// MarksClient fetches marks rows from the external performance-data service
// when the local table has no row for a student. Best effort only: any
// failure is logged and treated as "no marks", never surfaced to callers.
type MarksClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewMarksClient(baseURL string) *MarksClient {
	return &MarksClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type marksResponse struct {
	USN    string              `json:"usn"`
	Scores map[string]*float64 `json:"scores"`
}

// FetchMarksRow pulls one (student, exam) row. Score keys follow the marks
// table column convention: "3" for a plain question, "3a"/"3b" for
// sub-parts.
func (c *MarksClient) FetchMarksRow(usn string, examIndex int) *model.MarksRow {
	if c == nil || c.BaseURL == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/api/marks/%d/%s", c.BaseURL, examIndex, usn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Log.Warn("marks service unreachable", zap.String("url", url), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Warn("marks service returned non-OK status",
			zap.String("usn", usn), zap.Int("status", resp.StatusCode))
		return nil
	}

	var payload marksResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Log.Warn("marks service response malformed", zap.Error(err))
		return nil
	}

	row := &model.MarksRow{
		USN:       usn,
		ExamIndex: examIndex,
		Parts:     make(map[int][]*float64),
	}
	for key, score := range payload.Scores {
		q, ok := parseQuestionKey(key)
		if !ok {
			continue
		}
		row.Parts[q] = append(row.Parts[q], score)
	}
	if len(row.Parts) == 0 {
		return nil
	}
	return row
}

// parseQuestionKey accepts "3", "3a", "3b" style column names.
func parseQuestionKey(key string) (int, bool) {
	digits := key
	for i, r := range key {
		if r < '0' || r > '9' {
			digits = key[:i]
			break
		}
	}
	q, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return q, true
}
