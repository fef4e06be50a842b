package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"iqscaler/backend/cache"
	"iqscaler/backend/models"
	"iqscaler/backend/store"
)

// AnswerIndex is a submitted option index. Clients send numbers or numeric
// strings; null means the question was skipped.
type AnswerIndex struct {
	Value int
	Valid bool
}

func Index(n int) AnswerIndex { return AnswerIndex{Value: n, Valid: true} }

func (a *AnswerIndex) UnmarshalJSON(b []byte) error {
	*a = AnswerIndex{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		*a = Index(int(math.Trunc(v)))
		return nil
	case string:
		n, ok := parseLeadingInt(v)
		if !ok {
			return errors.Errorf("selectedIndex %q is not a number", v)
		}
		*a = Index(n)
		return nil
	}
	return errors.Errorf("selectedIndex must be a number, got %s", string(b))
}

func (a AnswerIndex) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(a.Value)), nil
}

// parseLeadingInt reads an optionally signed run of digits after leading
// whitespace and ignores anything that follows, so "2abc" is 2.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

type Answer struct {
	QuestionID    string      `json:"questionId"`
	SelectedIndex AnswerIndex `json:"selectedIndex"`
}

type Tally struct {
	TotalScore          int
	CorrectAnswers      int
	QuestionsAttempted  int
	DifficultyBreakdown models.Breakdown
}

// Grade scores answers against the answer key. Unknown question ids and
// skipped answers earn nothing but still count as attempted.
func Grade(answers []Answer, key map[string]models.Question) Tally {
	t := Tally{QuestionsAttempted: len(answers), DifficultyBreakdown: models.NewBreakdown()}
	for _, ans := range answers {
		q, ok := key[ans.QuestionID]
		if !ok || !ans.SelectedIndex.Valid || ans.SelectedIndex.Value != q.CorrectAnswerIndex {
			continue
		}
		t.CorrectAnswers++
		t.TotalScore += q.Difficulty.Points()
		if _, known := t.DifficultyBreakdown[q.Difficulty]; known {
			t.DifficultyBreakdown[q.Difficulty]++
		}
	}
	return t
}

type SubmitResponse struct {
	TotalScore     int    `json:"totalScore"`
	CorrectAnswers int    `json:"correctAnswers"`
	ResultID       string `json:"resultId"`
}

type Scorer struct {
	questions store.Questions
	results   store.Results
	cache     cache.LeaderboardCache
	logger    *log.Logger
}

func NewScorer(questions store.Questions, results store.Results, lb cache.LeaderboardCache, logger *log.Logger) *Scorer {
	return &Scorer{questions: questions, results: results, cache: lb, logger: logger}
}

func (s *Scorer) Submit(ctx context.Context, userID string, answers []Answer) (SubmitResponse, error) {
	if len(answers) == 0 {
		return SubmitResponse{}, errors.WithStack(ErrNoAnswers)
	}

	ids := make([]string, 0, len(answers))
	seen := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		// Empty ids grade like unknown ones: attempted, never correct.
		if _, dup := seen[a.QuestionID]; dup || a.QuestionID == "" {
			continue
		}
		seen[a.QuestionID] = struct{}{}
		ids = append(ids, a.QuestionID)
	}

	key := make(map[string]models.Question, len(ids))
	if len(ids) > 0 {
		found, err := s.questions.FindByIDs(ctx, ids)
		if err != nil {
			return SubmitResponse{}, errors.Wrap(err, "load answer key")
		}
		for _, q := range found {
			key[q.ID] = q
		}
	}

	tally := Grade(answers, key)
	result := models.Result{
		UserID:              userID,
		TotalScore:          tally.TotalScore,
		QuestionsAttempted:  tally.QuestionsAttempted,
		CorrectAnswers:      tally.CorrectAnswers,
		DifficultyBreakdown: tally.DifficultyBreakdown,
	}
	if err := s.results.Create(ctx, &result); err != nil {
		return SubmitResponse{}, errors.Wrap(err, "save result")
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Printf("leaderboard cache invalidate: %v", err)
	}

	return SubmitResponse{
		TotalScore:     result.TotalScore,
		CorrectAnswers: result.CorrectAnswers,
		ResultID:       result.ID,
	}, nil
}
