package domain

import (
	"encoding/json"
	"time"
)

type CheckInQuestion struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	Question   string    `json:"question"`
	CreatedAt  time.Time `json:"created_at"`
}

type QuestionAnswer struct {
	ID                string    `json:"id"`
	QuestionID        string    `json:"question_id"`
	AnswerText        string    `json:"answer_text"`
	InstructionPageID PageLink  `json:"instruction_page_id"`
	CreatedAt         time.Time `json:"created_at"`
}

type CreateQuestionReq struct {
	PropertyID string `json:"property_id"`
	Question   string `json:"question"`
}

type CreateAnswerReq struct {
	AnswerText        string   `json:"answer_text"`
	InstructionPageID PageLink `json:"instruction_page_id"`
}

// PageLink is an answer's optional reference to an instruction page.
// The zero value is unlinked.
type PageLink struct {
	pageID string
}

// Unlinked is the PageLink of an answer that leads nowhere.
var Unlinked = PageLink{}

// LinkPage links to pageID. An empty id yields Unlinked.
func LinkPage(pageID string) PageLink {
	return PageLink{pageID: pageID}
}

func (l PageLink) PageID() (string, bool) {
	return l.pageID, l.pageID != ""
}

func (l PageLink) Linked() bool {
	return l.pageID != ""
}

func (l PageLink) String() string {
	return l.pageID
}

func (l PageLink) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.pageID)
}

func (l *PageLink) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = Unlinked
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*l = LinkPage(id)
	return nil
}

// FirstQuestionFor returns the first question of the property in collection order.
func FirstQuestionFor(questions []CheckInQuestion, propertyID string) (*CheckInQuestion, bool) {
	for i := range questions {
		if questions[i].PropertyID == propertyID {
			q := questions[i]
			return &q, true
		}
	}
	return nil, false
}

// AnswersFor returns the answers of a question in collection order. The
// result never aliases the input.
func AnswersFor(answers []QuestionAnswer, questionID string) []QuestionAnswer {
	out := make([]QuestionAnswer, 0)
	for _, a := range answers {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	return out
}

func FindQuestion(questions []CheckInQuestion, id string) (*CheckInQuestion, bool) {
	for i := range questions {
		if questions[i].ID == id {
			q := questions[i]
			return &q, true
		}
	}
	return nil, false
}

func FindAnswer(answers []QuestionAnswer, id string) (*QuestionAnswer, bool) {
	for i := range answers {
		if answers[i].ID == id {
			a := answers[i]
			return &a, true
		}
	}
	return nil, false
}
