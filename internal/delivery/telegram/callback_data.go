package telegram

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Callback action constants.
const (
	actionQuiz       = "quiz"
	actionPick       = "pick"
	actionRepository = "repo"
	actionHistory    = "history"
)

// Quiz sub-actions.
const (
	quizAnswer = "a"
	quizNext   = "n"
	quizStart  = "s"
)

// Pick sub-actions.
const (
	pickView     = "v"
	pickGenerate = "g"
)

// Repository sub-actions.
const (
	repositoryList     = "l"
	repositoryCategory = "c"
)

var errMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// quizRef identifies a question of a play.
type quizRef struct {
	PlayID uuid.UUID
	Index  int
}

// parseQuizRef reads "<playID>:<index>" starting at the second parameter.
func (cd callbackData) parseQuizRef() (quizRef, error) {
	playID, err := uuid.Parse(cd.param(1))
	if err != nil {
		return quizRef{}, errMalformedCallback
	}
	index, err := strconv.Atoi(cd.param(2))
	if err != nil || index < 0 {
		return quizRef{}, errMalformedCallback
	}
	return quizRef{PlayID: playID, Index: index}, nil
}

// parseDocumentID reads the document id from the second parameter.
func (cd callbackData) parseDocumentID() (int64, error) {
	id, err := strconv.ParseInt(cd.param(1), 10, 64)
	if err != nil || id <= 0 {
		return 0, errMalformedCallback
	}
	return id, nil
}

// buildQuizAnswerCallback builds callback data for answering a quiz question.
func buildQuizAnswerCallback(playID uuid.UUID, index int, value string) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizAnswer, playID.String(), strconv.Itoa(index), value},
	}.encode()
}

// buildQuizNextCallback builds callback data for moving past a revealed question.
func buildQuizNextCallback(playID uuid.UUID, index int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizNext, playID.String(), strconv.Itoa(index)},
	}.encode()
}

// buildQuizStartCallback builds callback data for starting today's quiz.
func buildQuizStartCallback() string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizStart},
	}.encode()
}

func buildPickViewCallback(documentID int64) string {
	return callbackData{
		Action: actionPick,
		Params: []string{pickView, strconv.FormatInt(documentID, 10)},
	}.encode()
}

func buildPickGenerateCallback(documentID int64) string {
	return callbackData{
		Action: actionPick,
		Params: []string{pickGenerate, strconv.FormatInt(documentID, 10)},
	}.encode()
}

func buildRepositoryListCallback() string {
	return callbackData{
		Action: actionRepository,
		Params: []string{repositoryList},
	}.encode()
}

func buildRepositoryCategoryCallback(categoryID int64) string {
	return callbackData{
		Action: actionRepository,
		Params: []string{repositoryCategory, strconv.FormatInt(categoryID, 10)},
	}.encode()
}

func buildHistoryCallback() string {
	return actionHistory
}
