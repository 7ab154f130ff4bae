package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/quiz"
)

const (
	labelCorrect   = "⭕ O"
	labelIncorrect = "❌ X"
	selectedMark   = "👉 "
)

// buildAnswerKeyboard builds the option buttons of a question card.
// The selected answer, if any, is marked.
func buildAnswerKeyboard(playID uuid.UUID, s quiz.Snapshot) tgbotapi.InlineKeyboardMarkup {
	button := func(label string, a entities.Answer) tgbotapi.InlineKeyboardButton {
		if !s.Selected.IsZero() && s.Selected == a {
			label = selectedMark + label
		}
		return tgbotapi.NewInlineKeyboardButtonData(label, buildQuizAnswerCallback(playID, s.Index, a.String()))
	}

	switch s.Item.Type {
	case entities.QuizTypeMixUp:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				button(labelCorrect, entities.MixUpAnswer(entities.VerdictCorrect)),
				button(labelIncorrect, entities.MixUpAnswer(entities.VerdictIncorrect)),
			),
		)
	default:
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(s.Item.Options))
		for i := range s.Item.Options {
			row = append(row, button(entities.OptionLabel(i), entities.ChoiceAnswer(i)))
		}
		return tgbotapi.NewInlineKeyboardMarkup(row)
	}
}

// buildNextKeyboard builds the button shown under a revealed question.
func buildNextKeyboard(playID uuid.UUID, s quiz.Snapshot) tgbotapi.InlineKeyboardMarkup {
	label := "Next ▶️"
	if s.IsLast() {
		label = "See result 🏁"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildQuizNextCallback(playID, s.Index)),
		),
	)
}

// buildRetryKeyboard re-sends the final submission.
func buildRetryKeyboard(playID uuid.UUID, index int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Retry", buildQuizNextCallback(playID, index)),
		),
	)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 My history", buildHistoryCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗂 Repository", buildRepositoryListCallback()),
		),
	)
}

func buildAnnouncementKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start quiz", buildQuizStartCallback()),
		),
	)
}

// buildPickKeyboard offers generation when the document has no picks yet.
func buildPickKeyboard(kp *entities.KeyPoints) *tgbotapi.InlineKeyboardMarkup {
	switch kp.Status {
	case entities.DocumentUnprocessed, entities.DocumentFailed:
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✨ Generate", buildPickGenerateCallback(kp.DocumentID)),
			),
		)
		return &kb
	default:
		return nil
	}
}

func buildCategoriesKeyboard(categories []entities.Category) *tgbotapi.InlineKeyboardMarkup {
	if len(categories) == 0 {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Emoji+" "+c.Name, buildRepositoryCategoryCallback(c.ID)),
		))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func buildCategoryKeyboard(c entities.Category) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(c.Documents)+1)
	for _, d := range c.Documents {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 "+d.Name, buildPickViewCallback(d.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Back", buildRepositoryListCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
