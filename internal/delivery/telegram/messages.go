// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/quiz"
)

// Plain messages. They are escaped with md before sending.
const (
	msgInternalError   = "Something went wrong. Please try again later."
	msgRemoteRejected  = "The request was rejected. Check the input and try again."
	msgUnknownCommand  = "Unknown command. Send /help to see what I can do."
	msgQuizNotReady    = "Today's quiz is not ready yet. Add more notes or check back later."
	msgPickUsage       = "Usage: /pick <document id>"
	msgNoCategories    = "Your repository is empty."
	msgNoDocuments     = "This category has no documents."
	msgSubscribed      = "🔔 You will get today's quiz every morning."
	msgAlreadySub      = "🔔 You are already subscribed."
	msgUnsubscribed    = "🔕 Daily quiz announcements are off."
	msgNotSubscribed   = "🔕 You were not subscribed."
	msgPlayExpired     = "This quiz is no longer active."
	msgSubmitFailed    = "Couldn't save your result. Your answers are kept, tap Retry."
	msgPickTimedOut    = "Still generating. Open the document again in a few minutes."
	msgPickFailed      = "AI pick generation failed for this document."
	msgPickProcessing  = "⏳ Generating AI picks…"
	msgPickUnprocessed = "No AI picks yet. Tap Generate to create them."
)

const (
	progressBarLength = 10
	elapsedPrecision  = 100 * time.Millisecond
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode from plain text.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return newMarkdownMessage(chatID, md(text))
}

// newMarkdownMessage creates a message from already escaped MarkdownV2 text.
func newMarkdownMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func welcomeMessage() string {
	var sb strings.Builder

	sb.WriteString("👋 Welcome to the picktoss bot!\n\n")
	sb.WriteString("Every day a quiz set is generated from your notes. ")
	sb.WriteString("Solve it here, browse your documents, and read the AI picks of each one.\n\n")
	sb.WriteString("Send /quiz to start today's quiz or /help to see all commands.")

	return sb.String()
}

func helpMessage() string {
	return strings.Join([]string{
		"/quiz - solve today's quiz",
		"/repository - browse categories and documents",
		"/pick <id> - show the AI picks of a document",
		"/history - your quiz history",
		"/subscribe - get today's quiz every morning",
		"/unsubscribe - stop the daily announcement",
		"/help - this message",
	}, "\n")
}

func formatQuizDone(today *entities.TodayQuiz) string {
	if today.Score == nil {
		return "✅ You have already solved today's quiz."
	}
	return fmt.Sprintf("✅ You have already solved today's quiz. Score: %d%%", *today.Score)
}

// formatIntro formats the message shown while the intro plays.
func formatIntro(set *entities.QuizSet) string {
	var sb strings.Builder

	sb.WriteString(bold("🎯 Today's quiz"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("%d questions", len(set.Items))))

	if categories := set.Categories(); len(categories) > 0 {
		sb.WriteString("\n")
		sb.WriteString(md("From: " + strings.Join(categories, ", ")))
	}

	sb.WriteString("\n\n")
	sb.WriteString(italic("Get ready…"))

	return sb.String()
}

func formatQuestionHeader(s quiz.Snapshot) string {
	header := fmt.Sprintf("Question %d of %d", s.Index+1, s.Total)
	if s.Item.CategoryName != "" {
		header += " · " + s.Item.CategoryName
	}
	return md(header)
}

// formatQuestion formats a question card.
func formatQuestion(s quiz.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(formatQuestionHeader(s))
	sb.WriteString("\n\n")
	sb.WriteString(bold(s.Item.Question))

	if s.Item.Type == entities.QuizTypeMultipleChoice {
		sb.WriteString("\n")
		for i, opt := range s.Item.Options {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("%s. %s", entities.OptionLabel(i), opt)))
		}
	}

	return sb.String()
}

// formatRevealed formats a question card after its answer is revealed.
func formatRevealed(s quiz.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(formatQuestion(s))
	sb.WriteString("\n\n")

	if s.Correct {
		sb.WriteString(bold("✅ Correct!"))
	} else {
		sb.WriteString(bold("❌ Incorrect"))
	}

	sb.WriteString("\n")
	sb.WriteString(md("Answer: "))
	sb.WriteString(bold(s.Item.CorrectLabel()))
	if s.Item.Type == entities.QuizTypeMultipleChoice {
		sb.WriteString(md(" (" + s.Item.Answer + ")"))
	}
	sb.WriteString(md(fmt.Sprintf(" · %s", s.Elapsed.Round(elapsedPrecision))))

	if s.Item.Explanation != "" {
		sb.WriteString("\n\n")
		sb.WriteString(md(s.Item.Explanation))
	}

	if s.Item.DocumentName != "" {
		sb.WriteString("\n\n")
		sb.WriteString(italic("📄 " + s.Item.DocumentName))
	}

	return sb.String()
}

// formatResult formats the summary of a submitted quiz set.
func formatResult(s quiz.Snapshot) string {
	sub := entities.Submission{QuizSetID: s.SessionID, Results: s.Results}
	correct := sub.CorrectCount()
	total := len(s.Results)
	percentage := 0.0
	if total > 0 {
		percentage = float64(correct) / float64(total) * 100
	}

	emoji, message := "📚", "Keep going, tomorrow's set is waiting."
	switch {
	case percentage >= 90:
		emoji, message = "🌟", "Excellent!"
	case percentage >= 70:
		emoji, message = "👍", "Good job!"
	case percentage >= 50:
		emoji, message = "💪", "Not bad, keep it up!"
	}

	elapsed := time.Duration(sub.TotalElapsedMillis()) * time.Millisecond

	return fmt.Sprintf(
		"%s %s\n\n%s %s\n%s\n%s %s\n\n%s",
		md(emoji),
		bold("Quiz complete!"),
		md("Result:"),
		bold(fmt.Sprintf("%d/%d (%.0f%%)", correct, total, percentage)),
		md(buildProgressBar(correct, total, progressBarLength)),
		md("Time:"),
		md(elapsed.Round(elapsedPrecision).String()),
		md(message),
	)
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := min(current*length/total, length)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}

func formatDocumentStatus(status entities.DocumentStatus) string {
	switch status {
	case entities.DocumentUnprocessed:
		return msgPickUnprocessed
	case entities.DocumentProcessing:
		return msgPickProcessing
	case entities.DocumentFailed:
		return msgPickFailed
	default:
		return ""
	}
}

// formatPickProgress formats a document that is still being processed.
func formatPickProgress(kp *entities.KeyPoints, checks int) string {
	return formatKeyPoints(kp) + "\n\n" + italic(fmt.Sprintf("Checked %d×, next check in a few seconds", checks))
}

// formatKeyPoints formats the AI picks of a document.
func formatKeyPoints(kp *entities.KeyPoints) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("📄 Document %d", kp.DocumentID)))
	sb.WriteString("\n\n")

	if kp.Status != entities.DocumentProcessed {
		sb.WriteString(md(formatDocumentStatus(kp.Status)))
		return sb.String()
	}

	if len(kp.Items) == 0 {
		sb.WriteString(md("No AI picks for this document."))
		return sb.String()
	}

	for i, p := range kp.Items {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		mark := ""
		if p.Bookmark {
			mark = "🔖 "
		}
		sb.WriteString(bold(fmt.Sprintf("%s%d. %s", mark, i+1, p.Question)))
		sb.WriteString("\n")
		sb.WriteString(md(p.Answer))
	}

	return sb.String()
}

func formatCategories(categories []entities.Category) string {
	var sb strings.Builder

	sb.WriteString(bold("🗂 Repository"))
	sb.WriteString("\n\n")

	if len(categories) == 0 {
		sb.WriteString(md(msgNoCategories))
		return sb.String()
	}

	sb.WriteString(md("Choose a category:"))
	return sb.String()
}

func formatCategory(c entities.Category) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("%s %s", c.Emoji, c.Name)))
	sb.WriteString("\n\n")

	if len(c.Documents) == 0 {
		sb.WriteString(md(msgNoDocuments))
		return sb.String()
	}

	sb.WriteString(md(fmt.Sprintf("%d documents. Choose one to see its AI picks:", len(c.Documents))))
	return sb.String()
}

// formatHistory formats the journal summary of a chat.
func formatHistory(stats *entities.PlayStats, plays []*entities.Play) string {
	var sb strings.Builder

	sb.WriteString(bold("📊 Your quiz history"))
	sb.WriteString("\n\n")

	if stats.Plays == 0 {
		sb.WriteString(md("No quizzes solved yet. Send /quiz to start."))
		return sb.String()
	}

	sb.WriteString(md(fmt.Sprintf("🎯 Quizzes: %d\n", stats.Plays)))
	sb.WriteString(md(fmt.Sprintf("✅ Accuracy: %.1f%% (%d/%d)\n", stats.Accuracy(), stats.Correct, stats.Questions)))
	sb.WriteString(md(fmt.Sprintf("⏱ Avg per question: %s", (time.Duration(stats.AvgElapsedMillis) * time.Millisecond).Round(elapsedPrecision))))

	if len(plays) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(bold("Recent"))
		for _, p := range plays {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("%s  %d/%d (%d%%)",
				p.FinishedAt.UTC().Format("2006-01-02"), p.Correct, p.Total, p.Score())))
		}
	}

	return sb.String()
}

func formatAnnouncement(today *entities.TodayQuiz) string {
	title := "☀️ Today's quiz is ready!"
	if !today.Date.IsZero() {
		title = fmt.Sprintf("☀️ Quiz of %s is ready!", today.Date.UTC().Format("Jan 2"))
	}

	return fmt.Sprintf(
		"%s\n\n%s",
		bold(title),
		md("A fresh set was generated from your notes."),
	)
}
