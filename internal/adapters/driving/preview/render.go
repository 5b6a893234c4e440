package preview

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// DefaultWidth wraps the passage when the terminal width is unknown.
const DefaultWidth = 80

// Renderer formats quizzes with a set of styles.
type Renderer struct {
	styles *Styles
	width  int
}

// NewRenderer creates a renderer. A nil styles uses DefaultStyles and a
// width below 20 uses DefaultWidth.
func NewRenderer(styles *Styles, width int) *Renderer {
	if styles == nil {
		styles = DefaultStyles()
	}
	if width < 20 {
		width = DefaultWidth
	}
	return &Renderer{styles: styles, width: width}
}

// Quiz renders a stored quiz with its title and ID.
func (r *Renderer) Quiz(q *domain.Quiz) string {
	var b strings.Builder
	title := q.Title
	if title == "" {
		title = "Untitled quiz"
	}
	b.WriteString(r.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(r.styles.Muted.Render(fmt.Sprintf("%s · %s · %s", q.ID, q.Class, plural(len(q.Questions), "question"))))
	b.WriteString("\n\n")
	r.body(&b, q.Passage, q.Questions, q.Diagnostics)
	return b.String()
}

// Result renders a parse result that has not been stored.
func (r *Renderer) Result(title string, result *domain.ParseResult) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(r.styles.Title.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(r.styles.Muted.Render(fmt.Sprintf("%s · %s", result.Class, plural(len(result.Questions), "question"))))
	b.WriteString("\n\n")

	passage := ""
	if result.Reading != nil {
		passage = result.Reading.Passage
	}
	r.body(&b, passage, result.Questions, result.Diagnostics)
	return b.String()
}

// Diagnostics renders one warning line per diagnostic.
func (r *Renderer) Diagnostics(diags []domain.Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		style := r.styles.Muted
		if d.Severity == domain.SeverityWarning {
			style = r.styles.Warning
		}
		b.WriteString(style.Render("! " + d.String()))
		b.WriteString("\n")
	}
	return b.String()
}

// Summary renders a one-line listing entry for a quiz.
func (r *Renderer) Summary(q *domain.Quiz) string {
	title := q.Title
	if title == "" {
		title = "Untitled quiz"
	}
	return fmt.Sprintf("%s  %s  %s",
		r.styles.Muted.Render(q.ID),
		r.styles.Question.Render(title),
		r.styles.Muted.Render(fmt.Sprintf("%s, %s, %s", q.Class, plural(len(q.Questions), "question"), q.CreatedAt.Format("2006-01-02 15:04"))),
	)
}

func (r *Renderer) body(b *strings.Builder, passage string, questions []domain.ParsedQuestion, diags []domain.Diagnostic) {
	if passage != "" {
		b.WriteString(r.styles.Passage.Width(r.width - 2).Render(passage))
		b.WriteString("\n\n")
	}

	if len(questions) == 0 {
		b.WriteString(r.styles.Warning.Render("No questions found."))
		b.WriteString("\n")
	}

	for _, q := range questions {
		b.WriteString(r.styles.Question.Render(fmt.Sprintf("Q%d. %s", q.Ordinal, q.QuestionText)))
		b.WriteString("\n")
		for _, o := range q.Options {
			line := fmt.Sprintf("%s) %s", o.Key, o.Text)
			if q.HasAnswer() && strings.EqualFold(string(o.Key), string(q.CorrectAnswer)) {
				b.WriteString(r.styles.Answer.Render(line + " ✓"))
			} else {
				b.WriteString(r.styles.Option.Render(line))
			}
			b.WriteString("\n")
		}
		if !q.HasAnswer() {
			b.WriteString(r.styles.Warning.PaddingLeft(3).Render("no answer given"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(diags) > 0 {
		b.WriteString(r.Diagnostics(diags))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
