package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedTypes(t *testing.T) {
	normaliser := New()

	assert.Equal(t, []string{"text/html", "application/xhtml+xml"}, normaliser.SupportedMIMETypes())
	assert.Contains(t, normaliser.SupportedExtensions(), ".htm")
	assert.Equal(t, 50, normaliser.Priority())
}

func TestNormalise_Success(t *testing.T) {
	normaliser := New()

	raw := &domain.RawDocument{
		URI:      "/inbox/unit.html",
		FileName: "unit.html",
		MIMEType: "text/html",
		Content: []byte(`<html><head><title>Unit 4</title><style>p{}</style></head>
<body><p>Q1. Where does she live?</p><p>a) Lyon<br>b) Paris</p><p>Answer: <b>B</b></p></body></html>`),
	}

	result, err := normaliser.Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	doc := result.Document
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "Unit 4", doc.Title)
	assert.Equal(t, "Q1. Where does she live?\na) Lyon\nb) Paris\nAnswer: B", doc.Content)
	assert.Equal(t, "text/html", doc.Metadata["mime_type"])
	assert.Equal(t, "html", doc.Metadata["format"])
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_TitleFallback(t *testing.T) {
	raw := &domain.RawDocument{FileName: "week_5.html", Content: []byte("<p>Content</p>")}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "week 5", result.Document.Title)
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "numbered list",
			input: "<ol><li>First?</li><li>Second?</li></ol>",
			want:  "1. First?\n2. Second?",
		},
		{
			name:  "list start attribute",
			input: `<ol start="3"><li>Third?</li></ol>`,
			want:  "3. Third?",
		},
		{
			name:  "lettered options nested in a question list",
			input: `<ol><li>Where does she live?<ol type="a"><li>Lyon</li><li>Paris</li></ol></li></ol>`,
			want:  "1. Where does she live?\na) Lyon\nb) Paris",
		},
		{
			name:  "uppercase lettered options",
			input: `<ol type="A"><li>Lyon</li><li>Paris</li></ol>`,
			want:  "A) Lyon\nB) Paris",
		},
		{
			name:  "bullets carry no marker",
			input: "<ul><li>Lyon</li><li>Paris</li></ul>",
			want:  "Lyon\nParis",
		},
		{
			name:  "scripts and comments dropped",
			input: "<body><script>var x = 1;</script><!-- note --><p>Q1. Hi</p></body>",
			want:  "Q1. Hi",
		},
		{
			name:  "line breaks",
			input: "Q1. Hi<br>a) Yes<br/>b) No",
			want:  "Q1. Hi\na) Yes\nb) No",
		},
		{
			name:  "entities and non-breaking spaces",
			input: "<p>Tom&nbsp;&amp;&nbsp;&nbsp;Jerry</p>",
			want:  "Tom & Jerry",
		},
		{
			name:  "table cells",
			input: "<table><tr><td>cat</td><td>chat</td></tr><tr><td>dog</td><td>chien</td></tr></table>",
			want:  "cat chat\ndog chien",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := extractText([]byte(tt.input))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractText_Title(t *testing.T) {
	_, title := extractText([]byte("<title>  Tom &amp; Jerry </title>"))
	assert.Equal(t, "Tom & Jerry", title)
}

func TestNormaliser_InterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}
