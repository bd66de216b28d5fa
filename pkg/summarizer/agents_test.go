package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryMessagesDefaultsToGerman(t *testing.T) {
	msgs := SummaryMessages(&SummaryInput{Content: "some text"})

	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Content, "Language: de")
	assert.Contains(t, msgs[1].Content, "Original Text:\nsome text")
}

func TestSummaryMessagesLanguageAndFeedbacks(t *testing.T) {
	msgs := SummaryMessages(&SummaryInput{
		Content:    "body",
		ToLanguage: "en",
		Feedbacks:  []string{"too long", "missing the date"},
	})

	require.Len(t, msgs, 4)
	assert.Contains(t, msgs[0].Content, "Language: en")
	assert.Contains(t, msgs[2].Content, "too long")
	assert.Contains(t, msgs[3].Content, "missing the date")
	for _, m := range msgs {
		assert.Equal(t, "user", m.Role)
	}
}

func TestGradeMessages(t *testing.T) {
	gc := &GradeContext{
		SummaryOutput: SummaryOutput{
			ShortVersion: "the summary",
			Title:        "the title",
			Description:  "the description",
		},
		OriginalText: "the original",
	}

	msgs := GradeMessages(gc)
	require.Len(t, msgs, 4)
	assert.Contains(t, msgs[0].Content, "Original text:\n the original")
	assert.Contains(t, msgs[1].Content, "Title:\n the title")
	assert.Contains(t, msgs[2].Content, "Description:\n the description")
	assert.Contains(t, msgs[3].Content, "Summary:\n the summary")
}

func TestAgentsFor(t *testing.T) {
	gen, judge := AgentsFor(SummaryTypeMachine)
	assert.Equal(t, "SummaryAgent", gen.Name)
	assert.Equal(t, "SummaryJudge", judge.Name)

	gen, judge = AgentsFor(SummaryTypePretty)
	assert.Equal(t, "SummaryPretty", gen.Name)
	assert.Equal(t, "SummaryPrettyJudge", judge.Name)
}

func TestSummaryTypeValid(t *testing.T) {
	assert.True(t, SummaryTypeMachine.Valid())
	assert.True(t, SummaryTypePretty.Valid())
	assert.False(t, SummaryType("poetic").Valid())
	assert.ElementsMatch(t, []SummaryType{SummaryTypeMachine, SummaryTypePretty}, AllSummaryTypes())
}
