package summarizer

import (
	"fmt"

	"github.com/gistloop/gistloop/pkg/agent"
	"github.com/gistloop/gistloop/pkg/config"
	"github.com/gistloop/gistloop/pkg/llms"
)

const summaryPrompt = `You are a professional summarizer.

The reader of the summary are busy people who want to get the gist of the content quickly.
They already know most of the context, such as parties involved. There's no need to explain the context.
Provide a summary of the content that is short, concise, and to the point.
Format the summary as a Markdown document.

The description should be a short paragraph, 1 to 3 sentences, that gives an overview of the content.
For example, if we receive a long text but the main point is that the person agree to a deal,
the description should be something like:
 - "The person agreed to the deal with the company"
Then the summary should be a short version of the text, that is accurate but concise for efficient reading.

If the reader wants to know more, they can read the original text easily.
The summary can be up to few paragraphs long, but no more than that.

All summary must be in the language mentioned by the user.

Avoid long sentences and redundant information.
For example:
- "the text is about the agreement with the company"  is not a good description,
  but "The person agreed to the deal with the company" is a good description.
"In The text...." or "In the document...."  or "In the email..." is not good, go directly to the point.


# Output Format

Produce a json output
fields are:
    short_version: the summary, in Markdown format with clear headings and paragraphs
    description: a short description of the content, 1 to 3 sentences
    title: title for the table of contents
    language: the language of the output text, e.g. "en" for English, "de" for German
    tags: list of tags for indexing`

const summaryJudgePrompt = `You are a professional reviewer of summaries.
The reader of the summary are busy people who want to get the gist of the content quickly.
You will be provided with a summary and the original text.
You must grade from 0-10 the summary quality, 0 being non-sense, 10 being the best.
The summary must be short, concise, and to the point.
The reader already knows most of the context, such as parties involved. There's no need to explain the context.
If they need know more, they can read the original text easily.
Goal is provide the reader with a short and concise summary of the content, with a description and title.

Check the summary against the original text for missing entities: names, dates,
numbers, places and similar facts the reader would need. List every missing
entity; keep the list empty when nothing important is missing.

Give a grade from 0 to 10, where 0 is the worst and 10 is the best.
Provide the feedbacks as json

{
"grade":
"grade_reasoning": ""
"feedbacks": []
"missing_entities": [{"name": "", "type": ""}]
}`

const prettyJudgePrompt = `You are a professional reviewer of summaries.
The reader of the summary are busy people who want to get the gist of the content quickly.
You will be provided with a summary and the original text.
You must grade from 0-10 the summary quality, 0 being non-sense, 10 being the best.
The summary must be short, concise, and to the point.
The reader already knows most of the context, such as parties involved. There's no need to explain the context.
If they need know more, they can read the original text easily.
Goal is provide the reader with a short and concise summary of the content, with a description and title.

Give a grade from 0 to 10, where 0 is the worst and 10 is the best.
Provide the feedbacks as json

{
"grade":
"grade_reasoning": ""
"feedbacks": []
"missing_entities": []
}`

func defaultAgentConfig(name, description string) config.AgentConfig {
	return config.AgentConfig{
		Name:        name,
		Description: description,
		Client:      config.ClientLiteLLM,
		Model:       "gemini/gemini-pro",
		Settings:    config.ModelSettings{ToolChoice: "none"},
	}
}

// NewSummaryAgent builds the machine summary generator.
func NewSummaryAgent() *agent.Prompt {
	return &agent.Prompt{
		Name:     "SummaryAgent",
		Defaults: defaultAgentConfig("SummaryAgent", "Create a short and concise summary of the content, with a description and title."),
		System:   summaryPrompt,
	}
}

// NewSummaryJudgeAgent builds the machine summary judge.
func NewSummaryJudgeAgent() *agent.Prompt {
	return &agent.Prompt{
		Name:     "SummaryJudge",
		Defaults: defaultAgentConfig("SummaryJudge", "Judge the summary and provide feedbacks"),
		System:   summaryJudgePrompt,
	}
}

// NewSummaryPrettyAgent builds the reader-facing summary generator. It shares
// the machine generator's prompt; its configuration is overridable separately.
func NewSummaryPrettyAgent() *agent.Prompt {
	return &agent.Prompt{
		Name:     "SummaryPretty",
		Defaults: defaultAgentConfig("SummaryPretty", "Create a short and concise summary of the content, with a description and title."),
		System:   summaryPrompt,
	}
}

// NewSummaryPrettyJudgeAgent builds the reader-facing summary judge.
func NewSummaryPrettyJudgeAgent() *agent.Prompt {
	return &agent.Prompt{
		Name:     "SummaryPrettyJudge",
		Defaults: defaultAgentConfig("SummaryPrettyJudge", "Judge the summary and provide feedbacks"),
		System:   prettyJudgePrompt,
	}
}

// AgentsFor returns the generator and judge prompts for a summary type.
func AgentsFor(t SummaryType) (gen, judge *agent.Prompt) {
	if t == SummaryTypePretty {
		return NewSummaryPrettyAgent(), NewSummaryPrettyJudgeAgent()
	}
	return NewSummaryAgent(), NewSummaryJudgeAgent()
}

// SummaryMessages assembles the generator's input messages.
func SummaryMessages(in *SummaryInput) []llms.Message {
	lang := in.ToLanguage
	if lang == "" {
		lang = "de"
	}
	messages := []llms.Message{
		{Role: "user", Content: fmt.Sprintf("Generate summaries and text in Language: %s\n", lang)},
		{Role: "user", Content: fmt.Sprintf("Original Text:\n%s\n", in.Content)},
	}
	for _, fb := range in.Feedbacks {
		messages = append(messages, llms.Message{
			Role:    "user",
			Content: fmt.Sprintf("Feedback on the previous summary, address it in the next one:\n%s\n", fb),
		})
	}
	return messages
}

// GradeMessages assembles the judge's input messages.
func GradeMessages(gc *GradeContext) []llms.Message {
	return []llms.Message{
		{Role: "user", Content: fmt.Sprintf("\n-------\nOriginal text:\n %s\n\n\n###\n", gc.OriginalText)},
		{Role: "user", Content: fmt.Sprintf("\n-------\nTitle:\n %s\n", gc.Title)},
		{Role: "user", Content: fmt.Sprintf("\n-------\nDescription:\n %s\n", gc.Description)},
		{Role: "user", Content: fmt.Sprintf("\n-------\nSummary:\n %s\n", gc.ShortVersion)},
	}
}
