package ai

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// Parsed prompt templates, cached per process.
//
//nolint:gochecknoglobals // Intentional caching for performance - parsed once per process
var (
	analyzePromptTmpl     *template.Template
	analyzePromptTmplOnce sync.Once

	rewritePromptTmpl     *template.Template
	rewritePromptTmplOnce sync.Once

	describePromptTmpl     *template.Template
	describePromptTmplOnce sync.Once

	codePairPromptTmpl     *template.Template
	codePairPromptTmplOnce sync.Once

	stagedPromptTmpl     *template.Template
	stagedPromptTmplOnce sync.Once
)

// analyzePromptTemplate reviews a developer's commit history as a whole.
const analyzePromptTemplate = `You are a helpful and encouraging senior software engineer who is an expert in version control best practices.
Your goal is to review a list of a developer's recent commit messages and provide feedback that is clear, constructive, and educational.
You should analyze the commits as a whole to identify patterns and habits.
Your tone should be supportive, aiming to help the developer grow.
Recognize that this is a list of separate commits, not one single message.
Based on this list, provide a summary of the developer's habits, structured exactly as follows:

**Strengths:**
- (A bullet point listing a specific strength, e.g., "Good use of conventional commit types like 'feat' and 'fix'.")
- (Another bullet point for a strength.)

**Weaknesses:**
- (A bullet point listing a specific weakness, e.g., "Some commit subjects are too vague, like 'docs'.")
- (Another bullet point for a weakness.)

**Advice:**
- (A bullet point with actionable advice directly related to a weakness. For example, "For 'docs' commits, specify what was documented, like 'docs: Add setup instructions to README'.")
- (Another piece of advice.)

Keep the entire review concise and under 20 lines.

Here are the commits to analyze:
{{ range .Messages -}}
- {{ . }}
{{ end -}}
`

// rewritePromptTemplate rewrites one commit message per best practices.
const rewritePromptTemplate = `You are a Git expert specializing in writing perfect commit messages.
Your task is to take a user's commit message and rewrite it to be an ideal example of a conventional commit.
You must infer the correct type (e.g., feat, fix, docs, style, refactor, test, chore).
The subject must be clear, concise, and written in the imperative mood (e.g., "Add feature" not "Added feature").
Provide ONLY the rewritten, ideal commit message and absolutely no extra explanation or text.
Here is the commit message to rewrite:

{{ .Message }}
`

// describePromptTemplate turns a free-form change description into a commit message.
const describePromptTemplate = `You are an expert programmer who writes concise, conventional Git commit messages.
Your task is to take a user's description of their changes and convert it into a perfectly formatted commit message.

Follow these rules strictly:
1.  The output must follow the Conventional Commits specification.
2.  Infer the correct type (feat, fix, docs, style, refactor, test, chore) from the description.
3.  The subject line must be in the imperative mood (e.g., "Add feature," not "Added feature") and start with a lowercase letter.
4.  If the description is detailed, add a blank line after the subject and write a brief body explaining the 'what' and 'why' in bullet points.
5.  Your response must contain ONLY the formatted commit message and nothing else. Do not add any extra text like "Here is the commit message:".
Here is the description:

{{ .Description }}
`

// codePairPromptTemplate summarizes an old/new code pair into a commit message.
const codePairPromptTemplate = `You are an expert programmer and a master of writing concise, conventional Git commit messages.
Your task is to analyze the provided code changes (the 'old code' and the 'new code') and generate a perfectly formatted commit message that summarizes the changes.

Follow these rules strictly:
1.  The output must strictly follow the Conventional Commits specification.
2.  Analyze the code diff to infer the correct commit type: feat (a new feature), fix (a bug fix), docs (documentation only changes), style (changes that do not affect the meaning of the code), refactor (a code change that neither fixes a bug nor adds a feature), test (adding missing tests or correcting existing tests), or chore (changes to the build process or auxiliary tools).
3.  The subject line must be in the imperative mood (e.g., "refactor user authentication," not "refactored user authentication").
4.  The subject line must not be capitalized and should be concise (ideally under 50 characters).
5.  If the changes are non-trivial, add a blank line after the subject and write a brief body explaining the 'what' and 'why' of the changes. Use bullet points for clarity.
6.  Crucially, your response must contain ONLY the formatted commit message and nothing else. Do not include any introductory text, explanations, or apologies.

---
Here is the old code:
` + "```" + `
{{ .OldCode }}
` + "```" + `

---
Here is the new code:
` + "```" + `
{{ .NewCode }}
` + "```" + `
---
`

// stagedPromptTemplate summarizes a whole set of staged file changes.
const stagedPromptTemplate = `You are an expert programmer and a master of writing concise, conventional Git commit messages.
Your task is to analyze the staged changes below, given for each file as its full old content and full new content, and generate a single perfectly formatted commit message that summarizes all of them together.

Follow these rules strictly:
1.  The output must strictly follow the Conventional Commits specification.
2.  Infer the correct commit type (feat, fix, docs, style, refactor, test, chore) from the changes as a whole.
3.  The subject line must be in the imperative mood, not capitalized, and concise (ideally under 50 characters).
4.  If the changes are non-trivial, add a blank line after the subject and write a brief body explaining the 'what' and 'why'. Use bullet points for clarity.
5.  An empty old content means the file was added or is binary; an empty new content means the file was deleted or is binary.
6.  Crucially, your response must contain ONLY the formatted commit message and nothing else. Do not include any introductory text, explanations, or apologies.

Staged changes ({{ len .Files }} files):
{{ range .Files }}
--- File: {{ .Path }}
Old content:
` + "```" + `
{{ .Before }}
` + "```" + `
New content:
` + "```" + `
{{ .After }}
` + "```" + `
{{ end -}}
`

type analyzePromptData struct {
	Messages []string
}

type rewritePromptData struct {
	Message string
}

type describePromptData struct {
	Description string
}

type codePairPromptData struct {
	OldCode string
	NewCode string
}

type stagedPromptData struct {
	Files []FileDiff
}

func getAnalyzePromptTmpl() *template.Template {
	analyzePromptTmplOnce.Do(func() {
		analyzePromptTmpl = template.Must(template.New("analyze_prompt").Parse(analyzePromptTemplate))
	})
	return analyzePromptTmpl
}

func getRewritePromptTmpl() *template.Template {
	rewritePromptTmplOnce.Do(func() {
		rewritePromptTmpl = template.Must(template.New("rewrite_prompt").Parse(rewritePromptTemplate))
	})
	return rewritePromptTmpl
}

func getDescribePromptTmpl() *template.Template {
	describePromptTmplOnce.Do(func() {
		describePromptTmpl = template.Must(template.New("describe_prompt").Parse(describePromptTemplate))
	})
	return describePromptTmpl
}

func getCodePairPromptTmpl() *template.Template {
	codePairPromptTmplOnce.Do(func() {
		codePairPromptTmpl = template.Must(template.New("code_pair_prompt").Parse(codePairPromptTemplate))
	})
	return codePairPromptTmpl
}

func getStagedPromptTmpl() *template.Template {
	stagedPromptTmplOnce.Do(func() {
		stagedPromptTmpl = template.Must(template.New("staged_prompt").Parse(stagedPromptTemplate))
	})
	return stagedPromptTmpl
}

// renderPrompt executes a prompt template, falling back to a plain prompt on error.
func renderPrompt(tmpl *template.Template, data interface{}, fallback string) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fallback
	}
	return buf.String()
}

// BuildAnalyzePrompt constructs the prompt for commit history analysis.
// Messages are trimmed before rendering.
func BuildAnalyzePrompt(messages []string) string {
	trimmed := make([]string, 0, len(messages))
	for _, msg := range messages {
		trimmed = append(trimmed, strings.TrimSpace(msg))
	}
	return renderPrompt(getAnalyzePromptTmpl(), &analyzePromptData{Messages: trimmed},
		fmt.Sprintf("Review these %d git commit messages and summarize the developer's strengths, weaknesses, and advice:\n%s",
			len(trimmed), strings.Join(trimmed, "\n")))
}

// BuildRewritePrompt constructs the prompt for a best-practice rewrite of one message.
func BuildRewritePrompt(message string) string {
	return renderPrompt(getRewritePromptTmpl(), &rewritePromptData{Message: message},
		"Rewrite this git commit message as an ideal conventional commit, output only the message:\n"+message)
}

// BuildDescriptionPrompt constructs the prompt for composing a message from a description.
func BuildDescriptionPrompt(description string) string {
	return renderPrompt(getDescribePromptTmpl(), &describePromptData{Description: description},
		"Write a conventional git commit message for this change description, output only the message:\n"+description)
}

// BuildCodePairPrompt constructs the prompt for composing a message from old/new code.
func BuildCodePairPrompt(oldCode, newCode string) string {
	return renderPrompt(getCodePairPromptTmpl(), &codePairPromptData{OldCode: oldCode, NewCode: newCode},
		"Write a conventional git commit message summarizing the change from the old code to the new code, output only the message.")
}

// BuildStagedDiffPrompt constructs the prompt for composing a message from staged changes.
func BuildStagedDiffPrompt(diffs []FileDiff) string {
	return renderPrompt(getStagedPromptTmpl(), &stagedPromptData{Files: diffs},
		fmt.Sprintf("Write one conventional git commit message summarizing staged changes to %d files, output only the message.", len(diffs)))
}
