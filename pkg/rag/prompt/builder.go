package prompt

import (
	"strings"
)

// DefaultContextThreshold is the minimum context length (in characters)
// for the retrieved text to count as substantial. Shorter blobs are
// usually retrieval noise and fall through to the general template.
const DefaultContextThreshold = 40

// RefusalMessage is returned directly when the strict-only policy is in
// force and no context was retrieved. The model is not called.
const RefusalMessage = "I can only answer questions that are covered by my reference material. " +
	"I could not find any relevant legal provisions for this question, so I cannot give a reliable answer. " +
	"Please try rephrasing or asking about a specific section or act."

// Builder assembles the prompt sent to the model. The jurisdiction policy
// and the substantiality threshold are configuration, not code.
type Builder struct {
	Jurisdiction string
	Threshold    int
	// StrictOnly selects the refusal variant: with empty context the
	// pipeline short-circuits instead of falling back to general
	// knowledge. The two behaviors are mutually exclusive.
	StrictOnly bool
}

// Result carries the assembled prompt plus the selection outcome so the
// orchestrator can pick generation parameters and apply the short-circuit.
type Result struct {
	Prompt   string
	Grounded bool // strict/context-grounded template was selected
	Refuse   bool // strict-only policy with no context: answer with RefusalMessage, skip the model
}

func NewBuilder(jurisdiction string, threshold int, strictOnly bool) *Builder {
	if jurisdiction == "" {
		jurisdiction = "Indian law"
	}
	if threshold <= 0 {
		threshold = DefaultContextThreshold
	}
	return &Builder{
		Jurisdiction: jurisdiction,
		Threshold:    threshold,
		StrictOnly:   strictOnly,
	}
}

// Build selects a template based on whether the retrieved context is
// substantial and fills it with the context and question.
func (b *Builder) Build(context, question string) Result {
	context = strings.TrimSpace(context)

	if b.StrictOnly && context == "" {
		return Result{Refuse: true}
	}

	if len(context) > b.Threshold {
		return Result{Prompt: b.buildGrounded(context, question), Grounded: true}
	}
	return Result{Prompt: b.buildGeneral(question)}
}

// buildGrounded embeds the retrieved context verbatim and restricts the
// model to it.
func (b *Builder) buildGrounded(context, question string) string {
	var prompt strings.Builder

	b.writeRole(&prompt)

	prompt.WriteString("<reference_material>\n")
	prompt.WriteString(context)
	prompt.WriteString("\n</reference_material>\n\n")

	prompt.WriteString("Instructions:\n")
	prompt.WriteString("- Answer ONLY from the reference material above\n")
	prompt.WriteString("- Respond in concise bullet points\n")
	prompt.WriteString("- Do not invent section numbers, case names, or figures that are not in the material\n")
	prompt.WriteString("- If the reference material does not cover the question, say so explicitly and decline to answer\n\n")

	b.writeQuestion(&prompt, question)
	return prompt.String()
}

// buildGeneral is the fallback template: same jurisdiction policy, but the
// model may use its general domain knowledge.
func (b *Builder) buildGeneral(question string) string {
	var prompt strings.Builder

	b.writeRole(&prompt)

	prompt.WriteString("No reference material was found for this question.\n\n")

	prompt.WriteString("Instructions:\n")
	prompt.WriteString("- Answer from your general knowledge of ")
	prompt.WriteString(b.Jurisdiction)
	prompt.WriteString("\n")
	prompt.WriteString("- Respond in concise bullet points\n")
	prompt.WriteString("- Do not invent section numbers, case names, or figures\n")
	prompt.WriteString("- If you are not sure, state explicitly that you are not sure\n\n")

	b.writeQuestion(&prompt, question)
	return prompt.String()
}

func (b *Builder) writeRole(prompt *strings.Builder) {
	prompt.WriteString("You are a legal assistant specialized in ")
	prompt.WriteString(b.Jurisdiction)
	prompt.WriteString(". Answer only within this jurisdiction and never reference the law of any other jurisdiction.\n\n")
}

func (b *Builder) writeQuestion(prompt *strings.Builder, question string) {
	prompt.WriteString("<user_question>\n")
	prompt.WriteString(question)
	prompt.WriteString("\n</user_question>\n\n")
	prompt.WriteString("Answer:")
}
