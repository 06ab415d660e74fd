// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ragapi

import "encoding/json"

// =============================================================================
// REQUEST OPTIONS
// =============================================================================

// Options carries the per-session settings that shape a backend request.
//
// Fields that need an "explicitly set" vs "absent" distinction are pointers;
// absent falls back to the backend default. Scalar fields treat their zero
// value as absent, matching the backend contract where zero is never a
// meaningful override.
type Options struct {
	// UseSimpleQuery forces the minimal {query} request body.
	UseSimpleQuery bool

	// UseAPIModel enables caller model overrides; defaults to true when nil.
	UseAPIModel *bool
	// UseCustomPrompt enables caller stage prompts/flags; defaults to true
	// when nil.
	UseCustomPrompt *bool

	// Model overrides, honored only when UseAPIModel resolves true.
	ModelName   string
	Temperature float64
	MaxTokens   int
	TopK        int

	// Retrieval settings.
	CollectionName  string
	FilterThreshold float64
	UseMMR          *bool
	LambdaMult      float64

	// Stage enable flags, honored only when UseCustomPrompt resolves true.
	EnableClassification *bool
	EnableAmplification  *bool
	EnableValidation     *bool

	// Stage prompts, honored only when UseCustomPrompt resolves true.
	ClassificationPrompt string
	AmplificationPrompt  string
	GenerationPrompt     string
	ValidationPrompt     string

	// Metadata is passed through to the backend untouched.
	Metadata map[string]any

	// CustomSettings replaces the synthesized custom_settings map entirely
	// when non-nil.
	CustomSettings map[string]StageSettings
}

// isEmpty reports whether no option was provided at all. An all-zero Options
// produces the minimal request, same as passing nil.
func (o *Options) isEmpty() bool {
	return !o.UseSimpleQuery &&
		o.UseAPIModel == nil &&
		o.UseCustomPrompt == nil &&
		o.ModelName == "" &&
		o.Temperature == 0 &&
		o.MaxTokens == 0 &&
		o.TopK == 0 &&
		o.CollectionName == "" &&
		o.FilterThreshold == 0 &&
		o.UseMMR == nil &&
		o.LambdaMult == 0 &&
		o.EnableClassification == nil &&
		o.EnableAmplification == nil &&
		o.EnableValidation == nil &&
		o.ClassificationPrompt == "" &&
		o.AmplificationPrompt == "" &&
		o.GenerationPrompt == "" &&
		o.ValidationPrompt == "" &&
		o.Metadata == nil &&
		o.CustomSettings == nil
}

// Bool returns a pointer to b, for filling optional Options fields.
func Bool(b bool) *bool {
	return &b
}

// =============================================================================
// WIRE REQUEST
// =============================================================================

// Request is the wire body for the cot-rag endpoint. It marshals as either
// the minimal {query} object or the full payload, decided by BuildRequest.
type Request struct {
	Query                string                   `json:"query"`
	EnableClassification bool                     `json:"enable_classification"`
	EnableAmplification  bool                     `json:"enable_amplification"`
	EnableValidation     bool                     `json:"enable_validation"`
	Metadata             map[string]any           `json:"metadata"`
	EnableSteps          EnableSteps              `json:"enable_steps"`
	CustomSettings       map[string]StageSettings `json:"custom_settings"`

	minimal bool
}

// IsMinimal reports whether the request marshals as {query} only.
func (r Request) IsMinimal() bool {
	return r.minimal
}

// MarshalJSON emits {query} alone for minimal requests and the full payload
// otherwise.
func (r Request) MarshalJSON() ([]byte, error) {
	if r.minimal {
		return json.Marshal(struct {
			Query string `json:"query"`
		}{Query: r.Query})
	}
	type full Request
	return json.Marshal(full(r))
}

// EnableSteps mirrors the top-level stage flags on the wire. Retrieval and
// generation are always on; the backend contract never gates them.
type EnableSteps struct {
	Classification bool `json:"classification"`
	Amplification  bool `json:"amplification"`
	Retrieval      bool `json:"retrieval"`
	Generation     bool `json:"generation"`
	Validation     bool `json:"validation"`
}

// StageSettings holds the per-stage entry of custom_settings. Prompt stages
// carry {prompt, model_settings}; the retrieval stage carries the search
// tuning fields instead. Unused fields are omitted from the wire.
type StageSettings struct {
	Prompt        *string        `json:"prompt,omitempty"`
	ModelSettings *ModelSettings `json:"model_settings,omitempty"`

	TopK            *int     `json:"top_k,omitempty"`
	FilterThreshold *float64 `json:"filter_threshold,omitempty"`
	CollectionName  *string  `json:"collection_name,omitempty"`
	UseMMR          *bool    `json:"use_mmr,omitempty"`
	LambdaMult      *float64 `json:"lambda_mult,omitempty"`
}

// ModelSettings is the LLM tuning block shared by the prompt stages.
type ModelSettings struct {
	ModelName   string  `json:"model_name"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// =============================================================================
// WIRE RESPONSE
// =============================================================================

// Envelope is the backend response, passed through without reshaping.
// Exactly one of Answer/RawJSON is the primary content; RawJSON, when
// present, takes precedence for rendering.
type Envelope struct {
	Answer     string      `json:"answer,omitempty"`
	RawJSON    string      `json:"raw_json,omitempty"`
	References []Reference `json:"references,omitempty"`
}

// Reference is a cited source in the response envelope.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// StructuredPayload is the chain-of-thought answer document serialized inside
// Envelope.RawJSON.
type StructuredPayload struct {
	// ThinkingProcess is the backend's internal reasoning trace. It is
	// never rendered to the end user.
	ThinkingProcess      []string          `json:"thinking_process,omitempty"`
	QuestionBreakdown    []QuestionItem    `json:"question_breakdown,omitempty"`
	ReferencedLaws       []string          `json:"referenced_laws,omitempty"`
	ReferencedPrecedents []string          `json:"referenced_precedents,omitempty"`
	LegalTermsExplained  map[string]string `json:"legal_terms_explained,omitempty"`
	FinalAnswer          string            `json:"final_answer,omitempty"`
}

// QuestionItem is one entry of the question breakdown.
type QuestionItem struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	LegalBasis string `json:"legal_basis,omitempty"`
}
