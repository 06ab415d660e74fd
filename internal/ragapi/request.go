// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ragapi

// Backend defaults. These mirror the cot-rag service contract; the builder
// falls back to them field by field when the caller leaves an option unset.
const (
	DefaultModelName       = "gpt-4o-mini"
	DefaultTemperature     = 0.7
	DefaultMaxTokens       = 500
	DefaultTopK            = 5
	DefaultCollectionName  = "kised_regfinder_old_law_db_20241129"
	DefaultFilterThreshold = 0.7
	DefaultLambdaMult      = 0.5
)

// Default stage prompts, used when custom prompts are enabled but a stage
// prompt was not provided.
const (
	DefaultClassificationPrompt = "규제 관련 질문을 분류해주세요"
	DefaultAmplificationPrompt  = "사용자 질문을 더 명확하게 확장해주세요"
	DefaultGenerationPrompt     = "찾은 정보를 바탕으로 질문에 답변해주세요"
	DefaultValidationPrompt     = "응답의 정확성을 검증해주세요"
)

// Default stage enable flags. Validation is opt-in.
const (
	defaultEnableClassification = true
	defaultEnableAmplification  = true
	defaultEnableValidation     = false
)

// BuildRequest constructs the wire request for a query.
//
// The minimal {query} body is produced when opts is nil or empty, when
// UseSimpleQuery is set, or when both UseAPIModel and UseCustomPrompt
// resolve to false. On that path every other option is discarded.
//
// Otherwise the full payload is built by merging explicit option values over
// the backend defaults. Model overrides only apply while UseAPIModel is on;
// stage flags and prompts only apply while UseCustomPrompt is on (disabled
// prompts go out as empty strings). The enable_steps block mirrors the
// top-level flags, with retrieval and generation always true, even when the
// caller's flag combination is inconsistent; the backend owns validation.
//
// Empty queries are the caller's responsibility: the send boundary suppresses
// them before this builder runs.
func BuildRequest(query string, opts *Options) Request {
	if opts == nil || opts.isEmpty() {
		return Request{Query: query, minimal: true}
	}

	useAPIModel := true
	if opts.UseAPIModel != nil {
		useAPIModel = *opts.UseAPIModel
	}
	useCustomPrompt := true
	if opts.UseCustomPrompt != nil {
		useCustomPrompt = *opts.UseCustomPrompt
	}

	if opts.UseSimpleQuery || (!useAPIModel && !useCustomPrompt) {
		return Request{Query: query, minimal: true}
	}

	// Model settings: caller overrides count only while the API-model toggle
	// is on; otherwise the defaults win even over supplied values.
	modelName := DefaultModelName
	temperature := DefaultTemperature
	maxTokens := DefaultMaxTokens
	topK := DefaultTopK
	if useAPIModel {
		if opts.ModelName != "" {
			modelName = opts.ModelName
		}
		if opts.Temperature != 0 {
			temperature = opts.Temperature
		}
		if opts.MaxTokens != 0 {
			maxTokens = opts.MaxTokens
		}
		if opts.TopK != 0 {
			topK = opts.TopK
		}
	}
	collectionName := DefaultCollectionName
	if opts.CollectionName != "" {
		collectionName = opts.CollectionName
	}

	// Stage flags and prompts: tied to the custom-prompt toggle. Disabled
	// prompts are sent as empty strings, not omitted.
	enableClassification := defaultEnableClassification
	enableAmplification := defaultEnableAmplification
	enableValidation := defaultEnableValidation
	classificationPrompt := ""
	amplificationPrompt := ""
	generationPrompt := ""
	validationPrompt := ""
	if useCustomPrompt {
		if opts.EnableClassification != nil {
			enableClassification = *opts.EnableClassification
		}
		if opts.EnableAmplification != nil {
			enableAmplification = *opts.EnableAmplification
		}
		if opts.EnableValidation != nil {
			enableValidation = *opts.EnableValidation
		}
		classificationPrompt = orDefault(opts.ClassificationPrompt, DefaultClassificationPrompt)
		amplificationPrompt = orDefault(opts.AmplificationPrompt, DefaultAmplificationPrompt)
		generationPrompt = orDefault(opts.GenerationPrompt, DefaultGenerationPrompt)
		validationPrompt = orDefault(opts.ValidationPrompt, DefaultValidationPrompt)
	}

	metadata := opts.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	customSettings := opts.CustomSettings
	if customSettings == nil {
		modelSettings := &ModelSettings{
			ModelName:   modelName,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		}

		filterThreshold := DefaultFilterThreshold
		if opts.FilterThreshold != 0 {
			filterThreshold = opts.FilterThreshold
		}
		useMMR := true
		if opts.UseMMR != nil {
			useMMR = *opts.UseMMR
		}
		lambdaMult := DefaultLambdaMult
		if opts.LambdaMult != 0 {
			lambdaMult = opts.LambdaMult
		}

		customSettings = map[string]StageSettings{
			"classification": {
				Prompt:        &classificationPrompt,
				ModelSettings: modelSettings,
			},
			"amplification": {
				Prompt:        &amplificationPrompt,
				ModelSettings: modelSettings,
			},
			"retrieval": {
				TopK:            &topK,
				FilterThreshold: &filterThreshold,
				CollectionName:  &collectionName,
				UseMMR:          &useMMR,
				LambdaMult:      &lambdaMult,
			},
			"generation": {
				Prompt:        &generationPrompt,
				ModelSettings: modelSettings,
			},
			"validation": {
				Prompt:        &validationPrompt,
				ModelSettings: modelSettings,
			},
		}
	}

	return Request{
		Query:                query,
		EnableClassification: enableClassification,
		EnableAmplification:  enableAmplification,
		EnableValidation:     enableValidation,
		Metadata:             metadata,
		EnableSteps: EnableSteps{
			Classification: enableClassification,
			Amplification:  enableAmplification,
			Retrieval:      true,
			Generation:     true,
			Validation:     enableValidation,
		},
		CustomSettings: customSettings,
	}
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
