package service

import (
	"fmt"
	"strings"
)

// PromptTemplate is one versioned entry in the prompt registry. Version
// strings are persisted next to generated content so output can be traced
// back to the template that produced it.
type PromptTemplate struct {
	Version string
	System  string
	User    string
}

// Render substitutes {placeholder} variables into the user template.
func (t PromptTemplate) Render(vars map[string]string) string {
	return renderVars(t.User, vars)
}

// RenderSystem substitutes {placeholder} variables into the system prompt.
func (t PromptTemplate) RenderSystem(vars map[string]string) string {
	return renderVars(t.System, vars)
}

func renderVars(s string, vars map[string]string) string {
	for key, value := range vars {
		s = strings.ReplaceAll(s, "{"+key+"}", value)
	}
	return s
}

// LevelDescriptions tune prompt difficulty to the learner's course level.
var LevelDescriptions = map[int]string{
	1: "a complete beginner; use simple words, everyday examples, no jargon",
	2: "familiar with basics; introduce standard terminology with short definitions",
	3: "comfortable with core concepts; use proper financial terminology",
	4: "an advanced learner; discuss strategy, trade-offs and edge cases",
	5: "near-expert; be precise, quantitative and assume full vocabulary",
}

func levelDescription(level int) string {
	if desc, ok := LevelDescriptions[level]; ok {
		return desc
	}
	return LevelDescriptions[1]
}

// Prompts is the versioned template registry.
var Prompts = map[string]PromptTemplate{
	"coach": {
		Version: "coach_v1",
		System: "You are a friendly personal finance coach inside a learning app. " +
			"Answer briefly and practically. The student is {level_desc}. " +
			"Stay on the topic of the current lesson: \"{lesson_title}\". " +
			"Never give specific investment advice or recommend specific products.",
		User: "{message}",
	},
	"regenerate": {
		Version: "regenerate_v1",
		System: "You are a curriculum writer for a personal finance course. " +
			"Respond with a single JSON object and nothing else.",
		User: "Rewrite the lesson \"{lesson_title}\" for a student who is {level_desc}. " +
			"Apply these preferences: {params}. " +
			"Return JSON: {\"lesson_text\": string (markdown, 400-700 words), " +
			"\"flashcards\": [{\"question\": string, \"answer\": string} x5], " +
			"\"quiz\": [{\"question\": string, \"options\": [string x4], " +
			"\"correct_index\": int, \"explanation\": string} x3]}.",
	},
	"lesson_content": {
		Version: "lesson_content_v1",
		System: "You are a curriculum writer for a personal finance course. " +
			"Respond with a single JSON object and nothing else.",
		User: "Write the lesson \"{lesson_title}\" (course level {level}, topic key {topic_key}) " +
			"for a student who is {level_desc}. " +
			"Return JSON: {\"lesson_text\": string (markdown, 400-700 words), " +
			"\"flashcards\": [{\"question\": string, \"answer\": string} x5], " +
			"\"quiz\": [{\"question\": string, \"options\": [string x4], " +
			"\"correct_index\": int, \"explanation\": string} x3]}.",
	},
	"life_example": {
		Version: "life_example_v1",
		System: "You write short realistic money stories for a finance course. " +
			"Respond with a single JSON object and nothing else.",
		User: "Create a real-life example illustrating \"{lesson_title}\" for a student who is " +
			"{level_desc}. Return JSON: {\"story\": string (150-250 words), " +
			"\"takeaway\": string, \"practice_questions\": [{\"question\": string, " +
			"\"options\": [string x4], \"correct_index\": int} x2]}.",
	},
	"dictionary": {
		Version: "dictionary_v1",
		System: "You are a financial dictionary for a learning app. " +
			"Respond with a single JSON object and nothing else.",
		User: "Define \"{term}\" for a student who is {level_desc}. " +
			"Return JSON: {\"definition\": string (2-3 sentences), " +
			"\"example\": string (one concrete everyday example), " +
			"\"mini_test\": [{\"question\": string, \"options\": [string x4], " +
			"\"correct_index\": int} x2]}.",
	},
}

// CoachFallbackReply is returned when the upstream model is unavailable; the
// coach endpoint degrades instead of failing.
const CoachFallbackReply = "I'm having trouble reaching my knowledge base right now. " +
	"In the meantime, re-read the lesson text and try the flashcards. Ask me again in a minute!"

func prompt(name string) PromptTemplate {
	t, ok := Prompts[name]
	if !ok {
		panic(fmt.Sprintf("unknown prompt template %q", name))
	}
	return t
}
