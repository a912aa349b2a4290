package gateway

import (
	"fmt"
	"strings"

	"github.com/careerco/companion/internal/learn"
)

func tutorSystemPrompt(persona learn.Persona, language string) string {
	return fmt.Sprintf(`You are a Polyglot Tutor for %s.
ALWAYS converse in %s. If the user speaks another language, gently guide them back to %s or answer in %s.
Keep explanations clear and suitable for %s.`,
		personaAudience(persona), language, language, language, personaAudience(persona))
}

func coachSystemPrompt(persona learn.Persona) string {
	return fmt.Sprintf("You are a Career Strategist for %s. Use your reasoning capabilities and web search to provide up-to-date market insights and strategic advice.",
		personaAudience(persona))
}

func visionSystemPrompt(persona learn.Persona, language string) string {
	return fmt.Sprintf(`You are a Vision Tutor Agent for %s. Analyze the provided image or document.
Explain the concepts in detail in %s. Output Markdown.`,
		personaAudience(persona), language)
}

func audioChatPrompt(persona learn.Persona) string {
	return fmt.Sprintf(`You are a helpful Tutor for %s.
1. IDENTIFY the language spoken in the audio.
2. If silence/noise, reply: "I couldn't hear you clearly."
3. Otherwise, ANSWER directly in that SAME language.
4. Keep the response short (max 2-3 sentences) suitable for speech.`,
		personaAudience(persona))
}

// interviewSystemPrompt drives the live interview session.
const interviewSystemPrompt = "You are an intense but fair Technical Interviewer. Conduct a coding interview."

func lessonPrompt(subject, topic string, persona learn.Persona) string {
	example := "Industry example"
	if persona == learn.PersonaStudent {
		example = "Academic example"
	}
	return fmt.Sprintf(`Generate a comprehensive educational lesson about %q in the subject of %q.
Target Persona: %s.

Structure:
1. Concept Overview
2. Key Principles (Bullet points)
3. Real-world Application (%s)
4. Quick Quiz (3 questions with answers hidden/at bottom)

Format: Markdown.`, topic, subject, persona, example)
}

func translatePrompt(text, targetLanguage string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Translate the following markdown text into %s.\n", targetLanguage)
	b.WriteString("Keep the formatting (headers, bullet points, bold text) exactly the same.\n")
	b.WriteString("Only translate the content.\n\nText:\n")
	b.WriteString(text)
	return b.String()
}

func storyPrompt(content, style string, persona learn.Persona, language string) string {
	return fmt.Sprintf(`Create a highly detailed, artistic SVG POSTER illustrating the following concept: %q.

Art Style: The universe of %q.
Target Audience: %s.
Language: %s.

REQUIREMENTS:
1. Output ONLY valid SVG code. Do not wrap in markdown code blocks.
2. The SVG should have a viewBox of "0 0 500 750" (Portrait Poster ratio).
3. Use a rich color palette appropriate for the style.
4. Include the "Topic" as a stylized title within the poster.
5. The TEXT in the poster (Title, labels, descriptions) MUST be in the language: %q.
6. Make it visually striking and complex.

Topic:
%s`, content, style, persona, language, language, content)
}
