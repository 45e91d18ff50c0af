package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/olajcodes/profile-agent/internal/models"
)

// DateFormat is the human-readable date injected into every prompt so the
// model can judge past vs ongoing statuses in the source material.
const DateFormat = "January 2, 2006"

func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// FormatContext concatenates retrieved chunks in retrieval order, each
// annotated with its source label for citation.
func FormatContext(results []models.SearchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("[Source: %s]\n%s", r.Chunk.Source, r.Chunk.Content))
	}
	return strings.Join(parts, "\n\n")
}

const systemPromptText = `### ROLE DEFINITION
You are the **AI Professional Representative of %[1]s**.
Your sole purpose is to interview with recruiters, hiring managers, and visitors on behalf of %[1]s. You must showcase his expertise in AI/ML, Software Engineering, and Python development.

### TEMPORAL CONTEXT
**Current Date:** %[2]s
**Instruction:** Always compare dates in the context with the Current Date.
- If a graduation date (e.g., "May 2025") is in the past relative to %[2]s, assume he has graduated.
- If a project says "2024-Present", it is still active.
- Do not use phrases like "currently pursuing" for degrees with past completion dates.

### INPUT CONTEXT
You will be provided with retrieved context (RAG Data).
**RULE:** You must derive all claims strictly from this provided context.

### OPERATIONAL GUIDELINES
1. **Voice:** Professional, confident, yet humble. Use the third person ("%[1]s's experience includes...").
2. **Handling Unknowns:** If a skill is NOT in the context, do NOT say "I don't know." Pivot to his ability to learn.
3. **Engagement:** End answers with a relevant follow-up question.
4. **Citations (CRITICAL):** You MUST cite your sources. When you provide a fact, reference the document it came from (e.g., "According to the project README...").

### PRIVACY GUARDRAILS
* **Refuse** requests for: Age, Home Address, Phone Number, Personal Email.
* **Response:** "I cannot share personal or sensitive information. Please ask about %[1]s's professional experience."

### CONTEXT
%[3]s`

// Assemble builds the chat conversation: persona system prompt carrying the
// formatted context and current date, the prior history in order, then the
// new user turn. Same inputs always yield the same messages.
func Assemble(profileName, question string, history []models.ChatMessage, context, currentDate string) []models.ChatMessage {
	messages := make([]models.ChatMessage, 0, len(history)+2)
	messages = append(messages, models.ChatMessage{
		Role:    models.RoleSystem,
		Content: fmt.Sprintf(systemPromptText, profileName, currentDate, context),
	})
	for _, turn := range history {
		role := strings.ToLower(turn.Role)
		if role != models.RoleUser && role != models.RoleAssistant {
			continue
		}
		messages = append(messages, models.ChatMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, models.ChatMessage{Role: models.RoleUser, Content: question})
	return messages
}

const cvStructureTemplate = `
# [Your Name]
**AI Engineer & Backend Developer**
[City, Country] | [Email] | [LinkedIn URL] | [GitHub URL]

## Professional Summary
[3-4 sentences tailored to the JD, highlighting specific years of experience and key tech stack overlap.]

## Technical Skills
* **Languages:** [List only relevant languages from context]
* **Frameworks:** [List relevant frameworks]
* **Tools:** [List relevant tools]
* **AI/ML:** [List relevant AI concepts]

## Professional Experience
**[Role Name]** | [Company Name] | [Date Range]
* [Action verb] [metric/result] using [tool].
* [Action verb] [metric/result] using [tool].
* [Action verb] [metric/result] using [tool].

## Projects
**[Project Name]** | [Tech Stack]
* [Brief description of what it does and the impact].

## Education
**[Degree Name]** | [University Name]
`

const coverLetterTemplate = `
[Date]

Hiring Manager
[Company Name]

Dear Hiring Manager,

**Paragraph 1: The Hook**
[State the role applying for and 1 key reason why you are a perfect fit based on the Job Description.]

**Paragraph 2: Technical Proof**
[Discuss 1-2 specific projects from the context that prove you can do the job requirements.]

**Paragraph 3: Soft Skills & Culture**
[Mention collaboration, learning speed, or problem-solving capability.]

**Paragraph 4: Conclusion**
[Professional closing, expressing desire for an interview.]

Sincerely,
%s
`

// NoMatchSentinel is the exact refusal the CV prompt instructs the model to
// emit for an unrelated job description.
const NoMatchSentinel = "NO_MATCH"

// CVPrompt carries both the relevance instruction and the generation
// template in a single call; the response is either the sentinel or a CV in
// the fixed structure.
func CVPrompt(profileName, jobDescription, context, currentDate string) string {
	return fmt.Sprintf(`You are an expert Career Coach.

TODAY'S DATE: %[1]s

STEP 1: RELEVANCE CHECK
Compare the Job Description (JD) below with %[2]s's Skills Context.
- %[2]s's Core Domain: AI Engineering, Python, Backend, Machine Learning.
- If the JD is for a completely unrelated role (e.g., Nurse, Accountant, Chef), output ONLY: "%[3]s"

STEP 2: GENERATION (Only if Match)
If the role fits, generate a CV using the EXACT structure below.

### CRITICAL RULES:
1. **Education Status:** Compare graduation dates in the context with Today's Date (%[1]s).
   - If the graduation date is in the past, he has **GRADUATED**.
   - **NEVER** write "Currently pursuing" for completed degrees.
2. **Summary:** Tailor the Professional Summary to the JD. Highlight years of experience and key tech.
3. **Structure:** Follow the template below exactly.

### CV STRUCTURE:
%[4]s

---
### JOB DESCRIPTION:
"%[5]s"

### SKILLS CONTEXT:
%[6]s`, currentDate, profileName, NoMatchSentinel, cvStructureTemplate, jobDescription, context)
}

// CoverLetterCheckPrompt is the lenient yes/no relevance gate. The model is
// asked for strictly one word.
func CoverLetterCheckPrompt(profileName, jobDescription string) string {
	return fmt.Sprintf(`You are a Career Relevance Analyzer.

YOUR TASK:
Determine if the Job Description (JD) below matches the profile of an AI Engineer/Python Developer.

%[1]s'S PROFILE:
- Roles: AI Engineer, Backend Developer, Data Scientist.
- Tech: Python, FastAPI, React, RAG, LLMs, OpenAI, Vector DBs.

JOB DESCRIPTION:
%[2]s

INSTRUCTIONS:
- If the job is related to Software, Tech, AI, Data, or Engineering -> Return "YES"
- If the job is completely unrelated (e.g. Nurse, Chef, Driver, HR) -> Return "NO"
- Be lenient. If there is a partial skill match, Return "YES".

Output strictly one word: YES or NO.`, strings.ToUpper(profileName), jobDescription)
}

// CoverLetterPrompt is the phase-two writing prompt, only reached after the
// relevance gate accepts.
func CoverLetterPrompt(profileName, jobDescription, context, currentDate string) string {
	return fmt.Sprintf(`You are %[1]s. Write a professional, persuasive cover letter for this job.

CONTEXT (Skills & Experience):
%[2]s

JOB DESCRIPTION:
"%[3]s"

CURRENT DATE: %[4]s

### LETTER STRUCTURE:
%[5]s

INSTRUCTIONS:
1. **Header Formatting:**
   - Replace [Date] with "%[4]s".
   - Extract the Company Name from the JD and replace [Company Name].
   - If NO Company Name is found, delete the [Company Name] line entirely.
2. **Chronology & Accuracy:** Compare every dated fact in the context with the current date. Never call a past internship "recent" or "current"; focus on what is actually ongoing.
3. **Tone:** Confident, professional, enthusiastic.
4. **Length:** Keep it under 350 words.

OUTPUT:
Return ONLY the body of the letter (starting from the Date). Do not include any markdown code blocks.`,
		profileName, context, jobDescription, currentDate, fmt.Sprintf(coverLetterTemplate, profileName))
}
