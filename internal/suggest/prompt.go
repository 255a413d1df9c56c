package suggest

// Separator joins the three questions in a provider response.
const Separator = "||"

const instructionPrompt = `Generate EXACTLY 3 questions following these STRICT rules:
1. Format as: Question1?||Question2?||Question3?
2. Use exactly two vertical bars (||) as separators
3. No numbering, quotes, markdown, newlines or extra text
4. Each question must end with a question mark
5. Example valid response: What's a hobby you've recently started?||If you could have dinner with any historical figure, who would it be?||What's a simple thing that makes you happy?
6. These questions are for an anonymous social messaging platform and should be suitable for a diverse audience. Avoid personal or sensitive topics, focusing instead on universal themes that encourage friendly interaction.
7. Ensure the questions are intriguing, foster curiosity, and contribute to a positive and welcoming conversational environment.
8. Always change the questions, never repeat the same questions.
YOUR OUTPUT MUST FOLLOW THESE RULES EXACTLY:`

// Prompt returns the fixed instruction sent to the provider.
func Prompt() string { return instructionPrompt }
