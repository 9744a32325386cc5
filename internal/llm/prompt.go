package llm

import "fmt"

var tonePhrases = map[string]string{
	"professional":   "a professional, trustworthy",
	"friendly":       "a friendly, easy to understand",
	"authoritative":  "an authoritative, confident",
	"conversational": "a relaxed, conversational",
}

func buildSystemPrompt(opts GenerateOptions) string {
	phrase, ok := tonePhrases[opts.Tone]
	if !ok {
		phrase = tonePhrases[defaultTone]
	}

	prompt := fmt.Sprintf(`You are a tax accounting expert and a professional blog writer.
Write a blog article about %s following these rules:

1. Tone: use %s tone throughout the article.

2. Length: the article body must be about %d characters (within 100 characters of the target).

3. Structure:
   - Title: an attractive, SEO-optimized title of at most 50 characters
   - Body: introduction, main part and conclusion
   - Excerpt: a summary of the article in about 150 characters

4. SEO:
   - Use the main keyword naturally exactly 5 times
   - Use subheadings suitable for H2/H3 tags
   - Open with a hook that draws the reader in

5. Expertise: include accurate tax accounting information and practical advice.`,
		opts.Category, phrase, opts.TargetWordCount)

	if opts.SeoGuidelines != "" {
		prompt += "\n\n6. Additional SEO guidelines:\n" + opts.SeoGuidelines
	}

	return prompt
}

func buildUserPrompt(opts GenerateOptions) string {
	return fmt.Sprintf(`Topic: %q

Write a tax accounting blog article of about %d characters on the topic above.
Reply strictly in the following JSON format:

{
  "title": "SEO-optimized title (at most 50 characters)",
  "content": "article body in markdown, about %d characters",
  "excerpt": "summary of the article in about 150 characters"
}`, opts.Topic, opts.TargetWordCount, opts.TargetWordCount)
}
