package llm

// Prompt templates for query enhancement, reranking, and grounded answers.

const spellPrompt = `Fix any spelling errors in this movie search query.

Only correct obvious typos. Don't change correctly spelled words.

Query: "%s"

If no errors, return the original query.
Corrected:`

const rewritePrompt = `Rewrite this movie search query to be more specific and searchable.

Original: "%s"

Consider:
- Common movie knowledge (famous actors, popular films)
- Genre conventions (horror = scary, animation = cartoon)
- Keep it concise (under 10 words)
- It should be a google style search query that's very specific
- Don't use boolean logic

Examples:

- "that bear movie where leo gets attacked" -> "The Revenant Leonardo DiCaprio bear attack"
- "movie about bear in london with marmalade" -> "Paddington London marmalade"
- "scary movie with bear from few years ago" -> "bear horror movie 2015-2020"

Rewritten query:`

const expandPrompt = `Expand this movie search query with related terms.

Add synonyms and related concepts that might appear in movie descriptions.
Keep expansions relevant and focused.
This will be appended to the original query.

Examples:

- "scary bear movie" -> "scary horror grizzly bear movie terrifying film"
- "action movie with bear" -> "action thriller bear chase fight adventure"
- "comedy with bear" -> "comedy funny bear humor lighthearted"

Query: "%s"
`

const describeImagePrompt = `Given the included image and text query, rewrite the text query to improve search results from a movie database. Make sure to:
- Synthesize visual and textual information
- Focus on movie-specific details (actors, scenes, style, etc.)
- Return only the rewritten query, without any additional commentary

Query: "%s"`

const individualRerankPrompt = `Rate how well this movie matches the search query.

Query: "%s"
Movie: %s - %s

Consider:
- Direct relevance to query
- User intent (what they're looking for)
- Content appropriateness

Rate 0-10 (10 = perfect match).
Give me ONLY the number in your response, no other text or explanation.

Score:`

const batchRerankPrompt = `Rank these movies by relevance to the search query.

Query: "%s"

Movies:
%s

Return ONLY the IDs in order of relevance (best match first). Return a valid JSON list, nothing else. For example:

[75, 12, 34, 2, 1]
`

const crossScorePrompt = `Score how relevant each movie is to the search query.

Query: "%s"

Movies:
%s

Return ONLY a JSON list of relevance scores between 0.0 and 1.0, one per
movie in the order given, nothing else. For example:

[0.92, 0.4, 0.11]
`

const answerPrompt = `Answer the question or provide information based ONLY on the provided documents.
This answer should be tailored to Hoopla users. Hoopla is a movie streaming service.
If the documents do not contain relevant information to answer the query, state that clearly. Do not use outside knowledge.

Query: %s

Documents:
%s

Provide a comprehensive answer that addresses the query based on the documents:`
