package narrative

import (
	"fmt"
	"strings"
)

// SystemInstruction pins the model to schema-conforming JSON output for both
// the per-chunk extraction and the merge call.
const SystemInstruction = "You output only valid JSON that matches the requested schema."

// DefaultTopic frames the analysis when no topic is configured.
const DefaultTopic = "the topic under study"

const extractPromptTemplate = `
You are analyzing posts from **%s** about %s.
From ONLY the posts below, produce **2-3 candidate narratives** in **compact JSON** with this exact schema:

{
  "narratives": [
    {
      "name": "short descriptive title",
      "summary": "2-4 sentence summary",
      "examples": [
        {"handle":"@user","excerpt":"10-25 word excerpt","url":"https://..."}
      ]
    }
  ]
}

Rules:
- Choose **2 or 3** narratives max.
- Provide **5-10 examples per narrative** (each must include @handle, short excerpt, and URL).
- If a Twitter/X example has author "unknown", try to infer the @handle from the URL or text.
- Output **only** valid JSON. No commentary.

Posts:
%s
`

const mergePromptTemplate = `
You are consolidating narratives for **%s**.

You will be given two JSON payloads, each with 2-3 narratives and examples from different batches of posts.
Merge them into a single set of **2-3** narratives total (not per input), each with a **2-4 sentence summary** and **5-10 total examples** (handles, short excerpt, URL).
- Merge similar narratives; rename for clarity if needed.
- Keep example diversity across inputs.
- Output **only** valid JSON with the same schema as before.

JSON A:
%s

JSON B:
%s
`

func buildExtractPrompt(platformName, topic, formattedPosts string) string {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	return fmt.Sprintf(extractPromptTemplate, platformName, topic, formattedPosts)
}

func buildMergePrompt(platformName, jsonA, jsonB string) string {
	return fmt.Sprintf(mergePromptTemplate, platformName, jsonA, jsonB)
}
