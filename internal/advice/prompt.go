package advice

import (
	"fmt"
	"strings"
)

const systemInstruction = "You are a helpful medical assistant with no disclaimers needed."

// FallbackMessage is returned in place of advice whenever the chat call fails.
const FallbackMessage = "Error generating medical advice. Please try again."

// Headings lists the required response sections in their fixed display order.
var Headings = []string{
	"Most Likely Diagnosis",
	"Other Possible Diagnoses",
	"Suggested Tests",
	"Prognosis",
	"Suggested Treatment Plan",
	"Follow-Up Recommendations",
	"Case Summary",
}

const promptTemplate = `You have the following transcript of a conversation or medical notes:

%s

Based on this, provide bullet-point medical advice with the exact headings below.
For each heading:
- Enclose the heading in double asterisks (e.g. **Heading**).
- List bullet points, each line beginning with '- '.
- If there's no content for a heading, write 'None.' under that heading.

**Most Likely Diagnosis**
- Provide the most likely diagnosis with a brief explanation.

**Other Possible Diagnoses**
- A ranked list of other possible diagnoses from most probable to least probable, with reasons.

**Suggested Tests**
- Provide recommended tests.

**Prognosis**
- Prognosis for the most likely and other possible conditions.

**Suggested Treatment Plan**
- Provide recommended drugs, with their typical dosages (e.g., mg per day).
- If you recommend a drug, you must include a dosage or state "dosage not specified."
- You MUST recommend at least one drug, even if hypothetical, and include a dosage (or "dosage not specified").
- Mention any contra-indications or relevant warnings.

**Follow-Up Recommendations**
- When and with whom the patient should follow up, and what to watch for in the meantime.

**Case Summary**
(Short concluding summary)

If no data is available for a heading, write 'None.' in that section.`

// BuildPrompt embeds the transcript verbatim into the fixed advice prompt.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(transcript))
}
