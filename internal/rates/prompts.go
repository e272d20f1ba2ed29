package rates

// structuredPrompt is used by the structured-output strategy. The response
// is constrained to JSON at the request level, so the prompt only has to
// pin down the schema.
const structuredPrompt = `You are a financial analyst tracking Malaysian fixed deposit promotions.

Task:
- List the current best fixed deposit offers from major Malaysian banks
  (Maybank, CIMB, Public Bank, RHB, Hong Leong, Bank Islam and similar).
- Output a JSON array of objects, nothing else.

Each object must have these fields:
- "bank": string, the bank's name
- "product": string, the promotion or product name
- "rate": number, percent per annum (NEVER a string; if a rate is a range, pick the maximum)
- "tenure": string, e.g. "12 months"
- "min_deposit": string, e.g. "RM10,000"
- "description": string, any condition like "Fresh funds" or "Online only"
- "valid_until": string, promotion end date if known, else ""
`

// searchPrompt is used by the search-augmented strategy. The model may reply
// with surrounding prose, so it is asked to embed the same JSON array in its
// answer; the caller digs the array out of the text.
const searchPrompt = `Use web search to find the current fixed deposit promotion rates offered by major Malaysian banks.

Summarise the top offers you find, and include in your answer a JSON array in exactly this shape:

[{"bank": "Bank Name", "product": "...", "rate": 3.85, "tenure": "12 months", "min_deposit": "RM10,000", "description": "...", "valid_until": "..."}]

Rules:
- "rate" must be a number, not a string. If a rate is a range, pick the maximum.
- Include 5 to 10 offers.
- Do not invent banks; only report what the search results support.
`
