package rag

// AskRequest represents a question-answering request.
type AskRequest struct {
	// Question is the user's question to answer.
	Question string `json:"question"`
	// K optionally overrides the number of context chunks to retrieve.
	// Zero means the engine default.
	K int `json:"k,omitempty"`
}

// Source is a retrieved context chunk with its relevance score and the name
// of the document it came from.
type Source struct {
	// Text is the chunk text supplied to the answer generator.
	Text string `json:"text"`
	// Score is the retrieval relevance score (keyword overlap count or
	// vector similarity, depending on the strategy).
	Score float32 `json:"score"`
	// Document is the display name of the source document.
	Document string `json:"document"`
}

// AskResponse represents the response to a question.
type AskResponse struct {
	// Answer is the generated answer, or a descriptive placeholder when
	// generation could not run.
	Answer string `json:"answer"`
	// Sources are the chunks the answer was generated from, best first.
	Sources []Source `json:"sources"`
}
