package indexer

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the soft target size of a chunk in runes.
const DefaultChunkSize = 500

// SentenceChunker splits document text into chunks along sentence
// boundaries. Sentences are delimited by a configurable set of terminator
// runes; the default is the ideographic full stop used throughout the
// documents this tool ingests.
type SentenceChunker struct {
	terminators string
}

// NewSentenceChunker creates a chunker that treats each rune in terminators
// as a sentence-terminal mark. An empty string falls back to the ideographic
// full stop.
func NewSentenceChunker(terminators string) *SentenceChunker {
	if terminators == "" {
		terminators = "。"
	}
	return &SentenceChunker{terminators: terminators}
}

// sentence is a terminator-delimited span of the input text. term is empty
// only for a trailing fragment with no terminator.
type sentence struct {
	body string
	term string
}

// Split chunks text into spans of roughly size runes. Sentences are packed
// greedily: when appending the next sentence body would make the running
// buffer reach or exceed size, the buffer is flushed and a new one starts
// with that sentence. Size is a soft target: a single sentence longer than
// size is emitted whole, never truncated. Empty input yields no chunks, and
// no emitted chunk is ever empty.
//
// Every sentence keeps its terminator in the output; a trailing fragment
// without one gets the primary terminator re-attached so that concatenating
// the chunks and re-splitting reproduces the original sentence sequence.
func (c *SentenceChunker) Split(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}

	sentences := c.sentences(text)
	if len(sentences) == 0 {
		return nil
	}

	primary, _ := utf8.DecodeRuneInString(c.terminators)

	var chunks []string
	var buf strings.Builder
	bufRunes := 0

	flush := func() {
		if bufRunes > 0 {
			chunks = append(chunks, buf.String())
			buf.Reset()
			bufRunes = 0
		}
	}

	for _, s := range sentences {
		term := s.term
		if term == "" {
			term = string(primary)
		}
		bodyRunes := utf8.RuneCountInString(s.body)

		// The size check counts the buffer (terminators included) plus the
		// bare sentence body, without the body's own terminator.
		if bufRunes+bodyRunes >= size {
			flush()
		}
		buf.WriteString(s.body)
		buf.WriteString(term)
		bufRunes += bodyRunes + utf8.RuneCountInString(term)
	}
	flush()

	return chunks
}

// sentences splits text on terminator runes, keeping each sentence's
// terminator separate from its body. Whitespace-only bodies are dropped so
// the chunker never emits an empty chunk.
func (c *SentenceChunker) sentences(text string) []sentence {
	var out []sentence
	var body strings.Builder

	for _, r := range text {
		if strings.ContainsRune(c.terminators, r) {
			if strings.TrimSpace(body.String()) != "" {
				out = append(out, sentence{body: body.String(), term: string(r)})
			}
			body.Reset()
			continue
		}
		body.WriteRune(r)
	}
	if strings.TrimSpace(body.String()) != "" {
		out = append(out, sentence{body: body.String()})
	}

	return out
}
