package rag

import "strings"

// separators is the split cascade: paragraph breaks first, then lines, then
// words, then raw characters as the last resort.
var separators = []string{"\n\n", "\n", " ", ""}

// Splitter cuts document text into overlapping chunks for embedding.
type Splitter struct {
	chunkSize int
	overlap   int
}

// NewSplitter builds a splitter. Non-positive arguments fall back to the
// 1000/200 defaults.
func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 200
		if overlap >= chunkSize {
			overlap = chunkSize / 5
		}
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

// Split cuts text into chunks of at most chunkSize characters, preferring to
// break on the coarsest separator that keeps pieces under the limit, with
// the configured overlap carried between consecutive chunks.
func (sp *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= sp.chunkSize {
		return []string{text}
	}

	pieces := sp.splitBy(text, 0)

	// Merge pieces back into chunks near the size limit.
	var chunks []string
	var current strings.Builder
	for _, piece := range pieces {
		if current.Len() > 0 && current.Len()+len(piece) > sp.chunkSize {
			chunk := strings.TrimSpace(current.String())
			if chunk != "" {
				chunks = append(chunks, chunk)
			}
			tail := overlapTail(current.String(), sp.overlap)
			current.Reset()
			current.WriteString(tail)
		}
		current.WriteString(piece)
	}
	if chunk := strings.TrimSpace(current.String()); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// splitBy recursively splits text on separators[level] until every piece
// fits in chunkSize.
func (sp *Splitter) splitBy(text string, level int) []string {
	if len(text) <= sp.chunkSize || level >= len(separators) {
		return []string{text}
	}

	sep := separators[level]
	if sep == "" {
		// Character-level fallback for pathological unbroken runs.
		var out []string
		for len(text) > sp.chunkSize {
			out = append(out, text[:sp.chunkSize])
			text = text[sp.chunkSize:]
		}
		if text != "" {
			out = append(out, text)
		}
		return out
	}

	parts := strings.SplitAfter(text, sep)
	var out []string
	for _, part := range parts {
		if len(part) > sp.chunkSize {
			out = append(out, sp.splitBy(part, level+1)...)
			continue
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// overlapTail returns the last n characters of s, extended left to the
// nearest space so overlaps do not start mid-word.
func overlapTail(s string, n int) string {
	if n <= 0 || len(s) <= n {
		if n <= 0 {
			return ""
		}
		return s
	}
	tail := s[len(s)-n:]
	if idx := strings.IndexByte(tail, ' '); idx > 0 && idx < len(tail)-1 {
		tail = tail[idx+1:]
	}
	return tail
}
