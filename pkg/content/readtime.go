package content

import "strings"

const wordsPerMinute = 200

// ReadingTime converts a word count to minutes, never less than one
func ReadingTime(words int) int {
	return max(1, words/wordsPerMinute)
}

// ReadingTimeFromText counts whitespace-separated words in text
func ReadingTimeFromText(text string) int {
	return ReadingTime(len(strings.Fields(text)))
}
