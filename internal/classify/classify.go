// Package classify implements the heuristic message classifier: URL and
// numeric token extraction plus an ordered rule cascade that assigns one
// coarse discourse-role label per message.
package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Label is the discourse role assigned to a single message. Every message
// gets exactly one label.
type Label string

const (
	LabelShare     Label = "S"  // information share: contains a URL or a number
	LabelQuestion  Label = "Q"  // question
	LabelAgreement Label = "AG" // response / agreement
	LabelEmotion   Label = "EM" // emotional expression
	LabelShortChat Label = "CH" // short chat / small talk
	LabelTopic     Label = "TP" // topic raising; provisional fallback, known to be unreliable
)

var (
	urlRegex    = regexp.MustCompile(`https?://\S+`)
	numberRegex = regexp.MustCompile(`[-+]?\d+[.,]?\d*`)
)

// Default trigger sets for the agreement and emotion rules. Callers normally
// take these from configuration so tests can substitute fixtures.
var (
	DefaultAgreementWords = []string{"賛成", "同意", "了解", "たしかに", "わかる", "いいね"}
	DefaultEmotionWords   = []string{"嬉しい", "悲しい", "怒", "楽しい", "最高", "最悪", "草", "笑"}
)

// DefaultShortChatMaxRunes is the rune-count ceiling below which a non-empty
// message that matched no earlier rule counts as short chat.
const DefaultShortChatMaxRunes = 20

// Entities holds the URLs and numeric tokens found in a message, in order of
// appearance. Numbers keep their original textual form, sign and decimal
// separator included.
type Entities struct {
	URLs    []string
	Numbers []string
}

// Extract pulls URLs and numeric tokens out of free text. Empty text yields
// two empty (non-nil) slices. Extract never fails.
func Extract(text string) Entities {
	ents := Entities{
		URLs:    urlRegex.FindAllString(text, -1),
		Numbers: numberRegex.FindAllString(text, -1),
	}
	if ents.URLs == nil {
		ents.URLs = []string{}
	}
	if ents.Numbers == nil {
		ents.Numbers = []string{}
	}
	return ents
}

// Classifier assigns labels with a fixed rule cascade, evaluated top to
// bottom, first match wins. The cascade order is the tie-break policy: a
// message containing both a URL and a question mark is labeled S, not Q.
type Classifier struct {
	agreementWords []string
	emotionWords   []string
	shortChatMax   int
}

// New creates a Classifier with the given trigger sets. Empty slices and a
// non-positive rune ceiling fall back to the package defaults.
func New(agreementWords, emotionWords []string, shortChatMaxRunes int) *Classifier {
	if len(agreementWords) == 0 {
		agreementWords = DefaultAgreementWords
	}
	if len(emotionWords) == 0 {
		emotionWords = DefaultEmotionWords
	}
	if shortChatMaxRunes <= 0 {
		shortChatMaxRunes = DefaultShortChatMaxRunes
	}
	return &Classifier{
		agreementWords: agreementWords,
		emotionWords:   emotionWords,
		shortChatMax:   shortChatMaxRunes,
	}
}

// Label classifies text. It never fails and always returns one of the six
// labels; LabelTopic is the fallback when nothing else matched.
func (c *Classifier) Label(text string) Label {
	switch {
	case urlRegex.MatchString(text) || numberRegex.MatchString(text):
		return LabelShare
	case strings.ContainsAny(text, "？?") || strings.HasSuffix(strings.TrimSpace(text), "か"):
		return LabelQuestion
	case containsAny(text, c.agreementWords):
		return LabelAgreement
	case containsAny(text, c.emotionWords):
		return LabelEmotion
	}
	// Rune count, not bytes: the threshold is in characters.
	if n := utf8.RuneCountInString(text); n > 0 && n < c.shortChatMax {
		return LabelShortChat
	}
	return LabelTopic
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}
	return false
}
