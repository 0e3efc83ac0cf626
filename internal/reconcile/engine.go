package reconcile

import (
	"fmt"

	"github.com/shinji-kodama/dotenv-prompt/internal/envfile"
	"github.com/shinji-kodama/dotenv-prompt/internal/model"
	"github.com/shinji-kodama/dotenv-prompt/internal/source"
)

// Baseline is the text used to compute defaults and to decide which
// answers are unchanged. The same text is the patch target, and when it
// came from the sample it is also what gets copied on a no-change run.
type Baseline struct {
	// Text is the raw baseline text, byte-for-byte as read.
	Text string

	// FromSample is true when the .env text was empty (missing or zero
	// bytes) and the sample text was used instead.
	FromSample bool

	// Env is Text parsed into an ordered map.
	Env *model.EnvMap
}

// SelectBaseline picks the .env text when it has content and falls back to
// the sample otherwise. A zero-byte .env file is treated like a missing one.
func SelectBaseline(src *source.Sources) Baseline {
	b := Baseline{Text: src.Primary}
	if b.Text == "" {
		b.Text = src.Sample
		b.FromSample = true
	}
	b.Env = envfile.Parse(b.Text)
	return b
}

// ResolveNames returns the names to prompt for. A non-empty names list is
// used exactly as given; otherwise every baseline key in parse order.
// ErrNothingToPrompt is returned when both are empty, and ErrInvalidName
// when a given name could not be written back as a key.
func ResolveNames(names []string, env *model.EnvMap) ([]string, error) {
	for _, name := range names {
		if !envfile.ValidKey(name) {
			return nil, fmt.Errorf("%w: %q (use letters, digits, \"_\" and \".\")", model.ErrInvalidName, name)
		}
	}
	if len(names) == 0 {
		names = env.Keys()
	}
	if len(names) == 0 {
		return nil, model.ErrNothingToPrompt
	}
	return names, nil
}

// BuildQuestions creates one question per name. The default is the
// baseline value when the key is present and "" otherwise, so a key set to
// an empty value and a missing key look the same to the user.
func BuildQuestions(names []string, env *model.EnvMap) []model.Question {
	questions := make([]model.Question, 0, len(names))
	for _, name := range names {
		def, _ := env.Get(name)
		questions = append(questions, model.NewQuestion(name, def))
	}
	return questions
}

// Diff returns the answers that change the baseline, in names order.
//
// An answer is dropped only when the key is present in the baseline with
// exactly the same value. A key missing from the baseline is always a
// change, even when the answer is empty. Names without an answer are
// skipped.
func Diff(names []string, env *model.EnvMap, answers model.AnswerSet) model.ChangeSet {
	var changes model.ChangeSet
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		answer, answered := answers[name]
		if !answered {
			continue
		}
		if current, present := env.Get(name); present && current == answer {
			continue
		}
		changes = append(changes, model.Change{Name: name, Value: answer})
	}
	return changes
}
