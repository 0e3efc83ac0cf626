package reconcile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/dotenv-prompt/internal/envfile"
	"github.com/shinji-kodama/dotenv-prompt/internal/model"
)

// Action describes what a run did (or would do) to the .env file.
type Action string

const (
	// ActionPatched means changed values were patched into the baseline
	// text and the result written to the .env path.
	ActionPatched Action = "patched"

	// ActionCopiedSample means every default from the sample was accepted
	// and the sample was written verbatim to the .env path.
	ActionCopiedSample Action = "copied-sample"

	// ActionUnchanged means nothing needed writing.
	ActionUnchanged Action = "unchanged"
)

// String returns the string representation of Action.
func (a Action) String() string {
	return string(a)
}

// WritePlan is the fully computed outcome of a run, before any I/O.
type WritePlan struct {
	Action  Action
	Content string
}

// Writes reports whether applying the plan touches the filesystem.
func (p WritePlan) Writes() bool {
	return p.Action != ActionUnchanged
}

// Plan decides what to write.
//
//   - changes present: patch the baseline text. When the baseline came from
//     the sample, the sample is the starting point of the new .env file.
//   - no changes, baseline from a non-empty sample: copy the sample as-is.
//   - otherwise: nothing to write.
func Plan(baseline Baseline, changes model.ChangeSet) WritePlan {
	switch {
	case !changes.Empty():
		return WritePlan{Action: ActionPatched, Content: envfile.Patch(baseline.Text, changes)}
	case baseline.FromSample && baseline.Text != "":
		return WritePlan{Action: ActionCopiedSample, Content: baseline.Text}
	default:
		return WritePlan{Action: ActionUnchanged}
	}
}

// newFileMode is used when the .env file does not exist yet. .env files
// usually hold credentials, so only the owner may read them.
const newFileMode fs.FileMode = 0o600

// Apply writes the plan to path. Missing parent directories are created.
// An existing file keeps its permission bits.
func Apply(path string, plan WritePlan) error {
	if !plan.Writes() {
		return nil
	}

	mode := newFileMode
	info, err := os.Stat(path)
	switch {
	case err == nil:
		mode = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(plan.Content), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
