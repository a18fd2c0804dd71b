// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"errors"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/deskkit/internal/scan"
)

// ErrNotYesNo reports an answer that is not a yes/no variant.
var ErrNotYesNo = errors.New("please enter 'yes' or 'no'")

// AskUntil asks label until parse accepts the answer, warning with the
// parse error after each rejection. There is no retry limit; only an error
// from the Prompter itself ends the loop early.
func AskUntil[T any](p Prompter, label string, parse func(string) (T, error)) (T, error) {
	for {
		answer, err := p.Ask(label)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(answer)
		if err != nil {
			p.Warn("Error: " + err.Error())
			continue
		}
		return v, nil
	}
}

// AskDirectory asks for a path until it names an existing directory on fsys.
// Surrounding whitespace is trimmed.
func AskDirectory(p Prompter, fsys afero.Fs, label string) (string, error) {
	return AskUntil(p, label, func(answer string) (string, error) {
		dir := strings.TrimSpace(answer)
		if err := scan.ValidateDir(fsys, dir); err != nil {
			return "", err
		}
		return dir, nil
	})
}

// ParseYesNo accepts yes, y, no and n in any case.
func ParseYesNo(answer string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return false, ErrNotYesNo
}

// AskYesNo asks label until the answer is a yes/no variant.
func AskYesNo(p Prompter, label string) (bool, error) {
	return AskUntil(p, label, ParseYesNo)
}
