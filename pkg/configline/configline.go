// Package configline provides append-if-absent semantics against host
// configuration files. It backs the idempotent repository enablement in
// /etc/pacman.conf and the kwin/sysctl tweak lines.
package configline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/logging"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/types"
)

// Writer implements types.LineWriter against the real filesystem.
type Writer struct {
	logger zerolog.Logger
	dryRun bool
}

// NewWriter creates a line writer. With dryRun set, files are read but
// never modified; would-be appends still report LineAppended.
func NewWriter(dryRun bool) *Writer {
	return &Writer{
		logger: logging.GetLogger("configline"),
		dryRun: dryRun,
	}
}

// EnsureLinePresent appends line to the file at path unless an identical
// line (modulo surrounding whitespace) already exists. Calling it twice
// with the same arguments yields LineAlreadyPresent the second time and the
// file gains no duplicate.
func (w *Writer) EnsureLinePresent(path, line string) (types.LineOutcome, error) {
	content, err := readIfExists(path)
	if err != nil {
		return "", err
	}

	if containsLine(content, line) {
		w.logger.Debug().Str("path", path).Str("line", line).Msg("Line already present")
		return types.LineAlreadyPresent, nil
	}

	if err := w.appendBlock(path, content, line+"\n"); err != nil {
		return "", err
	}

	w.logger.Info().Str("path", path).Str("line", line).Msg("Line appended")
	return types.LineAppended, nil
}

// EnsureSection appends a `[header]` block followed by lines unless the
// header already exists anywhere in the file. Used for pacman.conf
// repository blocks, where the header is the idempotency key: an existing
// section is never rewritten.
func (w *Writer) EnsureSection(path, header string, lines []string) (types.LineOutcome, error) {
	content, err := readIfExists(path)
	if err != nil {
		return "", err
	}

	if containsLine(content, "["+header+"]") {
		w.logger.Debug().Str("path", path).Str("section", header).Msg("Section already present")
		return types.LineAlreadyPresent, nil
	}

	block := "[" + header + "]\n" + strings.Join(lines, "\n") + "\n"
	if err := w.appendBlock(path, content, block); err != nil {
		return "", err
	}

	w.logger.Info().Str("path", path).Str("section", header).Msg("Section appended")
	return types.LineAppended, nil
}

func (w *Writer) appendBlock(path, existing, block string) error {
	if w.dryRun {
		w.logger.Info().Str("path", path).Msg("Dry run - file not modified")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to create directory for %s", path)
	}

	out := existing
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	out += block

	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}

func readIfExists(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	return string(data), nil
}

func containsLine(content, line string) bool {
	want := strings.TrimSpace(line)
	for _, existing := range strings.Split(content, "\n") {
		if strings.TrimSpace(existing) == want {
			return true
		}
	}
	return false
}
