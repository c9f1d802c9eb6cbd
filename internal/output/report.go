package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// nowFunc is overridden in tests for stable file names.
var nowFunc = time.Now

// GenerateReport formats the report with the named formatter and writes it to w.
func GenerateReport(w io.Writer, report *Report, format string) error {
	f, err := LookupFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return eris.Wrapf(err, "failed to format %s report", f.Name())
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "failed to write report")
	}
	return nil
}

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
// The prefix distinguishes projection and simulation reports.
func WriteFormatted(f Formatter, report *Report, dir, prefix string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", eris.Wrapf(err, "failed to format %s report", f.Name())
	}
	filename := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", prefix, nowFunc().Format("20060102_150405"), f.Extension()))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", eris.Wrapf(err, "failed to write %s", filename)
	}
	return filename, nil
}

// LookupFormatter resolves a format name or alias, failing with ErrUnsupportedFormat.
func LookupFormatter(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	return nil, eris.Wrapf(ErrUnsupportedFormat, "%q. Try one of: %s (aliases: %s)",
		format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
