package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when neither extraction strategy recovers any text.
var ErrNoText = errors.New("no text extracted from pdf")

// Text pulls plain text from a PDF payload. Two independent strategies are
// tried in order: the document-level plain-text reader first, then page-by-page
// row extraction when the first yields nothing. Output is normalized with
// CleanText.
func Text(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty pdf data")
	}

	text, primaryErr := extractPlainText(data)
	if strings.TrimSpace(text) == "" {
		var pageErr error
		text, pageErr = extractByPages(data)
		if strings.TrimSpace(text) == "" {
			if primaryErr != nil {
				return "", fmt.Errorf("extract pdf text: %w", primaryErr)
			}
			if pageErr != nil {
				return "", fmt.Errorf("extract pdf text: %w", pageErr)
			}
			return "", ErrNoText
		}
	}

	return CleanText(text), nil
}

func extractPlainText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractByPages(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				buf.WriteString(word.S)
				buf.WriteString(" ")
			}
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}

// CleanText trims each line and drops blank lines.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, "\n")
}
