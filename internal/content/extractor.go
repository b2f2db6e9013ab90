// Package content normalizes heterogeneous course assets into a single text
// blob suitable for quiz generation. Extraction never fails for an
// individual asset; an asset that yields no text is dropped with a warning.
package content

import (
	"fmt"
	"log"
	"strings"
	"unicode"

	"quizgen-service/internal/models"
)

// banner separates asset blocks in the combined output.
var banner = strings.Repeat("=", 50)

type extractFunc func(a *models.Asset) string

// extractors is keyed by lowercase asset type. Adding a new asset type means
// adding one entry here plus its extraction function.
var extractors = map[string]extractFunc{
	"text":  extractText,
	"video": extractVideo,
	"pdf":   extractPDF,
	"audio": extractAudio,
	"image": extractImage,
}

// Extract concatenates the per-asset blocks of all assets that produce
// content. Returns "" when nothing could be extracted.
func Extract(assets []models.Asset) string {
	var blocks []string
	for i := range assets {
		a := &assets[i]
		block := ExtractAsset(a)
		if block == "" {
			log.Printf("no content found for asset %q (type %s)", a.Title, a.Type)
			continue
		}
		header := fmt.Sprintf("Asset (%s): %s", strings.ToUpper(assetType(a)), a.Title)
		blocks = append(blocks, header+"\n"+block)
	}
	if len(blocks) == 0 {
		log.Printf("no content extracted from any assets")
		return ""
	}
	sep := "\n\n" + banner + "\n\n"
	return strings.Join(blocks, sep)
}

// ExtractAsset derives the text block for a single asset using the
// type-keyed extraction rule, then appends the shared description and
// difficulty lines. Returns "" if the final block is empty or whitespace.
func ExtractAsset(a *models.Asset) string {
	typ := assetType(a)
	fn, ok := extractors[typ]
	if !ok {
		fn = extractDefault
	}
	text := fn(a)

	// Description is already primary content for images; everywhere else it
	// is appended as extra context when distinct.
	if typ != "image" && a.Description != "" && text != a.Description {
		text += "\nDescription: " + a.Description
	}
	if a.Metadata.Difficulty != "" {
		text += "\nDifficulty: " + a.Metadata.Difficulty
	}
	return strings.TrimSpace(text)
}

func assetType(a *models.Asset) string {
	typ := strings.ToLower(a.Type)
	if typ == "" {
		typ = "text"
	}
	return typ
}

func extractText(a *models.Asset) string {
	return a.Content
}

func extractVideo(a *models.Asset) string {
	text := firstNonEmpty(a.Transcript, a.Description, a.Content)
	if text == "" {
		text = "Video content: " + a.Title
	}
	return text + durationSuffix(a)
}

func extractPDF(a *models.Asset) string {
	text := firstNonEmpty(a.ExtractedText, a.Summary, a.Content)
	if text == "" {
		text = "PDF document: " + a.Title
	}
	return text
}

func extractAudio(a *models.Asset) string {
	text := firstNonEmpty(a.Transcript, a.Description, a.Content)
	if text == "" {
		text = "Audio content: " + a.Title
	}
	return text + durationSuffix(a)
}

func extractImage(a *models.Asset) string {
	text := firstNonEmpty(a.Description, a.AltText, a.Content)
	if text == "" {
		text = "Image: " + a.Title
	}
	return text
}

func extractDefault(a *models.Asset) string {
	if a.Content != "" {
		return a.Content
	}
	return titleCase(assetType(a)) + ": " + a.Title
}

func durationSuffix(a *models.Asset) string {
	if a.DurationSeconds <= 0 {
		return ""
	}
	return fmt.Sprintf(" (Duration: %d minutes)", a.DurationSeconds/60)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
