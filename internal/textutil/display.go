package textutil

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleCaser    = cases.Title(language.Und, cases.NoLower)
	labelReplacer = strings.NewReplacer("_", " ", "-", " ")
)

// DisplayName derives a human label from a media file name: the extension is
// dropped, underscores and dashes become spaces, and each word is title-cased.
// Names that reduce to nothing fall back to the original input.
func DisplayName(fileName string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	label := strings.Join(strings.Fields(labelReplacer.Replace(stem)), " ")
	if label == "" {
		return fileName
	}
	return titleCaser.String(label)
}
