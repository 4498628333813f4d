package utils

import (
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// OCREngine extracts text from an image. The Tesseract binding is the
// production implementation; tests swap in a canned fake.
type OCREngine interface {
	Recognize(image []byte) (string, error)
}

// TesseractEngine runs OCR with the given "+"-separated language pack
// list (e.g., "eng+por").
type TesseractEngine struct {
	Languages string
}

func NewTesseractEngine(languages string) *TesseractEngine {
	if languages == "" {
		languages = "eng+por"
	}
	return &TesseractEngine{Languages: languages}
}

func (e *TesseractEngine) Recognize(image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Split(e.Languages, "+")...); err != nil {
		return "", err
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", err
	}
	return client.Text()
}
