package services

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/alessandrolsdev/clutch/models"
	"github.com/alessandrolsdev/clutch/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

const maxImageBytes = 5 * 1024 * 1024

// placeholderImageURL is stored when object storage is not configured.
const placeholderImageURL = "URL_TEMPORARIO_DA_IMAGEM"

const unknownGameTitle = "Jogo Desconhecido"

// Fixed vocabulary for the keyword matcher. This is a simulated MVP
// classifier, not real image recognition.
var achievementPhrases = []string{"achievement unlocked", "conquista desbloqueada"}
var gameTitleKeywords = []string{"elden ring", "cyberpunk", "fortnite", "valorant"}

type ImageService struct {
	DB  *gorm.DB
	OCR utils.OCREngine
}

func NewImageService(db *gorm.DB, ocr utils.OCREngine) *ImageService {
	return &ImageService{DB: db, OCR: ocr}
}

// normalizeOCRText lowercases and strips diacritics so keyword
// matching survives accent-mangled OCR output.
func normalizeOCRText(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, text)
	if err != nil {
		stripped = text
	}
	return strings.ToLower(stripped)
}

// ocrFindings is what the keyword matcher guessed from the raw text.
type ocrFindings struct {
	GameTitle    string
	Achievements []string
	Percentage   int
}

// classifyOCRText pattern-matches the extracted text against the fixed
// vocabulary: achievement phrases, the literal "100%" and the known
// game-title keywords.
func classifyOCRText(text, fallbackTitle string) ocrFindings {
	findings := ocrFindings{
		GameTitle:    fallbackTitle,
		Achievements: []string{},
	}
	if findings.GameTitle == "" {
		findings.GameTitle = unknownGameTitle
	}

	normalized := normalizeOCRText(text)

	hasPhrase := false
	for _, phrase := range achievementPhrases {
		if strings.Contains(normalized, phrase) {
			hasPhrase = true
			break
		}
	}

	switch {
	case strings.Contains(normalized, "100%"):
		findings.Percentage = 100
		findings.Achievements = append(findings.Achievements, "Conquista 100% detectada!")
	case hasPhrase:
		findings.Achievements = append(findings.Achievements, "Conquista detectada (detalhes genéricos)")
		findings.Percentage = rand.Intn(100)
	}

	for _, keyword := range gameTitleKeywords {
		if strings.Contains(normalized, keyword) {
			findings.GameTitle = strings.ToUpper(keyword)
			break
		}
	}

	return findings
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// UploadAchievementImage accepts an achievement screenshot, extracts
// text with OCR and stores the guess as an IMAGE post. The screenshot
// itself goes to R2 when configured, otherwise a placeholder URL is
// stored.
// POST /posts/upload-achievement-image
func (s *ImageService) UploadAchievementImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Nenhuma imagem enviada."})
	}
	if fileHeader.Size > maxImageBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Imagem muito grande (máx. 5MB)."})
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Apenas imagens são permitidas!"})
	}

	userID := c.FormValue("userId")
	if _, err := uuid.Parse(userID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "userId inválido."})
	}
	gameTitle := c.FormValue("gameTitle")

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao processar imagem."})
	}
	imageBytes, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao processar imagem."})
	}

	text, err := s.OCR.Recognize(imageBytes)
	if err != nil {
		log.Printf("❌ OCR failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao processar imagem."})
	}

	findings := classifyOCRText(text, gameTitle)

	imageURL := placeholderImageURL
	if utils.R2Enabled() {
		ext := filepath.Ext(fileHeader.Filename)
		if ext == "" {
			ext = ".png"
		}
		key := fmt.Sprintf("achievements/%s-%s%s", slug.Make(findings.GameTitle), uuid.NewString(), ext)
		if uploaded, upErr := utils.UploadBytesToR2(imageBytes, key, contentType); upErr == nil {
			imageURL = uploaded
		} else {
			log.Printf("⚠️  Screenshot upload failed, keeping placeholder: %v", upErr)
		}
	}

	post := &models.Post{
		ID:       uuid.NewString(),
		UserID:   userID,
		Type:     models.PostTypeImage,
		ImageURL: &imageURL,
		ContentText: fmt.Sprintf("IA detectou: %q - Progresso: %d%%\n\nTexto OCR bruto:\n%s...",
			findings.GameTitle, findings.Percentage, truncate(text, 500)),
	}
	if err := s.DB.Create(post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao processar imagem."})
	}

	return c.JSON(fiber.Map{
		"message":                "Imagem processada com sucesso!",
		"ocrText":                text,
		"recognizedGame":         findings.GameTitle,
		"recognizedAchievements": findings.Achievements,
		"recognizedPercentage":   findings.Percentage,
		"postId":                 post.ID,
	})
}
