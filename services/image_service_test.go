package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/alessandrolsdev/clutch/models"
	"github.com/alessandrolsdev/clutch/testhelpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// fakeOCR returns canned text without touching tesseract.
type fakeOCR struct {
	text string
	err  error
}

func (f *fakeOCR) Recognize(image []byte) (string, error) {
	return f.text, f.err
}

func newImageApp(db *gorm.DB, ocr *fakeOCR) *fiber.App {
	app := fiber.New()
	svc := NewImageService(db, ocr)
	app.Post("/posts/upload-achievement-image", svc.UploadAchievementImage)
	return app
}

func imageUpload(t *testing.T, userID, gameTitle, contentType string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="shot.png"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	part.Write([]byte("fake-image-bytes"))

	writer.WriteField("userId", userID)
	if gameTitle != "" {
		writer.WriteField("gameTitle", gameTitle)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/posts/upload-achievement-image", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadAchievementImageFullCompletion(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "hunter", "hunter@clutch.gg", 0)
	ocr := &fakeOCR{text: "ELDEN RING\nAchievement Unlocked\n100% completo"}
	app := newImageApp(db, ocr)

	resp := doRequest(t, app, imageUpload(t, user.ID, "", "image/png"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status = %d, want 200", resp.StatusCode)
	}

	var result struct {
		OcrText                string   `json:"ocrText"`
		RecognizedGame         string   `json:"recognizedGame"`
		RecognizedAchievements []string `json:"recognizedAchievements"`
		RecognizedPercentage   int      `json:"recognizedPercentage"`
		PostID                 string   `json:"postId"`
	}
	decodeBody(t, resp, &result)
	if result.RecognizedGame != "ELDEN RING" {
		t.Errorf("recognizedGame = %q, want ELDEN RING", result.RecognizedGame)
	}
	if result.RecognizedPercentage != 100 {
		t.Errorf("recognizedPercentage = %d, want 100 (deterministic)", result.RecognizedPercentage)
	}
	if len(result.RecognizedAchievements) != 1 || result.RecognizedAchievements[0] != "Conquista 100% detectada!" {
		t.Errorf("recognizedAchievements = %v", result.RecognizedAchievements)
	}

	var post models.Post
	if err := db.First(&post, "id = ?", result.PostID).Error; err != nil {
		t.Fatalf("post row missing: %v", err)
	}
	if post.Type != models.PostTypeImage {
		t.Errorf("post type = %q, want IMAGE", post.Type)
	}
	if post.ImageURL == nil || *post.ImageURL != "URL_TEMPORARIO_DA_IMAGEM" {
		t.Errorf("imageUrl = %v, want placeholder without object storage", post.ImageURL)
	}
	if !strings.Contains(post.ContentText, "ELDEN RING") || !strings.Contains(post.ContentText, "100%") {
		t.Errorf("post content = %q", post.ContentText)
	}
}

func TestUploadAchievementImageNormalizesAccents(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "hunter", "hunter@clutch.gg", 0)
	ocr := &fakeOCR{text: "CONQUISTA DESBLOQUEÁDA"}
	app := newImageApp(db, ocr)

	resp := doRequest(t, app, imageUpload(t, user.ID, "Stardew Valley", "image/jpeg"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status = %d, want 200", resp.StatusCode)
	}

	var result struct {
		RecognizedGame         string   `json:"recognizedGame"`
		RecognizedAchievements []string `json:"recognizedAchievements"`
	}
	decodeBody(t, resp, &result)
	if len(result.RecognizedAchievements) != 1 {
		t.Fatalf("accented phrase not matched: %v", result.RecognizedAchievements)
	}
	if result.RecognizedGame != "Stardew Valley" {
		t.Errorf("recognizedGame = %q, want client-provided title", result.RecognizedGame)
	}
}

func TestUploadAchievementImageUnknownGameFallback(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "hunter", "hunter@clutch.gg", 0)
	ocr := &fakeOCR{text: "nothing recognizable here"}
	app := newImageApp(db, ocr)

	resp := doRequest(t, app, imageUpload(t, user.ID, "", "image/png"))
	var result struct {
		RecognizedGame       string `json:"recognizedGame"`
		RecognizedPercentage int    `json:"recognizedPercentage"`
	}
	decodeBody(t, resp, &result)
	if result.RecognizedGame != "Jogo Desconhecido" {
		t.Errorf("recognizedGame = %q, want fallback", result.RecognizedGame)
	}
	if result.RecognizedPercentage != 0 {
		t.Errorf("recognizedPercentage = %d, want 0 with no signals", result.RecognizedPercentage)
	}
}

func TestUploadAchievementImageRejectsNonImage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "hunter", "hunter@clutch.gg", 0)
	app := newImageApp(db, &fakeOCR{text: "ignored"})

	resp := doRequest(t, app, imageUpload(t, user.ID, "", "application/pdf"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("non-image status = %d, want 400", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Post{}).Count(&count)
	if count != 0 {
		t.Errorf("post rows = %d, want 0 after rejection", count)
	}
}

func TestClassifyOCRTextPrecedence(t *testing.T) {
	// 100% wins over the generic phrase path even when both match.
	findings := classifyOCRText("achievement unlocked 100% done", "")
	if findings.Percentage != 100 {
		t.Errorf("percentage = %d, want 100", findings.Percentage)
	}
	if len(findings.Achievements) != 1 || findings.Achievements[0] != "Conquista 100% detectada!" {
		t.Errorf("achievements = %v", findings.Achievements)
	}

	findings = classifyOCRText("jogando cyberpunk agora", "")
	if findings.GameTitle != "CYBERPUNK" {
		t.Errorf("gameTitle = %q, want CYBERPUNK", findings.GameTitle)
	}
}
