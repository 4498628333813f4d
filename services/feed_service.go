package services

import (
	"errors"
	"time"

	"github.com/alessandrolsdev/clutch/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const feedPageSize = 20

type FeedService struct {
	DB *gorm.DB
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{DB: db}
}

// postAuthor is the display slice of the author joined onto feed items.
type postAuthor struct {
	Username string `json:"username"`
	Profile  struct {
		DisplayName string `json:"displayName"`
		AvatarURL   string `json:"avatarUrl"`
	} `json:"profile"`
}

func authorView(u *models.User) postAuthor {
	var a postAuthor
	if u == nil {
		return a
	}
	a.Username = u.Username
	if u.Profile != nil {
		a.Profile.DisplayName = u.Profile.DisplayName
		a.Profile.AvatarURL = u.Profile.AvatarURL
	}
	return a
}

// CreatePost persists a direct user post and grants 10 XP in the same
// transaction.
// POST /posts
func (s *FeedService) CreatePost(c *fiber.Ctx) error {
	var input struct {
		UserID  string `json:"userId"`
		Content string `json:"content"`
		Type    string `json:"type"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Corpo da requisição inválido."})
	}
	if input.Type == "" {
		input.Type = models.PostTypeText
	}
	if _, err := uuid.Parse(input.UserID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "userId inválido."})
	}
	if len(input.Content) < 1 || len(input.Content) > 280 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Conteúdo deve ter entre 1 e 280 caracteres."})
	}
	if input.Type != models.PostTypeText && input.Type != models.PostTypeImage && input.Type != models.PostTypeVideo {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Tipo de post inválido."})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Usuário inválido."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno."})
	}

	post := &models.Post{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		ContentText: input.Content,
		Type:        input.Type,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return GrantXP(tx, input.UserID, ActionPostCreated, XPPostCreated)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno ao criar post."})
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListPosts returns the 20 newest posts with author display fields,
// reaction count and the reacting userIds (so the client can tell
// "did I react" without a second call).
// GET /posts
func (s *FeedService) ListPosts(c *fiber.Ctx) error {
	var posts []models.Post
	err := s.DB.Preload("User.Profile").Preload("Interactions").
		Order("created_at DESC").
		Limit(feedPageSize).
		Find(&posts).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao buscar posts."})
	}

	type reactor struct {
		UserID string `json:"userId"`
	}
	type feedItem struct {
		ID          string     `json:"id"`
		UserID      string     `json:"userId"`
		ContentText string     `json:"contentText"`
		Type        string     `json:"type"`
		ImageURL    *string    `json:"imageUrl,omitempty"`
		CreatedAt   time.Time  `json:"createdAt"`
		User        postAuthor `json:"user"`
		Respects    int        `json:"respectCount"`
		Reactors    []reactor  `json:"interactions"`
	}

	items := make([]feedItem, 0, len(posts))
	for _, p := range posts {
		reactors := make([]reactor, 0, len(p.Interactions))
		for _, it := range p.Interactions {
			reactors = append(reactors, reactor{UserID: it.UserID})
		}
		items = append(items, feedItem{
			ID:          p.ID,
			UserID:      p.UserID,
			ContentText: p.ContentText,
			Type:        p.Type,
			ImageURL:    p.ImageURL,
			CreatedAt:   p.CreatedAt,
			User:        authorView(p.User),
			Respects:    len(reactors),
			Reactors:    reactors,
		})
	}

	return c.JSON(items)
}

// ToggleRespect flips the GG reaction for (user, post): present rows
// are deleted, absent rows created. Idempotent round trip.
// POST /posts/:id/respect
func (s *FeedService) ToggleRespect(c *fiber.Ctx) error {
	postID := c.Params("id")

	var input struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Corpo da requisição inválido."})
	}
	if _, err := uuid.Parse(input.UserID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "userId inválido."})
	}

	var existing models.Interaction
	err := s.DB.Where("user_id = ? AND post_id = ? AND type = ?", input.UserID, postID, models.InteractionGG).
		First(&existing).Error
	if err == nil {
		if err := s.DB.Delete(&existing).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno."})
		}
		return c.JSON(fiber.Map{"status": "removed"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno."})
	}

	interaction := &models.Interaction{
		ID:     uuid.NewString(),
		UserID: input.UserID,
		PostID: postID,
		Type:   models.InteractionGG,
	}
	if err := s.DB.Create(interaction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno."})
	}
	return c.JSON(fiber.Map{"status": "added"})
}

// CreateComment persists a comment and returns it joined with the
// author display fields so the client can render it right away.
// POST /posts/:id/comments
func (s *FeedService) CreateComment(c *fiber.Ctx) error {
	postID := c.Params("id")

	var input struct {
		UserID  string `json:"userId"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Corpo da requisição inválido."})
	}
	if _, err := uuid.Parse(input.UserID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "userId inválido."})
	}
	if len(input.Content) < 1 || len(input.Content) > 500 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Comentário deve ter entre 1 e 500 caracteres."})
	}

	comment := &models.Comment{
		ID:      uuid.NewString(),
		PostID:  postID,
		UserID:  input.UserID,
		Content: input.Content,
	}
	if err := s.DB.Create(comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno ao comentar."})
	}

	if err := s.DB.Preload("User.Profile").First(comment, "id = ?", comment.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno."})
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ListComments returns a post's comments oldest-first.
// GET /posts/:id/comments
func (s *FeedService) ListComments(c *fiber.Ctx) error {
	postID := c.Params("id")

	var comments []models.Comment
	err := s.DB.Preload("User.Profile").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao buscar comentários."})
	}
	return c.JSON(comments)
}
