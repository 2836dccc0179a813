package handler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/humoyunmirzo-code/tgbot/internal/catalog"
	"github.com/humoyunmirzo-code/tgbot/internal/domain"
	"github.com/humoyunmirzo-code/tgbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const requestTimeout = 30 * time.Second

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	intake      *service.IntakeService
	userService *service.UserService
	catalog     *catalog.Catalog
	imagesDir   string
	logger      *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	intake *service.IntakeService,
	userService *service.UserService,
	cat *catalog.Catalog,
	imagesDir string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:         bot,
		intake:      intake,
		userService: userService,
		catalog:     cat,
		imagesDir:   imagesDir,
		logger:      logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Language keyboard
	h.bot.Handle(&btnLangRU, h.handleLanguage)
	h.bot.Handle(&btnLangUZ, h.handleLanguage)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnAgree, h.handleAgree)
	h.bot.Handle(&btnProductsBack, h.handleProductsBack)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// language returns the language for userID, preferring the active session's
func (h *Handler) language(ctx context.Context, userID int64, session *domain.Session) domain.Language {
	if session != nil && session.Language.Valid() {
		return session.Language
	}
	lang, err := h.userService.Language(ctx, userID)
	if err != nil {
		h.logger.Warn("Failed to load user language, using default",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
	return lang
}

// fail logs err and tells the user to try again later
func (h *Handler) fail(c tele.Context, lang domain.Language, msg string, err error) error {
	h.logger.Error(msg, zap.Int64("user_id", c.Sender().ID), zap.Error(err))
	return c.Send(textsFor(lang).TryLater)
}

// sendPhoto sends the image name from the images dir, or just the caption when it is missing
func (h *Handler) sendPhoto(c tele.Context, name, caption string, markup *tele.ReplyMarkup) error {
	path := filepath.Join(h.imagesDir, name)
	if _, err := os.Stat(path); err == nil {
		photo := &tele.Photo{File: tele.FromDisk(path), Caption: caption}
		err := c.Send(photo, markup)
		if err == nil {
			return nil
		}
		h.logger.Warn("Failed to send photo, falling back to text",
			zap.String("image", name),
			zap.Error(err),
		)
	}
	return c.Send(caption, markup)
}

// requesterFrom describes the Telegram user for staff
func requesterFrom(u *tele.User) domain.Requester {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return domain.Requester{
		ID:          u.ID,
		DisplayName: name,
		Handle:      u.Username,
	}
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}
