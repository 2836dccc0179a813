package middleware

import (
	"context"
	"time"

	"github.com/humoyunmirzo-code/tgbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const tryLater = "Произошла ошибка. Попробуйте позже. / Xatolik yuz berdi. Keyinroq urinib ko‘ring."

// RequireSender drops updates that carry no user, such as channel posts
func RequireSender(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil {
				logger.Debug("Ignoring update without sender")
				return nil
			}
			return next(c)
		}
	}
}

// EnsureUser creates the user's record before any handler runs
func EnsureUser(userService *service.UserService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := userService.EnsureUserExists(ctx, userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
				if c.Callback() != nil {
					_ = c.Respond()
				}
				return c.Send(tryLater)
			}

			return next(c)
		}
	}
}
