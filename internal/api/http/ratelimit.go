package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/internship-platform/internal/config"
	"github.com/spec-kit/internship-platform/internal/persistence"
	apperrors "github.com/spec-kit/internship-platform/pkg/util"
)

const msgRateLimited = "Trop de messages envoyés. Veuillez patienter."

// ContactRateLimiter bounds public submissions per client IP with a
// Redis fixed window. Redis being unreachable never blocks a submission.
func ContactRateLimiter(rdb *persistence.Redis, cfg config.RateLimitConfig, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil || rdb.Client == nil || cfg.MaxSubmissions <= 0 {
			return c.Next()
		}

		ctx := c.UserContext()
		key := "contact:ratelimit:" + c.IP()

		count, err := rdb.Client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			rdb.Client.Expire(ctx, key, cfg.Window())
		}
		if count > int64(cfg.MaxSubmissions) {
			return apperrors.NewDomainError("RATE_LIMITED", msgRateLimited, http.StatusTooManyRequests)
		}

		return c.Next()
	}
}
