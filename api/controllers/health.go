package controllers

import (
	"net/http"

	"github.com/angelmondragon/pizzaria-backend/api/responses"
	"github.com/angelmondragon/pizzaria-backend/pkg/config"
	"github.com/angelmondragon/pizzaria-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/pizzaria-backend/pkg/errors"
	"github.com/angelmondragon/pizzaria-backend/pkg/logger"
	"github.com/angelmondragon/pizzaria-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Pizzaria-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness of the backing stores. Redis is optional
// infrastructure, so a missing or unreachable client degrades the report
// instead of failing it.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Pizzaria-Env", cfg.App.Env)

		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				if logg != nil {
					logg.Error(r.Context(), "health.db.unreachable", err)
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}

		cacheStatus := "skipped"
		if cache != nil {
			cacheStatus = "ok"
			if err := cache.Ping(r.Context()); err != nil {
				if logg != nil {
					logg.Warn(r.Context(), "health.redis.unreachable")
				}
				cacheStatus = "degraded"
			}
		}

		responses.WriteSuccess(w, map[string]string{
			"status": "ready",
			"db":     "ok",
			"redis":  cacheStatus,
		})
	}
}
