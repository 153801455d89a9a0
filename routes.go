package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reco-review/config"
	"reco-review/services"
)

const choiceFieldPrefix = "correct_"

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

func newRouter(cfg *config.Config, session *services.ReviewSession, log *zap.Logger) *gin.Engine {
	router := gin.Default()
	router.SetHTMLTemplate(pageTemplates)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	setupReviewRoutes(router, session, log)
	setupAPIRoutes(router, cfg, session, log)
	return router
}

// parseChoices liest die Checkbox-Felder correct_<rank>. Nicht angehakte Boxen fehlen im Formular.
func parseChoices(form url.Values) (map[int]bool, error) {
	choices := make(map[int]bool)
	for field, values := range form {
		if !strings.HasPrefix(field, choiceFieldPrefix) {
			continue
		}
		rank, err := strconv.Atoi(strings.TrimPrefix(field, choiceFieldPrefix))
		if err != nil {
			return nil, err
		}
		checked := false
		for _, v := range values {
			if v == "on" {
				checked = true
				continue
			}
			if b, err := strconv.ParseBool(v); err == nil && b {
				checked = true
			}
		}
		choices[rank] = checked
	}
	return choices, nil
}

func renderError(c *gin.Context, status int, title string, err error) {
	c.HTML(status, "error.html", gin.H{"Title": title, "Message": err.Error()})
}

func commitStatus(err error) int {
	if errors.Is(err, services.ErrBookNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func setupReviewRoutes(router *gin.Engine, session *services.ReviewSession, log *zap.Logger) {
	router.GET("/", func(c *gin.Context) {
		view, err := session.Current()
		if err != nil {
			log.Error("Failed to build review page", zap.Int("index", session.Index()), zap.Error(err))
			renderError(c, http.StatusInternalServerError, "Data error", err)
			return
		}
		c.HTML(http.StatusOK, "review.html", gin.H{
			"Book":  view,
			"Saved": c.Query("saved") == "1",
		})
	})

	router.POST("/prev", func(c *gin.Context) {
		session.Advance(-1)
		navigationCounter.WithLabelValues("prev").Inc()
		c.Redirect(http.StatusSeeOther, "/")
	})

	router.POST("/next", func(c *gin.Context) {
		session.Advance(1)
		navigationCounter.WithLabelValues("next").Inc()
		c.Redirect(http.StatusSeeOther, "/")
	})

	router.POST("/save", func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			renderError(c, http.StatusBadRequest, "Invalid form", err)
			return
		}
		bookID, err := strconv.Atoi(c.PostForm("book_id"))
		if err != nil {
			renderError(c, http.StatusBadRequest, "Invalid form", errors.New("book_id is missing or not a number"))
			return
		}
		choices, err := parseChoices(c.Request.PostForm)
		if err != nil {
			renderError(c, http.StatusBadRequest, "Invalid form", err)
			return
		}

		if err := session.Commit(c.Request.Context(), bookID, choices); err != nil {
			saveFailureCounter.Inc()
			renderError(c, commitStatus(err), "Saving failed", err)
			return
		}
		recordSave(session)
		c.Redirect(http.StatusSeeOther, "/?saved=1")
	})
}

func setupAPIRoutes(router *gin.Engine, cfg *config.Config, session *services.ReviewSession, log *zap.Logger) {
	rg := router.Group("/api")
	rg.Use(apiKeyAuthMiddleware(cfg))

	rg.GET("/books/current", func(c *gin.Context) {
		view, err := session.Current()
		if err != nil {
			log.Error("Failed to build current book view", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, view)
	})

	rg.POST("/navigate", func(c *gin.Context) {
		var req struct {
			Delta int `json:"delta"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		index := session.Advance(req.Delta)
		navigationCounter.WithLabelValues("api").Inc()
		c.JSON(http.StatusOK, gin.H{"index": index})
	})

	rg.POST("/books/:id/annotations", func(c *gin.Context) {
		bookID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
			return
		}
		var req struct {
			Choices map[int]bool `json:"choices"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if err := session.Commit(c.Request.Context(), bookID, req.Choices); err != nil {
			saveFailureCounter.Inc()
			c.JSON(commitStatus(err), gin.H{"error": err.Error()})
			return
		}
		recordSave(session)
		c.JSON(http.StatusOK, gin.H{"message": "Changes saved successfully!"})
	})
}
