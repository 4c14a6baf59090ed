package utils

import (
	"log"
	"time"

	"khanqah/database"
	contentModels "khanqah/models/content"

	"github.com/robfig/cron/v3"
)

func logScheduler(message string) {
	log.Printf("[PUBLISH-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// publishDueArticles flips SCHEDULED articles to PUBLISHED once their
// publish time has passed.
func publishDueArticles() {
	db := database.Database.Db
	now := time.Now()

	var due []contentModels.Article
	if err := db.Where("status = ? AND publish_at IS NOT NULL AND publish_at <= ? AND is_deleted = false",
		contentModels.ArticleScheduled, now).Find(&due).Error; err != nil {
		logScheduler("Error fetching scheduled articles: " + err.Error())
		return
	}

	for _, article := range due {
		article.Status = contentModels.ArticlePublished
		article.PublishedAt = &now
		if err := db.Save(&article).Error; err != nil {
			logScheduler("Error publishing article " + article.Slug + ": " + err.Error())
			continue
		}
		logScheduler("Article auto-published: " + article.Slug)
	}
}

// StartPublishScheduler runs the article auto-publish job every minute.
func StartPublishScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("* * * * *", publishDueArticles); err != nil {
		log.Fatalf("Failed to register publish scheduler: %v", err)
	}

	c.Start()
	logScheduler("Publish scheduler started")
	return c
}
