package utils

import (
	"fmt"
	"log"

	"khanqah/config"

	"github.com/go-resty/resty/v2"
)

type videoMetadata struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"` // seconds
}

// FetchVideoDurationMinutes asks the video host's oEmbed endpoint for the
// duration of a hosted video. Used when an admin creates a VIDEO lesson
// without supplying a duration. Returns an error on any failure; callers
// treat that as "duration unknown", never as a fatal condition.
func FetchVideoDurationMinutes(videoURL string) (int, error) {
	if videoURL == "" {
		return 0, fmt.Errorf("empty video url")
	}

	client := resty.New()
	var meta videoMetadata

	req := client.R().
		SetQueryParam("url", videoURL).
		SetResult(&meta)
	if config.AppConfig.VideoAPIKey != "" {
		req.SetHeader("Authorization", "Bearer "+config.AppConfig.VideoAPIKey)
	}

	resp, err := req.Get(config.AppConfig.VideoAPIURL)
	if err != nil {
		log.Printf("Failed to fetch video metadata for %s: %v", videoURL, err)
		return 0, err
	}
	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("video metadata request failed with status %d", resp.StatusCode())
	}

	// round up so a 30s clip still counts as a minute
	return (meta.Duration + 59) / 60, nil
}
