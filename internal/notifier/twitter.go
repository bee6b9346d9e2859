package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pfrederiksen/gacha-events/internal/event"
	"github.com/pfrederiksen/gacha-events/internal/telegram"
)

// TwitterNotifier tweets ending-soon alerts
type TwitterNotifier struct {
	client *twitter.Client
	now    func() time.Time
}

// NewTwitterNotifier creates a Twitter notifier from environment variables:
// TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN,
// TWITTER_ACCESS_SECRET.
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client, now: time.Now}, nil
}

// Notify posts one tweet per event
func (n *TwitterNotifier) Notify(game string, events []*event.Record) error {
	for i, rec := range events {
		tweet := formatTweet(game, rec, n.now())

		_, _, err := n.client.Statuses.Update(tweet, nil)
		if err != nil {
			return fmt.Errorf("failed to post tweet for event %q: %w", rec.Name, err)
		}

		// Rate limiting: wait between tweets
		if i < len(events)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil
}

// formatTweet renders an ending-soon alert as a tweet
func formatTweet(game string, rec *event.Record, now time.Time) string {
	tweet := fmt.Sprintf("⏰ %s event ending soon!\n\n", telegram.GameTitle(game))
	tweet += fmt.Sprintf("🎪 %s\n", rec.Name)

	if days, ok := rec.DaysRemaining(now); ok {
		switch days {
		case 0:
			tweet += "📅 Ends today!\n"
		case 1:
			tweet += "📅 Ends tomorrow!\n"
		default:
			tweet += fmt.Sprintf("📅 Ends in %d days (%s)\n", days, rec.EndDate)
		}
	} else if rec.EndDate != "" {
		tweet += fmt.Sprintf("📅 Ends %s\n", rec.EndDate)
	}

	if rec.Link != "" {
		tweet += "\n" + rec.Link
	}

	// Twitter limit is 280 characters
	if len(tweet) > 280 {
		tweet = tweet[:277] + "..."
	}

	return tweet
}
