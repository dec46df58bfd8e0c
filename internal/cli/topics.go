package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/recollect-app/recollect/internal/client"
	"github.com/recollect-app/recollect/internal/topic"
	"github.com/spf13/cobra"
)

var (
	nextCount    int
	nextCategory string
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Suggest the next topic(s) to record about",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{"count": {strconv.Itoa(nextCount)}}
		if nextCategory != "" {
			q.Set("category", nextCategory)
		}

		data, err := client.New().Get("/api/topics/next?" + q.Encode())
		if err != nil {
			return err
		}

		var resp struct {
			Topics []topic.Topic `json:"topics"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		if len(resp.Topics) == 0 {
			fmt.Println("no topics available")
			return nil
		}

		for _, t := range resp.Topics {
			label := ""
			if t.Category != nil {
				label = " [" + t.Category.DisplayName + "]"
			}
			fmt.Printf("%s%s (%s)\n  %s\n", t.ID, label, t.Difficulty, t.Prompt)
		}
		return nil
	},
}

var usedCmd = &cobra.Command{
	Use:   "used <topic-id> <memory-id>",
	Short: "Mark a suggested topic as recorded against",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string]string{"memory_id": args[1]})
		if err != nil {
			return err
		}
		if _, err := client.New().Post("/api/topics/"+url.PathEscape(args[0])+"/used", body); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a full resync from the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := client.New().Post("/api/refresh", nil); err != nil {
			return err
		}
		fmt.Println("refreshed")
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached catalog data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := client.New().Post("/api/cache/clear", nil); err != nil {
			return err
		}
		fmt.Println("cleared")
		return nil
	},
}

func init() {
	nextCmd.Flags().IntVarP(&nextCount, "count", "n", 1, "Number of topics to suggest")
	nextCmd.Flags().StringVarP(&nextCategory, "category", "c", "", "Restrict to a category id")
}
