package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coinctl",
		Short: "Kaleido coin ledger CLI tool",
		Long:  `A command line interface for interacting with the kaleido coin ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the coin ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		initCmd(),
		balanceCmd(),
		historyCmd(),
		statsCmd(),
		depositCmd(),
		withdrawCmd(),
		inviteCmd(),
		locationFeeCmd(),
		outfitFeeCmd(),
		deleteCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <userID>",
		Short: "Initialize the coin account for a user",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/accounts", map[string]any{"user_id": args[0]})
		},
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <userID>",
		Short: "Show the current balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/accounts/" + url.PathEscape(args[0]) + "/balance")
		},
	}
}

func historyCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "history <userID>",
		Short: "List stream entries, newest first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get(historyPath(args[0], limit, offset))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <userID>",
		Short: "Show lifetime income and expense totals",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/accounts/" + url.PathEscape(args[0]) + "/stats")
		},
	}
}

func depositCmd() *cobra.Command {
	var amount int64
	var bizType, bizID, remark string

	cmd := &cobra.Command{
		Use:   "deposit <userID>",
		Short: "Credit an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/accounts/"+url.PathEscape(args[0])+"/deposit", map[string]any{
				"amount":   amount,
				"biz_type": bizType,
				"biz_id":   bizID,
				"remark":   remark,
			})
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "Amount in coins")
	cmd.Flags().StringVar(&bizType, "biz-type", "", "Business event type")
	cmd.Flags().StringVar(&bizID, "biz-id", "", "Business event id (makes the command idempotent)")
	cmd.Flags().StringVar(&remark, "remark", "", "Free-form remark")

	return cmd
}

func withdrawCmd() *cobra.Command {
	var amount int64
	var bizType, bizID, remark string

	cmd := &cobra.Command{
		Use:   "withdraw <userID>",
		Short: "Debit an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/accounts/"+url.PathEscape(args[0])+"/withdraw", map[string]any{
				"amount":   amount,
				"biz_type": bizType,
				"biz_id":   bizID,
				"remark":   remark,
			})
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "Amount in coins")
	cmd.Flags().StringVar(&bizType, "biz-type", "", "Business event type")
	cmd.Flags().StringVar(&bizID, "biz-id", "", "Business event id (makes the command idempotent)")
	cmd.Flags().StringVar(&remark, "remark", "", "Free-form remark")

	return cmd
}

func inviteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invite <inviterUserID> <newUserID>",
		Short: "Pay the invite reward to an inviter",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/rewards/invite", map[string]any{
				"inviter_user_id": args[0],
				"new_user_id":     args[1],
			})
		},
	}
}

func locationFeeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "location-fee <userID> <locationID>",
		Short: "Charge the storage location creation fee",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/fees/location", map[string]any{
				"user_id":     args[0],
				"location_id": args[1],
			})
		},
	}
}

func outfitFeeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outfit-fee <userID> <outfitID>",
		Short: "Charge the outfit creation fee",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/fees/outfit", map[string]any{
				"user_id":   args[0],
				"outfit_id": args[1],
			})
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <userID>",
		Short: "Soft-delete a user's account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodDelete, "/api/v1/accounts/"+url.PathEscape(args[0]), nil)
		},
	}
}

func historyPath(userID string, limit, offset int) string {
	return "/api/v1/accounts/" + url.PathEscape(userID) + "/entries" +
		"?limit=" + strconv.Itoa(limit) + "&offset=" + strconv.Itoa(offset)
}

func get(path string) {
	request(http.MethodGet, path, nil)
}

func post(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}
	request(http.MethodPost, path, body)
}

func request(method, path string, body []byte) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\n%s\n", resp.StatusCode, formatJSON(respBody))
		os.Exit(1)
	}

	if len(respBody) > 0 {
		fmt.Println(formatJSON(respBody))
	} else {
		fmt.Printf("OK (Status: %d)\n", resp.StatusCode)
	}
}

func formatJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
