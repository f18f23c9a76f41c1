package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	symbol  = "XDL"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ubiledger-cli",
		Short: "UBI ledger CLI tool",
		Long:  `A command line interface for interacting with the UBI ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&symbol, "symbol", "XDL", "Token symbol")

	// Claim commands
	claimCmd := &cobra.Command{
		Use:   "claim <owner>",
		Short: "Claim pending daily income for an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			costPayer, _ := cmd.Flags().GetString("cost-payer")
			claim(args[0], costPayer)
		},
	}
	claimCmd.Flags().String("cost-payer", "", "Third party that pays storage costs")
	rootCmd.AddCommand(claimCmd)

	// Balance command
	balanceCmd := &cobra.Command{
		Use:   "balance <account>",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON(fmt.Sprintf("/api/v1/balances/%s/%s", args[0], symbol))
		},
	}
	rootCmd.AddCommand(balanceCmd)

	// Supply command
	supplyCmd := &cobra.Command{
		Use:   "supply",
		Short: "Show circulating supply and claim counters",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/tokens/" + symbol)
		},
	}
	rootCmd.AddCommand(supplyCmd)

	// Share commands
	shareCmd := &cobra.Command{
		Use:   "share",
		Short: "Income share registry operations",
	}

	shareSetCmd := &cobra.Command{
		Use:   "set <owner> <beneficiary> <percent>",
		Short: "Register or update an income share",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			percent, err := strconv.Atoi(args[2])
			if err != nil {
				fmt.Printf("Invalid percent %q: %v\n", args[2], err)
				os.Exit(1)
			}
			setShare(args[0], args[1], percent)
		},
	}

	shareListCmd := &cobra.Command{
		Use:   "list <owner>",
		Short: "List an account's income shares",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/shares/" + args[0] + "/")
		},
	}

	shareResetCmd := &cobra.Command{
		Use:   "reset <owner>",
		Short: "Clear an account's income shares",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			resetShares(args[0])
		},
	}

	shareCmd.AddCommand(shareSetCmd, shareListCmd, shareResetCmd)
	rootCmd.AddCommand(shareCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	conservationCmd := &cobra.Command{
		Use:   "conservation",
		Short: "Check supply conservation",
		Run: func(cmd *cobra.Command, args []string) {
			checkConservation()
		},
	}

	ledgerCmd.AddCommand(conservationCmd)
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func claim(owner, costPayer string) {
	payload := map[string]string{"owner": owner}
	if costPayer != "" {
		payload["cost_payer"] = costPayer
	}

	result := postJSON("/api/v1/claims", payload)

	if claimed, ok := result["claimed"].(bool); ok && claimed {
		fmt.Printf("Claimed %s for %s\n", result["quantity"], owner)
		if next, ok := result["next_claim"].(string); ok && next != "" {
			fmt.Printf("Next claim: %s\n", next)
		}
		if lost, ok := result["lost_days"].(float64); ok && lost > 0 {
			fmt.Printf("Forfeited days: %d\n", int64(lost))
		}
		return
	}

	fmt.Printf("Nothing to claim for %s today\n", owner)
}

func setShare(owner, beneficiary string, percent int) {
	body := map[string]any{"beneficiary": beneficiary, "percent": percent}
	result := postTo(http.MethodPut, "/api/v1/shares/"+owner+"/", body)

	fmt.Printf("Share registered: %s -> %s at %v%%\n", owner, beneficiary, result["percent"])
}

func resetShares(owner string) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodDelete, baseURL+"/api/v1/shares/"+owner+"/", nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Reset FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Printf("Shares cleared for %s\n", owner)
}

func checkConservation() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/tokens/" + symbol + "/conservation")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Conservation check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Conservation check PASSED\n")
	if consistent, ok := result["consistent"].(bool); ok {
		fmt.Printf("Consistent: %v\n", consistent)
	}
	fmt.Printf("Supply: %s\n", result["supply"])
	fmt.Printf("Balance total: %s\n", result["balance_total"])
	fmt.Printf("Burned: %s\n", result["burned"])
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(out.String())
}

func postJSON(path string, payload any) map[string]any {
	return postTo(http.MethodPost, path, payload)
}

func postTo(method, path string, payload any) map[string]any {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 300 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	return result
}
