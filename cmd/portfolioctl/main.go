package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"portfolio_tracker/internal/client"
	"portfolio_tracker/internal/entity"
	"portfolio_tracker/internal/pkg/format"
)

const usage = `usage: portfolioctl [flags] <command> [args]

commands:
  portfolio                 show stats and token list
  refresh                   reload the portfolio
  wait                      refresh and poll until loading finishes
  account                   show the wallet session
  connect <address> [chain] connect a wallet (chain defaults to 1)
  network <chain>           switch network
  disconnect                disconnect the wallet
  networks                  list supported networks
`

func main() {
	baseURL := flag.String("url", envOr("PORTFOLIO_URL", "http://localhost:8080"), "portfolio tracker base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	verbose := flag.Bool("v", false, "log requests")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	zapLogger := zap.NewNop()
	if *verbose {
		var err error
		if zapLogger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer func() { _ = zapLogger.Sync() }()

	c := client.NewDashboardClient(*baseURL, *timeout, zapLogger)
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, c, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c client.DashboardClient, args []string) error {
	switch args[0] {
	case "portfolio":
		resp, err := c.GetPortfolio(ctx)
		if err != nil {
			return err
		}
		printPortfolio(resp)
	case "refresh":
		resp, err := c.Refresh(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("refresh started (generation %d)\n", resp.Generation)
	case "wait":
		if _, err := c.Refresh(ctx); err != nil {
			return err
		}
		resp, err := waitLoaded(ctx, c)
		if err != nil {
			return err
		}
		printPortfolio(resp)
	case "account":
		resp, err := c.Account(ctx)
		if err != nil {
			return err
		}
		printAccount(resp)
	case "connect":
		if len(args) < 2 {
			return fmt.Errorf("connect needs an address")
		}
		chainID := uint64(1)
		if len(args) > 2 {
			id, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid chain id %q: %w", args[2], err)
			}
			chainID = id
		}
		resp, err := c.Connect(ctx, args[1], chainID)
		if err != nil {
			return err
		}
		printAccount(resp)
	case "network":
		if len(args) < 2 {
			return fmt.Errorf("network needs a chain id")
		}
		id, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid chain id %q: %w", args[1], err)
		}
		resp, err := c.SwitchNetwork(ctx, id)
		if err != nil {
			return err
		}
		printAccount(resp)
	case "disconnect":
		resp, err := c.Disconnect(ctx)
		if err != nil {
			return err
		}
		printAccount(resp)
	case "networks":
		nets, err := c.Networks(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CHAIN\tNAME\tNATIVE")
		for _, n := range nets {
			fmt.Fprintf(w, "%d\t%s\t%s\n", n.ChainID, n.Name, n.NativeSymbol)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func waitLoaded(ctx context.Context, c client.DashboardClient) (*entity.APIPortfolioResponse, error) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		resp, err := c.GetPortfolio(ctx)
		if err != nil {
			return nil, err
		}
		if !resp.Data.Loading {
			return resp, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func printAccount(resp *entity.AccountResponse) {
	if !resp.Account.Connected {
		fmt.Println("not connected")
		return
	}
	fmt.Printf("%s on %s\n", resp.ShortAddress, resp.Network)
}

func printPortfolio(resp *entity.APIPortfolioResponse) {
	fmt.Println(resp.StatusMessage)
	snap := resp.Data
	if !snap.Account.Ready() {
		return
	}

	stats := snap.Stats
	fmt.Printf("\nWallet       %s\n", format.ShortAddress(snap.Account.Address))
	fmt.Printf("Total value  %s\n", format.USD(stats.TotalValue))
	fmt.Printf("24h change   %s (%s)\n", format.Percent(stats.Change24h), format.Trend(stats.Change24h))
	fmt.Printf("Tokens       %d\n\n", stats.TokenCount)

	if len(snap.Tokens) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "TOKEN\tBALANCE\tPRICE\tVALUE\t24H\t")
	for _, t := range snap.Tokens {
		price, change := "-", "-"
		if t.Price.Valid {
			price = format.USD(t.Price.Decimal)
		}
		if t.Change24h.Valid {
			change = format.Percent(t.Change24h.Decimal)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", t.Symbol, format.Balance(t.Balance), price, format.USD(t.Value), change)
	}
	_ = w.Flush()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
