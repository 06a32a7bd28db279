package cmd

import (
	"context"
	"fmt"
	"time"

	"xkcdd/internal/comics"
	"xkcdd/internal/config"
	"xkcdd/internal/download"
	"xkcdd/internal/pipeline"
	"xkcdd/internal/scrape"
	"xkcdd/internal/store"
	"xkcdd/internal/ui"
	"xkcdd/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagIndex      int
	flagOutput     string
	flagTimeout    int
	flagUserAgent  string
	flagCookie     string
	flagCookieFile string
)

func init() {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download today's comic into data/<YYYY-MM-DD>. Uses the defaults from the selected config, overwritten by CLI flags",
		RunE:  runFetch,
	}

	fetchCmd.Flags().IntVar(&flagIndex, "index", 0, "download a specific comic by index instead of the latest")
	fetchCmd.Flags().StringVar(&flagOutput, "output", "", "project root holding the data/ tree")
	fetchCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "HTTP timeout in seconds")
	fetchCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	fetchCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	fetchCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig:   flagIgnoreConfig,
		Debug:          flagDebug,
		Output:         flagOutput,
		TimeoutSeconds: flagTimeout,
		Cookie:         flagCookie,
		CookieFile:     flagCookieFile,
		UserAgent:      flagUserAgent,
	})
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          time.Duration(cfg.TimeoutSeconds) * time.Second,
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: cfg.CloudflareBypass,
		DebugLogger:      logSvc,
	})
	if err != nil {
		return err
	}

	dir, err := store.DailyDir(cfg.Output, time.Now())
	if err != nil {
		return fmt.Errorf("cannot create daily folder: %w", err)
	}
	fmt.Printf("Saving comic to: %s\n", dir)

	pm := ui.NewProgressManager()
	defer pm.Close()

	p := pipeline.New(
		scrape.NewScraper(client, logSvc),
		download.New(client, logSvc),
		logSvc,
		pm,
		comics.BaseURL,
	)

	ctx := context.Background()

	var res pipeline.Result
	if flagIndex > 0 {
		res = p.FetchIndex(ctx, flagIndex, dir)
	} else {
		res = p.FetchLatest(ctx, dir)
	}

	pm.Close()

	if !res.OK {
		return fmt.Errorf("failed to download comic (%s step)", res.Stage)
	}

	fmt.Println("Comic download completed successfully!")
	return nil
}
