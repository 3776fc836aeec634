package cli

import (
	"fmt"
	"strings"

	"foliodesk/internal/api"
	"foliodesk/internal/csvfile"
	"foliodesk/internal/report"
	"foliodesk/internal/session"
	"foliodesk/pkg/logger"
)

type analyzeOptions struct {
	file      string
	sentiment string
	tickers   string
	output    string
}

// runAnalyze walks the whole pipeline in one shot: upload, sentiment, market
// data, news, then the analysis request. Missing inputs are prompted for.
func runAnalyze(flags rootFlags, opts analyzeOptions) error {
	_, cfg, log, err := setup(flags)
	if err != nil {
		return err
	}
	defer log.Sync()

	client := api.NewClient(&cfg)
	store := session.NewStore()

	// Step 1: upload the transaction CSV
	filePath := opts.file
	if filePath == "" {
		filePath, err = PromptForCSVPath()
		if err != nil {
			return err
		}
	}

	if sample, err := csvfile.Peek(filePath, 5); err == nil && sample.RowCount > 0 {
		fmt.Printf("📄 %s: %d data rows, showing %d\n", filePath, sample.RowCount, len(sample.Rows))
		if len(sample.Header) > 0 {
			fmt.Printf("   %s\n", strings.Join(sample.Header, ", "))
		}
		for _, row := range sample.Rows {
			fmt.Printf("   %s\n", strings.Join(row, ", "))
		}
	}

	fmt.Printf("📤 Uploading %s...\n", filePath)
	txs, err := client.UploadTransactions(filePath)
	if err != nil {
		return fmt.Errorf("upload failed: %s", api.ErrorMessage(err))
	}
	store.SetTransactions(txs)
	log.Info("transactions uploaded", logger.IntField("count", len(txs)))
	fmt.Printf("✅ %d transactions loaded\n\n", len(txs))

	// Step 2: record the sentiment note
	sentiment := opts.sentiment
	if sentiment == "" {
		sentiment, err = PromptForSentiment()
		if err != nil {
			return err
		}
	}

	echoed, err := client.SubmitSentiment(cfg.UserID, sentiment)
	if err != nil {
		return fmt.Errorf("sentiment submission failed: %s", api.ErrorMessage(err))
	}
	store.SetSentiment(echoed)
	fmt.Printf("✅ Sentiment recorded: %q\n\n", echoed)

	// Step 3: fetch stock data and news for the portfolio tickers
	tickers := opts.tickers
	if tickers == "" {
		tickers, err = PromptForTickers(strings.Join(store.Tickers(), ","))
		if err != nil {
			return err
		}
	}

	fmt.Printf("📈 Fetching stock data for %s...\n", tickers)
	stocks, err := client.GetStockData(tickers)
	if err != nil {
		return fmt.Errorf("stock data fetch failed: %s", api.ErrorMessage(err))
	}
	store.SetStockData(stocks)
	fmt.Printf("✅ Stock data for %d tickers\n", len(stocks))

	fmt.Printf("📰 Fetching news for %s...\n", tickers)
	headlines, err := client.GetNews(tickers)
	if err != nil {
		return fmt.Errorf("news fetch failed: %s", api.ErrorMessage(err))
	}
	store.SetNews(headlines)
	fmt.Printf("✅ %d headlines\n\n", len(headlines))

	// Step 4: request recommendations
	if !store.ReadyForAnalysis() {
		return fmt.Errorf("cannot analyze yet, still missing: %s", strings.Join(store.MissingForAnalysis(), ", "))
	}

	fmt.Println("🧠 Requesting analysis...")
	req := api.BuildAnalyzeRequest(cfg.UserID, store.Sentiment(), store.Transactions(), store.StockData(), store.News())
	recs, err := client.Analyze(req)
	if err != nil {
		return fmt.Errorf("analysis failed: %s", api.ErrorMessage(err))
	}
	store.SetAnalysis(recs)
	log.Info("analysis complete", logger.IntField("recommendations", len(recs)))

	md := report.Markdown(recs, store.Transactions(), store.Sentiment())
	rendered, err := report.Render(md)
	if err != nil {
		// Fall back to plain markdown when the terminal renderer fails.
		rendered = md
	}
	fmt.Println(rendered)

	if opts.output != "" {
		if err := report.Save(md, opts.output); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		fmt.Printf("💾 Report saved to %s\n", opts.output)
	}

	return nil
}
