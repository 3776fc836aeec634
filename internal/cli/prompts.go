package cli

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// PromptForCSVPath prompts the user for a transaction CSV file
func PromptForCSVPath() (string, error) {
	var path string
	prompt := &survey.Input{
		Message: "Enter the transaction CSV file to upload:",
		Help:    "Path to a CSV export with ticker, buy_date, quantity and price columns",
	}

	err := survey.AskOne(prompt, &path, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if str == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		if _, err := os.Stat(str); err != nil {
			return fmt.Errorf("cannot read %s", str)
		}
		return nil
	}))

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(path), nil
}

// PromptForSentiment prompts the user for a market sentiment note
func PromptForSentiment() (string, error) {
	var sentiment string
	prompt := &survey.Input{
		Message: "Describe your market sentiment:",
		Help:    "Free-form note, e.g. 'bullish on tech, cautious on energy'",
	}

	err := survey.AskOne(prompt, &sentiment, survey.WithValidator(survey.Required))

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(sentiment), nil
}

// PromptForTickers prompts the user for a comma-separated ticker list. The
// default comes from the uploaded portfolio so pressing Enter covers the
// common case.
func PromptForTickers(defaultTickers string) (string, error) {
	var tickers string
	prompt := &survey.Input{
		Message: "Enter tickers to fetch data for (comma-separated):",
		Help:    "Stock symbols like AAPL,GOOG. Leave the default to use the uploaded portfolio.",
		Default: defaultTickers,
	}

	err := survey.AskOne(prompt, &tickers, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if str == "" {
			return fmt.Errorf("ticker list cannot be empty")
		}
		for _, part := range strings.Split(str, ",") {
			symbol := strings.ToUpper(strings.TrimSpace(part))
			if symbol == "" {
				return fmt.Errorf("ticker list has an empty entry")
			}
			if !tickerPattern.MatchString(symbol) {
				return fmt.Errorf("invalid ticker format: %s (use letters, numbers, dots, and hyphens only)", symbol)
			}
		}
		return nil
	}))

	if err != nil {
		return "", err
	}

	parts := strings.Split(tickers, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		cleaned = append(cleaned, strings.ToUpper(strings.TrimSpace(part)))
	}
	return strings.Join(cleaned, ","), nil
}
