// Package api is the HTTP client for the portfolio insights service.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/go-resty/resty/v2"

	"foliodesk/config"
	"foliodesk/internal/models"
)

// Client talks to the five portfolio endpoints. Every method performs exactly
// one attempt; resubmitting after a failure is the user's call.
type Client struct {
	http *resty.Client
}

// NewClient builds a client from the config. A zero timeout leaves requests
// unbounded.
func NewClient(cfg *config.Config) *Client {
	client := resty.New()
	client.SetBaseURL(cfg.APIBaseURL)
	if t := cfg.Timeout(); t > 0 {
		client.SetTimeout(t)
	}

	return &Client{http: client}
}

// SetBaseURL repoints the client, used when the config changes at runtime.
func (c *Client) SetBaseURL(url string) {
	c.http.SetBaseURL(url)
}

// UploadTransactions posts a CSV file as multipart field "file" and returns
// the preview rows the server parsed out of it.
func (c *Client) UploadTransactions(filePath string) ([]models.Transaction, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", filePath, err)
	}

	resp, err := c.http.R().
		SetFile("file", filePath).
		Post("/upload-transactions")
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrNetwork, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, apiErrorFrom(resp)
	}

	var out struct {
		Preview []models.Transaction `json:"preview"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse upload response: %w", err)
	}
	return out.Preview, nil
}

// SubmitSentiment records a free-text note and returns the value the server
// echoed back.
func (c *Client) SubmitSentiment(userID, sentiment string) (string, error) {
	resp, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"user_id":   userID,
			"sentiment": sentiment,
		}).
		Post("/get-sentiment")
	if err != nil {
		return "", fmt.Errorf("%w (%v)", ErrNetwork, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", apiErrorFrom(resp)
	}

	var out struct {
		Sentiment string `json:"sentiment"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("failed to parse sentiment response: %w", err)
	}
	return out.Sentiment, nil
}

// GetStockData fetches metrics for a comma-separated ticker list.
func (c *Client) GetStockData(tickers string) ([]models.StockDatum, error) {
	resp, err := c.http.R().
		SetQueryParams(map[string]string{
			"tickers": tickers,
		}).
		Get("/get-stock-data")
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrNetwork, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, apiErrorFrom(resp)
	}

	var out struct {
		Data []models.StockDatum `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse stock data response: %w", err)
	}
	return out.Data, nil
}

// GetNews fetches headlines for a comma-separated ticker list.
func (c *Client) GetNews(tickers string) ([]models.NewsHeadline, error) {
	resp, err := c.http.R().
		SetQueryParams(map[string]string{
			"tickers": tickers,
		}).
		Get("/get-news")
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrNetwork, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, apiErrorFrom(resp)
	}

	var out struct {
		Headlines []models.NewsHeadline `json:"headlines"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse news response: %w", err)
	}
	return out.Headlines, nil
}

// Analyze submits the combined session payload and returns the
// recommendations.
func (c *Client) Analyze(req AnalyzeRequest) ([]models.Recommendation, error) {
	resp, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/analyze")
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrNetwork, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, apiErrorFrom(resp)
	}

	var out struct {
		Recommendations []models.Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	return out.Recommendations, nil
}
