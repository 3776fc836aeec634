package main

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"foliodesk/internal/api"
	"foliodesk/internal/models"
	"foliodesk/pkg/logger"
)

// Options tune the fixture behavior from the command line.
type Options struct {
	Fail    string
	Latency time.Duration
	Live    bool
}

// Handler serves the portfolio API endpoints.
type Handler struct {
	opts Options
	log  *logger.Logger
}

// NewHandler creates a new Handler.
func NewHandler(opts Options, log *logger.Logger) *Handler {
	return &Handler{opts: opts, log: log}
}

// RegisterRoutes binds the endpoints and the request log middleware.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Use(h.requestLogger)
	e.POST("/upload-transactions", h.UploadTransactions)
	e.POST("/get-sentiment", h.GetSentiment)
	e.GET("/get-stock-data", h.GetStockData)
	e.GET("/get-news", h.GetNews)
	e.POST("/analyze", h.Analyze)
}

func (h *Handler) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		h.log.Info("request",
			logger.StringField("method", c.Request().Method),
			logger.StringField("path", c.Request().URL.Path),
			logger.IntField("status", c.Response().Status),
			logger.StringField("took", time.Since(start).String()),
		)
		return err
	}
}

// simulate applies the configured latency and reports whether the endpoint is
// the one forced to fail.
func (h *Handler) simulate(endpoint string) bool {
	if h.opts.Latency > 0 {
		time.Sleep(h.opts.Latency)
	}
	return h.opts.Fail == endpoint
}

func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
}

// UploadTransactions parses the multipart CSV and returns the preview rows.
func (h *Handler) UploadTransactions(c echo.Context) error {
	if h.simulate("upload") {
		return serverError(c)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "missing file field"})
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "cannot read uploaded file"})
	}
	defer src.Close()

	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": fmt.Sprintf("invalid CSV: %v", err)})
	}
	if len(records) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "uploaded file is empty"})
	}

	txs := make([]models.Transaction, 0, len(records))
	for i, record := range records {
		if len(record) < 4 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": fmt.Sprintf("row %d: expected ticker, buy_date, quantity, price", i+1)})
		}
		quantity, qErr := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		price, pErr := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if i == 0 && (qErr != nil || pErr != nil) {
			// Header row
			continue
		}
		if qErr != nil || pErr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": fmt.Sprintf("row %d: quantity and price must be numeric", i+1)})
		}
		txs = append(txs, models.Transaction{
			Ticker:   strings.ToUpper(strings.TrimSpace(record[0])),
			BuyDate:  strings.TrimSpace(record[1]),
			Quantity: quantity,
			Price:    price,
		})
	}

	h.log.Info("transactions uploaded", logger.IntField("count", len(txs)))
	return c.JSON(http.StatusOK, echo.Map{"preview": txs})
}

type sentimentRequest struct {
	UserID    string `json:"user_id"`
	Sentiment string `json:"sentiment"`
}

// GetSentiment echoes the submitted sentiment back, as the real backend does.
func (h *Handler) GetSentiment(c echo.Context) error {
	if h.simulate("sentiment") {
		return serverError(c)
	}

	var req sentimentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}
	if strings.TrimSpace(req.Sentiment) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "sentiment is required"})
	}

	return c.JSON(http.StatusOK, echo.Map{"sentiment": req.Sentiment})
}

// GetStockData returns canned metrics per requested ticker. With --live the
// price history comes from Yahoo Finance instead; fundamentals stay canned.
func (h *Handler) GetStockData(c echo.Context) error {
	if h.simulate("stock") {
		return serverError(c)
	}

	tickers := splitTickers(c.QueryParam("tickers"))
	if len(tickers) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "tickers query parameter is required"})
	}

	data := make([]models.StockDatum, 0, len(tickers))
	for _, ticker := range tickers {
		datum := stockFixture(ticker)
		if h.opts.Live {
			if history, err := liveHistory(ticker); err == nil && len(history) > 0 {
				datum.PriceHistory = history
			} else if err != nil {
				h.log.Warn("live history fetch failed, using canned data",
					logger.StringField("ticker", ticker),
					logger.ErrorField(err))
			}
		}
		data = append(data, datum)
	}

	return c.JSON(http.StatusOK, echo.Map{"data": data})
}

// GetNews returns canned headlines per requested ticker.
func (h *Handler) GetNews(c echo.Context) error {
	if h.simulate("news") {
		return serverError(c)
	}

	tickers := splitTickers(c.QueryParam("tickers"))
	if len(tickers) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "tickers query parameter is required"})
	}

	return c.JSON(http.StatusOK, echo.Map{"headlines": newsFixture(tickers)})
}

// Analyze fabricates one recommendation per distinct ticker in the submitted
// transaction history.
func (h *Handler) Analyze(c echo.Context) error {
	if h.simulate("analyze") {
		return serverError(c)
	}

	var req api.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request payload"})
	}
	if len(req.TransactionHistory) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "transaction_history is empty"})
	}

	metrics := make(map[string]api.MetricsEntry, len(req.CurrentMetrics))
	for _, m := range req.CurrentMetrics {
		metrics[m.Ticker] = m
	}

	seen := make(map[string]bool)
	recs := make([]models.Recommendation, 0, len(req.TransactionHistory))
	for _, entry := range req.TransactionHistory {
		if seen[entry.Ticker] {
			continue
		}
		seen[entry.Ticker] = true
		recs = append(recs, recommendationFor(entry.Ticker, req.Sentiment, metrics[entry.Ticker]))
	}

	h.log.Info("analysis generated", logger.IntField("recommendations", len(recs)))
	return c.JSON(http.StatusOK, echo.Map{"recommendations": recs})
}

func splitTickers(raw string) []string {
	parts := strings.Split(raw, ",")
	tickers := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.ToUpper(strings.TrimSpace(part)); t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}
