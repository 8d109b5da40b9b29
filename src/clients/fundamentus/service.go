package fundamentus

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"carteira/src/config"
	"carteira/src/utils/requests"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// ErrQuoteNotFound marks a page that loaded but did not carry the quote
// cell, usually an unknown or delisted ticker. Not retryable.
var ErrQuoteNotFound = errors.New("quote element not found")

type FundamentusServiceClientI interface {
	GetQuote(ticker string) (decimal.Decimal, error)
}

// FundamentusServiceClient scrapes the last closing price of a ticker
// from fundamentus.com.br.
type FundamentusServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

func NewClient(cfg *config.Config) *FundamentusServiceClient {
	return &FundamentusServiceClient{
		API:     requests.NewExternalAPIService(),
		BaseURL: cfg.ExternalClients.Fundamentus.BaseURL,
	}
}

func (c *FundamentusServiceClient) GetQuote(ticker string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/detalhes.php", c.BaseURL)

	params := url.Values{}
	params.Add("papel", ticker)

	resp, err := c.API.Get(endpoint, "", params)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("fundamentus returned %s for %s", resp.Status, ticker)
	}

	return ParseQuote(resp.Body)
}

// ParseQuote extracts the quote from a detalhes page. Prices come in
// Brazilian notation ("12,34").
func ParseQuote(r io.Reader) (decimal.Decimal, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return decimal.Zero, err
	}

	cell := doc.Find("table.w728 td.data.destaque.w3 span").First()
	if cell.Length() == 0 {
		return decimal.Zero, ErrQuoteNotFound
	}

	raw := strings.ReplaceAll(strings.TrimSpace(cell.Text()), ",", ".")
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparsable quote %q: %w", raw, err)
	}
	return price, nil
}
