package scrape

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata" // zone data must be available in scratch containers

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"marketscraper/internal/apperror"
	"marketscraper/internal/parse"
)

const (
	currentPriceSelector = "h1.currentprice"
	priceDetailSelector  = ".marketprice .row .col-3"
	lastUpdateSelector   = ".last-update"

	lastUpdateLayout = "2006-01-02 15:04:05"
)

var lastUpdatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)

var jakarta = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		panic(err)
	}
	return loc
}()

// priceDetails holds the four labeled prices from the market detail rows.
// Nil means the row was not on the page.
type priceDetails struct {
	High *decimal.Decimal
	Low  *decimal.Decimal
	Last *decimal.Decimal
	Open *decimal.Decimal
}

// extractCurrentPrice reads the headline price. A missing element is not an
// error; only unparseable text is.
func extractCurrentPrice(doc *goquery.Document) (*decimal.Decimal, error) {
	el := doc.Find(currentPriceSelector).First()
	if el.Length() == 0 {
		return nil, nil
	}

	d, err := parse.LocaleNumber(strings.TrimSpace(el.Text()))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// extractPriceDetails walks the detail columns. Each column is expected to
// hold a label paragraph and a value paragraph; when a column carries more
// than one value candidate the last one wins. Columns with missing parts or
// unrecognized labels are skipped, not failed.
func extractPriceDetails(doc *goquery.Document) (priceDetails, error) {
	var details priceDetails
	var parseErr error

	doc.Find(priceDetailSelector).EachWithBreak(func(_ int, col *goquery.Selection) bool {
		paragraphs := col.Find("p")
		if paragraphs.Length() < 2 {
			return true
		}

		label := strings.ToLower(strings.TrimSpace(paragraphs.First().Text()))
		target := fieldForLabel(&details, label)
		if target == nil {
			slog.Debug("skipping unrecognized price row", "label", label)
			return true
		}

		value, err := parse.LocaleNumber(strings.TrimSpace(paragraphs.Last().Text()))
		if err != nil {
			parseErr = err
			return false
		}
		*target = &value
		return true
	})

	return details, parseErr
}

func fieldForLabel(details *priceDetails, label string) **decimal.Decimal {
	switch label {
	case "high":
		return &details.High
	case "low":
		return &details.Low
	case "last":
		return &details.Last
	case "open":
		return &details.Open
	default:
		return nil
	}
}

// extractLastUpdate finds the source-reported update time. Missing element
// or no recognizable timestamp in its text both yield nil; only a matched
// substring that fails to parse is an error.
func extractLastUpdate(doc *goquery.Document) (*time.Time, error) {
	el := doc.Find(lastUpdateSelector).First()
	if el.Length() == 0 {
		return nil, nil
	}

	matched := lastUpdatePattern.FindString(el.Text())
	if matched == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation(lastUpdateLayout, matched, jakarta)
	if err != nil {
		return nil, apperror.Wrap(apperror.Format, fmt.Sprintf("parse last update %q", matched), err)
	}
	return &t, nil
}
