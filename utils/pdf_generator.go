package utils

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"libraryhub/models"
)

//go:embed report_template.html
var reportTemplateHTML string

var reportTemplate = template.Must(template.New("report").Parse(reportTemplateHTML))

type reportRow struct {
	ID         int64
	User       string
	Book       string
	BorrowDate string
	ReturnDate string
	Status     string
}

// RenderTransactionsHTML renders the report table. Column order is fixed:
// ID, User, Book, Borrow Date, Return Date, Status. Open loans show "N/A"
// for the return date.
func RenderTransactionsHTML(records []*models.TransactionRecord) (string, error) {
	rows := make([]reportRow, 0, len(records))
	for _, rec := range records {
		row := reportRow{
			ID:         rec.ID,
			User:       rec.Username,
			Book:       rec.BookTitle,
			BorrowDate: rec.BorrowDate.Format("2006-01-02"),
			ReturnDate: "N/A",
			Status:     rec.Status,
		}
		if rec.ReturnDate != nil {
			row.ReturnDate = rec.ReturnDate.Format("2006-01-02")
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, struct{ Rows []reportRow }{Rows: rows}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GenerateTransactionsPDF renders the report HTML and prints it to PDF with
// headless Chrome.
func GenerateTransactionsPDF(records []*models.TransactionRecord) ([]byte, error) {
	html, err := RenderTransactionsHTML(records)
	if err != nil {
		return nil, err
	}

	// Chrome needs a file URL to navigate to.
	tmpHTML := filepath.Join(os.TempDir(), "transactions_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(html), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("file://"+tmpHTML),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
