// Package certificate renders the purchasable PDF certificate for a test
// result.
package certificate

import (
	"bytes"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

type Data struct {
	ResultID           string
	Recipient          string
	CorrectAnswers     int
	QuestionsAttempted int
	IssuedAt           time.Time
}

const (
	Title      = "CERTIFICATE OF COGNITIVE ASSESSMENT"
	summary    = "has completed the IQScaler cognitive assessment, consisting of analytical, logical, and general reasoning questions and is hereby awarded a score of:"
	disclaimer = "This score is derived from the individual’s performance relative to a standardized scoring model based on general population benchmarks."

	sideMargin = 80.0
	qrSize     = 75.0
)

// Number is the short identifier printed on the certificate.
func Number(resultID string) string {
	if len(resultID) <= 8 {
		return resultID
	}
	return resultID[len(resultID)-8:]
}

// Render draws an A4 landscape certificate. Output is byte-for-byte stable
// for the same data and verification URL.
func Render(d Data, verificationURL string) ([]byte, error) {
	qr, err := qrcode.Encode(verificationURL, qrcode.Medium, 256)
	if err != nil {
		return nil, errors.Wrap(err, "encode verification qr")
	}

	issued := d.IssuedAt.UTC()
	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetCreationDate(issued)
	pdf.SetModificationDate(issued)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(Title, true)
	pdf.SetAuthor("IQScaler", true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := pdf.GetPageSize()

	// frame
	pdf.SetDrawColor(0, 86, 179)
	pdf.SetLineWidth(6)
	pdf.Rect(18, 18, pageW-36, pageH-36, "D")
	pdf.SetLineWidth(1.5)
	pdf.Rect(30, 30, pageW-60, pageH-60, "D")

	centered := func(y, h float64, text string) {
		pdf.SetXY(0, y)
		pdf.CellFormat(pageW, h, tr(text), "", 0, "C", false, 0, "")
	}

	y := 85.0
	pdf.SetTextColor(0, 86, 179)
	pdf.SetFont("Helvetica", "B", 32)
	centered(y, 40, Title)

	y += 60
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "", 24)
	centered(y, 30, "This certifies that")

	y += 45
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 38)
	centered(y, 45, d.Recipient)

	y += 60
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "", 22)
	pdf.SetXY(20, y)
	pdf.MultiCell(pageW-40, 26, tr(summary), "", "C", false)

	pct := ScorePercentage(d.CorrectAnswers, d.QuestionsAttempted)
	y = pdf.GetY() + 15
	pdf.SetTextColor(0, 86, 179)
	pdf.SetFont("Helvetica", "B", 35)
	centered(y, 40, FormatPercentage(d.CorrectAnswers, d.QuestionsAttempted)+"%")

	y += 50
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 20)
	centered(y, 26, "Assessed IQ Score: "+strconv.Itoa(EstimateIQ(pct))+" ("+string(BandFor(pct))+")")

	y += 36
	pdf.SetTextColor(85, 85, 85)
	pdf.SetFont("Helvetica", "I", 13)
	pdf.SetXY(60, y)
	pdf.MultiCell(pageW-120, 16, tr(disclaimer), "", "C", false)

	footerY := pageH - 110
	pdf.SetFont("Helvetica", "", 15)
	pdf.SetXY(sideMargin, footerY)
	pdf.CellFormat(300, 18, "Issued by: IQScaler", "", 0, "L", false, 0, "")
	pdf.SetXY(sideMargin, footerY+20)
	pdf.CellFormat(300, 18, "Certificate ID: "+Number(d.ResultID), "", 0, "L", false, 0, "")
	pdf.SetXY(sideMargin, footerY+40)
	pdf.CellFormat(300, 18, "Date: "+issued.Format("02/01/2006"), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 86, 179)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(pageW/2-50, footerY)
	pdf.CellFormat(100, 18, "IQ SCALER", "", 0, "C", false, 0, "")

	qrX := pageW - sideMargin - qrSize
	qrY := footerY - 30
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("verification-qr", opts, bytes.NewReader(qr))
	pdf.ImageOptions("verification-qr", qrX, qrY, qrSize, qrSize, false, opts, 0, verificationURL)
	pdf.SetTextColor(85, 85, 85)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(qrX, qrY+qrSize+5)
	pdf.CellFormat(qrSize, 12, "Scan to Verify", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render certificate")
	}
	return buf.Bytes(), nil
}
