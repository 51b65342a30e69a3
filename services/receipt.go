package services

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"regexp"
	"strings"
	texttemplate "text/template"
	"time"
	"unicode/utf8"

	"lodge-backend/models"

	"gorm.io/gorm"
)

//go:embed templates/*.tmpl
var receiptTemplates embed.FS

type ReceiptFormat string

const (
	ReceiptText    ReceiptFormat = "text"
	ReceiptThermal ReceiptFormat = "thermal"
	ReceiptA4      ReceiptFormat = "a4"
)

const (
	OutputHTML = "html"
	OutputPDF  = "pdf"
)

func ParseReceiptFormat(raw string) (ReceiptFormat, error) {
	switch f := ReceiptFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return ReceiptA4, nil
	case ReceiptText, ReceiptThermal, ReceiptA4:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
}

// Receipt is everything the three receipt forms print for one guest stay.
type Receipt struct {
	Number         uint
	Title          string
	Name           string
	Phone          string
	Email          string
	RoomName       string
	CheckIn        time.Time
	CheckOut       time.Time
	Nights         int
	Guests         int
	Breakfast      bool
	ExtraBreakfast int
	Laundry        bool
	Status         string
	AddedBy        string
	CreatedAt      time.Time
	Lodge          models.LodgeSetting
	AutoPrint      bool
}

func NewReceipt(g models.Guest, lodge models.LodgeSetting) Receipt {
	return Receipt{
		Number:         g.ID,
		Title:          strings.ToUpper(lodge.Name) + " RECEIPT",
		Name:           strings.TrimSpace(g.Name),
		Phone:          strings.TrimSpace(g.Phone),
		Email:          strings.TrimSpace(g.Email),
		RoomName:       g.RoomName,
		CheckIn:        g.CheckIn,
		CheckOut:       g.CheckOut,
		Nights:         StayNights(g.CheckIn, g.CheckOut),
		Guests:         g.Guests,
		Breakfast:      g.Breakfast,
		ExtraBreakfast: g.ExtraBreakfast,
		Laundry:        g.Laundry,
		Status:         g.Status,
		AddedBy:        g.AddedBy,
		CreatedAt:      g.CreatedAt,
		Lodge:          lodge,
	}
}

var nonWordRun = regexp.MustCompile(`\s+`)

// Filename follows receipt-<Name-With-Dashes>-<id>.<ext>.
func (r Receipt) Filename(ext string) string {
	return fmt.Sprintf("receipt-%s-%d.%s", nonWordRun.ReplaceAllString(r.Name, "-"), r.Number, ext)
}

func centerText(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func ordersLabel(n int) string {
	if n == 1 {
		return "1 order"
	}
	return fmt.Sprintf("%d orders", n)
}

var receiptFuncs = map[string]interface{}{
	"center":      centerText,
	"rule":        func() string { return strings.Repeat("━", 40) },
	"upper":       func(s string) string { return strings.ToUpper(strings.ReplaceAll(s, "_", " ")) },
	"date":        func(t time.Time) string { return t.Format("02 Jan 2006") },
	"longdate":    func(t time.Time) string { return t.Format("Monday, January 2, 2006") },
	"clock":       func(t time.Time) string { return t.Format("15:04") },
	"datetime":    func(t time.Time) string { return t.Format("02 Jan 2006 15:04") },
	"orders":      ordersLabel,
	"statusClass": func(s string) string { return strings.ReplaceAll(s, "_", "-") },
}

// ReceiptRenderer renders receipts from the embedded templates.
type ReceiptRenderer struct {
	text *texttemplate.Template
	html map[ReceiptFormat]*htmltemplate.Template
}

func NewReceiptRenderer() (*ReceiptRenderer, error) {
	text, err := texttemplate.New("receipt.txt.tmpl").Funcs(receiptFuncs).ParseFS(receiptTemplates, "templates/receipt.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse text receipt: %w", err)
	}
	r := &ReceiptRenderer{text: text, html: map[ReceiptFormat]*htmltemplate.Template{}}
	for format, file := range map[ReceiptFormat]string{
		ReceiptThermal: "receipt_thermal.html.tmpl",
		ReceiptA4:      "receipt_a4.html.tmpl",
	} {
		t, err := htmltemplate.New(file).Funcs(receiptFuncs).ParseFS(receiptTemplates, "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("parse %s receipt: %w", format, err)
		}
		r.html[format] = t
	}
	return r, nil
}

func (r *ReceiptRenderer) Render(format ReceiptFormat, rec Receipt) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case ReceiptText:
		if err := r.text.Execute(&buf, rec); err != nil {
			return nil, fmt.Errorf("render text receipt: %w", err)
		}
	case ReceiptThermal, ReceiptA4:
		if err := r.html[format].Execute(&buf, rec); err != nil {
			return nil, fmt.Errorf("render %s receipt: %w", format, err)
		}
	default:
		return nil, ErrUnknownFormat
	}
	return buf.Bytes(), nil
}

type ReceiptDocument struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReceiptService loads a guest stay and produces one of the receipt forms.
type ReceiptService struct {
	DB       *gorm.DB
	Lodge    *LodgeService
	Renderer *ReceiptRenderer
	Printer  PDFPrinter
}

func NewReceiptService(db *gorm.DB, lodge *LodgeService, renderer *ReceiptRenderer, printer PDFPrinter) *ReceiptService {
	return &ReceiptService{DB: db, Lodge: lodge, Renderer: renderer, Printer: printer}
}

// Generate renders the guest's receipt. output is html or pdf for the printable forms and
// is ignored for text.
func (s *ReceiptService) Generate(ctx context.Context, guestID uint, format ReceiptFormat, output string) (*ReceiptDocument, error) {
	var guest models.Guest
	if err := s.DB.WithContext(ctx).Preload("Room").First(&guest, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("load guest: %w", err)
	}
	guest.RoomName = guest.Room.Name

	lodge, err := s.Lodge.Current(ctx)
	if err != nil {
		return nil, err
	}
	rec := NewReceipt(guest, lodge)

	if format == ReceiptText {
		body, err := s.Renderer.Render(format, rec)
		if err != nil {
			return nil, err
		}
		return &ReceiptDocument{Filename: rec.Filename("txt"), ContentType: "text/plain; charset=utf-8", Body: body}, nil
	}

	if output != OutputPDF {
		rec.AutoPrint = true
		body, err := s.Renderer.Render(format, rec)
		if err != nil {
			return nil, err
		}
		return &ReceiptDocument{Filename: rec.Filename("html"), ContentType: "text/html; charset=utf-8", Body: body}, nil
	}

	if s.Printer == nil {
		return nil, ErrPrintSurfaceUnavailable
	}
	html, err := s.Renderer.Render(format, rec)
	if err != nil {
		return nil, err
	}
	paper := PaperA4
	if format == ReceiptThermal {
		paper = PaperThermal80
	}
	pdf, err := s.Printer.PrintPDF(ctx, string(html), paper)
	if err != nil {
		return nil, err
	}
	return &ReceiptDocument{Filename: rec.Filename("pdf"), ContentType: "application/pdf", Body: pdf}, nil
}
