package banner

import (
	"bytes"
	"fmt"
	"time"

	"gachabot/bot/common"
	"gachabot/domain/entities"
	"gachabot/domain/services"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// CardStyle defines the layout of the banner card
type CardStyle struct {
	Width     int
	Padding   int
	RowHeight int
	MaxRows   int
}

// CardGenerator renders the banner as a PNG card
type CardGenerator struct {
	style CardStyle
}

// NewCardGenerator creates a generator with the default style
func NewCardGenerator() *CardGenerator {
	return &CardGenerator{
		style: CardStyle{
			Width:     480,
			Padding:   18,
			RowHeight: 22,
			MaxRows:   40,
		},
	}
}

type cardRow struct {
	header bool
	rarity entities.Rarity
	left   string
	right  string
}

// Generate draws every tier of banner, truncated to MaxRows rows
func (g *CardGenerator) Generate(banner services.Banner, secret bool) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).Debug("Banner card rendered")
	}()

	rows := g.layout(banner)
	height := g.style.Padding*2 + 40 + len(rows)*g.style.RowHeight

	dc := gg.NewContext(g.style.Width, height)

	// vertical gradient background
	for y := 0; y < height; y++ {
		t := float64(y) / float64(height)
		dc.SetRGB(0.05+t*0.04, 0.04+t*0.03, 0.12+t*0.10)
		dc.DrawLine(0, float64(y), float64(g.style.Width), float64(y))
		dc.Stroke()
	}

	titleFace, err := loadFont(gobold.TTF, 20)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	headerFace, err := loadFont(gobold.TTF, 13)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	rowFace, err := loadFont(goregular.TTF, 12)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	title := "BANNER"
	if secret {
		title = "SECRET BANNER"
	}
	pad := float64(g.style.Padding)
	dc.SetFontFace(titleFace)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(title, pad, pad+20)

	y := pad + 40
	for _, row := range rows {
		r, gr, b := rgb(common.RarityColor(row.rarity))
		if row.header {
			dc.SetRGBA(r, gr, b, 0.25)
			dc.DrawRectangle(0, y, float64(g.style.Width), float64(g.style.RowHeight))
			dc.Fill()
			dc.SetFontFace(headerFace)
			dc.SetRGB(r, gr, b)
		} else {
			dc.SetFontFace(rowFace)
			dc.SetRGB(0.92, 0.92, 0.95)
		}
		baseline := y + float64(g.style.RowHeight)*0.7
		dc.DrawString(row.left, pad, baseline)
		dc.DrawStringAnchored(row.right, float64(g.style.Width)-pad, baseline, 1, 0)
		y += float64(g.style.RowHeight)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode banner card: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *CardGenerator) layout(banner services.Banner) []cardRow {
	var rows []cardRow
	for _, tier := range banner.Tiers {
		rows = append(rows, cardRow{
			header: true,
			rarity: tier.Rarity,
			left:   fmt.Sprintf("%s %s", tier.Rarity, tier.Rarity.Stars()),
			right:  common.FormatPercent(tier.Subtotal),
		})
		for _, line := range tier.Lines {
			name := line.Item.Name
			if line.Item.IsPromotional {
				name = "* " + name
			}
			rows = append(rows, cardRow{
				rarity: tier.Rarity,
				left:   common.Truncate(name, 40),
				right:  common.FormatPercent(line.Percent),
			})
		}
	}
	if len(rows) > g.style.MaxRows {
		hidden := len(rows) - g.style.MaxRows + 1
		rows = append(rows[:g.style.MaxRows-1], cardRow{left: fmt.Sprintf("… and %d more", hidden)})
	}
	return rows
}

func rgb(color int) (float64, float64, float64) {
	return float64((color>>16)&0xFF) / 255, float64((color>>8)&0xFF) / 255, float64(color&0xFF) / 255
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
