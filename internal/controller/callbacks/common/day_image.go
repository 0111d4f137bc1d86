package common

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/formatting"
	"github.com/psicocare/psicocare_bot/internal/scheduling"
	"github.com/psicocare/psicocare_bot/internal/timeinput"
)

type FontStyle string

const (
	FontStyleRegular FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

// Layout
const (
	dayImageWidth    = 1000
	dayHeaderHeight  = 120
	dayLegendHeight  = 70
	dayGridColumns   = 8
	dayGridPadding   = 24
	dayCellGap       = 10
	dayCellHeight    = 64.0
	dayCellRadius    = 8.0
	dayShadowOffset  = 3.0
	dayTitleFontSize = 30.0
	daySubFontSize   = 20.0
	dayCellFontSize  = 22.0
	dayLegendFont    = 16.0
)

var (
	dayBgColor       = color.RGBA{245, 246, 248, 255}
	dayTextColor     = color.RGBA{60, 64, 70, 255}
	daySubTextColor  = color.RGBA{110, 115, 120, 255}
	slotFreeFill     = color.RGBA{133, 193, 85, 230}
	slotTakenFill    = color.RGBA{255, 182, 193, 255}
	slotFreeText     = color.RGBA{20, 24, 28, 230}
	slotTakenText    = color.RGBA{120, 40, 50, 255}
	slotShadow       = color.RGBA{0, 0, 0, 20}
	nowLineColor     = color.NRGBA{255, 80, 80, 200}
	legendLabelColor = color.RGBA{70, 74, 78, 230}
	strikeLineColor  = color.RGBA{120, 40, 50, 200}
)

var (
	dayGridRows    = (scheduling.SlotsPerDay + dayGridColumns - 1) / dayGridColumns
	dayImageHeight = dayHeaderHeight + dayGridRows*(int(dayCellHeight)+dayCellGap) + dayLegendHeight
	dayCellWidth   = float64(dayImageWidth-2*dayGridPadding-(dayGridColumns-1)*dayCellGap) / dayGridColumns
)

var (
	fontCacheMu     sync.Mutex
	cachedFonts     = make(map[FontStyle]*opentype.Font)
	fontDataByStyle = map[FontStyle][]byte{FontStyleRegular: goregular.TTF, FontStyleBold: gobold.TTF}
)

// loadFont sets a Go font face of the given size, falling back to basicfont.
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontCacheMu.Lock()
	parsed, ok := cachedFonts[style]
	if !ok {
		var err error
		parsed, err = opentype.Parse(fontDataByStyle[style])
		if err != nil {
			parsed = nil
		}
		cachedFonts[style] = parsed
	}
	fontCacheMu.Unlock()

	if parsed != nil {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// RenderDayImage draws the day's 48 slots as a grid, free in green and taken
// in pink and struck through. now, if on the same day, is drawn as a red
// marker on the current slot.
func RenderDayImage(day timeinput.Date, slots []scheduling.Slot, counterpartyName string, now time.Time) ([]byte, error) {
	dc := gg.NewContext(dayImageWidth, dayImageHeight)
	dc.SetColor(dayBgColor)
	dc.Clear()

	drawDayTitle(dc, day, counterpartyName, slots)
	for i, s := range slots {
		drawDaySlot(dc, i, s)
	}
	if timeinput.DateOf(now) == day {
		drawNowMarker(dc, now)
	}
	drawDayLegend(dc)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawDayTitle(dc *gg.Context, day timeinput.Date, counterpartyName string, slots []scheduling.Slot) {
	free := 0
	for _, s := range slots {
		if !s.Taken {
			free++
		}
	}

	loadFont(dc, dayTitleFontSize, FontStyleBold)
	dc.SetColor(dayTextColor)
	dc.DrawStringAnchored(formatting.FormatDateLong(day.In(time.UTC)), dayGridPadding, 48, 0, 0)

	loadFont(dc, daySubFontSize, FontStyleRegular)
	dc.SetColor(daySubTextColor)
	sub := formatting.Pluralize(free, "horário livre", "horários livres")
	if counterpartyName != "" {
		sub = counterpartyName + " · " + sub
	}
	dc.DrawStringAnchored(sub, dayGridPadding, 88, 0, 0)
}

func cellOrigin(index int) (float64, float64) {
	col := index % dayGridColumns
	row := index / dayGridColumns
	x := float64(dayGridPadding) + float64(col)*(dayCellWidth+dayCellGap)
	y := float64(dayHeaderHeight) + float64(row)*(dayCellHeight+dayCellGap)
	return x, y
}

func drawDaySlot(dc *gg.Context, index int, s scheduling.Slot) {
	x, y := cellOrigin(index)

	dc.SetColor(slotShadow)
	dc.DrawRoundedRectangle(x+dayShadowOffset, y+dayShadowOffset, dayCellWidth, dayCellHeight, dayCellRadius)
	dc.Fill()

	fill, text := slotFreeFill, slotFreeText
	if s.Taken {
		fill, text = slotTakenFill, slotTakenText
	}
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, dayCellWidth, dayCellHeight, dayCellRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, dayCellWidth, dayCellHeight, dayCellRadius)
	dc.Stroke()

	loadFont(dc, dayCellFontSize, FontStyleBold)
	dc.SetColor(text)
	cx, cy := x+dayCellWidth/2, y+dayCellHeight/2
	dc.DrawStringAnchored(s.Time, cx, cy, 0.5, 0.35)

	if s.Taken {
		w, _ := dc.MeasureString(s.Time)
		dc.SetColor(strikeLineColor)
		dc.SetLineWidth(2)
		dc.DrawLine(cx-w/2-4, cy, cx+w/2+4, cy)
		dc.Stroke()
	}
}

func drawNowMarker(dc *gg.Context, now time.Time) {
	minutes := now.Hour()*60 + now.Minute()
	index := minutes / int(scheduling.SlotStep/time.Minute)
	if index >= scheduling.SlotsPerDay {
		return
	}
	x, y := cellOrigin(index)
	dc.SetColor(nowLineColor)
	dc.SetLineWidth(3)
	dc.DrawRoundedRectangle(x-2, y-2, dayCellWidth+4, dayCellHeight+4, dayCellRadius)
	dc.Stroke()
}

func drawDayLegend(dc *gg.Context) {
	items := []struct {
		label string
		clr   color.Color
	}{
		{"Livre", slotFreeFill},
		{"Ocupado", slotTakenFill},
	}

	x := float64(dayGridPadding)
	y := float64(dayImageHeight - dayLegendHeight/2)
	loadFont(dc, dayLegendFont, FontStyleRegular)
	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(x, y-8, 24, 16, 3)
		dc.Fill()

		dc.SetColor(legendLabelColor)
		dc.DrawStringAnchored(item.label, x+32, y, 0, 0.35)
		w, _ := dc.MeasureString(item.label)
		x += 32 + w + 28
	}
}

func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
