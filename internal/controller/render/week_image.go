package render

import (
	"bytes"
	"image/color"
	"time"

	"github.com/Freeeeeet/classbot/internal/timetable"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	imageWidth       = 1260
	imageHeight      = 760
	headerHeight     = 70
	leftLabelsWidth  = 70
	legendWidth      = 110
	dayPaddingX      = 6
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	maxLabelChars    = 22
)

var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 90}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{225, 225, 225, 255}
	closedDayColor   = color.NRGBA{190, 190, 190, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	classColor      = color.RGBA{133, 193, 85, 220}
	breakColor      = color.RGBA{255, 205, 120, 220}
	slotTextColor   = color.RGBA{20, 24, 28, 230}
	slotShadowColor = color.RGBA{0, 0, 0, 20}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

// layout переводит смещение от полуночи в вертикальную позицию в пикселях.
type layout struct {
	open     time.Duration
	close    time.Duration
	dayWidth float64
	pxPerMin float64
}

func (l layout) y(off time.Duration) float64 {
	return float64(headerHeight) + (off-l.open).Minutes()*l.pxPerMin
}

// WeekImage рисует PNG недели, содержащей now: колонка на день, занятые слоты
// блоками, перерывы полосами, выходные серым.
func WeekImage(t *timetable.WeeklyTable, now time.Time) ([]byte, error) {
	g := t.Grid()
	now = now.In(g.Location())
	monday := weekStart(now)

	open := g.Open()
	l := layout{
		open:     open.Start.Offset(),
		close:    open.End.Offset(),
		dayWidth: float64(imageWidth-leftLabelsWidth-legendWidth) / 7,
	}
	l.pxPerMin = float64(imageHeight-headerHeight-10) / (l.close - l.open).Minutes()

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	drawHeader(dc, t.Name(), monday)
	drawSlotLabels(dc, g, l)

	today := timetable.DayOf(now)
	for d := timetable.Monday; d <= timetable.Sunday; d++ {
		x := float64(leftLabelsWidth) + float64(d)*l.dayWidth
		drawDay(dc, t, d, monday.AddDate(0, 0, int(d)), x, l, d == today)
	}
	drawCurrentTimeLine(dc, g, now, l)
	drawLegend(dc, l)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func weekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -int(timetable.DayOf(d)))
}

func drawHeader(dc *gg.Context, group string, monday time.Time) {
	sunday := monday.AddDate(0, 0, 6)
	title := group + "  " + monday.Format("02 Jan") + " - " + sunday.Format("02 Jan 2006")
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, 12, 20, 0, 0.5)
}

func drawSlotLabels(dc *gg.Context, g *timetable.Grid, l layout) {
	dc.SetColor(hourLabelColor)
	for i := 0; i < g.SlotCount(); i++ {
		s := g.Slot(i)
		dc.DrawStringAnchored(s.Start.String(), float64(leftLabelsWidth)-8, l.y(s.Start.Offset()), 1, 0.5)
	}
	dc.DrawStringAnchored(g.Open().End.String(), float64(leftLabelsWidth)-8, l.y(l.close), 1, 0.5)
}

func drawDay(dc *gg.Context, t *timetable.WeeklyTable, d timetable.Day, date time.Time, x float64, l layout, isToday bool) {
	top := float64(headerHeight)
	height := l.y(l.close) - top

	switch {
	case t.IsClosed(d):
		dc.SetColor(closedDayColor)
	case isToday:
		dc.SetColor(todayBgColor)
	case int(d)%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, top, l.dayWidth, height)
	dc.Fill()

	dc.SetColor(textColor)
	dc.DrawStringAnchored(d.Short()+" "+date.Format("02.01"), x+l.dayWidth/2, top-14, 0.5, 0.5)

	if t.IsClosed(d) {
		dc.DrawStringAnchored("closed", x+l.dayWidth/2, top+height/2, 0.5, 0.5)
		return
	}

	g := t.Grid()
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for i := 0; i < g.SlotCount(); i++ {
		y := l.y(g.Slot(i).Start.Offset())
		dc.DrawLine(x, y, x+l.dayWidth, y)
		dc.Stroke()
	}

	for _, row := range timetable.DaySchedule(t, d) {
		switch {
		case row.Kind == timetable.BreakRow:
			drawBlock(dc, x, l, row.Interval, breakColor, row.BreakName, "")
		case row.Entry != nil:
			drawBlock(dc, x, l, row.Interval, classColor, row.Entry.Label, row.Entry.Location)
		}
	}
}

func drawBlock(dc *gg.Context, x float64, l layout, iv timetable.SlotInterval, fill color.RGBA, title, subtitle string) {
	y := l.y(iv.Start.Offset())
	h := l.y(iv.End.Offset()) - y
	w := l.dayWidth - dayPaddingX*2

	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, y+2+shadowOffset, w, h-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x+dayPaddingX, y+2, w, h-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+dayPaddingX, y+2, w, h-4, slotBorderRadius)
	dc.Stroke()

	dc.SetColor(slotTextColor)
	tx := x + dayPaddingX + 6
	dc.DrawStringAnchored(truncate(title), tx, y+16, 0, 0)
	if subtitle != "" && h > 36 {
		dc.DrawStringAnchored(truncate(subtitle), tx, y+32, 0, 0)
	}
}

func drawCurrentTimeLine(dc *gg.Context, g *timetable.Grid, now time.Time, l layout) {
	if !g.IsWithinOperatingHours(now) {
		return
	}
	off := time.Duration(now.Hour())*time.Hour + time.Duration(now.Minute())*time.Minute
	y := l.y(off)
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(float64(leftLabelsWidth), y, float64(leftLabelsWidth)+7*l.dayWidth, y)
	dc.Stroke()
}

func drawLegend(dc *gg.Context, l layout) {
	items := []struct {
		label string
		clr   color.Color
	}{
		{"Class", classColor},
		{"Break", breakColor},
		{"Closed", closedDayColor},
	}

	const boxW, boxH = 20.0, 14.0
	x := float64(leftLabelsWidth) + 7*l.dayWidth + 10
	y := float64(imageHeight) - 100

	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.label, x+boxW+8, y+boxH/2, 0, 0.5)
		y += boxH + 14
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

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxLabelChars {
		return s
	}
	return string(r[:maxLabelChars-3]) + "..."
}
