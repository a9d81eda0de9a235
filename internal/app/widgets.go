package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	panelColor   = rl.NewColor(30, 33, 40, 255)
	widgetColor  = rl.NewColor(52, 57, 68, 255)
	hoverColor   = rl.NewColor(70, 77, 92, 255)
	accentColor  = rl.NewColor(90, 150, 230, 255)
	headingColor = rl.NewColor(255, 210, 90, 255)
	textColor    = rl.RayWhite
	dimColor     = rl.LightGray
)

const (
	fontSize   = 16
	smallFont  = 14
	rowHeight  = 24
	panelInset = 12
)

// cursor lays out widgets top to bottom inside the panel
type cursor struct {
	x, y, width float32
}

func (c *cursor) row() rl.Rectangle {
	r := rl.Rectangle{X: c.x, Y: c.y, Width: c.width, Height: rowHeight - 4}
	c.y += rowHeight
	return r
}

func (c *cursor) space(h float32) {
	c.y += h
}

func (app *App) heading(c *cursor, title string) {
	c.space(6)
	rl.DrawText(title, int32(c.x), int32(c.y), fontSize, headingColor)
	c.space(rowHeight)
}

func (app *App) label(c *cursor, text string, col rl.Color) {
	rl.DrawText(text, int32(c.x), int32(c.y), smallFont, col)
	c.space(rowHeight - 6)
}

// button draws a button and reports a click on it
func (app *App) button(r rl.Rectangle, text string) bool {
	mouse := rl.GetMousePosition()
	hovered := rl.CheckCollisionPointRec(mouse, r)

	bg := widgetColor
	if hovered {
		bg = hoverColor
	}
	rl.DrawRectangleRec(r, bg)

	tw := rl.MeasureText(text, smallFont)
	rl.DrawText(text, int32(r.X+(r.Width-float32(tw))/2), int32(r.Y+(r.Height-smallFont)/2), smallFont, textColor)

	return hovered && rl.IsMouseButtonPressed(rl.MouseLeftButton) && app.UI.activeSlider == ""
}

// buttonRow splits a row into equally wide buttons and returns the index
// of the clicked one, or -1.
func (app *App) buttonRow(c *cursor, labels ...string) int {
	r := c.row()
	gap := float32(6)
	w := (r.Width - gap*float32(len(labels)-1)) / float32(len(labels))

	clicked := -1
	for i, text := range labels {
		br := rl.Rectangle{X: r.X + float32(i)*(w+gap), Y: r.Y, Width: w, Height: r.Height}
		if app.button(br, text) {
			clicked = i
		}
	}
	return clicked
}

// checkbox toggles *value when clicked
func (app *App) checkbox(c *cursor, text string, value *bool) bool {
	r := c.row()
	box := rl.Rectangle{X: r.X, Y: r.Y + 2, Width: r.Height - 4, Height: r.Height - 4}
	hit := rl.Rectangle{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}

	rl.DrawRectangleRec(box, widgetColor)
	if *value {
		inner := rl.Rectangle{X: box.X + 3, Y: box.Y + 3, Width: box.Width - 6, Height: box.Height - 6}
		rl.DrawRectangleRec(inner, accentColor)
	}
	rl.DrawText(text, int32(box.X+box.Width+8), int32(r.Y+(r.Height-smallFont)/2), smallFont, textColor)

	if rl.CheckCollisionPointRec(rl.GetMousePosition(), hit) && rl.IsMouseButtonPressed(rl.MouseLeftButton) && app.UI.activeSlider == "" {
		*value = !*value
		return true
	}
	return false
}

// slider edits *value in [lo, hi]. The slider that grabbed the mouse keeps
// it until the button is released.
func (app *App) slider(c *cursor, text, format string, value *float32, lo, hi float32) {
	rl.DrawText(fmt.Sprintf("%s: "+format, text, *value), int32(c.x), int32(c.y), smallFont, dimColor)
	c.space(rowHeight - 6)

	r := c.row()
	track := rl.Rectangle{X: r.X, Y: r.Y + r.Height/2 - 3, Width: r.Width, Height: 6}
	rl.DrawRectangleRec(track, widgetColor)

	t := (*value - lo) / (hi - lo)
	t = min(max(t, 0), 1)
	fill := track
	fill.Width = track.Width * t
	rl.DrawRectangleRec(fill, accentColor)
	rl.DrawCircle(int32(track.X+fill.Width), int32(track.Y+3), 7, textColor)

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.CheckCollisionPointRec(mouse, r) {
		app.UI.activeSlider = text
	}
	if app.UI.activeSlider == text && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		t := (mouse.X - track.X) / track.Width
		t = min(max(t, 0), 1)
		*value = lo + t*(hi-lo)
	}
}

// intSlider is a slider over whole numbers
func (app *App) intSlider(c *cursor, text string, value *int, lo, hi int) {
	v := float32(*value)
	app.slider(c, text, "%.0f", &v, float32(lo), float32(hi))
	*value = int(v + 0.5)
}

// progressBar draws a filled bar for fraction in [0,1]
func progressBar(r rl.Rectangle, fraction float32) {
	rl.DrawRectangleRec(r, widgetColor)
	fill := r
	fill.Width = r.Width * min(max(fraction, 0), 1)
	rl.DrawRectangleRec(fill, accentColor)
}

// truncate shortens text to fit width pixels
func truncate(text string, width float32, size int32) string {
	if float32(rl.MeasureText(text, size)) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		if float32(rl.MeasureText(string(runes)+"...", size)) <= width {
			return string(runes) + "..."
		}
	}
	return text
}
