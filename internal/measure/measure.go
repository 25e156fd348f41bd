// Package measure computes the final height of a grid card once its cell
// width is known. Hosts feed the result back to the layout as a height
// correction.
package measure

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/piwi3910/gridflow/internal/model"
)

// Card metrics in points at the "large" text size.
const (
	titlePointSize    = 26.0
	subtitlePointSize = 22.0
	lineSpacing       = 1.2  // line height as a multiple of point size
	glyphAdvance      = 0.5  // average advance of one display column, relative to point size
	cardPadding       = 16.0 // inner padding on every side
	textGap           = 8.0  // space between title and subtitle
	imageAspect       = 2.0 / 3.0
)

// Measurer computes card heights for a text size category.
type Measurer struct {
	Category model.SizeCategory
}

func New(category model.SizeCategory) Measurer {
	return Measurer{Category: category}
}

// TextLine is one wrapped line of card text, positioned from the card top.
type TextLine struct {
	Text string
	Y    float64
	Size float64 // point size
	Bold bool
}

// Card is the measured arrangement of one card at a given width.
type Card struct {
	Image  model.Rect
	Lines  []TextLine
	Height float64
}

// Card lays out the image area and wrapped text of item at width. The height
// is rounded up to a whole point. A non-positive width yields a zero Card.
func (m Measurer) Card(item model.Item, width float64) Card {
	if width <= 0 {
		return Card{}
	}
	scale := m.Category.FontScale()
	textWidth := math.Max(1, width-2*cardPadding)

	card := Card{Image: model.NewRect(0, 0, width, width*imageAspect)}
	y := card.Image.Height + cardPadding

	titleSize := titlePointSize * scale
	titleLines := Wrap(item.Title, textWidth, titleSize)
	for _, line := range titleLines {
		card.Lines = append(card.Lines, TextLine{Text: line, Y: y, Size: titleSize, Bold: true})
		y += titleSize * lineSpacing
	}

	if item.Subtitle != "" {
		subtitleSize := subtitlePointSize * scale
		if len(titleLines) > 0 {
			y += textGap
		}
		for _, line := range Wrap(item.Subtitle, textWidth, subtitleSize) {
			card.Lines = append(card.Lines, TextLine{Text: line, Y: y, Size: subtitleSize})
			y += subtitleSize * lineSpacing
		}
	}

	card.Height = math.Ceil(y + cardPadding)
	return card
}

// Height returns the height a card needs at the given cell width.
func (m Measurer) Height(item model.Item, width float64) float64 {
	return m.Card(item, width).Height
}

// Padding is the inset of card text from the card edges.
func Padding() float64 {
	return cardPadding
}

// columnsFor returns how many display columns fit in width at pointSize.
func columnsFor(width, pointSize float64) int {
	if pointSize <= 0 {
		return math.MaxInt32
	}
	n := int(math.Floor(width / (pointSize * glyphAdvance)))
	if n < 1 {
		return 1
	}
	return n
}

// Wrap breaks text into lines no wider than width at pointSize, breaking at
// spaces where possible and inside words only when a single word is too long.
func Wrap(text string, width, pointSize float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	limit := columnsFor(width, pointSize)

	var lines []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		if line.Len() > 0 {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
	}

	for _, word := range words {
		ww := runewidth.StringWidth(word)

		if ww > limit {
			flush()
			lines = append(lines, splitWord(word, limit)...)
			// Keep filling the last chunk.
			last := lines[len(lines)-1]
			lines = lines[:len(lines)-1]
			line.WriteString(last)
			lineWidth = runewidth.StringWidth(last)
			continue
		}

		switch {
		case lineWidth == 0:
			line.WriteString(word)
			lineWidth = ww
		case lineWidth+1+ww <= limit:
			line.WriteByte(' ')
			line.WriteString(word)
			lineWidth += 1 + ww
		default:
			flush()
			line.WriteString(word)
			lineWidth = ww
		}
	}
	flush()
	return lines
}

// splitWord cuts word into chunks of at most limit display columns.
func splitWord(word string, limit int) []string {
	var chunks []string
	var chunk strings.Builder
	w := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if w+rw > limit && w > 0 {
			chunks = append(chunks, chunk.String())
			chunk.Reset()
			w = 0
		}
		chunk.WriteRune(r)
		w += rw
	}
	if chunk.Len() > 0 {
		chunks = append(chunks, chunk.String())
	}
	return chunks
}
