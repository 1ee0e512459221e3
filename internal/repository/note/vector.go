package note

import (
	"strconv"
	"strings"
)

// formatVector renders a float32 slice as a pgvector literal, e.g.
// "[0.1,0.2,0.3]". pgvector accepts this text form with a ::vector cast.
func formatVector(vec []float32) string {
	var b strings.Builder
	b.Grow(len(vec)*10 + 2)
	b.WriteByte('[')
	for i, v := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
