package ui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/utils"
)

const bannerText = `
 ___  __ _| | __ _ _ __ _   _   ___  ___ ___ _ __   ___  ___
/ __|/ _' | |/ _' | '__| | | | / __|/ __/ _ \ '_ \ / _ \/ __|
\__ \ (_| | | (_| | |  | |_| | \__ \ (_|  __/ | | |  __/\__ \
|___/\__,_|_|\__,_|_|   \__, | |___/\___\___|_| |_|\___||___/
                        |___/     data salaries, scene by scene
`

// ColorizeText applies a random colour fade to the input text
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	endColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	chars := strings.Split(text, "")
	half := len(chars) / 2
	if half == 0 {
		return text
	}

	var b strings.Builder
	for i, ch := range chars {
		b.WriteString(startColor.Fade(0, float32(len(chars)), float32(i%half), endColor).Sprint(ch))
	}
	return b.String()
}

// PrintBanner writes the application banner unless silenced
func PrintBanner(w io.Writer, silence bool) {
	if silence {
		return
	}
	fmt.Fprintln(w, ColorizeText(bannerText))
}

// ColorizeSalary applies color formatting to a salary
func ColorizeSalary(salary float64) string {
	formatted := utils.FormatSalary(salary)

	switch {
	case salary >= 250000:
		return pterm.Green(formatted)
	case salary >= 150000:
		return pterm.LightGreen(formatted)
	case salary >= 75000:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}
