package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	promptColor  = color.New(color.FgGreen, color.Bold)
	itemColor    = color.New(color.FgYellow, color.Bold)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	mutedColor   = color.New(color.FgHiBlack)
)

const bannerWidth = 80

func printWelcome(w io.Writer) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(w, rule)
	titleColor.Fprintln(w, "Welcome to the Travel Recommendation Assistant!")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "I can help you find restaurants, hotels, and vehicle rentals.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example queries:")
	for _, q := range exampleQueries {
		mutedColor.Fprintf(w, "- '%s'\n", q)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Type 'exit', 'quit', or 'bye' to end the conversation.")
	fmt.Fprintln(w, rule)
}

var exampleQueries = []string{
	"Find cheap Italian restaurants in Mumbai with rating above 4",
	"Show me the best hotels in Borivali",
	"I need a luxury vehicle for 4 passengers",
}

// printItem prints a numbered detail block. The first line is the title.
func printItem(w io.Writer, n int, block string) {
	title, rest, _ := strings.Cut(block, "\n")
	fmt.Fprintln(w)
	itemColor.Fprintf(w, "%d. %s\n", n, title)
	for _, line := range strings.Split(rest, "\n") {
		if line != "" {
			fmt.Fprintf(w, "   %s\n", line)
		}
	}
}
