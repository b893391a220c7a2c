package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads console responses line by line. Input and output are
// injected so workflows can be driven by a scripted reader in tests.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

// NewPrompter creates a prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Line prints the prompt and returns the next trimmed input line.
func (p *Prompter) Line(prompt string) string {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		p.eof = true
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

// Int prompts for a number. The second return is false when the
// response is not an integer.
func (p *Prompter) Int(prompt string) (int, bool) {
	value, err := strconv.Atoi(p.Line(prompt))
	if err != nil {
		return 0, false
	}
	return value, true
}

// Confirm asks a yes/no question. Only "yes" confirms, in any casing.
func (p *Prompter) Confirm(question string) bool {
	return strings.EqualFold(p.Line(question+" (yes/no): "), "yes")
}

// EOF reports whether the input stream has been exhausted.
func (p *Prompter) EOF() bool {
	return p.eof
}
