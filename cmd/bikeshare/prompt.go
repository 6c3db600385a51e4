package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go-bikeshare/internal/model"
	"go-bikeshare/internal/pipeline"
)

// prompter asks line-oriented questions and re-asks until the answer parses.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask writes question and returns the next trimmed input line.
// io.EOF is returned once input is exhausted.
func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// askUntil repeats question until parse accepts the answer.
func askUntil[T any](p *prompter, question, retry string, parse func(string) (T, error)) (T, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(answer)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(p.out, retry)
	}
}

func (p *prompter) askFilters() (model.FilterSpec, error) {
	fmt.Fprintln(p.out, "\nHello! Let's explore some US bikeshare data!")

	city, err := askUntil(p,
		"Please choose a city: Chicago, New York City or Washington: ",
		"Wrong city name. Please try again.",
		pipeline.ParseCity)
	if err != nil {
		return model.FilterSpec{}, err
	}
	month, err := askUntil(p,
		"Please specify the month (january, february, ... , june OR all): ",
		"Wrong month name. Please try again.",
		pipeline.ParseMonth)
	if err != nil {
		return model.FilterSpec{}, err
	}
	day, err := askUntil(p,
		"Please choose a day of the week (monday, tuesday, ... , sunday OR all): ",
		"Wrong day name. Please try again.",
		pipeline.ParseDay)
	if err != nil {
		return model.FilterSpec{}, err
	}

	fmt.Fprintln(p.out, separator)
	return model.FilterSpec{City: city, Month: month, Day: day}, nil
}

func parseYesNo(answer string) (bool, error) {
	switch strings.ToLower(answer) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected yes or no, got %q", model.ErrValidation, answer)
}

// askYesNo re-prompts until the answer is yes or no.
func (p *prompter) askYesNo(question string) (bool, error) {
	return askUntil(p, question, "\nPlease type a valid answer (yes or no).", parseYesNo)
}

// askRestart treats anything but "yes" as no.
func (p *prompter) askRestart() (bool, error) {
	answer, err := p.ask("\nWould you like to restart? Enter yes or no.\n")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "yes"), nil
}
