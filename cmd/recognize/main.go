// Command recognize prints the quantities found in each input line.
//
//	recognize -culture es-es "tengo 25 años"
//	cat notes.txt | recognize -kinds currency -pretty
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"numunit-service/internal/numberunit"
	"numunit-service/internal/recognizer"
	"numunit-service/internal/resources"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("recognize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	culture := fs.String("culture", "en-us", "culture code (en-us, es-es, pt-br, fr-fr)")
	kindList := fs.String("kinds", "", "comma separated unit kinds; empty means all")
	pretty := fs.Bool("pretty", false, "human readable output instead of JSON lines")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).Level(zerolog.WarnLevel)
	kinds, err := numberunit.ParseKinds(*kindList)
	if err != nil {
		logger.Error().Err(err).Msg("bad -kinds")
		return 2
	}
	cat, err := resources.Embedded()
	if err != nil {
		logger.Error().Err(err).Msg("load locale tables")
		return 1
	}
	rec, err := recognizer.New(cat, recognizer.Options{
		DefaultCulture:  *culture,
		Cultures:        []string{*culture},
		EnglishFallback: true,
	}, logger)
	if err != nil {
		logger.Error().Err(err).Str("culture", *culture).Msg("build recognizer")
		return 1
	}

	var lines []string
	if fs.NArg() > 0 {
		lines = fs.Args()
	} else {
		sc := bufio.NewScanner(stdin)
		sc.Buffer(make([]byte, 64*1024), 1<<20)
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		if err := sc.Err(); err != nil {
			logger.Error().Err(err).Msg("read stdin")
			return 1
		}
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()
	enc := json.NewEncoder(out)
	for _, line := range lines {
		res, err := rec.Recognize(context.Background(), line, *culture, kinds...)
		if errors.Is(err, recognizer.ErrEmptyText) {
			continue
		}
		if err != nil {
			logger.Error().Err(err).Msg("recognize")
			return 1
		}
		if *pretty {
			printPretty(out, line, res.Entities)
			continue
		}
		if err := enc.Encode(res); err != nil {
			return 1
		}
	}
	return 0
}

var title = cases.Title(language.English)

// printPretty groups the results of one line by kind:
//
//	paid $30 for 5 km
//	  Currency   $30   30 Dollar USD   [5-7]
func printPretty(w io.Writer, line string, entities []numberunit.ModelResult) {
	fmt.Fprintln(w, line)
	if len(entities) == 0 {
		fmt.Fprintln(w, "  (nothing found)")
		return
	}
	for _, e := range entities {
		value := strings.TrimSpace(strings.Join([]string{e.Resolution.Value, e.Resolution.Unit, e.Resolution.ISOCurrency}, " "))
		fmt.Fprintf(w, "  %-11s %-20s %-24s [%d-%d]\n", title.String(e.TypeName), e.Text, value, e.Start, e.End)
	}
}
