package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/scylladb/termtables"

	"github.com/datescan/datescan"
)

var format = ""

func main() {
	flag.StringVar(&format, "format", "datetime", "Format to parse: `datetime`, `rfc2822` or `rfc3339`")
	flag.Parse()

	if len(flag.Args()) == 0 {
		fmt.Println(`Must pass   ./datescan "2009-08-12T22:15:09.99Z"`)
		return
	}
	datestr := flag.Args()[0]

	table := termtables.CreateTable()
	table.AddHeaders("Input", "Format", "Parsed")

	parse := datescan.ParseDateTime
	switch format {
	case "datetime":
	case "rfc2822":
		parse = datescan.ParseRFC2822
	case "rfc3339":
		parse = datescan.ParseRFC3339
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q\n", format)
		os.Exit(1)
	}

	ts, err := parse(datestr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not parse %q: %v\n", datestr, err)
		os.Exit(1)
	}
	table.AddRow(datestr, format, fmt.Sprintf("%v", ts))
	table.AddRow(datestr, format+" (UTC)", fmt.Sprintf("%v", ts.UTC()))

	fmt.Println(table.Render())
}
