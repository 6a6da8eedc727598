package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/accounted4/optionspark/internal/adapter/quote/yahoo"
	"github.com/accounted4/optionspark/internal/config"
	"github.com/accounted4/optionspark/internal/domain"
	"github.com/accounted4/optionspark/internal/logger"
	"github.com/accounted4/optionspark/internal/usecase/quote"
)

const version = "0.1"

func main() {
	if err := config.LoadEnvFiles(".env"); err != nil {
		logrus.Fatalf("Failed to load environment: %v", err)
	}
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Getenv))
}

// run executes one invocation of the tool and returns the process exit code
func run(ctx context.Context, args []string, out io.Writer, getenv func(string) string) int {
	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	fs.SetOutput(out)

	help := fs.Bool("help", false, "print this message")
	showVersion := fs.Bool("version", false, "print the version information and exit")
	showServices := fs.Bool("showServices", false, "list the stock quoting services configured for queries")
	showAttributes := fs.Bool("showAttributes", false, "list attributes that may be retrieved")
	serviceName := fs.String("service", "", "query the named service")
	symbols := fs.String("symbols", "", "comma separated list of ticker symbols to query for (example: ORCL)")
	attributes := fs.String("attributes", string(domain.QuoteAttrLastTradePrice), "comma separated list of attributes to query for (example: LAST_TRADE_PRICE)")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(out, "Malformed command")
		return 2
	}

	cfg := config.Load(getenv)
	log := logger.New(cfg.LogLevel, os.Stderr)
	yahooService := yahoo.NewService(cfg.Quote, &http.Client{Timeout: 10 * time.Second}, log)
	quotes := quote.NewQuoteService(log, yahooService)

	switch {
	case *help || fs.NFlag() == 0:
		fs.Usage()
		return 0
	case *showVersion:
		fmt.Fprintf(out, "version: %s\n", version)
		return 0
	case *showServices:
		fmt.Fprintln(out, "Discovered services: ")
		for _, svc := range quotes.Services() {
			fmt.Fprintf(out, "  %s\n", svc.Name())
		}
		return 0
	case *showAttributes:
		fmt.Fprintln(out, "Supported query attributes: ")
		for _, attr := range domain.QuoteAttributes() {
			fmt.Fprintf(out, "  %s\n", attr)
		}
		return 0
	}

	result, err := quotes.Execute(ctx, quote.QueryInput{
		Service:    *serviceName,
		Symbols:    *symbols,
		Attributes: *attributes,
	})
	if err != nil {
		log.WithError(err).Error("Query failed")
		fmt.Fprintln(out, "Failure executing service command")
		fs.Usage()
		return 1
	}

	for _, name := range result.Ignored {
		fmt.Fprintf(out, "Ignoring unrecognized attribute: %s\n", name)
	}
	for _, q := range result.Quotes {
		fmt.Fprintln(out)
		for _, attr := range result.Attributes {
			fmt.Fprintf(out, "  %s = %s\n", attr, q[attr])
		}
	}

	return 0
}
