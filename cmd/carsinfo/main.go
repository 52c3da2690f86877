// Command carsinfo reads a car list document, applies filter and sort steps
// in command-line order and prints or writes the resulting JSON.
//
//	carsinfo -input cars.json -filter brand=Toyota -sort price -output out.json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"cars-info-processing/internal/config"
	"cars-info-processing/internal/constants"
	"cars-info-processing/internal/logging"
	"cars-info-processing/internal/models"
	"cars-info-processing/internal/repository"
	"cars-info-processing/internal/service"
	"cars-info-processing/internal/validator"

	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "carsinfo: %v\n", err)
		os.Exit(1)
	}
}

// operationList collects -filter, -sort and -sort-desc flags into one
// ordered pipeline.
type operationList struct {
	ops []models.Operation
}

func (l *operationList) filterFlag(value string) error {
	field, match, ok := strings.Cut(value, "=")
	if !ok || field == "" {
		return fmt.Errorf("filter must be field=value, got %q", value)
	}
	l.ops = append(l.ops, models.Operation{Type: models.OperationFilter, Field: field, Value: match})
	return nil
}

func (l *operationList) sortFlag(ascending bool) func(string) error {
	return func(field string) error {
		if field == "" {
			return fmt.Errorf("sort field is empty")
		}
		l.ops = append(l.ops, models.Operation{Type: models.OperationSort, Field: field, Ascending: ascending})
		return nil
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("carsinfo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var ops operationList
	inputPath := fs.String("input", "", "input .json file (stdin when empty)")
	outputPath := fs.String("output", "", "output .json file (stdout when empty)")
	configPath := fs.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	fs.Func("filter", "keep cars whose field equals value, as field=value (repeatable)", ops.filterFlag)
	fs.Func("sort", "sort ascending by field (repeatable)", ops.sortFlag(true))
	fs.Func("sort-desc", "sort descending by field (repeatable)", ops.sortFlag(false))

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var schema *validator.SchemaValidator
	if cfg.Processing.StrictOutput {
		if schema, err = validator.NewSchemaValidator(logger); err != nil {
			return err
		}
	}
	svc := service.NewCarService(nil, schema, nil, logger)
	files := repository.NewFileStore()

	var input string
	if *inputPath != "" {
		if input, err = files.ReadInput(*inputPath); err != nil {
			return err
		}
	} else {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		input = string(raw)
	}

	result, err := svc.Process(context.Background(), models.ProcessRequest{
		Input:      input,
		Operations: ops.ops,
	})
	if err != nil {
		return err
	}

	if *outputPath != "" {
		if err := files.WriteOutput(*outputPath, result.Output); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("%s Wrote output", constants.APIName()),
			zap.String("path", *outputPath), zap.Int("car_count", result.Count))
		return nil
	}

	_, err = fmt.Fprintln(stdout, result.Output)
	return err
}
