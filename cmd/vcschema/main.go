package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-json"

	"github.com/attestia/vcschema/credential"
	"github.com/attestia/vcschema/schemafile"
	"github.com/attestia/vcschema/validation"
)

func main() {
	var (
		schemasPath  = flag.String("schemas", "", "schema file or directory to load")
		schemaID     = flag.String("schema", "", "schema id to validate against")
		objectPath   = flag.String("object", "-", "JSON object file, or - for stdin")
		nullify      = flag.Bool("nullify", false, "nullify empty values failing format/enum checks")
		cleanupNulls = flag.Bool("cleanup-nulls", false, "strip null-valued keys before validation")
		issue        = flag.String("issue", "", "wrap the validated object in a credential from this issuer")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(*schemasPath, *schemaID, *objectPath, *nullify, *cleanupNulls, *issue); err != nil {
		var ve *validation.ValidationError
		if errors.As(err, &ve) {
			report, marshalErr := json.MarshalIndent(ve, "", "  ")
			if marshalErr == nil {
				fmt.Println(string(report))
				os.Exit(1)
			}
		}
		logger.Error("validation run failed", "error", err)
		os.Exit(1)
	}
}

func run(schemasPath, schemaID, objectPath string, nullify, cleanupNulls bool, issuerID string) error {
	if schemasPath == "" || schemaID == "" {
		return fmt.Errorf("both -schemas and -schema are required")
	}
	schemas, err := schemafile.Load(schemasPath)
	if err != nil {
		return err
	}
	v, err := validation.New(schemas)
	if err != nil {
		return err
	}

	object, err := readObject(objectPath)
	if err != nil {
		return err
	}

	var opts []validation.Option
	if nullify {
		opts = append(opts, validation.WithNullifyEmptyValues())
	}
	if cleanupNulls {
		opts = append(opts, validation.WithCleanupNulls())
	}
	out, err := v.Validate(object, schemaID, opts...)
	if err != nil {
		return err
	}

	var result any = out
	if issuerID != "" {
		s, err := v.Schema(schemaID)
		if err != nil {
			return err
		}
		cred, err := credential.Issuer{ID: issuerID}.Issue(out, s)
		if err != nil {
			return err
		}
		result = cred
	}
	report, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(report))
	return nil
}

func readObject(path string) (map[string]any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var object map[string]any
	if err := json.Unmarshal(data, &object); err != nil {
		return nil, fmt.Errorf("parsing object: %w", err)
	}
	return object, nil
}
