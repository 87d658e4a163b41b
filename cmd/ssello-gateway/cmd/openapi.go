package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/danielgtaylor/huma/v2"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/ssello-gateway/internal/api"
	"github.com/donaldgifford/ssello-gateway/pkg/logger"
)

func openAPICommand() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		Example: `  ssello-gateway openapi > openapi.json
  ssello-gateway openapi --format yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, humaAPI := api.NewRouter(api.Deps{Version: Version, Logger: logger.Discard()})
			return writeOpenAPI(cmd.OutOrStdout(), humaAPI, format)
		},
	}

	c.Flags().StringVar(&format, "format", "json", "output format (json, yaml)")
	return c
}

func writeOpenAPI(w io.Writer, humaAPI huma.API, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(humaAPI.OpenAPI(), "", "  ")
	case "yaml":
		data, err = humaAPI.OpenAPI().YAML()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("rendering OpenAPI %s: %w", format, err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
