package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	ratonica "github.com/kailas-cloud/ratonica/pkg/sdk"
)

type searchOutput struct {
	ID     string                `json:"id,omitempty"`
	Result ratonica.SearchResult `json:"result"`
}

func searchAction(ctx context.Context, cmd *cli.Command) error {
	opts := []ratonica.Option{ratonica.WithSeed(int64(cmd.Int("seed")))}
	if uri := cmd.String("redis"); uri != "" {
		opts = append(opts, ratonica.WithRedisURI(uri))
	}
	if cmd.Bool("fast") {
		opts = append(opts, ratonica.WithDelays(0, 0))
	}

	client, err := ratonica.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer client.Close()

	res, err := client.Search(ctx, ratonica.QueryType(cmd.String("type")), cmd.String("content"))
	if err != nil {
		return err
	}

	out := searchOutput{Result: res}
	if cmd.Bool("save") {
		id, err := client.SaveSearch(ctx, res)
		if err != nil {
			return err
		}
		out.ID = id
		out.Result.ID = id
	}

	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
